package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/docdesk-cli/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for docdesk.

The TUI opens on the login screen unless a session exists. From the menu
you can upload documents with tag suggestions, search the archive and
view, download or copy the link of any result.

Controls:
  tab/shift+tab - Move between fields
  ←/→           - Change an option
  ↑/k, ↓/j      - Navigate lists and suggestions
  Enter         - Select / Submit
  ctrl+s        - Submit the form
  Esc           - Back
  ctrl+c        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts builds the TUI ports from the configured services.
func tuiPorts() *tui.Ports {
	return &tui.Ports{
		Auth:     authService,
		Upload:   uploadService,
		Tags:     tagService,
		Search:   searchService,
		Actions:  actionService,
		LoadFile: loadFile,
	}
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	app, err := tui.NewApp(tuiPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			app.WithTagDebounce(settings.TagDebounce)
		} else {
			logger.Warn("Using default tag debounce: %v", err)
		}
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
