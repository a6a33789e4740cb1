package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// historyLimit is a flag for the history command.
var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List documents uploaded from this machine",
	Long: `List uploads recorded locally, newest first.

Only uploads made with this configuration are shown; use 'docdesk search' to
query the full archive.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries (0 = all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	records, err := historyService.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if len(records) == 0 {
		cmd.Println("No uploads recorded.")
		return nil
	}

	for i := range records {
		r := records[i]
		cmd.Printf("%s  %s\n", r.UploadedAt.Local().Format("2006-01-02 15:04"), r.FileName)
		cmd.Printf("    %s / %s", r.MajorHead, r.MinorHead)
		if len(r.Tags) > 0 {
			cmd.Printf("  [%s]", strings.Join(r.Tags, ", "))
		}
		cmd.Println()
		if r.Remarks != "" {
			cmd.Printf("    %s\n", r.Remarks)
		}
	}
	return nil
}
