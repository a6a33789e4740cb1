// Package cli provides the docdesk command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdesk-cli/internal/logger"
)

// version is set at build time with -ldflags "-X .../cli.version=...".
var version = "dev"

// FileLoader reads a local file chosen for upload.
type FileLoader func(path string) (*domain.UploadFile, error)

// Options are the global flags handed to the Initializer.
type Options struct {
	ConfigDir string
	APIURL    string
	Verbose   bool
	LogFile   string
}

// Services is the set of driving ports the commands use.
type Services struct {
	Auth     driving.AuthService
	Upload   driving.UploadService
	Tags     driving.TagService
	Search   driving.SearchService
	Actions  driving.DocumentActionService
	Settings driving.SettingsService
	History  driving.HistoryService
	LoadFile FileLoader
}

// Initializer builds the services once flags are parsed. The returned
// cleanup is called after the command finishes.
type Initializer func(ctx context.Context, opts Options) (*Services, func() error, error)

// Service instances, set by SetServices or the Initializer.
var (
	authService     driving.AuthService
	uploadService   driving.UploadService
	tagService      driving.TagService
	searchService   driving.SearchService
	actionService   driving.DocumentActionService
	settingsService driving.SettingsService
	historyService  driving.HistoryService
	loadFile        FileLoader
)

var (
	initializer Initializer
	cleanup     func() error
	globalOpts  Options
)

var rootCmd = &cobra.Command{
	Use:   "docdesk",
	Short: "Upload and search documents from the terminal",
	Long: `docdesk is a terminal client for the document management API.

Log in with your phone number and a one-time password, upload PDFs and
images with categories and tags, and search the archive by category,
tags and date range.

Run 'docdesk tui' for the interactive interface.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		if cleanup == nil {
			return nil
		}
		fn := cleanup
		cleanup = nil
		return fn()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&globalOpts.ConfigDir, "config-dir", "", "configuration directory (default ~/.docdesk)")
	flags.StringVar(&globalOpts.APIURL, "api-url", "", "override the API base URL")
	flags.BoolVarP(&globalOpts.Verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&globalOpts.LogFile, "log-file", "", "write logs to this file instead of stderr")
}

// SetInitializer registers the function that wires services from flags.
func SetInitializer(fn Initializer) {
	initializer = fn
}

// SetServices installs services directly, bypassing the Initializer.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	authService = s.Auth
	uploadService = s.Upload
	tagService = s.Tags
	searchService = s.Search
	actionService = s.Actions
	settingsService = s.Settings
	historyService = s.History
	loadFile = s.LoadFile
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(globalOpts.Verbose)
	var closers []func() error
	if globalOpts.LogFile != "" {
		closeLog, err := logger.ToFile(globalOpts.LogFile)
		if err != nil {
			return err
		}
		closers = append(closers, closeLog)
	}

	if initializer != nil && cmd.Name() != versionCmd.Name() {
		services, fn, err := initializer(cmd.Context(), globalOpts)
		if err != nil {
			return err
		}
		SetServices(services)
		if fn != nil {
			closers = append([]func() error{fn}, closers...)
		}
	}

	cleanup = chainClosers(closers)
	return nil
}

// chainClosers runs every closer and returns the first error.
func chainClosers(closers []func() error) func() error {
	if len(closers) == 0 {
		return nil
	}
	return func() error {
		var first error
		for _, c := range closers {
			if err := c(); err != nil && first == nil {
				first = err
			}
		}
		return first
	}
}

// errNotLoggedIn is returned by commands that need a session.
var errNotLoggedIn = fmt.Errorf("%w: run 'docdesk login' first", domain.ErrNotAuthenticated)

// requireLogin is the route guard for authenticated commands.
func requireLogin(ctx context.Context) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}
	status := authService.Status(ctx)
	if !status.Authenticated() {
		return errNotLoggedIn
	}
	return nil
}

// presentError turns a service error into a message for the terminal.
// Unauthenticated failures carry the login hint.
func presentError(err error, fallback string) error {
	if err == nil {
		return nil
	}
	var apiErr *domain.APIError
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, domain.ErrNotAuthenticated):
		return errNotLoggedIn
	case errors.As(err, &apiErr), domain.IsValidation(err):
		return errors.New(domain.RemoteMessage(err, fallback))
	default:
		return err
	}
}
