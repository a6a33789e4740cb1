package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	configfile "github.com/custodia-labs/docdesk-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driven/desktop"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driven/docapi"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driven/localfile"
	storagefile "github.com/custodia-labs/docdesk-cli/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk-cli/internal/core/services"
	"github.com/custodia-labs/docdesk-cli/internal/logger"
)

// stores are the persistence adapters selected by the session backend.
type stores struct {
	session  driven.SessionStore
	notifier driven.SessionNotifier
	history  driven.UploadHistoryStore
	close    func() error
}

// initialize wires the driven adapters into the core services.
func initialize(ctx context.Context, opts cli.Options) (*cli.Services, func() error, error) {
	logger.Section("Startup")

	configStore, err := configfile.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening config: %w", err)
	}
	logger.Debug("Config file: %s", configStore.Path())

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("reading settings: %w", err)
	}
	if opts.APIURL != "" {
		settings.API.BaseURL = strings.TrimSpace(opts.APIURL)
	}

	st, err := openStores(settings.SessionBackend, opts.ConfigDir)
	if err != nil {
		return nil, nil, err
	}

	session := services.NewSession(st.session)
	if err := session.Reload(ctx); err != nil {
		st.close() //nolint:errcheck
		return nil, nil, err
	}

	api := docapi.New(docapi.Config{
		BaseURL:   settings.API.BaseURL,
		Timeout:   settings.API.Timeout,
		RateLimit: settings.API.RateLimit,
	})
	logger.Debug("API: %s (backend %s)", api.BaseURL(), settings.SessionBackend)

	auth := services.NewAuthService(api, session)
	if st.notifier != nil {
		auth.SetNotifier(st.notifier)
	}

	upload := services.NewUploadService(api, session, settings.UserID)
	if st.history != nil {
		upload.SetHistoryStore(st.history)
	}

	return &cli.Services{
		Auth:     auth,
		Upload:   upload,
		Tags:     services.NewTagService(api, session),
		Search:   services.NewSearchService(api, session),
		Actions:  services.NewDocumentActionService(api, desktop.New(), settings.DownloadDir),
		Settings: settingsService,
		History:  services.NewHistoryService(st.history),
		LoadFile: localfile.Load,
	}, st.close, nil
}

// openStores opens the session store for backend. Upload history lives in
// SQLite for persistent backends and in memory otherwise.
func openStores(backend domain.SessionBackend, configDir string) (*stores, error) {
	if backend == domain.SessionBackendMemory {
		return &stores{
			session: memory.NewSessionStore(),
			history: memory.NewUploadHistoryStore(),
			close:   func() error { return nil },
		}, nil
	}

	dataDir := ""
	if configDir != "" {
		dataDir = filepath.Join(configDir, "data")
	}
	db, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	logger.Debug("Database: %s", db.Path())

	st := &stores{
		history: db.UploadHistoryStore(),
		close:   db.Close,
	}

	switch backend {
	case domain.SessionBackendSQLite:
		st.session = db.SessionStore()
	default:
		fileStore, err := storagefile.NewSessionStore(configDir)
		if err != nil {
			db.Close() //nolint:errcheck
			return nil, fmt.Errorf("opening session file: %w", err)
		}
		st.session = fileStore
		st.notifier = fileStore
	}
	return st, nil
}
