package domain

import (
	"fmt"
	"net/url"
	"time"
)

const unknownDescription = "Unknown"

// DefaultAPIBaseURL is the document management API root.
const DefaultAPIBaseURL = "https://apis.allsoft.co/api/documentManagement"

// SessionBackend selects where the session token is persisted.
type SessionBackend string

// Available session backends.
const (
	// SessionBackendFile stores the session in a TOML file next to the config.
	SessionBackendFile SessionBackend = "file"

	// SessionBackendSQLite stores the session in the local SQLite database.
	SessionBackendSQLite SessionBackend = "sqlite"

	// SessionBackendMemory keeps the session for the lifetime of the process.
	SessionBackendMemory SessionBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b SessionBackend) IsValid() bool {
	switch b {
	case SessionBackendFile, SessionBackendSQLite, SessionBackendMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b SessionBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b SessionBackend) Description() string {
	switch b {
	case SessionBackendFile:
		return "File (session.toml)"
	case SessionBackendSQLite:
		return "SQLite (docdesk.db)"
	case SessionBackendMemory:
		return "Memory (not persisted)"
	default:
		return unknownDescription
	}
}

// APISettings configures the remote document API.
type APISettings struct {
	// BaseURL is the API root; endpoint names are appended to it.
	BaseURL string

	// Timeout bounds each request.
	Timeout time.Duration

	// RateLimit is the maximum requests per second sent to the API.
	RateLimit float64
}

// AppSettings holds all application configuration.
type AppSettings struct {
	API APISettings

	// UserID is sent as user_id in upload metadata.
	UserID string

	// SessionBackend selects the session store.
	SessionBackend SessionBackend

	// DownloadDir is where downloaded documents are written. Empty means
	// the working directory.
	DownloadDir string

	// TagDebounce is the quiet period before a tag suggestion query fires.
	TagDebounce time.Duration
}

// DefaultAppSettings returns the default configuration.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL:   DefaultAPIBaseURL,
			Timeout:   30 * time.Second,
			RateLimit: 5,
		},
		UserID:         "anmol",
		SessionBackend: SessionBackendFile,
		TagDebounce:    300 * time.Millisecond,
	}
}

// Validate checks the settings are usable.
func (s *AppSettings) Validate() error {
	u, err := url.Parse(s.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api base url %q", ErrInvalidInput, s.API.BaseURL)
	}
	if s.API.Timeout <= 0 {
		return fmt.Errorf("%w: api timeout must be positive", ErrInvalidInput)
	}
	if s.API.RateLimit <= 0 {
		return fmt.Errorf("%w: api rate limit must be positive", ErrInvalidInput)
	}
	if !s.SessionBackend.IsValid() {
		return fmt.Errorf("%w: session backend %q", ErrInvalidInput, s.SessionBackend)
	}
	if s.TagDebounce < 0 {
		return fmt.Errorf("%w: tag debounce must not be negative", ErrInvalidInput)
	}
	return nil
}
