package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
)

// SessionFileName is the session file inside the config directory.
const SessionFileName = "session.toml"

// Ensure SessionStore implements the interfaces.
var (
	_ driven.SessionStore    = (*SessionStore)(nil)
	_ driven.SessionNotifier = (*SessionStore)(nil)
)

// sessionFile is the on-disk layout of session.toml.
type sessionFile struct {
	Token     string    `toml:"token"`
	Phone     string    `toml:"phone"`
	CreatedAt time.Time `toml:"created_at"`
}

// SessionStore keeps the session in a TOML file readable only by the user.
type SessionStore struct {
	mu       sync.Mutex
	dir      string
	filePath string
}

// NewSessionStore creates a session store in configDir.
// If configDir is empty, defaults to ~/.docdesk.
func NewSessionStore(configDir string) (*SessionStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".docdesk")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	return &SessionStore{
		dir:      configDir,
		filePath: filepath.Join(configDir, SessionFileName),
	}, nil
}

// Path returns the session file path.
func (s *SessionStore) Path() string {
	return s.filePath
}

// Load reads the session file.
func (s *SessionStore) Load(_ context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	var f sessionFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing session file: %w", err)
	}
	if f.Token == "" {
		return nil, domain.ErrNotFound
	}

	return &domain.Session{
		Token:     f.Token,
		Phone:     f.Phone,
		CreatedAt: f.CreatedAt,
	}, nil
}

// Save writes the session file atomically with 0600 permissions.
func (s *SessionStore) Save(_ context.Context, session domain.Session) error {
	data, err := toml.Marshal(sessionFile{
		Token:     session.Token,
		Phone:     session.Phone,
		CreatedAt: session.CreatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".session-*.toml")
	if err != nil {
		return fmt.Errorf("creating temp session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("setting session file mode: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.filePath); err != nil {
		return fmt.Errorf("replacing session file: %w", err)
	}
	return nil
}

// Clear deletes the session file.
func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.filePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}
