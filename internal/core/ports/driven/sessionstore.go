package driven

import (
	"context"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// SessionStore persists the authentication session across restarts.
type SessionStore interface {
	// Load returns the stored session.
	// Returns domain.ErrNotFound if no session is stored.
	Load(ctx context.Context) (*domain.Session, error)

	// Save replaces the stored session.
	Save(ctx context.Context, session domain.Session) error

	// Clear removes the stored session. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// SessionNotifier reports changes to the persisted session made outside
// this process, such as a logout from another terminal.
type SessionNotifier interface {
	// Watch emits a value whenever the persisted session may have changed.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
