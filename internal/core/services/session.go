package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk-cli/internal/logger"
)

// Session is the process-wide view of the authentication session.
// It is loaded once at startup and handed to every service that sends
// authorised calls. It is safe for concurrent use.
type Session struct {
	mu      sync.RWMutex
	store   driven.SessionStore
	current domain.Session
}

// NewSession creates a session backed by store. Call Reload to read the
// persisted session.
func NewSession(store driven.SessionStore) *Session {
	return &Session{store: store}
}

// Reload re-reads the session from the store. A missing session is not an error.
func (s *Session) Reload(ctx context.Context) error {
	stored, err := s.store.Load(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("load session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if stored == nil {
		s.current = domain.Session{}
	} else {
		s.current = *stored
	}
	logger.Debug("Session reloaded (authenticated=%t)", s.current.Authenticated())
	return nil
}

// Token returns the current token, or "" when not logged in.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

// Current returns a copy of the current session.
func (s *Session) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Authenticated reports whether a token is held.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Authenticated()
}

// Set persists session and makes it current.
func (s *Session) Set(ctx context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.current = session
	return nil
}

// Clear removes the persisted session.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.current = domain.Session{}
	return nil
}
