// Package tui provides an interactive terminal user interface for docdesk.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Auth runs the OTP login flow and reports session changes.
	Auth driving.AuthService

	// Upload submits documents.
	Upload driving.UploadService

	// Tags suggests tags while typing. Optional.
	Tags driving.TagService

	// Search finds documents.
	Search driving.SearchService

	// Actions opens, downloads and copies document links. Optional.
	Actions driving.DocumentActionService

	// LoadFile reads a file chosen for upload.
	LoadFile func(path string) (*domain.UploadFile, error)
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Auth == nil {
		return ErrMissingAuthService
	}
	if p.Upload == nil {
		return ErrMissingUploadService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.LoadFile == nil {
		return ErrMissingFileLoader
	}
	return nil
}
