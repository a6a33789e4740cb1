package driving

import (
	"context"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// UploadService submits documents to the remote store.
type UploadService interface {
	// Upload validates the form and sends it.
	// Returns domain.ErrMissingFields or domain.ErrNotAuthenticated without a
	// network call when the form is incomplete or no session exists.
	Upload(ctx context.Context, form *domain.UploadForm) error
}
