package driving

import (
	"context"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// HistoryService lists locally recorded uploads.
type HistoryService interface {
	// Recent returns up to limit uploads, newest first.
	Recent(ctx context.Context, limit int) ([]domain.UploadRecord, error)
}
