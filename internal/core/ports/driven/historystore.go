package driven

import (
	"context"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// UploadHistoryStore keeps a local record of successful uploads.
type UploadHistoryStore interface {
	// Record appends an upload. An empty ID is assigned by the store.
	Record(ctx context.Context, record domain.UploadRecord) error

	// List returns up to limit records, newest first. limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]domain.UploadRecord, error)
}
