package driving

import (
	"context"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// SearchService provides document search to external actors.
type SearchService interface {
	// Search returns the documents matching filter.
	Search(ctx context.Context, filter domain.SearchFilter) ([]domain.DocumentRecord, error)
}
