package driving

import (
	"context"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// TagService provides tag suggestions.
type TagService interface {
	// Suggest returns suggestions for term. A blank term returns an empty
	// list without a network call. Remote failures also yield an empty list.
	Suggest(ctx context.Context, term string) ([]domain.TagSuggestion, error)
}
