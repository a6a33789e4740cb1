package docapi

import (
	"context"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

type tagsRequest struct {
	Term string `json:"term"`
}

// DocumentTags returns tag suggestions for term.
func (c *Client) DocumentTags(ctx context.Context, token, term string) ([]domain.TagSuggestion, error) {
	env, err := c.postJSON(ctx, endpointTags, token, tagsRequest{Term: term})
	if err != nil {
		return nil, err
	}

	suggestions := []domain.TagSuggestion{}
	if err := decodeData(env, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}
