package docapi

import (
	"context"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// SearchDocuments runs a document search.
func (c *Client) SearchDocuments(
	ctx context.Context,
	token string,
	payload domain.SearchPayload,
) ([]domain.DocumentRecord, error) {
	env, err := c.postJSON(ctx, endpointSearch, token, payload)
	if err != nil {
		return nil, err
	}

	docs := []domain.DocumentRecord{}
	if err := decodeData(env, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
