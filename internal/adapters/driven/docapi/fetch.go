package docapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// Fetch opens fileURL for reading. File URLs are absolute and may point
// outside the API host, so no token is sent.
func (c *Client) Fetch(ctx context.Context, fileURL string) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &domain.APIError{Err: fmt.Errorf("send request: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, errorFromResponse(resp)
	}
	return resp.Body, nil
}
