// Package docapi provides the DocumentAPI adapter for the document
// management HTTP API.
package docapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.DocumentAPI = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL   = domain.DefaultAPIBaseURL
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5.0
)

// Endpoint names appended to the base URL.
const (
	endpointGenerateOTP = "generateOTP"
	endpointValidateOTP = "validateOTP"
	endpointTags        = "documentTags"
	endpointUpload      = "uploadDocument"
	endpointSearch      = "searchDocumentEntry"
)

// Request headers.
const (
	HeaderToken     = "token"
	HeaderRequestID = "X-Request-ID"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Config holds configuration for the API client.
type Config struct {
	// BaseURL is the API root (default: https://apis.allsoft.co/api/documentManagement).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// RateLimit is the maximum requests per second (default: 5).
	RateLimit float64

	// HTTPClient overrides the HTTP client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client talks to the document management API.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *RateLimiter
}

// envelope is the response wrapper used by every endpoint.
type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// New creates a new API client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		client:  httpClient,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: NewRateLimiter(cfg.RateLimit),
	}
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// postJSON sends body as JSON to endpoint and returns the decoded envelope.
func (c *Client) postJSON(ctx context.Context, endpoint, token string, body any) (*envelope, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	return c.post(ctx, endpoint, token, "application/json", bytes.NewReader(jsonBody))
}

// post sends a request and maps failures to *domain.APIError.
// Transport and decode failures have Status 0.
func (c *Client) post(ctx context.Context, endpoint, token, contentType string, body io.Reader) (*envelope, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, uuid.NewString())
	if token != "" {
		req.Header.Set(HeaderToken, token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Debug("POST %s failed after %s: %v", endpoint, time.Since(start), err)
		return nil, &domain.APIError{Err: fmt.Errorf("send request: %w", err)}
	}
	defer resp.Body.Close()

	c.limiter.Observe(resp)
	logger.Debug("POST %s -> %d (%s, request %s, token %s)",
		endpoint, resp.StatusCode, time.Since(start).Round(time.Millisecond),
		req.Header.Get(HeaderRequestID), logger.Redact(token))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errorFromResponse(resp)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if errors.Is(err, io.EOF) {
			return &env, nil
		}
		return nil, &domain.APIError{Err: fmt.Errorf("decode response: %w", err)}
	}
	return &env, nil
}

// errorFromResponse builds an APIError from a non-2xx response, using the
// envelope message when the body carries one.
func errorFromResponse(resp *http.Response) error {
	apiErr := &domain.APIError{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		apiErr.Err = fmt.Errorf("read response: %w", err)
		return apiErr
	}

	var env envelope
	if json.Unmarshal(body, &env) == nil {
		apiErr.Message = strings.TrimSpace(env.Message)
	}
	if apiErr.Message == "" {
		apiErr.Err = fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return apiErr
}

// decodeData unmarshals the envelope data into v. Missing or null data
// leaves v untouched.
func decodeData(env *envelope, v any) error {
	if env == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return &domain.APIError{Err: fmt.Errorf("decode data: %w", err)}
	}
	return nil
}
