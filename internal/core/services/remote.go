package services

import (
	"context"
	"errors"
	"strings"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// remoteError normalises a DocumentAPI failure into an *domain.APIError whose
// Message is always user-presentable. Server messages are kept; otherwise
// statusMsg is used for error responses and transportMsg when no response
// arrived.
func remoteError(err error, statusMsg, transportMsg string) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		return &domain.APIError{Message: transportMsg, Err: err}
	}
	if strings.TrimSpace(apiErr.Message) != "" {
		return apiErr
	}

	msg := statusMsg
	if apiErr.Transport() {
		msg = transportMsg
	}
	return &domain.APIError{Status: apiErr.Status, Message: msg, Err: apiErr.Err}
}
