package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// DocumentAPI is the remote document management API.
// Failed calls return *domain.APIError; Status is 0 for transport failures.
type DocumentAPI interface {
	// GenerateOTP asks the server to send an OTP to the mobile number.
	GenerateOTP(ctx context.Context, mobile string) error

	// ValidateOTP exchanges a mobile number and OTP for a session token.
	// Returns domain.ErrMissingToken if the response carries no token.
	ValidateOTP(ctx context.Context, mobile, otp string) (string, error)

	// DocumentTags returns tag suggestions for a search term.
	// token may be empty.
	DocumentTags(ctx context.Context, token, term string) ([]domain.TagSuggestion, error)

	// UploadDocument sends a file with its metadata.
	UploadDocument(ctx context.Context, token string, meta domain.UploadMetadata, file *domain.UploadFile) error

	// SearchDocuments runs a search and returns the matching entries.
	SearchDocuments(ctx context.Context, token string, payload domain.SearchPayload) ([]domain.DocumentRecord, error)

	// Fetch opens a document's file URL for reading.
	// The caller must close the returned reader.
	Fetch(ctx context.Context, fileURL string) (io.ReadCloser, error)
}
