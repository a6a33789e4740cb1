package driving

import (
	"context"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// AuthService runs the phone and OTP login flow.
type AuthService interface {
	// RequestOTP validates the phone number and asks the server to send an OTP.
	// Returns domain.ErrInvalidPhone without a network call for a malformed number.
	RequestOTP(ctx context.Context, phone string) error

	// ValidateOTP exchanges the OTP for a token and stores the session.
	// Returns domain.ErrIncompleteOTP without a network call unless otp is 6 digits.
	ValidateOTP(ctx context.Context, phone, otp string) (*domain.Session, error)

	// Logout clears the stored session.
	Logout(ctx context.Context) error

	// Status returns the current session, which may be unauthenticated.
	Status(ctx context.Context) domain.Session

	// Watch emits the reloaded session each time the persisted session changes
	// outside this process. Without a notifier the returned channel never fires.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context) (<-chan domain.Session, error)
}
