package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdesk-cli/internal/logger"
)

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

// User-facing messages for login failures.
const (
	MsgGenerateOTPFailed = "Failed to generate OTP"
	MsgGenerateOTPServer = "Server error while generating OTP"
	MsgInvalidOTP        = "Invalid OTP"
	MsgValidateOTPServer = "Server error while validating OTP"
)

// AuthService runs the phone and OTP login flow.
type AuthService struct {
	api      driven.DocumentAPI
	session  *Session
	notifier driven.SessionNotifier
	now      func() time.Time
}

// NewAuthService creates a new auth service.
func NewAuthService(api driven.DocumentAPI, session *Session) *AuthService {
	return &AuthService{
		api:     api,
		session: session,
		now:     time.Now,
	}
}

// SetNotifier enables Watch.
func (s *AuthService) SetNotifier(notifier driven.SessionNotifier) {
	s.notifier = notifier
}

// RequestOTP validates the phone number and asks the server to send an OTP.
func (s *AuthService) RequestOTP(ctx context.Context, phone string) error {
	if err := domain.ValidatePhone(phone); err != nil {
		return err
	}

	logger.Debug("Requesting OTP")
	if err := s.api.GenerateOTP(ctx, phone); err != nil {
		return remoteError(err, MsgGenerateOTPFailed, MsgGenerateOTPServer)
	}
	return nil
}

// ValidateOTP exchanges the OTP for a token and stores the session.
func (s *AuthService) ValidateOTP(ctx context.Context, phone, otp string) (*domain.Session, error) {
	if err := domain.ValidateOTP(otp); err != nil {
		return nil, err
	}

	logger.Debug("Validating OTP")
	token, err := s.api.ValidateOTP(ctx, phone, otp)
	if err != nil {
		return nil, remoteError(err, MsgInvalidOTP, MsgValidateOTPServer)
	}

	session := domain.Session{
		Token:     token,
		Phone:     phone,
		CreatedAt: s.now().UTC(),
	}
	if err := s.session.Set(ctx, session); err != nil {
		return nil, err
	}
	logger.Info("Logged in as %s", phone)
	return &session, nil
}

// Logout clears the stored session.
func (s *AuthService) Logout(ctx context.Context) error {
	logger.Debug("Logging out")
	return s.session.Clear(ctx)
}

// Status returns the current session.
func (s *AuthService) Status(_ context.Context) domain.Session {
	return s.session.Current()
}

// Watch reloads the session on every external change and emits the result.
// Only the latest session is buffered; a slow reader skips intermediate states.
func (s *AuthService) Watch(ctx context.Context) (<-chan domain.Session, error) {
	out := make(chan domain.Session, 1)
	if s.notifier == nil {
		go func() {
			<-ctx.Done()
			close(out)
		}()
		return out, nil
	}

	events, err := s.notifier.Watch(ctx)
	if err != nil {
		return nil, fmt.Errorf("watch session: %w", err)
	}

	go func() {
		defer close(out)
		for range events {
			if err := s.session.Reload(ctx); err != nil {
				logger.Warn("Failed to reload session: %v", err)
				continue
			}
			current := s.session.Current()
			select {
			case <-out:
			default:
			}
			select {
			case out <- current:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
