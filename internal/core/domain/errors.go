package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Validation Errors.
	// These are raised before any network call and are recoverable by re-entry.

	// ErrInvalidPhone indicates the phone number is not exactly 10 digits.
	ErrInvalidPhone = errors.New("enter a valid 10-digit phone number")

	// ErrIncompleteOTP indicates fewer than 6 OTP digits were entered.
	ErrIncompleteOTP = errors.New("enter the full 6-digit OTP")

	// ErrMissingFields indicates the upload form lacks a file, minor head or date.
	ErrMissingFields = errors.New("please fill all required fields")

	// ErrUnsupportedFileType indicates a file that is neither a PDF nor an image.
	ErrUnsupportedFileType = errors.New("only PDF and image files are allowed")

	// Authentication Errors.

	// ErrNotAuthenticated indicates an authorised call was attempted without a session.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrMissingToken indicates the validation response carried no token.
	ErrMissingToken = errors.New("no token in response")
)

// APIError is a remote failure: a non-success HTTP response or a transport error.
// Both are surfaced to the user as the same inline message.
type APIError struct {
	// Status is the HTTP status code, or 0 for transport failures.
	Status int

	// Message is the server-provided message, if any.
	Message string

	// Err is the underlying transport or decode error, if any.
	Err error
}

// Error implements error.
func (e *APIError) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return fmt.Sprintf("api error: %v", e.Err)
	default:
		return fmt.Sprintf("api error (status %d)", e.Status)
	}
}

// Unwrap returns the underlying error.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Transport reports whether the failure happened before an HTTP response was received.
func (e *APIError) Transport() bool {
	return e.Status == 0
}

// RemoteMessage returns the user-facing text for err.
// Validation errors render their own text; remote errors render the server message
// when present and fallback otherwise.
func RemoteMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if msg := strings.TrimSpace(apiErr.Message); msg != "" {
			return msg
		}
		return fallback
	}
	switch {
	case errors.Is(err, ErrInvalidPhone):
		return Capitalise(ErrInvalidPhone.Error())
	case errors.Is(err, ErrIncompleteOTP):
		return Capitalise(ErrIncompleteOTP.Error())
	case errors.Is(err, ErrMissingFields):
		return Capitalise(ErrMissingFields.Error())
	case errors.Is(err, ErrUnsupportedFileType):
		return Capitalise(ErrUnsupportedFileType.Error())
	case errors.Is(err, ErrNotAuthenticated):
		return "Not authenticated. Please log in."
	}
	return fallback
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidPhone) ||
		errors.Is(err, ErrIncompleteOTP) ||
		errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrUnsupportedFileType)
}

// Capitalise upper-cases the first letter of s and ends it with a full stop.
func Capitalise(s string) string {
	if s == "" {
		return s
	}
	s = strings.ToUpper(s[:1]) + s[1:]
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}
