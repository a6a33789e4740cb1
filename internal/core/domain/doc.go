// Package domain defines the core business entities for docdesk.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Session: The authentication token issued after OTP validation
//   - OTPForm: Phone and one-time password entry state
//   - UploadForm: Document metadata and file collected before upload
//   - SearchFilter: Criteria sent to the remote search endpoint
//   - DocumentRecord: A document entry returned by the remote API
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
