// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentAPI: The remote document management API
//   - SessionStore: Session token persistence
//   - ConfigStore: Application configuration
//   - Desktop: Opens URLs with the system handler and copies to the clipboard
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - UploadHistoryStore: Local record of uploads. Without it, history is empty.
//   - SessionNotifier: Cross-process session change events. Without it, a
//     logout elsewhere is only noticed on the next authorised call.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
