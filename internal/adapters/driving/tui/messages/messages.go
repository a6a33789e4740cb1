// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewLogin is the phone and OTP login screen.
	ViewLogin ViewType = iota
	// ViewMenu is the main navigation menu.
	ViewMenu
	// ViewUpload is the document upload form.
	ViewUpload
	// ViewSearch is the filter form and results list.
	ViewSearch
	// ViewDocDetails shows every field of one search result.
	ViewDocDetails
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewMenu:
		return "menu"
	case ViewUpload:
		return "upload"
	case ViewSearch:
		return "search"
	case ViewDocDetails:
		return "doc_details"
	default:
		return "unknown"
	}
}

// RequiresSession reports whether the view sits behind the route guard.
func (v ViewType) RequiresSession() bool {
	return v != ViewLogin
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// OTPRequested carries the result of asking the server to send an OTP.
type OTPRequested struct {
	Phone string
	Err   error
}

// LoginCompleted carries the result of OTP validation.
type LoginCompleted struct {
	Session *domain.Session
	Err     error
}

// LogoutRequested asks the app to clear the session.
type LogoutRequested struct{}

// LoggedOut signals the session was cleared.
type LoggedOut struct {
	Err error
}

// SessionWatchStarted carries the channel of external session changes.
type SessionWatchStarted struct {
	Updates <-chan domain.Session
	Err     error
}

// SessionChanged signals the persisted session changed outside this process.
type SessionChanged struct {
	Session domain.Session
}

// UploadCompleted carries the result of an upload.
type UploadCompleted struct {
	FileName string
	Err      error
}

// SearchCompleted carries search results back to the model.
// Seq identifies the request so stale responses can be dropped.
type SearchCompleted struct {
	Seq     int
	Results []domain.DocumentRecord
	Err     error
}

// DocumentSelected is sent when a search result is opened.
type DocumentSelected struct {
	Document domain.DocumentRecord
}

// Action identifies an operation on a document's file.
type Action string

// Document actions offered by the details view.
const (
	ActionView     Action = "view"
	ActionDownload Action = "download"
	ActionCopyLink Action = "copy_link"
)

// ActionCompleted carries the result of a document action.
type ActionCompleted struct {
	Action Action
	Path   string
	Err    error
}
