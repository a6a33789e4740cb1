package driving

import "context"

// DocumentActionService provides actions on a search result's file.
// This is used by TUI, CLI, and MCP adapters.
type DocumentActionService interface {
	// View opens the file URL with the system handler.
	View(ctx context.Context, fileURL string) error

	// CopyLink places the file URL on the system clipboard.
	CopyLink(ctx context.Context, fileURL string) error

	// Download writes the file into dir and returns the written path.
	// An empty dir uses the configured download directory.
	Download(ctx context.Context, fileURL, dir string) (string, error)
}
