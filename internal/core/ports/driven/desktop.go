package driven

import "context"

// Desktop hands work to the user's desktop environment.
type Desktop interface {
	// Open opens a URL or path with the system's default handler.
	Open(ctx context.Context, target string) error

	// Copy places text on the system clipboard.
	Copy(ctx context.Context, text string) error
}
