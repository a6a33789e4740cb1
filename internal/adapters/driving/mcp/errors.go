// Package mcp exposes docdesk search and tag suggestion over the
// Model Context Protocol so assistants can query the document archive.
package mcp

import "errors"

var (
	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("mcp: search service is required")

	// ErrMissingTagService is returned by suggest_tags when no tag service is wired.
	ErrMissingTagService = errors.New("mcp: tag service is not configured")
)
