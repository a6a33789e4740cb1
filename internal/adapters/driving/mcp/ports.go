package mcp

import (
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server exposes.
type Ports struct {
	// Search runs document searches against the remote API.
	Search driving.SearchService

	// Tags suggests existing tags. Optional.
	Tags driving.TagService

	// History lists uploads made from this machine. Optional.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
