package services

import (
	"context"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdesk-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// User-facing messages for search failures.
const (
	MsgSearchFailed = "Search failed."
	MsgSearchServer = "Server error during search."
)

// SearchService runs document searches against the remote API.
type SearchService struct {
	api     driven.DocumentAPI
	session *Session
}

// NewSearchService creates a new search service.
func NewSearchService(api driven.DocumentAPI, session *Session) *SearchService {
	return &SearchService{api: api, session: session}
}

// Search returns the documents matching filter.
func (s *SearchService) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.DocumentRecord, error) {
	logger.Section("Search Execution")

	token := s.session.Token()
	if token == "" {
		return nil, domain.ErrNotAuthenticated
	}

	payload := filter.Payload()
	logger.Debug("Filter: major_head=%q from=%q to=%q tags=%d",
		payload.MajorHead, payload.FromDate, payload.ToDate, len(payload.Tags))

	docs, err := s.api.SearchDocuments(ctx, token, payload)
	if err != nil {
		return nil, remoteError(err, MsgSearchFailed, MsgSearchServer)
	}
	if docs == nil {
		docs = []domain.DocumentRecord{}
	}
	logger.Debug("Results: %d documents", len(docs))
	return docs, nil
}
