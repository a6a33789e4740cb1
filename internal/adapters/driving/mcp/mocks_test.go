package mcp

import (
	"context"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results    []domain.DocumentRecord
	err        error
	lastFilter domain.SearchFilter
	calls      int
}

func (m *mockSearchService) Search(_ context.Context, filter domain.SearchFilter) ([]domain.DocumentRecord, error) {
	m.calls++
	m.lastFilter = filter
	return m.results, m.err
}

// mockTagService is a mock implementation of driving.TagService.
type mockTagService struct {
	suggestions []domain.TagSuggestion
	err         error
	lastTerm    string
}

func (m *mockTagService) Suggest(_ context.Context, term string) ([]domain.TagSuggestion, error) {
	m.lastTerm = term
	return m.suggestions, m.err
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	records   []domain.UploadRecord
	err       error
	lastLimit int
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]domain.UploadRecord, error) {
	m.lastLimit = limit
	return m.records, m.err
}
