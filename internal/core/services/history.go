package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService lists locally recorded uploads.
type HistoryService struct {
	store driven.UploadHistoryStore
}

// NewHistoryService creates a history service. store may be nil.
func NewHistoryService(store driven.UploadHistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Recent returns up to limit uploads, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.UploadRecord, error) {
	if s.store == nil {
		return []domain.UploadRecord{}, nil
	}
	records, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list upload history: %w", err)
	}
	return records, nil
}
