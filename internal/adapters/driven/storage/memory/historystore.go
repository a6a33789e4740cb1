package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
)

// Ensure UploadHistoryStore implements the interface.
var _ driven.UploadHistoryStore = (*UploadHistoryStore)(nil)

// UploadHistoryStore is an in-memory upload history.
type UploadHistoryStore struct {
	mu      sync.RWMutex
	records []domain.UploadRecord
}

// NewUploadHistoryStore creates an empty history.
func NewUploadHistoryStore() *UploadHistoryStore {
	return &UploadHistoryStore{}
}

// Record appends an upload, assigning an ID when empty.
func (s *UploadHistoryStore) Record(_ context.Context, record domain.UploadRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.Tags = append([]string(nil), record.Tags...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// List returns up to limit records, newest first.
func (s *UploadHistoryStore) List(_ context.Context, limit int) ([]domain.UploadRecord, error) {
	s.mu.RLock()
	out := make([]domain.UploadRecord, len(s.records))
	copy(out, s.records)
	s.mu.RUnlock()

	// Latest append first; equal timestamps keep that order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
