package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdesk-cli/internal/logger"
)

// Ensure TagService implements the interface.
var _ driving.TagService = (*TagService)(nil)

// TagService provides tag suggestions.
type TagService struct {
	api     driven.DocumentAPI
	session *Session
}

// NewTagService creates a new tag service.
func NewTagService(api driven.DocumentAPI, session *Session) *TagService {
	return &TagService{api: api, session: session}
}

// Suggest returns suggestions for term. Failures yield an empty list.
func (s *TagService) Suggest(ctx context.Context, term string) ([]domain.TagSuggestion, error) {
	if strings.TrimSpace(term) == "" {
		return []domain.TagSuggestion{}, nil
	}

	suggestions, err := s.api.DocumentTags(ctx, s.session.Token(), term)
	if err != nil {
		logger.Warn("Tag suggestions for %q failed: %v", term, err)
		return []domain.TagSuggestion{}, nil
	}
	if suggestions == nil {
		suggestions = []domain.TagSuggestion{}
	}
	logger.Debug("Tag suggestions for %q: %d", term, len(suggestions))
	return suggestions, nil
}
