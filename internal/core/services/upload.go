package services

import (
	"context"
	"time"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdesk-cli/internal/logger"
)

// Ensure UploadService implements the interface.
var _ driving.UploadService = (*UploadService)(nil)

// User-facing messages for upload failures.
const (
	MsgUploadFailed = "Upload failed."
	MsgUploadServer = "Server error during upload."
)

// UploadService submits documents to the remote store.
type UploadService struct {
	api     driven.DocumentAPI
	session *Session
	userID  string
	history driven.UploadHistoryStore
	now     func() time.Time
}

// NewUploadService creates a new upload service. userID is sent as the
// uploader of every document.
func NewUploadService(api driven.DocumentAPI, session *Session, userID string) *UploadService {
	return &UploadService{
		api:     api,
		session: session,
		userID:  userID,
		now:     time.Now,
	}
}

// SetHistoryStore enables recording of successful uploads.
func (s *UploadService) SetHistoryStore(store driven.UploadHistoryStore) {
	s.history = store
}

// Upload validates the form and sends it.
func (s *UploadService) Upload(ctx context.Context, form *domain.UploadForm) error {
	if form == nil {
		return domain.ErrMissingFields
	}
	if err := form.Validate(); err != nil {
		return err
	}
	token := s.session.Token()
	if token == "" {
		return domain.ErrNotAuthenticated
	}

	meta := form.Metadata(s.userID)
	file := form.File()
	logger.Debug("Uploading %s (%s, %d bytes) as %s/%s",
		file.Name, file.MIMEType, file.Size, meta.MajorHead, meta.MinorHead)

	if err := s.api.UploadDocument(ctx, token, meta, file); err != nil {
		return remoteError(err, MsgUploadFailed, MsgUploadServer)
	}

	s.record(ctx, meta, file.Name)
	return nil
}

// record keeps a local history entry. Failures are logged, not returned,
// since the document is already stored remotely.
func (s *UploadService) record(ctx context.Context, meta domain.UploadMetadata, fileName string) {
	if s.history == nil {
		return
	}
	rec := domain.UploadRecord{
		DocumentDate: meta.DocumentDate,
		MajorHead:    meta.MajorHead,
		MinorHead:    meta.MinorHead,
		Tags:         meta.Tags,
		Remarks:      meta.DocumentRemarks,
		FileName:     fileName,
		UploadedAt:   s.now().UTC(),
	}
	if err := s.history.Record(ctx, rec); err != nil {
		logger.Warn("Failed to record upload history: %v", err)
	}
}
