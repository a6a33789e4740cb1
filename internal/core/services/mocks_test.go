package services

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockDocumentAPI implements driven.DocumentAPI for testing.
// Each call is recorded; behaviour is set per test through the func fields.
type mockDocumentAPI struct {
	mu sync.Mutex

	generateErr error
	token       string
	validateErr error
	tags        []domain.TagSuggestion
	tagsErr     error
	uploadErr   error
	docs        []domain.DocumentRecord
	searchErr   error
	fetchBody   string
	fetchErr    error

	generatedFor []string
	validated    [][2]string
	tagTerms     []string
	tagTokens    []string
	uploads      []mockUpload
	searches     []domain.SearchPayload
	searchTokens []string
	fetched      []string
}

type mockUpload struct {
	token string
	meta  domain.UploadMetadata
	file  *domain.UploadFile
}

var _ driven.DocumentAPI = (*mockDocumentAPI)(nil)

func (m *mockDocumentAPI) GenerateOTP(_ context.Context, mobile string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generatedFor = append(m.generatedFor, mobile)
	return m.generateErr
}

func (m *mockDocumentAPI) ValidateOTP(_ context.Context, mobile, otp string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.validated = append(m.validated, [2]string{mobile, otp})
	if m.validateErr != nil {
		return "", m.validateErr
	}
	return m.token, nil
}

func (m *mockDocumentAPI) DocumentTags(_ context.Context, token, term string) ([]domain.TagSuggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tagTerms = append(m.tagTerms, term)
	m.tagTokens = append(m.tagTokens, token)
	if m.tagsErr != nil {
		return nil, m.tagsErr
	}
	return m.tags, nil
}

func (m *mockDocumentAPI) UploadDocument(
	_ context.Context, token string, meta domain.UploadMetadata, file *domain.UploadFile,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads = append(m.uploads, mockUpload{token: token, meta: meta, file: file})
	return m.uploadErr
}

func (m *mockDocumentAPI) SearchDocuments(
	_ context.Context, token string, payload domain.SearchPayload,
) ([]domain.DocumentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches = append(m.searches, payload)
	m.searchTokens = append(m.searchTokens, token)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.docs, nil
}

func (m *mockDocumentAPI) Fetch(_ context.Context, fileURL string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetched = append(m.fetched, fileURL)
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return io.NopCloser(strings.NewReader(m.fetchBody)), nil
}

// mockSessionStore implements driven.SessionStore with injectable failures.
type mockSessionStore struct {
	session  *domain.Session
	loadErr  error
	saveErr  error
	clearErr error
}

func (m *mockSessionStore) Load(_ context.Context) (*domain.Session, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.session == nil {
		return nil, domain.ErrNotFound
	}
	s := *m.session
	return &s, nil
}

func (m *mockSessionStore) Save(_ context.Context, s domain.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.session = &s
	return nil
}

func (m *mockSessionStore) Clear(_ context.Context) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.session = nil
	return nil
}

// mockHistoryStore implements driven.UploadHistoryStore with injectable failures.
type mockHistoryStore struct {
	records   []domain.UploadRecord
	recordErr error
	listErr   error
	limits    []int
}

func (m *mockHistoryStore) Record(_ context.Context, rec domain.UploadRecord) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *mockHistoryStore) List(_ context.Context, limit int) ([]domain.UploadRecord, error) {
	m.limits = append(m.limits, limit)
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.records, nil
}

// mockDesktop implements driven.Desktop for testing.
type mockDesktop struct {
	opened  []string
	copied  []string
	openErr error
	copyErr error
}

func (m *mockDesktop) Open(_ context.Context, target string) error {
	m.opened = append(m.opened, target)
	return m.openErr
}

func (m *mockDesktop) Copy(_ context.Context, text string) error {
	m.copied = append(m.copied, text)
	return m.copyErr
}
