package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// mockAuthService is a mock implementation of driving.AuthService.
type mockAuthService struct {
	mu          sync.Mutex
	session     domain.Session
	requestErr  error
	validateErr error
	logoutErr   error
	requested   []string
	validated   []string
	loggedOut   bool
}

func (m *mockAuthService) RequestOTP(_ context.Context, phone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requested = append(m.requested, phone)
	if m.requestErr != nil {
		return m.requestErr
	}
	return domain.ValidatePhone(phone)
}

func (m *mockAuthService) ValidateOTP(_ context.Context, phone, otp string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.validated = append(m.validated, otp)
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	if err := domain.ValidateOTP(otp); err != nil {
		return nil, err
	}
	m.session = domain.Session{Token: "tok-" + otp, Phone: phone}
	s := m.session
	return &s, nil
}

func (m *mockAuthService) Logout(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.logoutErr != nil {
		return m.logoutErr
	}
	m.session = domain.Session{}
	m.loggedOut = true
	return nil
}

func (m *mockAuthService) Status(_ context.Context) domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

func (m *mockAuthService) Watch(_ context.Context) (<-chan domain.Session, error) {
	return nil, nil
}

// mockUploadService is a mock implementation of driving.UploadService.
type mockUploadService struct {
	err  error
	last *domain.UploadForm
}

func (m *mockUploadService) Upload(_ context.Context, form *domain.UploadForm) error {
	m.last = form
	if m.err != nil {
		return m.err
	}
	return form.Validate()
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

// mockActionService is a mock implementation of driving.DocumentActionService.
type mockActionService struct {
	err     error
	viewed  string
	copied  string
	fetched string
	dir     string
}

func (m *mockActionService) View(_ context.Context, fileURL string) error {
	m.viewed = fileURL
	return m.err
}

func (m *mockActionService) CopyLink(_ context.Context, fileURL string) error {
	m.copied = fileURL
	return m.err
}

func (m *mockActionService) Download(_ context.Context, fileURL, dir string) (string, error) {
	m.fetched = fileURL
	m.dir = dir
	if m.err != nil {
		return "", m.err
	}
	if dir == "" {
		dir = "."
	}
	return dir + "/" + fileURL[strings.LastIndex(fileURL, "/")+1:], nil
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.AppSettings
	getErr   error
	setErr   error
	set      map[string]string
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.set == nil {
		m.set = make(map[string]string)
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"api.base_url", "api.timeout_seconds", "user.id"}
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
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

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	auth     *mockAuthService
	upload   *mockUploadService
	tags     *mockTagService
	search   *mockSearchService
	actions  *mockActionService
	settings *mockSettingsService
	history  *mockHistoryService
	loaded   []string
	loadErr  error
}

func (ts *testServices) loadFile(path string) (*domain.UploadFile, error) {
	ts.loaded = append(ts.loaded, path)
	if ts.loadErr != nil {
		return nil, ts.loadErr
	}
	mime := "application/pdf"
	if strings.HasSuffix(path, ".txt") {
		mime = "text/plain"
	}
	return &domain.UploadFile{
		Name:     path[strings.LastIndex(path, "/")+1:],
		MIMEType: mime,
		Size:     4,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("data")), nil
		},
	}, nil
}

// setupTestServices installs logged-in mocks and resets command flags.
// The returned function restores an empty service set.
func setupTestServices() func() {
	ts := newTestServices()
	installTestServices(ts)
	return func() { SetServices(nil) }
}

func newTestServices() *testServices {
	return &testServices{
		auth:     &mockAuthService{session: domain.Session{Token: "tok", Phone: "9876543210"}},
		upload:   &mockUploadService{},
		tags:     &mockTagService{},
		search:   &mockSearchService{},
		actions:  &mockActionService{},
		settings: &mockSettingsService{settings: domain.DefaultAppSettings()},
		history:  &mockHistoryService{},
	}
}

func installTestServices(ts *testServices) {
	resetFlags()
	SetServices(&Services{
		Auth:     ts.auth,
		Upload:   ts.upload,
		Tags:     ts.tags,
		Search:   ts.search,
		Actions:  ts.actions,
		Settings: ts.settings,
		History:  ts.history,
		LoadFile: ts.loadFile,
	})
}

func resetFlags() {
	loginPhone, loginOTP, loginRequestOnly = "", "", false
	uploadDate, uploadCategory, uploadMinor, uploadRemarks = "", string(domain.MajorHeadPersonal), "", ""
	uploadTags = nil
	searchCategory, searchFrom, searchTo, searchJSON = "", "", "", false
	searchTags = nil
	downloadDir = ""
	historyLimit = 20
	globalOpts = Options{}
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "docdesk", rootCmd.Use)
	assert.Contains(t, rootCmd.Long, "one-time password")
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"config-dir", "api-url", "verbose", "log-file"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{
		"login", "logout", "status", "upload", "search", "tags",
		"view", "download", "copy-link", "history", "settings", "tui", "mcp", "version",
	} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestInitializer_WiresServices(t *testing.T) {
	ts := newTestServices()
	resetFlags()
	SetServices(nil)
	closed := false
	var gotOpts Options
	SetInitializer(func(_ context.Context, opts Options) (*Services, func() error, error) {
		gotOpts = opts
		return &Services{Auth: ts.auth}, func() error { closed = true; return nil }, nil
	})
	defer func() {
		SetInitializer(nil)
		SetServices(nil)
	}()

	out, err := execute(t, "", "status", "--api-url", "http://localhost:9999")

	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as 9876543210")
	assert.Equal(t, "http://localhost:9999", gotOpts.APIURL)
	assert.True(t, closed)
}

func TestInitializer_Error(t *testing.T) {
	resetFlags()
	SetServices(nil)
	SetInitializer(func(context.Context, Options) (*Services, func() error, error) {
		return nil, nil, errors.New("cannot open config")
	})
	defer SetInitializer(nil)

	_, err := execute(t, "", "status")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open config")
}

func TestInitializer_SkippedForVersion(t *testing.T) {
	resetFlags()
	called := false
	SetInitializer(func(context.Context, Options) (*Services, func() error, error) {
		called = true
		return &Services{}, nil, nil
	})
	defer SetInitializer(nil)

	_, err := execute(t, "", "version")

	require.NoError(t, err)
	assert.False(t, called)
}

func TestChainClosers(t *testing.T) {
	assert.Nil(t, chainClosers(nil))

	var order []int
	first := errors.New("first")
	fn := chainClosers([]func() error{
		func() error { order = append(order, 1); return first },
		func() error { order = append(order, 2); return errors.New("second") },
	})

	assert.ErrorIs(t, fn(), first)
	assert.Equal(t, []int{1, 2}, order)
}

func TestRequireLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("no auth service", func(t *testing.T) {
		SetServices(nil)
		assert.Error(t, requireLogin(ctx))
	})

	t.Run("not logged in", func(t *testing.T) {
		SetServices(&Services{Auth: &mockAuthService{}})
		defer SetServices(nil)
		err := requireLogin(ctx)
		assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
		assert.Contains(t, err.Error(), "docdesk login")
	})

	t.Run("logged in", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()
		assert.NoError(t, requireLogin(ctx))
	})
}

func TestPresentError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"api message", &domain.APIError{Status: 400, Message: "Bad phone"}, "Bad phone"},
		{"api without message", &domain.APIError{Status: 500}, "fallback"},
		{"validation", domain.ErrInvalidPhone, "Enter a valid 10-digit phone number."},
		{"not authenticated", domain.ErrNotAuthenticated, errNotLoggedIn.Error()},
		{"other", errors.New("disk full"), "disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := presentError(tt.err, "fallback")
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}

	assert.NoError(t, presentError(nil, "fallback"))
	assert.ErrorIs(t, presentError(context.Canceled, "x"), context.Canceled)
}

func TestCommands_WithoutServices(t *testing.T) {
	resetFlags()
	SetServices(nil)

	for _, args := range [][]string{
		{"login"}, {"logout"}, {"status"}, {"upload", "a.pdf"}, {"search"}, {"tags", "in"},
		{"view", "u"}, {"download", "u"}, {"copy-link", "u"}, {"history"}, {"settings"},
	} {
		t.Run(args[0], func(t *testing.T) {
			_, err := execute(t, "", args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "not configured")
		})
	}
}

func TestSession_CreatedAtDisplayed(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	authService.(*mockAuthService).session.CreatedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	out, err := execute(t, "", "status")

	require.NoError(t, err)
	assert.Contains(t, out, "Since:")
}
