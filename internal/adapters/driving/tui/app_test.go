package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

func newTestPorts(authenticated bool) (*Ports, *MockAuthService) {
	auth := &MockAuthService{updates: make(chan domain.Session, 1)}
	if authenticated {
		auth.session = domain.Session{Token: "tok", Phone: "9876543210"}
	}
	return &Ports{
		Auth:     auth,
		Upload:   &MockUploadService{},
		Tags:     &MockTagService{},
		Search:   &MockSearchService{},
		Actions:  &MockActionService{},
		LoadFile: mockLoadFile,
	}, auth
}

func newTestApp(t *testing.T, authenticated bool) (*App, *MockAuthService) {
	t.Helper()
	ports, auth := newTestPorts(authenticated)
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(100, 40)
	return app, auth
}

func TestNewApp_StartsOnLoginWithoutSession(t *testing.T) {
	app, _ := newTestApp(t, false)

	assert.Equal(t, messages.ViewLogin, app.CurrentView())
}

func TestNewApp_StartsOnMenuWithSession(t *testing.T) {
	app, _ := newTestApp(t, true)

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.Contains(t, app.View(), "9876543210")
}

func TestNewApp_InvalidPorts(t *testing.T) {
	ports, _ := newTestPorts(false)
	ports.Search = nil

	app, err := NewApp(ports)

	require.ErrorIs(t, err, ErrMissingSearchService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := newTestApp(t, false)
	parent, cancel := context.WithCancel(context.Background())

	result := app.WithContext(parent)
	assert.Same(t, app, result)
	assert.NoError(t, app.ctx.Err())

	cancel()
	assert.Error(t, app.ctx.Err())
}

func TestApp_WithTagDebounce(t *testing.T) {
	app, _ := newTestApp(t, false)

	assert.Same(t, app, app.WithTagDebounce(10*time.Millisecond))
}

func TestApp_Init(t *testing.T) {
	app, _ := newTestApp(t, false)

	assert.NotNil(t, app.Init())
}

func TestApp_View_NotReady(t *testing.T) {
	ports, _ := newTestPorts(false)
	app, err := NewApp(ports)
	require.NoError(t, err)

	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_Update_WindowSize(t *testing.T) {
	ports, _ := newTestPorts(false)
	app, _ := NewApp(ports)

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 120, Height: 50})

	assert.Same(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
	assert.Equal(t, 120, app.width)
}

func TestApp_CtrlCQuitsAndCancels(t *testing.T) {
	app, _ := newTestApp(t, true)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
	assert.Error(t, app.ctx.Err())
}

func TestApp_QuitMessage(t *testing.T) {
	app, _ := newTestApp(t, true)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.Error(t, app.ctx.Err())
}

func TestApp_NavigateFromMenu(t *testing.T) {
	app, _ := newTestApp(t, true)

	app.Update(messages.ViewChanged{View: messages.ViewUpload})
	assert.Equal(t, messages.ViewUpload, app.CurrentView())
	assert.Contains(t, app.View(), "Upload Document")

	app.Update(messages.ViewChanged{View: messages.ViewSearch})
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
	assert.Contains(t, app.View(), "Search Documents")
}

func TestApp_RouteGuardBlocksNavigationWithoutSession(t *testing.T) {
	app, _ := newTestApp(t, false)

	app.Update(messages.ViewChanged{View: messages.ViewSearch})

	assert.Equal(t, messages.ViewLogin, app.CurrentView())
}

func TestApp_LoginCompletedOpensMenu(t *testing.T) {
	app, _ := newTestApp(t, false)

	app.Update(messages.LoginCompleted{Session: &domain.Session{Token: "tok", Phone: "9876543210"}})

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.Contains(t, app.View(), "9876543210")
}

func TestApp_LoginFailedStaysOnLogin(t *testing.T) {
	app, _ := newTestApp(t, false)

	app.Update(messages.LoginCompleted{Err: &domain.APIError{Status: 401}})

	assert.Equal(t, messages.ViewLogin, app.CurrentView())
	assert.Contains(t, app.View(), "Invalid OTP")
}

func TestApp_Logout(t *testing.T) {
	app, auth := newTestApp(t, true)

	_, cmd := app.Update(messages.LogoutRequested{})
	require.NotNil(t, cmd)
	msg := cmd()
	_, ok := msg.(messages.LoggedOut)
	require.True(t, ok)
	assert.Equal(t, 1, auth.logoutCall)

	app.Update(msg)
	assert.Equal(t, messages.ViewLogin, app.CurrentView())
	assert.NoError(t, app.Err())
}

func TestApp_LogoutFromMenu(t *testing.T) {
	app, _ := newTestApp(t, true)
	app.Update(tea.KeyMsg{Type: tea.KeyDown})
	app.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	_, cmd = app.Update(cmd())
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewLogin, app.CurrentView())
}

func TestApp_UnauthenticatedUploadReturnsToLogin(t *testing.T) {
	app, _ := newTestApp(t, true)
	app.Update(messages.ViewChanged{View: messages.ViewUpload})

	app.Update(messages.UploadCompleted{Err: fmt.Errorf("upload: %w", domain.ErrNotAuthenticated)})

	assert.Equal(t, messages.ViewLogin, app.CurrentView())
}

func TestApp_UploadErrorStaysOnUpload(t *testing.T) {
	app, _ := newTestApp(t, true)
	app.Update(messages.ViewChanged{View: messages.ViewUpload})

	app.Update(messages.UploadCompleted{Err: &domain.APIError{Status: 500}})

	assert.Equal(t, messages.ViewUpload, app.CurrentView())
	assert.Contains(t, app.View(), "Upload failed.")
}

func TestApp_UnauthenticatedSearchReturnsToLogin(t *testing.T) {
	app, _ := newTestApp(t, true)
	app.Update(messages.ViewChanged{View: messages.ViewSearch})

	app.Update(messages.SearchCompleted{Seq: 0, Err: domain.ErrNotAuthenticated})

	assert.Equal(t, messages.ViewLogin, app.CurrentView())
}

func TestApp_DocumentSelectedOpensDetails(t *testing.T) {
	app, _ := newTestApp(t, true)
	app.Update(messages.ViewChanged{View: messages.ViewSearch})
	doc := domain.DocumentRecord{DocumentID: "doc-7", FileURL: "https://files/doc-7.pdf"}

	app.Update(messages.DocumentSelected{Document: doc})

	assert.Equal(t, messages.ViewDocDetails, app.CurrentView())
	assert.Contains(t, app.View(), "doc-7")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	app.Update(cmd())
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
}

func TestApp_SearchClearsDetails(t *testing.T) {
	app, _ := newTestApp(t, true)
	app.Update(messages.ViewChanged{View: messages.ViewSearch})
	_, search := app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, search)
	app.Update(messages.DocumentSelected{Document: domain.DocumentRecord{DocumentID: "doc-7"}})
	require.Equal(t, messages.ViewDocDetails, app.CurrentView())

	app.Update(search())

	assert.Nil(t, app.detailsView.Document())
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
}

func TestApp_StaleSearchKeepsDetails(t *testing.T) {
	app, _ := newTestApp(t, true)
	app.Update(messages.ViewChanged{View: messages.ViewSearch})
	app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	app.Update(messages.DocumentSelected{Document: domain.DocumentRecord{DocumentID: "doc-7"}})

	app.Update(messages.SearchCompleted{Seq: 99})

	require.NotNil(t, app.detailsView.Document())
	assert.Equal(t, "doc-7", app.detailsView.Document().DocumentID)
	assert.Equal(t, messages.ViewDocDetails, app.CurrentView())
}

func TestApp_QuitCancelsViewRequests(t *testing.T) {
	ports, _ := newTestPorts(true)
	searchSvc := &MockSearchService{}
	ports.Search = searchSvc
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(100, 40)
	app.Update(messages.ViewChanged{View: messages.ViewSearch})
	_, search := app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, search)

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	search()

	require.NotNil(t, searchSvc.lastCtx)
	assert.ErrorIs(t, searchSvc.lastCtx.Err(), context.Canceled)
}

func TestApp_ActionCompletedReachesDetails(t *testing.T) {
	app, _ := newTestApp(t, true)
	app.Update(messages.DocumentSelected{Document: domain.DocumentRecord{DocumentID: "doc-7"}})

	app.Update(messages.ActionCompleted{Action: messages.ActionDownload, Path: "/tmp/doc-7.pdf"})

	assert.Contains(t, app.View(), "Saved to /tmp/doc-7.pdf")
}

func TestApp_SessionWatch(t *testing.T) {
	app, auth := newTestApp(t, true)

	_, cmd := app.Update(messages.SessionWatchStarted{Updates: auth.updates})
	require.NotNil(t, cmd)

	auth.updates <- domain.Session{}
	msg := cmd()
	changed, ok := msg.(messages.SessionChanged)
	require.True(t, ok)
	assert.False(t, changed.Session.Authenticated())

	_, next := app.Update(msg)
	assert.Equal(t, messages.ViewLogin, app.CurrentView())
	assert.NotNil(t, next)
}

func TestApp_SessionChangeToLoggedInLeavesLogin(t *testing.T) {
	app, auth := newTestApp(t, false)
	app.Update(messages.SessionWatchStarted{Updates: auth.updates})

	app.Update(messages.SessionChanged{Session: domain.Session{Token: "tok", Phone: "9000000000"}})

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_SessionChangeWhileLoggedInKeepsView(t *testing.T) {
	app, _ := newTestApp(t, true)
	app.Update(messages.ViewChanged{View: messages.ViewSearch})

	app.Update(messages.SessionChanged{Session: domain.Session{Token: "new", Phone: "9876543210"}})

	assert.Equal(t, messages.ViewSearch, app.CurrentView())
}

func TestApp_SessionWatchError(t *testing.T) {
	app, _ := newTestApp(t, true)
	watchErr := errors.New("watch failed")

	_, cmd := app.Update(messages.SessionWatchStarted{Err: watchErr})

	assert.Nil(t, cmd)
	assert.Equal(t, watchErr, app.Err())
}

func TestApp_WatchSessionCommand(t *testing.T) {
	app, auth := newTestApp(t, true)

	msg := app.watchSession()()

	started, ok := msg.(messages.SessionWatchStarted)
	require.True(t, ok)
	require.NoError(t, started.Err)
	assert.Equal(t, (<-chan domain.Session)(auth.updates), started.Updates)
}

func TestWaitForSession_ClosedChannel(t *testing.T) {
	ch := make(chan domain.Session)
	close(ch)

	assert.Nil(t, waitForSession(ch)())
	assert.Nil(t, waitForSession(nil))
}

func TestApp_ErrorOccurred(t *testing.T) {
	app, _ := newTestApp(t, true)
	err := errors.New("boom")

	app.Update(messages.ErrorOccurred{Err: err})

	assert.Equal(t, err, app.Err())
}
