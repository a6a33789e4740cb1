package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/views/docdetails"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/views/login"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/views/upload"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is cancelled when the app quits, aborting in-flight requests.
	ctx    context.Context
	cancel context.CancelFunc

	styles *styles.Styles

	loginView   *login.View
	menuView    *menu.View
	uploadView  *upload.View
	searchView  *search.View
	detailsView *docdetails.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// updates delivers external session changes once the watch has started.
	updates <-chan domain.Session

	// err holds the last error that did not belong to a view.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// It opens on the menu when a session exists and on the login view otherwise.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		ports:       ports,
		ctx:         ctx,
		cancel:      cancel,
		styles:      s,
		loginView:   login.NewView(s, km, ports.Auth),
		menuView:    menu.NewView(s),
		uploadView:  upload.NewView(s, km, ports.Upload, ports.Tags, ports.LoadFile),
		searchView:  search.NewView(s, km, ports.Search, ports.Tags),
		detailsView: docdetails.NewView(s, km, ports.Actions),
		currentView: messages.ViewLogin,
	}
	a.propagateContext()

	if session := ports.Auth.Status(ctx); session.Authenticated() {
		a.menuView.SetUser(session.Phone)
		a.currentView = messages.ViewMenu
	}
	return a, nil
}

// WithContext sets the parent context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.cancel()
	a.ctx, a.cancel = context.WithCancel(ctx)
	a.propagateContext()
	return a
}

// propagateContext hands the app context to every view that calls a service.
func (a *App) propagateContext() {
	a.loginView.WithContext(a.ctx)
	a.uploadView.WithContext(a.ctx)
	a.searchView.WithContext(a.ctx)
	a.detailsView.WithContext(a.ctx)
}

// WithTagDebounce sets the delay between typing a tag and querying suggestions.
func (a *App) WithTagDebounce(d time.Duration) *App {
	a.uploadView.SetTagDebounce(d)
	a.searchView.SetTagDebounce(d)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("docdesk"),
		a.watchSession(),
		a.loginView.Init(),
	)
}

// watchSession subscribes to session changes made by other processes.
func (a *App) watchSession() tea.Cmd {
	ctx, auth := a.ctx, a.ports.Auth
	return func() tea.Msg {
		updates, err := auth.Watch(ctx)
		return messages.SessionWatchStarted{Updates: updates, Err: err}
	}
}

// waitForSession blocks until the next session change.
func waitForSession(updates <-chan domain.Session) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		session, ok := <-updates
		if !ok {
			return nil
		}
		return messages.SessionChanged{Session: session}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, a.quit()
		}
		return a, a.updateCurrent(msg)

	case messages.Quit:
		return a, a.quit()

	case messages.ViewChanged:
		return a, a.navigate(msg.View)

	case messages.SessionWatchStarted:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.updates = msg.Updates
		return a, waitForSession(a.updates)

	case messages.SessionChanged:
		next := waitForSession(a.updates)
		session := msg.Session
		switch {
		case !session.Authenticated() && a.currentView.RequiresSession():
			a.toLogin()
		case session.Authenticated() && a.currentView == messages.ViewLogin:
			a.toMenu(session.Phone)
		}
		return a, next

	case messages.OTPRequested:
		a.loginView, cmd = a.loginView.Update(msg)
		return a, cmd

	case messages.LoginCompleted:
		a.loginView, cmd = a.loginView.Update(msg)
		if msg.Err == nil && msg.Session != nil {
			a.toMenu(msg.Session.Phone)
		}
		return a, cmd

	case messages.LogoutRequested:
		ctx, auth := a.ctx, a.ports.Auth
		return a, func() tea.Msg {
			return messages.LoggedOut{Err: auth.Logout(ctx)}
		}

	case messages.LoggedOut:
		a.err = msg.Err
		a.toLogin()
		return a, nil

	case messages.UploadCompleted:
		a.uploadView, cmd = a.uploadView.Update(msg)
		a.guard(msg.Err)
		return a, cmd

	case messages.SearchCompleted:
		if msg.Seq == a.searchView.Seq() {
			a.detailsView.Clear()
			if a.currentView == messages.ViewDocDetails {
				a.currentView = messages.ViewSearch
			}
		}
		a.searchView, cmd = a.searchView.Update(msg)
		a.guard(msg.Err)
		return a, cmd

	case messages.DocumentSelected:
		a.detailsView.SetDocument(msg.Document)
		a.currentView = messages.ViewDocDetails
		return a, nil

	case messages.ActionCompleted:
		a.detailsView, cmd = a.detailsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
	}

	// Forward other messages to active view
	return a, a.updateCurrent(msg)
}

// updateCurrent forwards msg to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewLogin:
		a.loginView, cmd = a.loginView.Update(msg)
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewUpload:
		a.uploadView, cmd = a.uploadView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewDocDetails:
		a.detailsView, cmd = a.detailsView.Update(msg)
	}
	return cmd
}

// navigate switches views, sending guarded views to login without a session.
func (a *App) navigate(view messages.ViewType) tea.Cmd {
	if view.RequiresSession() {
		if session := a.ports.Auth.Status(a.ctx); !session.Authenticated() {
			a.toLogin()
			return a.loginView.Init()
		}
	}

	a.currentView = view
	switch view {
	case messages.ViewLogin:
		a.loginView.Reset()
		return a.loginView.Init()
	case messages.ViewUpload:
		return a.uploadView.Init()
	case messages.ViewMenu, messages.ViewSearch, messages.ViewDocDetails:
	}
	return nil
}

// guard returns to login when a request failed for lack of a session.
func (a *App) guard(err error) {
	if errors.Is(err, domain.ErrNotAuthenticated) {
		a.toLogin()
	}
}

func (a *App) toLogin() {
	if a.currentView == messages.ViewLogin {
		return
	}
	a.loginView.Reset()
	a.detailsView.Clear()
	a.menuView.SetUser("")
	a.currentView = messages.ViewLogin
}

func (a *App) toMenu(user string) {
	a.menuView.SetUser(user)
	a.loginView.Reset()
	a.currentView = messages.ViewMenu
}

func (a *App) quit() tea.Cmd {
	a.cancel()
	return tea.Quit
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewLogin:
		return a.loginView.View()
	case messages.ViewUpload:
		return a.uploadView.View()
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewDocDetails:
		return a.detailsView.View()
	case messages.ViewMenu:
	}
	return a.menuView.View()
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	defer a.cancel()
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && a.ctx.Err() != nil {
		return nil
	}
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.loginView.SetDimensions(width, height)
	a.menuView.SetDimensions(width, height)
	a.uploadView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.detailsView.SetDimensions(width, height)
}
