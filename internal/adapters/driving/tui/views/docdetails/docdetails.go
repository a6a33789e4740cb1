// Package docdetails provides the document details view component for the TUI.
package docdetails

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
)

// View shows every field of one search result and offers file actions.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar

	actions driving.DocumentActionService
	ctx     context.Context

	document *domain.DocumentRecord
	busy     bool
	width    int
	height   int
	ready    bool
}

// NewView creates a new document details view. A nil action service disables the actions.
func NewView(s *styles.Styles, km *keymap.KeyMap, actions driving.DocumentActionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	bar := status.NewBar(s, km)
	bar.SetHints(km.DetailsHelp())

	return &View{
		styles:    s,
		keymap:    km,
		statusbar: bar,
		actions:   actions,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the actions.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetDocument sets the document to display.
func (v *View) SetDocument(doc domain.DocumentRecord) {
	v.document = &doc
	v.busy = false
	v.statusbar.Clear()
}

// Clear removes the displayed document.
func (v *View) Clear() {
	v.document = nil
	v.busy = false
	v.statusbar.Clear()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the document details view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ActionCompleted:
		v.busy = false
		v.applyResult(msg)
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	if keymap.Matches(key, v.keymap.Back) {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSearch}
		}
	}
	if v.busy || v.document == nil {
		return v, nil
	}

	switch {
	case keymap.Matches(key, v.keymap.View):
		return v, v.run(messages.ActionView, "Opening...")
	case keymap.Matches(key, v.keymap.Download):
		return v, v.run(messages.ActionDownload, "Downloading...")
	case keymap.Matches(key, v.keymap.CopyLink):
		return v, v.run(messages.ActionCopyLink, "Copying link...")
	}
	return v, nil
}

func (v *View) run(action messages.Action, progress string) tea.Cmd {
	if v.actions == nil {
		v.statusbar.Fail("Document actions are unavailable.")
		return nil
	}
	v.busy = true
	v.statusbar.Busy(progress)

	ctx, svc, url := v.ctx, v.actions, v.document.FileURL
	return func() tea.Msg {
		result := messages.ActionCompleted{Action: action}
		switch action {
		case messages.ActionView:
			result.Err = svc.View(ctx, url)
		case messages.ActionDownload:
			result.Path, result.Err = svc.Download(ctx, url, "")
		case messages.ActionCopyLink:
			result.Err = svc.CopyLink(ctx, url)
		}
		return result
	}
}

func (v *View) applyResult(msg messages.ActionCompleted) {
	if msg.Err != nil {
		v.statusbar.Fail(domain.RemoteMessage(msg.Err, msg.Err.Error()))
		return
	}
	switch msg.Action {
	case messages.ActionView:
		v.statusbar.Succeed("Opened in the default application.")
	case messages.ActionDownload:
		v.statusbar.Succeed("Saved to " + msg.Path)
	case messages.ActionCopyLink:
		v.statusbar.Succeed("Link copied to clipboard.")
	}
}

// rows lists the labelled fields of the document.
func (v *View) rows() [][2]string {
	d := v.document
	return [][2]string{
		{"Document ID", d.DocumentID},
		{"Category", d.MajorHead},
		{"Name/Dept", d.MinorHead},
		{"Document date", d.DocumentDay()},
		{"Uploaded by", d.UploadedBy},
		{"Uploaded at", d.UploadTime},
		{"Remarks", d.DocumentRemarks},
		{"File", d.FileURL},
	}
}

// View renders the document details view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Document Details"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", minInt(v.width-4, 60)))
	b.WriteString("\n\n")

	if v.document == nil {
		b.WriteString(v.styles.Muted.Render("No document selected"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] back"))
		return b.String()
	}

	for _, row := range v.rows() {
		value := row[1]
		if value == "" {
			value = "-"
		}
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("%-14s", row[0]+":")))
		b.WriteString(v.styles.Normal.Render(" " + value))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	v.statusbar.SetWidth(v.width)
	b.WriteString(v.statusbar.View())

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Document returns the displayed document, or nil.
func (v *View) Document() *domain.DocumentRecord {
	return v.document
}

// Busy reports whether an action is in flight.
func (v *View) Busy() bool {
	return v.busy
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
