// Package upload provides the document upload form view for the TUI.
package upload

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/components/tags"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
)

// DateLayout is the format of the date field.
const DateLayout = "2006-01-02"

const fallbackUploadFailed = "Upload failed."

var errNoFileLoader = errors.New("no file loader configured")

// FileLoader reads a file from disk for upload.
type FileLoader func(path string) (*domain.UploadFile, error)

// field identifies a form row in focus order.
type field int

const (
	fieldDate field = iota
	fieldCategory
	fieldMinor
	fieldTags
	fieldRemarks
	fieldFile
	fieldCount
)

// View is the upload form.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar

	upload   driving.UploadService
	loadFile FileLoader
	ctx      context.Context
	now      func() time.Time

	form    *domain.UploadForm
	date    *input.Field
	tags    *tags.Autocomplete
	remarks *input.Field
	file    *input.Field
	focus   field

	busy   bool
	width  int
	height int
	ready  bool
}

// NewView creates an upload view. A nil tag service disables suggestions.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	uploadService driving.UploadService,
	tagService driving.TagService,
	loadFile FileLoader,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:    s,
		keymap:    km,
		statusbar: status.NewBar(s, km),
		upload:    uploadService,
		loadFile:  loadFile,
		ctx:       context.Background(),
		now:       time.Now,
		date:      input.NewField(s, "Date", "YYYY-MM-DD", 10),
		remarks:   input.NewField(s, "Remarks", "optional", 0),
		file:      input.NewField(s, "File", "path to a PDF or image", 0),
		width:     80,
		height:    24,
	}
	v.tags = tags.New(v.ctx, s, tagService, nil)
	v.Reset()
	return v
}

// WithContext sets the context for remote calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	v.tags.WithContext(ctx)
	return v
}

// SetTagDebounce changes the suggestion delay.
func (v *View) SetTagDebounce(d time.Duration) {
	v.tags.SetDebounce(d)
}

// Reset starts a fresh form dated today.
func (v *View) Reset() {
	now := v.now()
	v.form = domain.NewUploadForm(now)
	v.date.SetValue(now.Format(DateLayout))
	v.remarks.Reset()
	v.file.Reset()
	v.tags.SetTarget(v.form)
	v.tags.Reset()
	v.busy = false
	v.setFocus(fieldDate)
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.date.Init()
}

// Update handles messages for the upload view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.UploadCompleted:
		v.busy = false
		if msg.Err != nil {
			v.form.Error = domain.RemoteMessage(msg.Err, fallbackUploadFailed)
			v.statusbar.Fail(v.form.Error)
			return v, nil
		}
		v.Reset()
		v.statusbar.Succeed(fmt.Sprintf("Uploaded %s", msg.FileName))
		return v, nil

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		return v.handleKeyMsg(msg)
	}

	// Timer and query messages belong to the tag component.
	var cmd tea.Cmd
	v.tags, cmd = v.tags.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Submit):
		return v, v.submit()
	case keymap.Matches(key, v.keymap.NextField):
		return v, v.setFocus((v.focus + 1) % fieldCount)
	case keymap.Matches(key, v.keymap.PrevField):
		return v, v.setFocus((v.focus + fieldCount - 1) % fieldCount)
	case keymap.Matches(key, v.keymap.Back):
		if v.focus == fieldTags && v.tags.Open() {
			v.tags, _ = v.tags.Update(msg)
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	var cmd tea.Cmd
	switch v.focus {
	case fieldCategory:
		if keymap.Matches(key, v.keymap.Toggle) {
			v.toggleCategory()
		}
	case fieldMinor:
		if keymap.Matches(key, v.keymap.Toggle) {
			v.cycleMinor(key == "left")
		}
	case fieldTags:
		v.tags, cmd = v.tags.Update(msg)
	case fieldDate:
		v.date, cmd = v.date.Update(msg)
	case fieldRemarks:
		if keymap.Matches(key, v.keymap.Select) {
			return v, v.setFocus(fieldFile)
		}
		v.remarks, cmd = v.remarks.Update(msg)
	case fieldFile:
		if keymap.Matches(key, v.keymap.Select) {
			return v, v.submit()
		}
		v.file, cmd = v.file.Update(msg)
	case fieldCount:
	}
	return v, cmd
}

func (v *View) toggleCategory() {
	heads := domain.MajorHeads()
	for i, h := range heads {
		if h == v.form.MajorHead() {
			v.form.SetMajorHead(heads[(i+1)%len(heads)])
			return
		}
	}
}

// cycleMinor steps through the minor head options, wrapping at both ends.
func (v *View) cycleMinor(backwards bool) {
	options := v.form.MinorOptions()
	if len(options) == 0 {
		return
	}
	current := -1
	for i, opt := range options {
		if opt == v.form.MinorHead() {
			current = i
		}
	}
	next := current + 1
	if backwards {
		next = current - 1
		if next < 0 {
			next = len(options) - 1
		}
	}
	v.form.SetMinorHead(options[next%len(options)])
}

func (v *View) setFocus(f field) tea.Cmd {
	var cmds []tea.Cmd
	if v.focus == fieldTags && f != fieldTags {
		cmds = append(cmds, v.tags.Blur())
	}
	v.date.Blur()
	v.remarks.Blur()
	v.file.Blur()

	v.focus = f
	switch f {
	case fieldDate:
		cmds = append(cmds, v.date.Focus())
	case fieldTags:
		cmds = append(cmds, v.tags.Focus())
	case fieldRemarks:
		cmds = append(cmds, v.remarks.Focus())
	case fieldFile:
		cmds = append(cmds, v.file.Focus())
	case fieldCategory, fieldMinor, fieldCount:
	}
	return tea.Batch(cmds...)
}

// submit copies the text fields into the form and starts the upload.
func (v *View) submit() tea.Cmd {
	v.form.Date = nil
	if raw := strings.TrimSpace(v.date.Value()); raw != "" {
		d, err := time.ParseInLocation(DateLayout, raw, time.UTC)
		if err != nil {
			v.form.Error = "Enter the date as YYYY-MM-DD."
			v.statusbar.Fail(v.form.Error)
			return nil
		}
		v.form.Date = &d
	}
	v.form.Remarks = strings.TrimSpace(v.remarks.Value())

	if path := strings.TrimSpace(v.file.Value()); path != "" {
		if err := v.selectFile(path); err != nil {
			v.statusbar.Fail(v.form.Error)
			return nil
		}
	}

	if err := v.form.Validate(); err != nil {
		v.form.Error = domain.RemoteMessage(err, fallbackUploadFailed)
		v.statusbar.Fail(v.form.Error)
		return nil
	}

	v.form.Error = ""
	v.busy = true
	v.statusbar.Busy("Uploading...")

	ctx, svc, form := v.ctx, v.upload, v.form
	name := form.File().Name
	return func() tea.Msg {
		return messages.UploadCompleted{FileName: name, Err: svc.Upload(ctx, form)}
	}
}

func (v *View) selectFile(path string) error {
	if v.loadFile == nil {
		v.form.Error = "File selection is unavailable."
		return errNoFileLoader
	}
	file, err := v.loadFile(path)
	if err != nil {
		v.form.Error = fmt.Sprintf("Cannot read %s.", path)
		return err
	}
	return v.form.SelectFile(file)
}

// View renders the upload form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Upload Document"))
	b.WriteString("\n\n")

	b.WriteString(v.date.View())
	b.WriteString("\n")
	b.WriteString(v.renderOption(fieldCategory, "Category", v.form.MajorHead().String()))
	b.WriteString("\n")
	minor := v.form.MinorHead()
	if minor == "" {
		minor = "(select)"
	}
	b.WriteString(v.renderOption(fieldMinor, v.form.MajorHead().MinorHeadLabel(), minor))
	b.WriteString("\n")
	b.WriteString(v.styles.LabelFor(v.focus == fieldTags).Render("Tags"))
	b.WriteString(v.tags.View())
	b.WriteString("\n")
	b.WriteString(v.remarks.View())
	b.WriteString("\n")
	b.WriteString(v.file.View())
	b.WriteString("\n\n")

	if v.form.Error != "" {
		b.WriteString(v.styles.Error.Render(v.form.Error))
		b.WriteString("\n\n")
	}

	v.statusbar.SetWidth(v.width)
	b.WriteString(v.statusbar.View())

	return b.String()
}

func (v *View) renderOption(f field, label, value string) string {
	focused := v.focus == f
	text := "  " + value + "  "
	if focused {
		text = "< " + value + " >"
	}
	style := v.styles.InputField
	if focused {
		style = v.styles.FocusedInput
	}
	return v.styles.LabelFor(focused).Render(label) + style.Render(text)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.date.SetWidth(width)
	v.remarks.SetWidth(width)
	v.file.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.ready = true
}

// Form returns the form state.
func (v *View) Form() *domain.UploadForm {
	return v.form
}

// Busy reports whether an upload is in flight.
func (v *View) Busy() bool {
	return v.busy
}
