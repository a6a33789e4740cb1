// Package search provides the document search view for the TUI.
package search

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/components/tags"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
)

const (
	dateLayout           = "2006-01-02"
	fallbackSearchFailed = "Search failed."
)

// field identifies a row in focus order.
type field int

const (
	fieldCategory field = iota
	fieldTags
	fieldFrom
	fieldTo
	fieldResults
	fieldCount
)

// categories are the category filter choices; the empty head means any.
var categories = []domain.MajorHead{"", domain.MajorHeadPersonal, domain.MajorHeadProfessional}

// View represents the search view with filters, results list, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar

	searchService driving.SearchService
	ctx           context.Context

	filter   domain.SearchFilter
	category int
	tags     *tags.Autocomplete
	from     *input.Field
	to       *input.Field
	list     *list.DocumentList
	focus    field

	// seq identifies the latest search; older responses are dropped.
	seq       int
	searching bool
	err       string

	width  int
	height int
	ready  bool
}

// NewView creates a new search view. A nil tag service disables suggestions.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	tagService driving.TagService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:        s,
		keymap:        km,
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		ctx:           context.Background(),
		from:          input.NewField(s, "From", "YYYY-MM-DD", 10),
		to:            input.NewField(s, "To", "YYYY-MM-DD", 10),
		list:          list.NewDocumentList(s),
		width:         80,
		height:        24,
	}
	v.tags = tags.New(v.ctx, s, tagService, tags.SetTarget{Set: &v.filter.Tags})
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	v.tags.WithContext(ctx)
	return v
}

// SetTagDebounce changes the suggestion delay.
func (v *View) SetTagDebounce(d time.Duration) {
	v.tags.SetDebounce(d)
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.searching = false
		v.err = msg.Err.Error()
		v.statusbar.Fail(v.err)
		return v, nil
	}

	var cmd tea.Cmd
	v.tags, cmd = v.tags.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Submit):
		return v, v.performSearch()
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
		switch {
		case keymap.Matches(key, v.keymap.Toggle):
			v.cycleCategory(key == "left")
		case keymap.Matches(key, v.keymap.Select):
			return v, v.performSearch()
		}
	case fieldTags:
		v.tags, cmd = v.tags.Update(msg)
	case fieldFrom, fieldTo:
		if keymap.Matches(key, v.keymap.Select) {
			return v, v.performSearch()
		}
		if v.focus == fieldFrom {
			v.from, cmd = v.from.Update(msg)
		} else {
			v.to, cmd = v.to.Update(msg)
		}
	case fieldResults:
		if keymap.Matches(key, v.keymap.Select) {
			doc := v.list.SelectedDocument()
			if doc == nil {
				return v, nil
			}
			selected := *doc
			return v, func() tea.Msg {
				return messages.DocumentSelected{Document: selected}
			}
		}
		v.list, cmd = v.list.Update(msg)
	case fieldCount:
	}
	return v, cmd
}

func (v *View) cycleCategory(backwards bool) {
	step := 1
	if backwards {
		step = len(categories) - 1
	}
	v.category = (v.category + step) % len(categories)
	v.filter.MajorHead = categories[v.category]
}

func (v *View) setFocus(f field) tea.Cmd {
	var cmds []tea.Cmd
	if v.focus == fieldTags && f != fieldTags {
		cmds = append(cmds, v.tags.Blur())
	}
	v.from.Blur()
	v.to.Blur()

	v.focus = f
	if f == fieldResults {
		v.statusbar.SetHints(v.keymap.ResultsHelp())
	} else {
		v.statusbar.SetHints(v.keymap.FormHelp())
	}
	switch f {
	case fieldTags:
		cmds = append(cmds, v.tags.Focus())
	case fieldFrom:
		cmds = append(cmds, v.from.Focus())
	case fieldTo:
		cmds = append(cmds, v.to.Focus())
	case fieldCategory, fieldResults, fieldCount:
	}
	return tea.Batch(cmds...)
}

// performSearch builds the filter and starts a search tagged with a new sequence number.
func (v *View) performSearch() tea.Cmd {
	from, ok := v.parseDate(v.from)
	if !ok {
		return nil
	}
	to, ok := v.parseDate(v.to)
	if !ok {
		return nil
	}
	v.filter.From, v.filter.To = from, to

	v.seq++
	seq := v.seq
	v.searching = true
	v.err = ""
	v.statusbar.Busy("Searching...")

	if v.searchService == nil {
		return func() tea.Msg {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}
	}

	ctx, svc := v.ctx, v.searchService
	filter := v.filter
	filter.Tags = domain.NewTagSet(v.filter.Tags.Values()...)
	return func() tea.Msg {
		results, err := svc.Search(ctx, filter)
		return messages.SearchCompleted{Seq: seq, Results: results, Err: err}
	}
}

func (v *View) parseDate(f *input.Field) (*time.Time, bool) {
	raw := strings.TrimSpace(f.Value())
	if raw == "" {
		return nil, true
	}
	d, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		v.err = "Enter dates as YYYY-MM-DD."
		v.statusbar.Fail(v.err)
		return nil, false
	}
	return &d, true
}

// handleSearchCompleted applies the response of the latest search.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Seq != v.seq {
		return
	}
	v.searching = false

	if msg.Err != nil {
		v.err = domain.RemoteMessage(msg.Err, fallbackSearchFailed)
		v.statusbar.Fail(v.err)
		return
	}

	v.err = ""
	v.list.SetDocuments(msg.Results)
	v.statusbar.Results(len(msg.Results))
	if len(msg.Results) > 0 {
		v.setFocus(fieldResults)
	}
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)
	sections = append(sections, v.styles.Title.Render("Search Documents"), "")

	category := "Any"
	if head := categories[v.category]; head != "" {
		category = head.String()
	}
	sections = append(sections,
		v.renderOption(fieldCategory, "Category", category),
		v.styles.LabelFor(v.focus == fieldTags).Render("Tags")+v.tags.View(),
		lipgloss.JoinHorizontal(lipgloss.Top, v.from.View(), "  ", v.to.View()),
		"",
	)

	if v.err != "" {
		sections = append(sections, v.styles.Error.Render(v.err), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderOption(f field, label, value string) string {
	focused := v.focus == f
	text := "  " + value + "  "
	style := v.styles.InputField
	if focused {
		text = "< " + value + " >"
		style = v.styles.FocusedInput
	}
	return v.styles.LabelFor(focused).Render(label) + style.Render(text)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.from.SetWidth(width / 2)
	v.to.SetWidth(width / 2)
	v.list.SetDimensions(width, height-14)
	v.statusbar.SetWidth(width)
}

// Filter returns the current filter criteria.
func (v *View) Filter() domain.SearchFilter {
	return v.filter
}

// Results returns the listed documents.
func (v *View) Results() []domain.DocumentRecord {
	return v.list.Documents()
}

// Searching reports whether a search is in flight.
func (v *View) Searching() bool {
	return v.searching
}

// Err returns the message of the last failure.
func (v *View) Err() string {
	return v.err
}

// Seq returns the sequence number of the latest search.
func (v *View) Seq() int {
	return v.seq
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}
