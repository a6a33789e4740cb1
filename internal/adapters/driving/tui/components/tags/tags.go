// Package tags provides the tag entry component with remote autocomplete.
package tags

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
)

// Default timings of the suggestion list.
const (
	DefaultDebounce = 300 * time.Millisecond
	BlurGrace       = 150 * time.Millisecond
)

// Target receives the tags the user picks.
type Target interface {
	AddTag(tag string) bool
	RemoveTag(tag string) bool
	Tags() []string
}

// SetTarget adapts a domain.TagSet to Target.
type SetTarget struct {
	Set *domain.TagSet
}

// AddTag adds tag to the set.
func (t SetTarget) AddTag(tag string) bool { return t.Set.Add(tag) }

// RemoveTag removes tag from the set.
func (t SetTarget) RemoveTag(tag string) bool { return t.Set.Remove(tag) }

// Tags returns the set values.
func (t SetTarget) Tags() []string { return t.Set.Values() }

// queryTick fires once the debounce window of a keystroke has elapsed.
type queryTick struct {
	id  int64
	seq int
}

// suggestionsLoaded carries the response of the query issued for seq.
type suggestionsLoaded struct {
	id    int64
	seq   int
	items []domain.TagSuggestion
}

// blurTick closes the list after the blur grace period.
type blurTick struct {
	id  int64
	seq int
}

var nextID atomic.Int64

// Autocomplete edits a tag draft, shows suggestions and commits tags to a Target.
type Autocomplete struct {
	id       int64
	ctx      context.Context
	service  driving.TagService
	target   Target
	styles   *styles.Styles
	debounce time.Duration

	draft       textinput.Model
	seq         int
	blurSeq     int
	suggestions []domain.TagSuggestion
	highlighted int
	open        bool
}

// New creates an autocomplete writing into target. A nil service disables suggestions.
func New(ctx context.Context, s *styles.Styles, service driving.TagService, target Target) *Autocomplete {
	if ctx == nil {
		ctx = context.Background()
	}
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "type to search tags"
	ti.Width = 30

	return &Autocomplete{
		id:          nextID.Add(1),
		ctx:         ctx,
		service:     service,
		target:      target,
		styles:      s,
		debounce:    DefaultDebounce,
		draft:       ti,
		highlighted: -1,
	}
}

// SetDebounce changes the delay between the last keystroke and the query.
func (a *Autocomplete) SetDebounce(d time.Duration) {
	if d > 0 {
		a.debounce = d
	}
}

// WithContext sets the context for suggestion queries.
func (a *Autocomplete) WithContext(ctx context.Context) *Autocomplete {
	a.ctx = ctx
	return a
}

// SetTarget points the component at a new tag collection.
func (a *Autocomplete) SetTarget(target Target) {
	a.target = target
}

// Update handles keys and the component's own timer and query messages.
func (a *Autocomplete) Update(msg tea.Msg) (*Autocomplete, tea.Cmd) {
	switch msg := msg.(type) {
	case queryTick:
		if msg.id != a.id || msg.seq != a.seq {
			return a, nil
		}
		return a, a.query(msg.seq, a.draft.Value())

	case suggestionsLoaded:
		if msg.id != a.id || msg.seq != a.seq {
			return a, nil
		}
		a.suggestions = msg.items
		a.highlighted = -1
		a.open = a.draft.Focused() && len(msg.items) > 0
		return a, nil

	case blurTick:
		if msg.id == a.id && msg.seq == a.blurSeq && !a.draft.Focused() {
			a.closeList()
		}
		return a, nil

	case tea.KeyMsg:
		if !a.draft.Focused() {
			return a, nil
		}
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *Autocomplete) handleKey(msg tea.KeyMsg) (*Autocomplete, tea.Cmd) {
	//nolint:exhaustive // other keys are forwarded to the text input
	switch msg.Type {
	case tea.KeyUp:
		if a.open && a.highlighted > 0 {
			a.highlighted--
		}
		return a, nil
	case tea.KeyDown:
		if a.open && a.highlighted < len(a.suggestions)-1 {
			a.highlighted++
		}
		return a, nil
	case tea.KeyEnter:
		a.commit()
		return a, nil
	case tea.KeyEsc:
		a.closeList()
		return a, nil
	case tea.KeyBackspace:
		if a.draft.Value() == "" {
			if tags := a.target.Tags(); len(tags) > 0 {
				a.target.RemoveTag(tags[len(tags)-1])
			}
			return a, nil
		}
	}

	before := a.draft.Value()
	var cmd tea.Cmd
	a.draft, cmd = a.draft.Update(msg)
	if a.draft.Value() == before {
		return a, cmd
	}

	a.seq++
	if strings.TrimSpace(a.draft.Value()) == "" {
		a.closeList()
		return a, cmd
	}
	id, seq := a.id, a.seq
	tick := tea.Tick(a.debounce, func(time.Time) tea.Msg {
		return queryTick{id: id, seq: seq}
	})
	return a, tea.Batch(cmd, tick)
}

// commit adds the highlighted suggestion, or the draft text when none is highlighted.
func (a *Autocomplete) commit() {
	value := a.draft.Value()
	if a.open && a.highlighted >= 0 && a.highlighted < len(a.suggestions) {
		value = a.suggestions[a.highlighted].Label
	}
	if a.target.AddTag(value) {
		a.draft.Reset()
	}
	a.seq++
	a.closeList()
}

func (a *Autocomplete) query(seq int, term string) tea.Cmd {
	if a.service == nil {
		return nil
	}
	ctx, service, id := a.ctx, a.service, a.id
	return func() tea.Msg {
		items, err := service.Suggest(ctx, term)
		if err != nil {
			items = nil
		}
		return suggestionsLoaded{id: id, seq: seq, items: items}
	}
}

func (a *Autocomplete) closeList() {
	a.open = false
	a.suggestions = nil
	a.highlighted = -1
}

// View renders the chips, the draft and the open suggestion list.
func (a *Autocomplete) View() string {
	var b strings.Builder

	for _, tag := range a.target.Tags() {
		b.WriteString(a.styles.Chip.Render(tag))
		b.WriteString(" ")
	}
	box := a.styles.InputField
	if a.draft.Focused() {
		box = a.styles.FocusedInput
	}
	b.WriteString(box.Render(a.draft.View()))

	if a.open {
		for i, s := range a.suggestions {
			b.WriteString("\n")
			if i == a.highlighted {
				b.WriteString(a.styles.Selected.Render("> " + s.Label))
			} else {
				b.WriteString(a.styles.Normal.Render("  " + s.Label))
			}
		}
	}

	return b.String()
}

// Focus starts accepting keys.
func (a *Autocomplete) Focus() tea.Cmd {
	a.blurSeq++
	return a.draft.Focus()
}

// Blur stops accepting keys and closes the list after BlurGrace.
func (a *Autocomplete) Blur() tea.Cmd {
	a.draft.Blur()
	a.blurSeq++
	id, seq := a.id, a.blurSeq
	return tea.Tick(BlurGrace, func(time.Time) tea.Msg {
		return blurTick{id: id, seq: seq}
	})
}

// Focused returns whether the component accepts keys.
func (a *Autocomplete) Focused() bool {
	return a.draft.Focused()
}

// Open reports whether the suggestion list is showing.
func (a *Autocomplete) Open() bool {
	return a.open
}

// Suggestions returns the suggestions currently listed.
func (a *Autocomplete) Suggestions() []domain.TagSuggestion {
	return a.suggestions
}

// Highlighted returns the index of the highlighted suggestion, or -1.
func (a *Autocomplete) Highlighted() int {
	return a.highlighted
}

// Draft returns the text typed but not yet committed.
func (a *Autocomplete) Draft() string {
	return a.draft.Value()
}

// Reset clears the draft and closes the list.
func (a *Autocomplete) Reset() {
	a.draft.Reset()
	a.seq++
	a.closeList()
}
