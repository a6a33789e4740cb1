// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// DocumentList displays search results in a navigable list.
type DocumentList struct {
	documents []domain.DocumentRecord
	selected  int
	styles    *styles.Styles
	width     int
	height    int
}

// NewDocumentList creates a new document list component.
func NewDocumentList(s *styles.Styles) *DocumentList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &DocumentList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the document list.
func (l *DocumentList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *DocumentList) Update(msg tea.Msg) (*DocumentList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the document list.
func (l *DocumentList) View() string {
	if len(l.documents) == 0 {
		return l.styles.Muted.Render("No documents")
	}

	lines := make([]string, 0, len(l.documents)+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Documents (%d)", len(l.documents))), "")

	// Two lines per entry.
	visibleCount := (l.height - 2) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(l.documents) {
		end = len(l.documents)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderDocument(i, &l.documents[i]))
	}

	return strings.Join(lines, "\n")
}

func (l *DocumentList) renderDocument(index int, doc *domain.DocumentRecord) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	heading := fmt.Sprintf("%s / %s", doc.MajorHead, doc.MinorHead)
	maxLen := l.width - 16
	if maxLen < 10 {
		maxLen = 10
	}
	heading = truncate(heading, maxLen)

	var first string
	if index == l.selected {
		first = l.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxLen, heading, doc.DocumentDay()))
	} else {
		first = l.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxLen, heading)) +
			l.styles.Muted.Render(doc.DocumentDay())
	}

	detail := doc.DocumentRemarks
	if detail == "" {
		detail = "(no remarks)"
	}
	if doc.UploadedBy != "" {
		detail += " · " + doc.UploadedBy
	}
	second := l.styles.Muted.Render("    " + truncate(detail, l.width-6))

	return first + "\n" + second
}

func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// SetDocuments replaces the listed documents and resets the selection.
func (l *DocumentList) SetDocuments(docs []domain.DocumentRecord) {
	l.documents = docs
	l.selected = 0
}

// Documents returns the listed documents.
func (l *DocumentList) Documents() []domain.DocumentRecord {
	return l.documents
}

// Selected returns the index of the selected document.
func (l *DocumentList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *DocumentList) SetSelected(index int) {
	if index >= 0 && index < len(l.documents) {
		l.selected = index
	}
}

// SelectedDocument returns the selected document, or nil if the list is empty.
func (l *DocumentList) SelectedDocument() *domain.DocumentRecord {
	if l.selected < 0 || l.selected >= len(l.documents) {
		return nil
	}
	return &l.documents[l.selected]
}

// MoveUp moves selection up.
func (l *DocumentList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *DocumentList) MoveDown() {
	if l.selected < len(l.documents)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *DocumentList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of documents.
func (l *DocumentList) Count() int {
	return len(l.documents)
}

// IsEmpty returns whether the list is empty.
func (l *DocumentList) IsEmpty() bool {
	return len(l.documents) == 0
}
