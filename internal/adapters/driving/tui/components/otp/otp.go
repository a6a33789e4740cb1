// Package otp provides the six-slot one-time password input.
package otp

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// Input edits the OTP slots of a domain.OTPForm.
type Input struct {
	form    *domain.OTPForm
	styles  *styles.Styles
	focused bool
}

// NewInput creates an input bound to form.
func NewInput(s *styles.Styles, form *domain.OTPForm) *Input {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if form == nil {
		form = domain.NewOTPForm()
	}
	return &Input{form: form, styles: s}
}

// Update handles digit entry, deletion and slot navigation.
func (i *Input) Update(msg tea.Msg) (*Input, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !i.focused {
		return i, nil
	}

	//nolint:exhaustive // only editing keys matter here
	switch keyMsg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		i.form.Backspace()
	case tea.KeyLeft:
		i.form.SetFocus(i.form.Focus() - 1)
	case tea.KeyRight:
		i.form.SetFocus(i.form.Focus() + 1)
	case tea.KeyRunes:
		// A paste arrives as one message with many runes.
		for _, r := range keyMsg.Runes {
			if !i.form.TypeDigit(string(r)) {
				break
			}
		}
	}
	return i, nil
}

// View renders one box per slot.
func (i *Input) View() string {
	slots := i.form.Slots()
	boxes := make([]string, 0, len(slots))
	for idx, digit := range slots {
		style := i.styles.Slot
		if i.focused && idx == i.form.Focus() {
			style = i.styles.FocusedSlot
		}
		if digit == "" {
			digit = " "
		}
		boxes = append(boxes, style.Render(digit))
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(boxes, ""))
}

// Focus starts accepting keys.
func (i *Input) Focus() {
	i.focused = true
}

// Blur stops accepting keys.
func (i *Input) Blur() {
	i.focused = false
}

// Focused returns whether the input accepts keys.
func (i *Input) Focused() bool {
	return i.focused
}

// Code returns the entered digits.
func (i *Input) Code() string {
	return i.form.Code()
}

// Complete reports whether every slot is filled.
func (i *Input) Complete() bool {
	return i.form.Complete()
}

// Reset empties the slots.
func (i *Input) Reset() {
	i.form.ResetOTP()
}
