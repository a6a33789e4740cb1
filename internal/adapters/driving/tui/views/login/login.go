// Package login provides the phone and OTP login view for the TUI.
package login

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/components/otp"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
)

// Fallback messages when an error carries no text of its own.
const (
	fallbackSendFailed  = "Failed to generate OTP"
	fallbackLoginFailed = "Invalid OTP"
)

// View is the two-stage login screen.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	auth   driving.AuthService
	ctx    context.Context

	form  *domain.OTPForm
	phone *input.Field
	otp   *otp.Input

	busy   bool
	notice string
	width  int
	height int
	ready  bool
}

// NewView creates a login view in the phone entry stage.
func NewView(s *styles.Styles, km *keymap.KeyMap, auth driving.AuthService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles: s,
		keymap: km,
		auth:   auth,
		ctx:    context.Background(),
		width:  80,
		height: 24,
	}
	v.Reset()
	return v
}

// WithContext sets the context for remote calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Reset returns the view to an empty phone entry stage.
func (v *View) Reset() {
	v.form = domain.NewOTPForm()
	v.phone = input.NewField(v.styles, "Phone", "10-digit mobile number", 10)
	v.phone.Focus()
	v.otp = otp.NewInput(v.styles, v.form)
	v.busy = false
	v.notice = ""
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.phone.Init()
}

// Update handles messages for the login view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.OTPRequested:
		v.busy = false
		if msg.Err != nil {
			v.notice = ""
			v.form.SetError(domain.RemoteMessage(msg.Err, fallbackSendFailed))
			return v, nil
		}
		v.form.ClearError()
		v.form.Phone = msg.Phone
		v.form.MarkOTPSent()
		v.phone.Blur()
		v.otp.Focus()
		v.notice = "OTP sent to " + msg.Phone
		return v, nil

	case messages.LoginCompleted:
		v.busy = false
		if msg.Err != nil {
			// Entered digits are kept so the user can correct one.
			v.form.SetError(domain.RemoteMessage(msg.Err, fallbackLoginFailed))
			return v, nil
		}
		v.form.MarkAuthenticated()
		return v, nil

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		if v.form.OTPSent() {
			return v.handleOTPKey(msg)
		}
		return v.handlePhoneKey(msg)
	}

	return v, nil
}

func (v *View) handlePhoneKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if keymap.Matches(msg.String(), v.keymap.Select) {
		return v, v.requestOTP(strings.TrimSpace(v.phone.Value()))
	}
	if msg.Type == tea.KeyRunes && !allDigits(msg.Runes) {
		return v, nil
	}
	var cmd tea.Cmd
	v.phone, cmd = v.phone.Update(msg)
	v.form.ClearError()
	return v, cmd
}

func (v *View) handleOTPKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Select):
		code := v.otp.Code()
		if err := domain.ValidateOTP(code); err != nil {
			v.form.SetError(domain.RemoteMessage(err, fallbackLoginFailed))
			return v, nil
		}
		v.form.ClearError()
		v.busy = true
		return v, v.validateOTP(v.form.Phone, code)

	case keymap.Matches(msg.String(), v.keymap.Resend):
		v.otp.Reset()
		return v, v.requestOTP(v.form.Phone)
	}

	v.otp, _ = v.otp.Update(msg)
	return v, nil
}

func (v *View) requestOTP(phone string) tea.Cmd {
	if err := domain.ValidatePhone(phone); err != nil {
		v.form.SetError(domain.RemoteMessage(err, fallbackSendFailed))
		return nil
	}
	v.form.ClearError()
	v.busy = true
	ctx, auth := v.ctx, v.auth
	return func() tea.Msg {
		return messages.OTPRequested{Phone: phone, Err: auth.RequestOTP(ctx, phone)}
	}
}

func (v *View) validateOTP(phone, code string) tea.Cmd {
	ctx, auth := v.ctx, v.auth
	return func() tea.Msg {
		session, err := auth.ValidateOTP(ctx, phone, code)
		return messages.LoginCompleted{Session: session, Err: err}
	}
}

func allDigits(runes []rune) bool {
	for _, r := range runes {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// View renders the login view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("DocDesk Login"))
	b.WriteString("\n\n")

	if v.form.OTPSent() {
		b.WriteString(v.styles.Muted.Render(v.notice))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Label.Render("Enter OTP"))
		b.WriteString("\n")
		b.WriteString(v.otp.View())
	} else {
		b.WriteString(v.phone.View())
	}
	b.WriteString("\n\n")

	switch {
	case v.busy:
		b.WriteString(v.styles.Muted.Render("Please wait..."))
	case v.form.Error != "":
		b.WriteString(v.styles.Error.Render(v.form.Error))
	}
	b.WriteString("\n\n")

	if v.form.OTPSent() {
		b.WriteString(v.styles.Help.Render("[enter] verify  [ctrl+r] resend OTP  [ctrl+c] quit"))
	} else {
		b.WriteString(v.styles.Help.Render("[enter] send OTP  [ctrl+c] quit"))
	}

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.phone.SetWidth(width)
	v.ready = true
}

// Form returns the login form state.
func (v *View) Form() *domain.OTPForm {
	return v.form
}

// Busy reports whether a request is in flight.
func (v *View) Busy() bool {
	return v.busy
}
