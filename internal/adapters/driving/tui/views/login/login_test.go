package login

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

type mockAuthService struct {
	requestErr  error
	validateErr error
	requested   []string
	validated   []string
}

func (m *mockAuthService) RequestOTP(_ context.Context, phone string) error {
	m.requested = append(m.requested, phone)
	return m.requestErr
}

func (m *mockAuthService) ValidateOTP(_ context.Context, phone, otp string) (*domain.Session, error) {
	m.validated = append(m.validated, phone+":"+otp)
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	return &domain.Session{Token: "tok", Phone: phone}, nil
}

func (m *mockAuthService) Logout(context.Context) error { return nil }

func (m *mockAuthService) Status(context.Context) domain.Session { return domain.Session{} }

func (m *mockAuthService) Watch(context.Context) (<-chan domain.Session, error) {
	return nil, nil
}

func typeText(v *View, text string) {
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func enter(v *View) tea.Cmd {
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

// atOTPStage drives a view through a successful OTP request.
func atOTPStage(t *testing.T, auth *mockAuthService) *View {
	t.Helper()
	v := NewView(nil, nil, auth)
	for _, r := range "9876543210" {
		typeText(v, string(r))
	}
	cmd := enter(v)
	require.NotNil(t, cmd)
	v.Update(cmd())
	require.True(t, v.Form().OTPSent())
	return v
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, &mockAuthService{})

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.NotNil(t, v.keymap)
	assert.Equal(t, domain.StagePhoneEntry, v.Form().Stage())
	assert.True(t, v.phone.Focused())
	assert.NotNil(t, v.Init())
}

func TestView_PhoneFieldAcceptsDigitsOnly(t *testing.T) {
	v := NewView(nil, nil, &mockAuthService{})

	typeText(v, "98a")
	typeText(v, "9")
	typeText(v, "8")

	assert.Equal(t, "98", v.phone.Value())
}

func TestView_InvalidPhoneSkipsRequest(t *testing.T) {
	auth := &mockAuthService{}
	v := NewView(nil, nil, auth)
	typeText(v, "12345")

	cmd := enter(v)

	assert.Nil(t, cmd)
	assert.Empty(t, auth.requested)
	assert.Equal(t, "Enter a valid 10-digit phone number.", v.Form().Error)
	assert.False(t, v.Busy())
}

func TestView_RequestOTP(t *testing.T) {
	auth := &mockAuthService{}
	v := atOTPStage(t, auth)

	assert.Equal(t, []string{"9876543210"}, auth.requested)
	assert.Equal(t, "9876543210", v.Form().Phone)
	assert.True(t, v.otp.Focused())
	assert.False(t, v.phone.Focused())
	assert.Contains(t, v.View(), "OTP sent to 9876543210")
}

func TestView_RequestOTPFailure(t *testing.T) {
	auth := &mockAuthService{requestErr: &domain.APIError{Status: 400, Message: "User not found"}}
	v := NewView(nil, nil, auth)
	typeText(v, "9876543210")

	cmd := enter(v)
	require.NotNil(t, cmd)
	assert.True(t, v.Busy())
	v.Update(cmd())

	assert.False(t, v.Busy())
	assert.False(t, v.Form().OTPSent())
	assert.Equal(t, "User not found", v.Form().Error)
}

func TestView_KeysIgnoredWhileBusy(t *testing.T) {
	v := NewView(nil, nil, &mockAuthService{})
	typeText(v, "9876543210")
	enter(v)

	typeText(v, "1")

	assert.Equal(t, "9876543210", v.phone.Value())
}

func TestView_IncompleteOTPSkipsValidation(t *testing.T) {
	auth := &mockAuthService{}
	v := atOTPStage(t, auth)
	typeText(v, "123")

	cmd := enter(v)

	assert.Nil(t, cmd)
	assert.Empty(t, auth.validated)
	assert.Equal(t, "Enter the full 6-digit OTP.", v.Form().Error)
}

func TestView_ValidateOTP(t *testing.T) {
	auth := &mockAuthService{}
	v := atOTPStage(t, auth)
	typeText(v, "123456")

	cmd := enter(v)
	require.NotNil(t, cmd)
	msg := cmd()

	completed, ok := msg.(messages.LoginCompleted)
	require.True(t, ok)
	require.NoError(t, completed.Err)
	assert.Equal(t, "tok", completed.Session.Token)
	assert.Equal(t, []string{"9876543210:123456"}, auth.validated)

	v.Update(msg)
	assert.Equal(t, domain.StageAuthenticated, v.Form().Stage())
}

func TestView_ValidateOTPFailureKeepsDigits(t *testing.T) {
	auth := &mockAuthService{validateErr: &domain.APIError{Status: 401}}
	v := atOTPStage(t, auth)
	typeText(v, "123456")

	cmd := enter(v)
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.Equal(t, "Invalid OTP", v.Form().Error)
	assert.Equal(t, "123456", v.otp.Code())
	assert.Equal(t, domain.StageOTPEntry, v.Form().Stage())
}

func TestView_ResendOTP(t *testing.T) {
	auth := &mockAuthService{}
	v := atOTPStage(t, auth)
	typeText(v, "12")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.Equal(t, []string{"9876543210", "9876543210"}, auth.requested)
	assert.Empty(t, v.otp.Code())
	assert.Equal(t, domain.StageOTPEntry, v.Form().Stage())
}

func TestView_Reset(t *testing.T) {
	v := atOTPStage(t, &mockAuthService{})

	v.Reset()

	assert.Equal(t, domain.StagePhoneEntry, v.Form().Stage())
	assert.Empty(t, v.phone.Value())
}

func TestView_View_PhoneStage(t *testing.T) {
	v := NewView(nil, nil, &mockAuthService{})

	output := v.View()

	assert.Contains(t, output, "DocDesk Login")
	assert.Contains(t, output, "Phone")
	assert.Contains(t, output, "send OTP")
}

func TestView_View_OTPStage(t *testing.T) {
	v := atOTPStage(t, &mockAuthService{})

	output := v.View()

	assert.Contains(t, output, "Enter OTP")
	assert.Contains(t, output, "resend OTP")
}

func TestView_SetDimensions(t *testing.T) {
	v := NewView(nil, nil, &mockAuthService{})

	v.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.True(t, v.ready)
	assert.Equal(t, 100, v.width)
	assert.Equal(t, 100, v.phone.Width())
}
