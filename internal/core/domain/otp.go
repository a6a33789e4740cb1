package domain

import "regexp"

// OTPLength is the number of digits in a one-time password.
const OTPLength = 6

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// ValidatePhone returns ErrInvalidPhone unless phone is exactly 10 digits.
func ValidatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return ErrInvalidPhone
	}
	return nil
}

// LoginStage identifies where the OTP login flow currently is.
type LoginStage int

const (
	// StagePhoneEntry collects the phone number.
	StagePhoneEntry LoginStage = iota
	// StageOTPEntry collects the OTP after it has been sent.
	StageOTPEntry
	// StageAuthenticated is reached once a token has been stored.
	StageAuthenticated
)

// String returns the string representation of the stage.
func (s LoginStage) String() string {
	switch s {
	case StagePhoneEntry:
		return "phone_entry"
	case StageOTPEntry:
		return "otp_entry"
	case StageAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// OTPForm is the transient state of the login screen.
// The slot array always has OTPLength entries, each holding zero or one digit.
type OTPForm struct {
	Phone string
	Error string

	stage LoginStage
	slots [OTPLength]string
	focus int
}

// NewOTPForm returns a form in the phone entry stage.
func NewOTPForm() *OTPForm {
	return &OTPForm{stage: StagePhoneEntry}
}

// Stage returns the current stage.
func (f *OTPForm) Stage() LoginStage {
	return f.stage
}

// OTPSent reports whether the form has moved past phone entry.
func (f *OTPForm) OTPSent() bool {
	return f.stage != StagePhoneEntry
}

// MarkOTPSent moves the form from phone entry to OTP entry.
func (f *OTPForm) MarkOTPSent() {
	if f.stage == StagePhoneEntry {
		f.stage = StageOTPEntry
		f.focus = 0
	}
}

// MarkAuthenticated moves the form to the terminal stage.
func (f *OTPForm) MarkAuthenticated() {
	f.stage = StageAuthenticated
	f.Error = ""
}

// SetError records a user-visible error message.
func (f *OTPForm) SetError(msg string) {
	f.Error = msg
}

// ClearError removes any error message.
func (f *OTPForm) ClearError() {
	f.Error = ""
}

// SetDigit writes value into slot index.
// Only the empty string or a single ASCII digit is accepted; anything else leaves
// the form untouched and returns false. A non-empty digit below the last slot
// moves focus to the next slot.
func (f *OTPForm) SetDigit(value string, index int) bool {
	if index < 0 || index >= OTPLength {
		return false
	}
	if value != "" && (len(value) != 1 || value[0] < '0' || value[0] > '9') {
		return false
	}
	f.slots[index] = value
	f.focus = index
	if value != "" && index < OTPLength-1 {
		f.focus = index + 1
	}
	return true
}

// TypeDigit writes value into the focused slot.
func (f *OTPForm) TypeDigit(value string) bool {
	return f.SetDigit(value, f.focus)
}

// Backspace clears the focused slot, or steps back and clears the previous slot
// when the focused one is already empty.
func (f *OTPForm) Backspace() {
	if f.slots[f.focus] == "" && f.focus > 0 {
		f.focus--
	}
	f.slots[f.focus] = ""
}

// Focus returns the index of the slot receiving input.
func (f *OTPForm) Focus() int {
	return f.focus
}

// SetFocus moves input focus to index, clamped to the slot range.
func (f *OTPForm) SetFocus(index int) {
	switch {
	case index < 0:
		f.focus = 0
	case index >= OTPLength:
		f.focus = OTPLength - 1
	default:
		f.focus = index
	}
}

// Slots returns a copy of the OTP slots.
func (f *OTPForm) Slots() [OTPLength]string {
	return f.slots
}

// Code joins the slots into the entered OTP.
func (f *OTPForm) Code() string {
	code := ""
	for _, s := range f.slots {
		code += s
	}
	return code
}

// Complete reports whether every slot holds a digit.
func (f *OTPForm) Complete() bool {
	return len(f.Code()) == OTPLength
}

// ResetOTP empties every slot and returns focus to the first one.
func (f *OTPForm) ResetOTP() {
	f.slots = [OTPLength]string{}
	f.focus = 0
}

// ValidateOTP returns ErrIncompleteOTP unless code is exactly OTPLength digits.
func ValidateOTP(code string) error {
	if len(code) != OTPLength {
		return ErrIncompleteOTP
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return ErrIncompleteOTP
		}
	}
	return nil
}
