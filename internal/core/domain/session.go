package domain

import "time"

// Session holds the authentication token issued by the remote API.
// A single session exists per configuration directory and survives restarts.
type Session struct {
	// Token is sent in the "token" header on authorised calls.
	Token string

	// Phone is the mobile number the token was issued for.
	Phone string

	// CreatedAt is when the token was stored.
	CreatedAt time.Time
}

// Authenticated reports whether the session carries a token.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}
