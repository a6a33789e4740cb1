package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_Authenticated(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.Authenticated())
	assert.False(t, (&Session{}).Authenticated())
	assert.True(t, (&Session{Token: "abc"}).Authenticated())
}
