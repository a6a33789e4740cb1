package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

func TestSessionStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	now := time.Now().UTC()
	require.NoError(t, store.Save(ctx, domain.Session{Token: "tok", Phone: "9876543210", CreatedAt: now}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, "9876543210", got.Phone)
	assert.Equal(t, now, got.CreatedAt)

	// Returned session is a copy.
	got.Token = "changed"
	again, _ := store.Load(ctx)
	assert.Equal(t, "tok", again.Token)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, store.Clear(ctx), "clearing twice is fine")
}
