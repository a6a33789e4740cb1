package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	return store
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store := setupTestStore(t)
	assert.FileExists(t, store.Path())
	assert.Contains(t, store.Path(), "docdesk.db")
}

func TestNewStore_MigrationsRecorded(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening must not re-run the migration.
	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSessionStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	sessions := setupTestStore(t).SessionStore()

	_, err := sessions.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	created := time.Date(2024, 5, 6, 7, 8, 9, 123000000, time.UTC)
	require.NoError(t, sessions.Save(ctx, domain.Session{Token: "one", Phone: "9876543210", CreatedAt: created}))
	require.NoError(t, sessions.Save(ctx, domain.Session{Token: "two", Phone: "9876543210", CreatedAt: created}))

	got, err := sessions.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "two", got.Token)
	assert.Equal(t, "9876543210", got.Phone)
	assert.True(t, created.Equal(got.CreatedAt))

	require.NoError(t, sessions.Clear(ctx))
	_, err = sessions.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, sessions.Clear(ctx))
}

func TestUploadHistoryStore_RecordAndList(t *testing.T) {
	ctx := context.Background()
	history := setupTestStore(t).UploadHistoryStore()
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, history.Record(ctx, domain.UploadRecord{
		DocumentDate: "2024-01-01T00:00:00.000Z",
		MajorHead:    "Personal",
		MinorHead:    "Anmol",
		Tags:         []string{"invoice", "tax"},
		Remarks:      "first",
		FileName:     "a.pdf",
		UploadedAt:   base,
	}))
	require.NoError(t, history.Record(ctx, domain.UploadRecord{
		ID:         "second",
		MajorHead:  "Professional",
		MinorHead:  "HR",
		FileName:   "b.png",
		UploadedAt: base.Add(time.Minute),
	}))

	all, err := history.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)

	assert.Equal(t, "second", all[0].ID)
	assert.Equal(t, []string{}, all[0].Tags)

	first := all[1]
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "Personal", first.MajorHead)
	assert.Equal(t, "Anmol", first.MinorHead)
	assert.Equal(t, []string{"invoice", "tax"}, first.Tags)
	assert.Equal(t, "first", first.Remarks)
	assert.True(t, base.Equal(first.UploadedAt))

	limited, err := history.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "b.png", limited[0].FileName)
}

func TestUploadHistoryStore_EmptyList(t *testing.T) {
	all, err := setupTestStore(t).UploadHistoryStore().List(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}
