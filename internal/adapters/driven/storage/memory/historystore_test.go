package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

func TestUploadHistoryStore_RecordAndList(t *testing.T) {
	ctx := context.Background()
	store := NewUploadHistoryStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Record(ctx, domain.UploadRecord{FileName: "a.pdf", UploadedAt: base}))
	require.NoError(t, store.Record(ctx, domain.UploadRecord{FileName: "b.pdf", UploadedAt: base.Add(time.Hour)}))
	require.NoError(t, store.Record(ctx, domain.UploadRecord{ID: "fixed", FileName: "c.pdf", UploadedAt: base.Add(2 * time.Hour)}))

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c.pdf", all[0].FileName)
	assert.Equal(t, "fixed", all[0].ID)
	assert.Equal(t, "a.pdf", all[2].FileName)
	assert.NotEmpty(t, all[2].ID)

	limited, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
	assert.Equal(t, "b.pdf", limited[1].FileName)
}

func TestUploadHistoryStore_TagsCopied(t *testing.T) {
	ctx := context.Background()
	store := NewUploadHistoryStore()
	tags := []string{"invoice"}

	require.NoError(t, store.Record(ctx, domain.UploadRecord{Tags: tags}))
	tags[0] = "mutated"

	all, _ := store.List(ctx, 0)
	assert.Equal(t, []string{"invoice"}, all[0].Tags)
}
