package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0600))
}

func TestInitialize_DefaultFileBackend(t *testing.T) {
	dir := t.TempDir()

	svc, cleanup, err := initialize(context.Background(), cli.Options{ConfigDir: dir})
	require.NoError(t, err)
	require.NotNil(t, cleanup)
	defer cleanup() //nolint:errcheck

	require.NotNil(t, svc)
	assert.NotNil(t, svc.Auth)
	assert.NotNil(t, svc.Upload)
	assert.NotNil(t, svc.Tags)
	assert.NotNil(t, svc.Search)
	assert.NotNil(t, svc.Actions)
	assert.NotNil(t, svc.Settings)
	assert.NotNil(t, svc.History)
	assert.NotNil(t, svc.LoadFile)

	status := svc.Auth.Status(context.Background())
	assert.False(t, status.Authenticated())
	assert.FileExists(t, filepath.Join(dir, "data", "docdesk.db"))

	records, err := svc.History.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestInitialize_ReadsStoredSession(t *testing.T) {
	dir := t.TempDir()
	st, err := openStores(domain.SessionBackendFile, dir)
	require.NoError(t, err)
	require.NoError(t, st.session.Save(context.Background(), domain.Session{Token: "abc", Phone: "9876543210"}))
	require.NoError(t, st.close())

	svc, cleanup, err := initialize(context.Background(), cli.Options{ConfigDir: dir})
	require.NoError(t, err)
	defer cleanup() //nolint:errcheck

	status := svc.Auth.Status(context.Background())
	assert.True(t, status.Authenticated())
	assert.Equal(t, "9876543210", status.Phone)
}

func TestInitialize_MemoryBackend(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[session]\nbackend = \"memory\"\n")

	svc, cleanup, err := initialize(context.Background(), cli.Options{ConfigDir: dir})
	require.NoError(t, err)
	defer cleanup() //nolint:errcheck

	assert.NotNil(t, svc.Auth)
	assert.NoFileExists(t, filepath.Join(dir, "data", "docdesk.db"))
}

func TestOpenStores_SQLiteBackend(t *testing.T) {
	dir := t.TempDir()

	st, err := openStores(domain.SessionBackendSQLite, dir)
	require.NoError(t, err)
	defer st.close() //nolint:errcheck

	assert.NotNil(t, st.session)
	assert.NotNil(t, st.history)
	assert.Nil(t, st.notifier)
}

func TestOpenStores_FileBackendWatches(t *testing.T) {
	dir := t.TempDir()

	st, err := openStores(domain.SessionBackendFile, dir)
	require.NoError(t, err)
	defer st.close() //nolint:errcheck

	assert.NotNil(t, st.notifier)
}
