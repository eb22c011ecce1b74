package credstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticketctl", "credential")
	store := NewFileStore(path)

	// empty store yields no credential and no error
	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("tok-abc123"))

	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc123", token)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// save replaces the previous credential
	require.NoError(t, store.Save("tok-def456"))
	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-def456", token)
}

func TestFileStoreClearIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credential")
	store := NewFileStore(path)

	require.NoError(t, store.Save("tok-abc123"))
	require.NoError(t, store.Clear())

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	// clearing again behaves identically
	require.NoError(t, store.Clear())
	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}
