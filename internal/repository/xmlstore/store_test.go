package xmlstore

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "home", ".structure.xml")
	store := NewFileStore(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return store.(*FileStore), path
}

func TestFileStore_Init(t *testing.T) {
	store, path := newTestFileStore(t)
	ctx := context.Background()

	created, err := store.Init(ctx)
	require.NoError(t, err)
	assert.True(t, created)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(EmptyIndex), string(data))

	created, err = store.Init(ctx)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestFileStore_SaveLoad(t *testing.T) {
	store, path := newTestFileStore(t)
	ctx := context.Background()
	_, err := store.Init(ctx)
	require.NoError(t, err)

	tree := sampleTree()
	require.NoError(t, store.Save(ctx, tree))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, tree, loaded)

	// No temp files are left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".structure.xml", entries[0].Name())
	assert.Equal(t, path, store.Location())
}

func TestFileStore_LoadErrors(t *testing.T) {
	store, path := newTestFileStore(t)

	_, err := store.Load(context.Background())
	assert.Error(t, err)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("not xml <"), 0644))
	_, err = store.Load(context.Background())
	assert.ErrorContains(t, err, "decode index")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
