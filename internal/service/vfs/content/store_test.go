package content

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrapbook/internal/domain"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dataDir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.MkdirAll(dataDir, 0755))
	return NewStore(dataDir, slog.New(slog.NewTextHandler(io.Discard, nil))), dataDir
}

func writePage(t *testing.T, dir, html string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, PageFile), []byte(html), 0644))
	return dir
}

const recipePage = `<!DOCTYPE html>
<html>
<head>
  <title>
    Weeknight   Pasta
  </title>
  <meta name="Keywords" content="recipes, dinner ,,quick">
</head>
<body>
  <h2>Ingredients</h2>
  <p>Pasta and <b>garlic</b>.</p>
  <script>track()</script>
</body>
</html>`

func TestStore_Inspect(t *testing.T) {
	store, dataDir := newTestStore(t)
	ctx := context.Background()

	t.Run("title and keywords from html", func(t *testing.T) {
		dir := writePage(t, filepath.Join(dataDir, "1001"), recipePage)

		info, err := store.Inspect(ctx, dir)
		require.NoError(t, err)
		assert.Equal(t, "Weeknight Pasta", info.Title)
		assert.Equal(t, []string{"recipes", "dinner", "quick"}, info.Tags)
	})

	t.Run("sidecar overrides html", func(t *testing.T) {
		dir := writePage(t, filepath.Join(dataDir, "1002"), recipePage)
		sidecar := "title: Grandma's Pasta\ntags: [family, italian]\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, SidecarFile), []byte(sidecar), 0644))

		info, err := store.Inspect(ctx, dir)
		require.NoError(t, err)
		assert.Equal(t, "Grandma's Pasta", info.Title)
		assert.Equal(t, []string{"family", "italian"}, info.Tags)
	})

	t.Run("broken sidecar is ignored", func(t *testing.T) {
		dir := writePage(t, filepath.Join(dataDir, "1003"), recipePage)
		require.NoError(t, os.WriteFile(filepath.Join(dir, SidecarFile), []byte("tags: [unclosed"), 0644))

		info, err := store.Inspect(ctx, dir)
		require.NoError(t, err)
		assert.Equal(t, "Weeknight Pasta", info.Title)
	})

	t.Run("title outside head", func(t *testing.T) {
		dir := writePage(t, filepath.Join(dataDir, "1004"), `<body><title>Loose</title><p>x</p></body>`)

		info, err := store.Inspect(ctx, dir)
		require.NoError(t, err)
		assert.Equal(t, "Loose", info.Title)
	})

	t.Run("missing page", func(t *testing.T) {
		_, err := store.Inspect(ctx, filepath.Join(dataDir, "nope"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestStore_List(t *testing.T) {
	store, dataDir := newTestStore(t)

	writePage(t, filepath.Join(dataDir, "b"), recipePage)
	writePage(t, filepath.Join(dataDir, "a"), recipePage)
	require.NoError(t, os.MkdirAll(filepath.Join(dataDir, "empty"), 0755))
	writePage(t, filepath.Join(dataDir, ".hidden"), recipePage)
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "stray.txt"), []byte("x"), 0644))

	dirs, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dataDir, "a"), filepath.Join(dataDir, "b")}, dirs)
}

func TestStore_Exists(t *testing.T) {
	store, dataDir := newTestStore(t)
	dir := writePage(t, filepath.Join(dataDir, "page"), recipePage)

	assert.True(t, store.Exists(dir))
	assert.False(t, store.Exists(filepath.Join(dataDir, "other")))
}

func TestStore_HasContent(t *testing.T) {
	store, dataDir := newTestStore(t)
	dir := writePage(t, filepath.Join(dataDir, "page"), recipePage)
	require.NoError(t, os.Remove(filepath.Join(dir, PageFile)))

	assert.False(t, store.Exists(dir))
	assert.True(t, store.HasContent(dir))
	assert.False(t, store.HasContent(filepath.Join(dataDir, "other")))
}

func TestStore_Remove(t *testing.T) {
	store, dataDir := newTestStore(t)

	t.Run("inside data dir", func(t *testing.T) {
		dir := writePage(t, filepath.Join(dataDir, "gone"), recipePage)

		require.NoError(t, store.Remove(dir))
		_, err := os.Stat(dir)
		assert.True(t, os.IsNotExist(err))

		// Second removal is a no-op
		assert.NoError(t, store.Remove(dir))
	})

	rejected := map[string]string{
		"data dir itself": dataDir,
		"parent":          filepath.Dir(dataDir),
		"traversal":       filepath.Join(dataDir, "..", "elsewhere"),
		"sibling prefix":  dataDir + "-other",
	}
	for name, path := range rejected {
		t.Run(name, func(t *testing.T) {
			err := store.Remove(path)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	_, err := os.Stat(dataDir)
	assert.NoError(t, err)
}

func TestStore_ExportMarkdown(t *testing.T) {
	store, dataDir := newTestStore(t)
	dir := writePage(t, filepath.Join(dataDir, "export"), recipePage)

	markdown, err := store.ExportMarkdown(context.Background(), dir)
	require.NoError(t, err)

	assert.True(t, len(markdown) > 0)
	assert.Contains(t, markdown, "# Weeknight Pasta")
	assert.Contains(t, markdown, "## Ingredients")
	assert.Contains(t, markdown, "**garlic**")
	assert.NotContains(t, markdown, "track()")
}
