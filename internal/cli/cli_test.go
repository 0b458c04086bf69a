package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears the environment the commands read so tests only see --home
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range []string{
		"SCRAPBOOK_HOME", "SCRAPBOOK_DATA_DIR", "SCRAPBOOK_INDEX_FILE",
		"STORE_BACKEND", "LOG_DIR", "MOUNT_PRUNE_MISSING",
	} {
		t.Setenv(key, "")
	}
	return t.TempDir()
}

// run executes one command line against home and returns stdout, stderr
// and the exit code
func run(t *testing.T, home string, args ...string) (string, string, int) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd := NewRootCommand()
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)

	code := Execute(rootCmd, append([]string{"--home", home}, args...))
	return stdout.String(), stderr.String(), code
}

func savePage(t *testing.T, home, name, title string) string {
	t.Helper()
	dir := filepath.Join(home, "data", name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	html := "<html><head><title>" + title + "</title></head><body><p>" + title + " body</p></body></html>"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(html), 0644))
	return dir
}

func TestMount_CreatesHomeAndIndexesPages(t *testing.T) {
	home := isolate(t)

	out, _, code := run(t, home, "mount")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "created index")
	assert.FileExists(t, filepath.Join(home, ".structure.xml"))
	assert.DirExists(t, filepath.Join(home, "data"))

	page := savePage(t, home, "page1", "Example Domain")
	out, _, code = run(t, home, "mount")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "added Example Domain\t"+page)
	assert.NotContains(t, out, "created index")

	out, _, code = run(t, home, "tree")
	require.Equal(t, 0, code)
	assert.Equal(t, "root/\n  Example Domain\n", out)
}

func TestFolderCommands(t *testing.T) {
	home := isolate(t)

	_, _, code := run(t, home, "folder", "add", "root", "Work")
	require.Equal(t, 0, code)
	_, _, code = run(t, home, "folder", "add", "root/Work", "Notes")
	require.Equal(t, 0, code)
	_, _, code = run(t, home, "folder", "add", "root", "Archive")
	require.Equal(t, 0, code)

	_, stderr, code := run(t, home, "folder", "add", "root", "Work")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "operation denied: ")

	out, _, code := run(t, home, "folder", "rename", "root/Work", "Jobs")
	require.Equal(t, 0, code)
	assert.Equal(t, "renamed root/Work to root/Jobs\n", out)

	out, _, code = run(t, home, "folder", "mv", "root/Jobs", "root/Archive")
	require.Equal(t, 0, code)
	assert.Equal(t, "moved root/Jobs to root/Archive/Jobs\n", out)

	_, stderr, code = run(t, home, "folder", "mv", "root/Archive", "root/Archive/Jobs")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "operation denied: ")

	out, _, code = run(t, home, "ls", "root/Archive/Jobs")
	require.Equal(t, 0, code)
	assert.Equal(t, "Notes/\n", out)

	out, _, code = run(t, home, "folder", "rm", "root", "Archive")
	require.Equal(t, 0, code)
	assert.Equal(t, "removed root/Archive with 0 documents\n", out)

	out, _, code = run(t, home, "tree")
	require.Equal(t, 0, code)
	assert.Equal(t, "root/\n", out)
}

func TestDocumentCommands(t *testing.T) {
	home := isolate(t)
	page := savePage(t, home, "page1", "Example Domain")

	_, _, code := run(t, home, "folder", "add", "root", "Work")
	require.Equal(t, 0, code)

	out, _, code := run(t, home, "doc", "add", page, "root/Work", "--tag", "news", "--tag", "daily")
	require.Equal(t, 0, code)
	assert.Equal(t, "added Example Domain to root/Work\n", out)

	_, stderr, code := run(t, home, "doc", "add", page, "root", "--name", "Other")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "operation denied: ")

	out, _, code = run(t, home, "doc", "show", page)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "display_name: Example Domain")
	assert.Contains(t, out, "folder_path: root/Work")
	assert.Contains(t, out, "- news")
	assert.NotContains(t, out, "date_last_viewed")

	out, _, code = run(t, home, "doc", "view", page)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "date_last_viewed:")

	out, _, code = run(t, home, "search", "news", "--mode", "tag")
	require.Equal(t, 0, code)
	assert.Equal(t, "root/Work/Example Domain\t"+page+"\n", out)

	out, _, code = run(t, home, "search", "example", "--date", "today")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Example Domain")

	_, stderr, code = run(t, home, "search", "example", "--date", "yesterday")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "operation denied: ")

	out, _, code = run(t, home, "doc", "rename", page, "Renamed")
	require.Equal(t, 0, code)
	assert.Equal(t, "renamed to Renamed\n", out)

	out, _, code = run(t, home, "doc", "mv", page, "root")
	require.Equal(t, 0, code)
	assert.Equal(t, "moved Renamed to root\n", out)

	out, _, code = run(t, home, "doc", "tag", page, "archive")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "- archive")
	assert.NotContains(t, out, "- news")

	out, _, code = run(t, home, "doc", "export", page)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "# Example Domain")
	assert.Contains(t, out, "Example Domain body")

	out, _, code = run(t, home, "doc", "rm", page, "--purge")
	require.Equal(t, 0, code)
	assert.Equal(t, "removed "+page+"\npurged "+page+"\n", out)
	assert.NoDirExists(t, page)

	_, stderr, code = run(t, home, "doc", "show", page)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "operation denied: ")
}

func TestExecute_UnknownCommand(t *testing.T) {
	home := isolate(t)

	_, stderr, code := run(t, home, "frobnicate")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "error: ")
}
