package vfs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"scrapbook/internal/domain/models/vfs"
	"scrapbook/internal/domain/repositories"
	vfsRepo "scrapbook/internal/domain/repositories/vfs"
	vfsSvc "scrapbook/internal/domain/services/vfs"
	"scrapbook/internal/repository"
	"scrapbook/internal/repository/xmlstore"
	"scrapbook/internal/service/vfs/content"
)

// testEnv wires every service against an index file in a temp directory
type testEnv struct {
	home      string
	dataDir   string
	indexPath string
	store     vfsRepo.TreeStore
	txManager repositories.TransactionManager
	content   *content.Store
	folders   vfsSvc.FolderService
	documents vfsSvc.DocumentService
	search    vfsSvc.SearchService
	tree      vfsSvc.TreeService
	now       time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	home := t.TempDir()
	env := &testEnv{
		home:      home,
		dataDir:   filepath.Join(home, "data"),
		indexPath: filepath.Join(home, ".structure.xml"),
		now:       time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return env.now }

	env.store = xmlstore.NewFileStore(env.indexPath, logger)
	_, err := env.store.Init(context.Background())
	require.NoError(t, err)

	env.txManager = repository.NewTransactionManager(env.store)
	env.content = content.NewStore(env.dataDir, logger)
	resolver := NewPathResolver()

	env.folders = NewFolderService(env.txManager, resolver, logger)
	env.documents = NewDocumentService(env.txManager, resolver, env.content, clock, logger)
	env.search = NewSearchService(env.txManager, resolver, clock, logger)
	env.tree = NewTreeService(env.txManager, logger)
	return env
}

// load reads the index straight from disk
func (e *testEnv) load(t *testing.T) *vfs.Tree {
	t.Helper()
	tree, err := e.store.Load(context.Background())
	require.NoError(t, err)
	return tree
}

// indexBytes returns the raw index file
func (e *testEnv) indexBytes(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(e.indexPath)
	require.NoError(t, err)
	return data
}

func (e *testEnv) addFolder(t *testing.T, name, parent string) *vfs.Folder {
	t.Helper()
	folder, err := e.folders.InsertFolder(context.Background(), &vfsSvc.InsertFolderRequest{
		Name:             name,
		ParentFolderPath: parent,
	})
	require.NoError(t, err)
	return folder
}

func (e *testEnv) addDocument(t *testing.T, documentPath, folderPath, displayName string) *vfs.Document {
	t.Helper()
	doc, err := e.documents.InsertDocument(context.Background(), &vfsSvc.InsertDocumentRequest{
		DocumentPath: documentPath,
		FolderPath:   folderPath,
		DisplayName:  displayName,
	})
	require.NoError(t, err)
	return doc
}

// assertUniqueNames checks sibling name uniqueness and global document
// path uniqueness across the whole tree
func assertUniqueNames(t *testing.T, tree *vfs.Tree) {
	t.Helper()
	paths := map[string]bool{}
	tree.Root.Walk(func(folder *vfs.Folder) bool {
		folderNames := map[string]bool{}
		for _, child := range folder.Folders {
			require.False(t, folderNames[child.Name], "duplicate folder %q in %q", child.Name, folder.FolderPath)
			folderNames[child.Name] = true
			require.Equal(t, folder.FolderPath+"/"+child.Name, child.FolderPath)
		}
		docNames := map[string]bool{}
		for _, doc := range folder.Documents {
			require.False(t, docNames[doc.DisplayName], "duplicate document %q in %q", doc.DisplayName, folder.FolderPath)
			docNames[doc.DisplayName] = true
			require.False(t, paths[doc.DocumentPath], "document path %q indexed twice", doc.DocumentPath)
			paths[doc.DocumentPath] = true
			require.Equal(t, folder.FolderPath, doc.FolderPath)
			require.Equal(t, doc.DisplayName, doc.Metadata.Title)
		}
		return true
	})
}
