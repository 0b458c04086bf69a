package vfs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrapbook/internal/domain"
	vfsSvc "scrapbook/internal/domain/services/vfs"
)

func TestFolderService_InsertFolder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	work := env.addFolder(t, "Work", "root")
	assert.Equal(t, "root/Work", work.FolderPath)

	_, err := env.folders.InsertFolder(ctx, &vfsSvc.InsertFolderRequest{Name: "Work", ParentFolderPath: "root"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)

	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "folder", conflict.ResourceType)
	assert.Equal(t, "root", conflict.FolderPath)

	// Same name in another directory is fine
	drafts := env.addFolder(t, "Work", "root/Work")
	assert.Equal(t, "root/Work/Work", drafts.FolderPath)

	tree := env.load(t)
	require.Len(t, tree.Root.Folders, 1)
	assertUniqueNames(t, tree)
}

func TestFolderService_InsertFolder_Invalid(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *vfsSvc.InsertFolderRequest
		wantErr error
	}{
		{"empty name", &vfsSvc.InsertFolderRequest{Name: "  ", ParentFolderPath: "root"}, domain.ErrValidation},
		{"slash in name", &vfsSvc.InsertFolderRequest{Name: "a/b", ParentFolderPath: "root"}, domain.ErrValidation},
		{"control character", &vfsSvc.InsertFolderRequest{Name: "a\x01b", ParentFolderPath: "root"}, domain.ErrValidation},
		{"invalid utf-8", &vfsSvc.InsertFolderRequest{Name: "a\xffb", ParentFolderPath: "root"}, domain.ErrValidation},
		{"bad parent path", &vfsSvc.InsertFolderRequest{Name: "a", ParentFolderPath: "nowhere"}, domain.ErrValidation},
		{"missing parent", &vfsSvc.InsertFolderRequest{Name: "a", ParentFolderPath: "root/Ghost"}, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.folders.InsertFolder(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Empty(t, env.load(t).Root.Folders)
}

func TestFolderService_DeleteFolder_Cascade(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addFolder(t, "Work", "root")
	env.addFolder(t, "Drafts", "root/Work")
	env.addDocument(t, "/data/one", "root/Work", "One")
	env.addDocument(t, "/data/two", "root/Work/Drafts", "Two")
	env.addDocument(t, "/data/keep", "root", "Keep")

	refs, err := env.folders.DeleteFolder(ctx, &vfsSvc.DeleteFolderRequest{Name: "Work", ParentFolderPath: "root"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/data/one", "/data/two"}, []string{refs[0].DocumentPath, refs[1].DocumentPath})
	assert.Equal(t, "one", refs[0].ID)

	tree := env.load(t)
	assert.Empty(t, tree.Root.Folders)
	assert.Len(t, tree.Root.Documents, 1)
	assert.Nil(t, tree.FindFolder("root/Work/Drafts"))

	// Former descendants are gone
	_, err = env.folders.DeleteFolder(ctx, &vfsSvc.DeleteFolderRequest{Name: "Drafts", ParentFolderPath: "root/Work"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.documents.DeleteDocument(ctx, &vfsSvc.DeleteDocumentRequest{DocumentPath: "/data/one", FolderPath: "root/Work"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.documents.GetDocument(ctx, "/data/two")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.folders.DeleteFolder(ctx, &vfsSvc.DeleteFolderRequest{Name: "Work", ParentFolderPath: "root"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFolderService_RenameFolder_Propagates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addFolder(t, "Books", "root")
	env.addFolder(t, "Bookshelf", "root")
	env.addFolder(t, "Old", "root/Books")
	env.addDocument(t, "/data/a", "root/Books", "A")
	env.addDocument(t, "/data/b", "root/Books/Old", "B")
	env.addDocument(t, "/data/c", "root/Bookshelf", "C")

	renamed, err := env.folders.RenameFolder(ctx, &vfsSvc.RenameFolderRequest{
		OldName:    "Books",
		NewName:    "Novels",
		FolderPath: "root/Books",
	})
	require.NoError(t, err)
	assert.Equal(t, "Novels", renamed.Name)
	assert.Equal(t, "root/Novels", renamed.FolderPath)

	tree := env.load(t)
	assert.Nil(t, tree.FindFolder("root/Books"))
	require.NotNil(t, tree.FindFolder("root/Novels/Old"))

	a, _ := tree.FindDocument("/data/a")
	b, _ := tree.FindDocument("/data/b")
	c, _ := tree.FindDocument("/data/c")
	assert.Equal(t, "root/Novels", a.FolderPath)
	assert.Equal(t, "root/Novels/Old", b.FolderPath)
	assert.Equal(t, "root/Bookshelf", c.FolderPath)
	assertUniqueNames(t, tree)
}

func TestFolderService_RenameFolder_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addFolder(t, "A", "root")
	env.addFolder(t, "B", "root")

	_, err := env.folders.RenameFolder(ctx, &vfsSvc.RenameFolderRequest{OldName: "A", NewName: "B", FolderPath: "root/A"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = env.folders.RenameFolder(ctx, &vfsSvc.RenameFolderRequest{OldName: "X", NewName: "C", FolderPath: "root/A"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.folders.RenameFolder(ctx, &vfsSvc.RenameFolderRequest{OldName: "root", NewName: "top", FolderPath: "root"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	tree := env.load(t)
	assert.NotNil(t, tree.FindFolder("root/A"))
	assert.NotNil(t, tree.FindFolder("root/B"))
}

func TestFolderService_MoveFolder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addFolder(t, "A", "root")
	env.addFolder(t, "Sub", "root/A")
	env.addFolder(t, "C", "root")
	env.addDocument(t, "/data/x", "root/A/Sub", "X")

	moved, err := env.folders.MoveFolder(ctx, &vfsSvc.MoveFolderRequest{
		TargetFolderPath:  "root/C",
		CurrentFolderPath: "root",
		FolderPath:        "root/A",
	})
	require.NoError(t, err)
	assert.Equal(t, "root/C/A", moved.FolderPath)

	tree := env.load(t)
	assert.Nil(t, tree.FindFolder("root/A"))
	require.NotNil(t, tree.FindFolder("root/C/A/Sub"))
	x, _ := tree.FindDocument("/data/x")
	assert.Equal(t, "root/C/A/Sub", x.FolderPath)
	assertUniqueNames(t, tree)
}

func TestFolderService_MoveFolder_Rejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addFolder(t, "A", "root")
	env.addFolder(t, "Sub", "root/A")
	env.addFolder(t, "B", "root")
	env.addFolder(t, "A", "root/B")
	before := env.indexBytes(t)

	tests := []struct {
		name    string
		req     *vfsSvc.MoveFolderRequest
		wantErr error
	}{
		{"into itself", &vfsSvc.MoveFolderRequest{TargetFolderPath: "root/A", CurrentFolderPath: "root", FolderPath: "root/A"}, domain.ErrValidation},
		{"into own subtree", &vfsSvc.MoveFolderRequest{TargetFolderPath: "root/A/Sub", CurrentFolderPath: "root", FolderPath: "root/A"}, domain.ErrValidation},
		{"name taken at target", &vfsSvc.MoveFolderRequest{TargetFolderPath: "root/B", CurrentFolderPath: "root", FolderPath: "root/A"}, domain.ErrConflict},
		{"target missing", &vfsSvc.MoveFolderRequest{TargetFolderPath: "root/Ghost", CurrentFolderPath: "root", FolderPath: "root/A"}, domain.ErrNotFound},
		{"wrong current folder", &vfsSvc.MoveFolderRequest{TargetFolderPath: "root/B", CurrentFolderPath: "root/B", FolderPath: "root/A"}, domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.folders.MoveFolder(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Equal(t, string(before), string(env.indexBytes(t)))
}

func TestFolderService_ListContents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addFolder(t, "A", "root")
	env.addFolder(t, "Deep", "root/A")
	env.addDocument(t, "/data/1", "root", "One")

	contents, err := env.folders.ListContents(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, "root", contents.FolderPath)
	require.Len(t, contents.Folders, 1)
	assert.Equal(t, "root/A", contents.Folders[0].FolderPath)
	require.Len(t, contents.Documents, 1)
	assert.Equal(t, "One", contents.Documents[0].DisplayName)

	_, err = env.folders.ListContents(ctx, "root/Missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFolderService_DescendantDocuments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addFolder(t, "A", "root")
	env.addFolder(t, "AB", "root")
	env.addFolder(t, "Deep", "root/A")
	env.addDocument(t, "/data/1", "root/A", "One")
	env.addDocument(t, "/data/2", "root/A/Deep", "Two")
	env.addDocument(t, "/data/3", "root/AB", "Three")

	docs, err := env.folders.DescendantDocuments(ctx, "root/A")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "/data/1", docs[0].DocumentPath)
	assert.Equal(t, "/data/2", docs[1].DocumentPath)
}

func TestFolderService_IsUniqueFolderName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addFolder(t, "Work", "root")

	unique, err := env.folders.IsUniqueFolderName(ctx, "Work", "root")
	require.NoError(t, err)
	assert.False(t, unique)

	unique, err = env.folders.IsUniqueFolderName(ctx, "work", "root")
	require.NoError(t, err)
	assert.True(t, unique)

	_, err = env.folders.IsUniqueFolderName(ctx, "x", "root/Nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFolderService_RenameFolder_UnstorableName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addFolder(t, "Work", "root")
	before := env.indexBytes(t)

	_, err := env.folders.RenameFolder(ctx, &vfsSvc.RenameFolderRequest{
		OldName:    "Work",
		NewName:    "Wo\x1frk",
		FolderPath: "root",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, string(before), string(env.indexBytes(t)))
}
