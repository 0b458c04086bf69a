package vfs

import (
	"context"

	"scrapbook/internal/domain/models/vfs"
)

// FolderService handles folder mutations and listings on the index
type FolderService interface {
	// InsertFolder creates an empty folder under a parent folder
	InsertFolder(ctx context.Context, req *InsertFolderRequest) (*vfs.Folder, error)

	// DeleteFolder removes a folder and its subtree. The removed documents
	// are returned so their content directories can be cleaned up.
	DeleteFolder(ctx context.Context, req *DeleteFolderRequest) ([]vfs.DocumentRef, error)

	// RenameFolder renames a folder and rewrites every descendant path
	RenameFolder(ctx context.Context, req *RenameFolderRequest) (*vfs.Folder, error)

	// MoveFolder moves a folder under another folder in one write
	MoveFolder(ctx context.Context, req *MoveFolderRequest) (*vfs.Folder, error)

	// ListContents lists the direct children of a folder
	ListContents(ctx context.Context, folderPath string) (*vfs.FolderContents, error)

	// DescendantDocuments returns every document at or below folderPath
	DescendantDocuments(ctx context.Context, folderPath string) ([]*vfs.Document, error)

	// IsUniqueFolderName reports whether parentFolderPath has no child named name
	IsUniqueFolderName(ctx context.Context, name, parentFolderPath string) (bool, error)
}

// InsertFolderRequest represents a folder creation request
type InsertFolderRequest struct {
	Name             string `json:"name"`
	ParentFolderPath string `json:"parent_folder_path"`
}

// DeleteFolderRequest represents a folder removal request
type DeleteFolderRequest struct {
	Name             string `json:"name"`
	ParentFolderPath string `json:"parent_folder_path"`
}

// RenameFolderRequest renames the folder at FolderPath whose name is OldName
type RenameFolderRequest struct {
	OldName    string `json:"old_name"`
	NewName    string `json:"new_name"`
	FolderPath string `json:"folder_path"`
}

// MoveFolderRequest moves the folder at FolderPath (a child of
// CurrentFolderPath) under TargetFolderPath
type MoveFolderRequest struct {
	TargetFolderPath  string `json:"target_folder_path"`
	CurrentFolderPath string `json:"current_folder_path"`
	FolderPath        string `json:"folder_path"`
}
