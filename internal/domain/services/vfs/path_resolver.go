package vfs

import (
	"scrapbook/internal/domain/models/vfs"
)

// Resolution is the outcome of walking a virtual folder path.
// When Found is false, Folder is the deepest ancestor that exists and
// Missing lists the segments that could not be walked.
type Resolution struct {
	Folder   *vfs.Folder
	Found    bool
	Resolved string   // Folder path of Folder
	Missing  []string // Unresolved segments, empty when Found
}

// PathResolver maps virtual folder paths onto a loaded tree
type PathResolver interface {
	// Resolve walks folderPath from the root folder
	Resolve(tree *vfs.Tree, folderPath string) Resolution

	// ResolveFolder returns the folder at folderPath, or a
	// *domain.PathUnresolvedError when any segment is missing
	ResolveFolder(tree *vfs.Tree, folderPath string) (*vfs.Folder, error)

	// ValidateFolderPath checks the syntax of a virtual folder path
	ValidateFolderPath(folderPath string) error
}
