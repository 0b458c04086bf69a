package vfs

import (
	"fmt"

	"scrapbook/internal/domain"
	"scrapbook/internal/domain/models/vfs"
	vfsSvc "scrapbook/internal/domain/services/vfs"
)

type pathResolver struct{}

// NewPathResolver creates a new path resolver
func NewPathResolver() vfsSvc.PathResolver {
	return &pathResolver{}
}

// Resolve walks folderPath segment by segment from the root folder.
// A path that does not start at the root resolves nothing.
func (r *pathResolver) Resolve(tree *vfs.Tree, folderPath string) vfsSvc.Resolution {
	segments := SplitPath(folderPath)
	if len(segments) == 0 || segments[0] != vfs.RootName {
		return vfsSvc.Resolution{Missing: segments}
	}

	current := tree.Root
	for i, segment := range segments[1:] {
		child := current.ChildFolder(segment)
		if child == nil {
			return vfsSvc.Resolution{
				Folder:   current,
				Resolved: current.FolderPath,
				Missing:  segments[i+1:],
			}
		}
		current = child
	}

	return vfsSvc.Resolution{
		Folder:   current,
		Found:    true,
		Resolved: current.FolderPath,
		Missing:  []string{},
	}
}

// ResolveFolder returns the folder at folderPath
func (r *pathResolver) ResolveFolder(tree *vfs.Tree, folderPath string) (*vfs.Folder, error) {
	if err := r.ValidateFolderPath(folderPath); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	res := r.Resolve(tree, folderPath)
	if !res.Found {
		return nil, &domain.PathUnresolvedError{Path: folderPath, Resolved: res.Resolved}
	}
	return res.Folder, nil
}

// ValidateFolderPath validates a folder path
func (r *pathResolver) ValidateFolderPath(folderPath string) error {
	return ValidateFolderPath(folderPath)
}
