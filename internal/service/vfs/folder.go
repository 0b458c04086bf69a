package vfs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"scrapbook/internal/config"
	"scrapbook/internal/domain"
	"scrapbook/internal/domain/models/vfs"
	"scrapbook/internal/domain/repositories"
	vfsSvc "scrapbook/internal/domain/services/vfs"
)

type folderService struct {
	txManager    repositories.TransactionManager
	pathResolver vfsSvc.PathResolver
	logger       *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	txManager repositories.TransactionManager,
	pathResolver vfsSvc.PathResolver,
	logger *slog.Logger,
) vfsSvc.FolderService {
	return &folderService{
		txManager:    txManager,
		pathResolver: pathResolver,
		logger:       logger,
	}
}

// InsertFolder creates an empty folder under req.ParentFolderPath
func (s *folderService) InsertFolder(ctx context.Context, req *vfsSvc.InsertFolderRequest) (*vfs.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, nameRule(config.MaxFolderNameLength)),
		validation.Field(&req.ParentFolderPath, folderPathRule),
	); err != nil {
		return nil, invalid(err)
	}

	var created *vfs.Folder
	err := s.txManager.ExecTx(ctx, func(_ context.Context, tree *vfs.Tree) error {
		parent, err := s.pathResolver.ResolveFolder(tree, req.ParentFolderPath)
		if err != nil {
			return err
		}

		if parent.ChildFolder(req.Name) != nil {
			return folderConflict(parent.FolderPath, req.Name)
		}

		if len(JoinPath(parent.FolderPath, req.Name)) > config.MaxFolderPathLength {
			return fmt.Errorf("%w: folder path exceeds maximum length of %d", domain.ErrValidation, config.MaxFolderPathLength)
		}

		created = vfs.NewFolder(req.Name, parent.FolderPath)
		parent.Folders = append(parent.Folders, created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"name", created.Name,
		"folder_path", created.FolderPath,
	)

	return created, nil
}

// DeleteFolder removes the named folder and its whole subtree
func (s *folderService) DeleteFolder(ctx context.Context, req *vfsSvc.DeleteFolderRequest) ([]vfs.DocumentRef, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.ParentFolderPath, folderPathRule),
	); err != nil {
		return nil, invalid(err)
	}

	var (
		removed *vfs.Folder
		refs    []vfs.DocumentRef
	)
	err := s.txManager.ExecTx(ctx, func(_ context.Context, tree *vfs.Tree) error {
		parent, err := s.pathResolver.ResolveFolder(tree, req.ParentFolderPath)
		if err != nil {
			return err
		}

		removed = parent.RemoveFolder(req.Name)
		if removed == nil {
			return domain.NewNotFound("folder %q not found in %q", req.Name, req.ParentFolderPath)
		}

		refs = make([]vfs.DocumentRef, 0)
		for _, doc := range removed.AllDocuments() {
			refs = append(refs, doc.Ref())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder deleted",
		"name", removed.Name,
		"folder_path", removed.FolderPath,
		"documents_removed", len(refs),
	)

	return refs, nil
}

// RenameFolder renames the folder at req.FolderPath and rewrites the folder
// path of everything below it
func (s *folderService) RenameFolder(ctx context.Context, req *vfsSvc.RenameFolderRequest) (*vfs.Folder, error) {
	req.NewName = strings.TrimSpace(req.NewName)
	if err := validation.ValidateStruct(req,
		validation.Field(&req.OldName, validation.Required),
		validation.Field(&req.NewName, nameRule(config.MaxFolderNameLength)),
		validation.Field(&req.FolderPath, folderPathRule),
	); err != nil {
		return nil, invalid(err)
	}

	if req.FolderPath == vfs.RootName {
		return nil, fmt.Errorf("%w: the root folder cannot be renamed", domain.ErrValidation)
	}

	var (
		folder  *vfs.Folder
		oldPath = req.FolderPath
	)
	err := s.txManager.ExecTx(ctx, func(_ context.Context, tree *vfs.Tree) error {
		parent, err := s.pathResolver.ResolveFolder(tree, ParentPath(oldPath))
		if err != nil {
			return err
		}

		folder = parent.ChildFolder(BaseName(oldPath))
		if folder == nil || folder.Name != req.OldName {
			return domain.NewNotFound("folder %q not found at %q", req.OldName, oldPath)
		}

		if req.NewName == folder.Name {
			return nil
		}

		if parent.ChildFolder(req.NewName) != nil {
			return folderConflict(parent.FolderPath, req.NewName)
		}

		newPath := JoinPath(parent.FolderPath, req.NewName)
		if len(newPath) > config.MaxFolderPathLength {
			return fmt.Errorf("%w: folder path exceeds maximum length of %d", domain.ErrValidation, config.MaxFolderPathLength)
		}

		folder.Name = req.NewName
		rewritten := rebaseSubtree(folder, oldPath, newPath)

		s.logger.Debug("folder paths rewritten",
			"old_path", oldPath,
			"new_path", newPath,
			"nodes", rewritten,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder renamed",
		"old_path", oldPath,
		"new_path", folder.FolderPath,
	)

	return folder, nil
}

// MoveFolder detaches the folder at req.FolderPath from req.CurrentFolderPath
// and attaches it under req.TargetFolderPath in a single write
func (s *folderService) MoveFolder(ctx context.Context, req *vfsSvc.MoveFolderRequest) (*vfs.Folder, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.TargetFolderPath, folderPathRule),
		validation.Field(&req.CurrentFolderPath, folderPathRule),
		validation.Field(&req.FolderPath, folderPathRule),
	); err != nil {
		return nil, invalid(err)
	}

	if req.FolderPath == vfs.RootName {
		return nil, fmt.Errorf("%w: the root folder cannot be moved", domain.ErrValidation)
	}
	if ParentPath(req.FolderPath) != req.CurrentFolderPath {
		return nil, fmt.Errorf("%w: folder %q is not inside %q", domain.ErrValidation, req.FolderPath, req.CurrentFolderPath)
	}
	if HasPathPrefix(req.TargetFolderPath, req.FolderPath) {
		return nil, fmt.Errorf("%w: cannot move folder %q into itself or one of its subfolders", domain.ErrValidation, req.FolderPath)
	}

	var (
		folder  *vfs.Folder
		oldPath = req.FolderPath
	)
	err := s.txManager.ExecTx(ctx, func(_ context.Context, tree *vfs.Tree) error {
		current, err := s.pathResolver.ResolveFolder(tree, req.CurrentFolderPath)
		if err != nil {
			return err
		}

		name := BaseName(oldPath)
		folder = current.ChildFolder(name)
		if folder == nil {
			return domain.NewNotFound("folder %q not found in %q", name, req.CurrentFolderPath)
		}

		target, err := s.pathResolver.ResolveFolder(tree, req.TargetFolderPath)
		if err != nil {
			return err
		}

		if target == current {
			return nil
		}

		if target.ChildFolder(name) != nil {
			return folderConflict(target.FolderPath, name)
		}

		newPath := JoinPath(target.FolderPath, name)
		deepest := 0
		folder.Walk(func(f *vfs.Folder) bool {
			if n := len(f.FolderPath) - len(oldPath) + len(newPath); n > deepest {
				deepest = n
			}
			return true
		})
		if deepest > config.MaxFolderPathLength {
			return fmt.Errorf("%w: folder path exceeds maximum length of %d", domain.ErrValidation, config.MaxFolderPathLength)
		}

		current.RemoveFolder(name)
		rebaseSubtree(folder, oldPath, newPath)
		target.Folders = append(target.Folders, folder)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder moved",
		"old_path", oldPath,
		"new_path", folder.FolderPath,
	)

	return folder, nil
}

// ListContents lists the direct child folders and documents of folderPath
func (s *folderService) ListContents(ctx context.Context, folderPath string) (*vfs.FolderContents, error) {
	var contents *vfs.FolderContents
	err := s.txManager.ReadTx(ctx, func(_ context.Context, tree *vfs.Tree) error {
		folder, err := s.pathResolver.ResolveFolder(tree, folderPath)
		if err != nil {
			return err
		}

		contents = &vfs.FolderContents{
			FolderPath: folder.FolderPath,
			Folders:    make([]vfs.FolderSummary, 0, len(folder.Folders)),
			Documents:  folder.Documents,
		}
		for _, child := range folder.Folders {
			contents.Folders = append(contents.Folders, vfs.FolderSummary{
				Name:       child.Name,
				FolderPath: child.FolderPath,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return contents, nil
}

// DescendantDocuments returns every document at or below folderPath in
// traversal order
func (s *folderService) DescendantDocuments(ctx context.Context, folderPath string) ([]*vfs.Document, error) {
	var docs []*vfs.Document
	err := s.txManager.ReadTx(ctx, func(_ context.Context, tree *vfs.Tree) error {
		folder, err := s.pathResolver.ResolveFolder(tree, folderPath)
		if err != nil {
			return err
		}

		docs = make([]*vfs.Document, 0)
		for _, doc := range folder.AllDocuments() {
			if HasPathPrefix(doc.FolderPath, folder.FolderPath) {
				docs = append(docs, doc)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// IsUniqueFolderName reports whether parentFolderPath has no child folder named name
func (s *folderService) IsUniqueFolderName(ctx context.Context, name, parentFolderPath string) (bool, error) {
	unique := false
	err := s.txManager.ReadTx(ctx, func(_ context.Context, tree *vfs.Tree) error {
		parent, err := s.pathResolver.ResolveFolder(tree, parentFolderPath)
		if err != nil {
			return err
		}
		unique = parent.ChildFolder(strings.TrimSpace(name)) == nil
		return nil
	})
	return unique, err
}
