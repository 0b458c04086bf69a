package vfs

import (
	"context"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"scrapbook/internal/config"
	"scrapbook/internal/domain"
	"scrapbook/internal/domain/models/vfs"
	"scrapbook/internal/domain/repositories"
	vfsSvc "scrapbook/internal/domain/services/vfs"
)

type documentService struct {
	txManager    repositories.TransactionManager
	pathResolver vfsSvc.PathResolver
	content      vfsSvc.ContentStore
	now          func() time.Time
	logger       *slog.Logger
}

// NewDocumentService creates a new document service.
// content is used to read page titles when a document is inserted without
// a display name.
func NewDocumentService(
	txManager repositories.TransactionManager,
	pathResolver vfsSvc.PathResolver,
	content vfsSvc.ContentStore,
	now func() time.Time,
	logger *slog.Logger,
) vfsSvc.DocumentService {
	if now == nil {
		now = time.Now
	}
	return &documentService{
		txManager:    txManager,
		pathResolver: pathResolver,
		content:      content,
		now:          now,
		logger:       logger,
	}
}

// InsertDocument adds a document to req.FolderPath.
// The document path must not be indexed anywhere yet and the display name
// must be free in the target folder.
func (s *documentService) InsertDocument(ctx context.Context, req *vfsSvc.InsertDocumentRequest) (*vfs.Document, error) {
	req.DocumentPath = cleanDocumentPath(req.DocumentPath)
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	req.Tags = normalizeTags(req.Tags)
	if err := validation.ValidateStruct(req,
		validation.Field(&req.DocumentPath, validation.Required, validation.Length(1, config.MaxDocumentPathLength), xmlTextRule),
		validation.Field(&req.FolderPath, folderPathRule),
		validation.Field(&req.DisplayName, validation.Length(0, config.MaxDocumentNameLength), xmlTextRule),
		validation.Field(&req.Tags, tagRules()...),
	); err != nil {
		return nil, invalid(err)
	}

	displayName := req.DisplayName
	tags := req.Tags
	if displayName == "" || tags == nil {
		info := s.inspect(ctx, req.DocumentPath)
		if displayName == "" {
			displayName = info.Title
		}
		if tags == nil {
			tags = info.Tags
		}
	}

	// Stored with second precision
	var viewed *time.Time
	if req.DateLastViewed != nil {
		t := req.DateLastViewed.Truncate(time.Second)
		viewed = &t
	}

	var doc *vfs.Document
	err := s.txManager.ExecTx(ctx, func(_ context.Context, tree *vfs.Tree) error {
		folder, err := s.pathResolver.ResolveFolder(tree, req.FolderPath)
		if err != nil {
			return err
		}

		if existing, parent := tree.FindDocument(req.DocumentPath); existing != nil {
			return documentPathConflict(parent.FolderPath, req.DocumentPath)
		}

		if folder.DocumentByName(displayName) != nil {
			return documentNameConflict(folder.FolderPath, displayName)
		}

		doc = vfs.NewDocument(req.DocumentPath, folder.FolderPath, displayName, viewed, tags)
		folder.Documents = append(folder.Documents, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document inserted",
		"id", doc.ID,
		"document_path", doc.DocumentPath,
		"folder_path", doc.FolderPath,
		"display_name", doc.DisplayName,
	)

	return doc, nil
}

// inspect reads title and tags from the content directory. The title falls
// back to the last segment of the document path.
func (s *documentService) inspect(ctx context.Context, documentPath string) *vfsSvc.PageInfo {
	fallback := &vfsSvc.PageInfo{Title: vfs.DocumentID(documentPath)}
	if s.content == nil {
		return fallback
	}

	info, err := s.content.Inspect(ctx, documentPath)
	if err != nil {
		s.logger.Debug("page not readable, using directory name",
			"document_path", documentPath,
			"error", err,
		)
		return fallback
	}

	info.Title = pageTitle(info.Title, documentPath)
	info.Tags = pageTags(info.Tags)
	return info
}

// DeleteDocument removes the document from req.FolderPath
func (s *documentService) DeleteDocument(ctx context.Context, req *vfsSvc.DeleteDocumentRequest) (*vfs.DocumentRef, error) {
	req.DocumentPath = cleanDocumentPath(req.DocumentPath)
	if err := validation.ValidateStruct(req,
		validation.Field(&req.DocumentPath, validation.Required),
		validation.Field(&req.FolderPath, folderPathRule),
	); err != nil {
		return nil, invalid(err)
	}

	var ref vfs.DocumentRef
	err := s.txManager.ExecTx(ctx, func(_ context.Context, tree *vfs.Tree) error {
		folder, err := s.pathResolver.ResolveFolder(tree, req.FolderPath)
		if err != nil {
			return err
		}

		removed := folder.RemoveDocument(req.DocumentPath)
		if removed == nil {
			return domain.NewNotFound("document %q not found in %q", req.DocumentPath, req.FolderPath)
		}
		ref = removed.Ref()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document deleted",
		"id", ref.ID,
		"document_path", ref.DocumentPath,
		"folder_path", req.FolderPath,
	)

	return &ref, nil
}

// RenameDocument sets the display name (and title) of the document with
// req.DocumentPath wherever it lives in the tree
func (s *documentService) RenameDocument(ctx context.Context, req *vfsSvc.RenameDocumentRequest) (*vfs.Document, error) {
	req.DocumentPath = cleanDocumentPath(req.DocumentPath)
	req.NewDisplayName = strings.TrimSpace(req.NewDisplayName)
	if err := validation.ValidateStruct(req,
		validation.Field(&req.NewDisplayName, validation.Required, validation.Length(1, config.MaxDocumentNameLength), xmlTextRule),
		validation.Field(&req.DocumentPath, validation.Required),
	); err != nil {
		return nil, invalid(err)
	}

	var doc *vfs.Document
	err := s.txManager.ExecTx(ctx, func(_ context.Context, tree *vfs.Tree) error {
		var folder *vfs.Folder
		doc, folder = tree.FindDocument(req.DocumentPath)
		if doc == nil {
			return domain.NewNotFound("document %q not found", req.DocumentPath)
		}

		if other := folder.DocumentByName(req.NewDisplayName); other != nil && other != doc {
			return documentNameConflict(folder.FolderPath, req.NewDisplayName)
		}

		doc.Rename(req.NewDisplayName)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document renamed",
		"document_path", doc.DocumentPath,
		"display_name", doc.DisplayName,
	)

	return doc, nil
}

// MoveDocument detaches the document from req.CurrentFolderPath and
// attaches it to req.TargetFolderPath in a single write. On a name
// collision nothing changes.
func (s *documentService) MoveDocument(ctx context.Context, req *vfsSvc.MoveDocumentRequest) (*vfs.Document, error) {
	req.DocumentPath = cleanDocumentPath(req.DocumentPath)
	if err := validation.ValidateStruct(req,
		validation.Field(&req.TargetFolderPath, folderPathRule),
		validation.Field(&req.CurrentFolderPath, folderPathRule),
		validation.Field(&req.DocumentPath, validation.Required),
	); err != nil {
		return nil, invalid(err)
	}

	var doc *vfs.Document
	err := s.txManager.ExecTx(ctx, func(_ context.Context, tree *vfs.Tree) error {
		current, err := s.pathResolver.ResolveFolder(tree, req.CurrentFolderPath)
		if err != nil {
			return err
		}

		doc = current.Document(req.DocumentPath)
		if doc == nil {
			return domain.NewNotFound("document %q not found in %q", req.DocumentPath, req.CurrentFolderPath)
		}

		target, err := s.pathResolver.ResolveFolder(tree, req.TargetFolderPath)
		if err != nil {
			return err
		}

		if target == current {
			return nil
		}

		if target.DocumentByName(doc.DisplayName) != nil {
			return documentNameConflict(target.FolderPath, doc.DisplayName)
		}

		current.RemoveDocument(doc.DocumentPath)
		doc.FolderPath = target.FolderPath
		target.Documents = append(target.Documents, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document moved",
		"document_path", doc.DocumentPath,
		"from", req.CurrentFolderPath,
		"to", doc.FolderPath,
	)

	return doc, nil
}

// SetTags replaces the tags of a document
func (s *documentService) SetTags(ctx context.Context, req *vfsSvc.SetTagsRequest) (*vfs.Document, error) {
	req.DocumentPath = cleanDocumentPath(req.DocumentPath)
	req.Tags = normalizeTags(req.Tags)
	if err := validation.ValidateStruct(req,
		validation.Field(&req.DocumentPath, validation.Required),
		validation.Field(&req.Tags, tagRules()...),
	); err != nil {
		return nil, invalid(err)
	}

	var doc *vfs.Document
	err := s.txManager.ExecTx(ctx, func(_ context.Context, tree *vfs.Tree) error {
		doc, _ = tree.FindDocument(req.DocumentPath)
		if doc == nil {
			return domain.NewNotFound("document %q not found", req.DocumentPath)
		}
		doc.Metadata.Tags = req.Tags
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document tags updated",
		"document_path", doc.DocumentPath,
		"tags", len(doc.Metadata.Tags),
	)

	return doc, nil
}

// MarkViewed stamps the document's last viewed date with the current time
func (s *documentService) MarkViewed(ctx context.Context, documentPath string) (*vfs.Document, error) {
	documentPath = cleanDocumentPath(documentPath)
	if documentPath == "" {
		return nil, domain.NewValidation("document_path is required")
	}

	var doc *vfs.Document
	err := s.txManager.ExecTx(ctx, func(_ context.Context, tree *vfs.Tree) error {
		doc, _ = tree.FindDocument(documentPath)
		if doc == nil {
			return domain.NewNotFound("document %q not found", documentPath)
		}
		// Stored with second precision
		viewed := s.now().Truncate(time.Second)
		doc.Metadata.DateLastViewed = &viewed
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("document viewed", "document_path", documentPath)
	return doc, nil
}

// GetDocument finds a document anywhere in the tree
func (s *documentService) GetDocument(ctx context.Context, documentPath string) (*vfs.Document, error) {
	documentPath = cleanDocumentPath(documentPath)
	var doc *vfs.Document
	err := s.txManager.ReadTx(ctx, func(_ context.Context, tree *vfs.Tree) error {
		doc, _ = tree.FindDocument(documentPath)
		if doc == nil {
			return domain.NewNotFound("document %q not found", documentPath)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ContainsDocument reports whether documentPath is indexed in any folder
func (s *documentService) ContainsDocument(ctx context.Context, documentPath string) (bool, error) {
	documentPath = cleanDocumentPath(documentPath)
	found := false
	err := s.txManager.ReadTx(ctx, func(_ context.Context, tree *vfs.Tree) error {
		found = tree.ContainsDocument(documentPath)
		return nil
	})
	return found, err
}

// IsUniqueDocumentName reports whether folderPath holds no document named displayName
func (s *documentService) IsUniqueDocumentName(ctx context.Context, displayName, folderPath string) (bool, error) {
	unique := false
	err := s.txManager.ReadTx(ctx, func(_ context.Context, tree *vfs.Tree) error {
		folder, err := s.pathResolver.ResolveFolder(tree, folderPath)
		if err != nil {
			return err
		}
		unique = folder.DocumentByName(strings.TrimSpace(displayName)) == nil
		return nil
	})
	return unique, err
}
