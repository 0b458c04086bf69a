package vfs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"scrapbook/internal/domain/models/vfs"
	"scrapbook/internal/domain/repositories"
	vfsRepo "scrapbook/internal/domain/repositories/vfs"
	vfsSvc "scrapbook/internal/domain/services/vfs"
)

// MountConfig holds the on-disk locations a mount prepares
type MountConfig struct {
	Home         string // App home directory
	DataDir      string // Parent of all content directories
	PruneMissing bool   // Drop entries whose content directory is gone
}

type mountService struct {
	store     vfsRepo.TreeStore
	txManager repositories.TransactionManager
	content   vfsSvc.ContentStore
	cfg       MountConfig
	logger    *slog.Logger
}

// NewMountService creates a new mount service
func NewMountService(
	store vfsRepo.TreeStore,
	txManager repositories.TransactionManager,
	content vfsSvc.ContentStore,
	cfg MountConfig,
	logger *slog.Logger,
) vfsSvc.MountService {
	return &mountService{
		store:     store,
		txManager: txManager,
		content:   content,
		cfg:       cfg,
		logger:    logger,
	}
}

// pendingPage is a content directory read before the index is locked
type pendingPage struct {
	documentPath string
	info         *vfsSvc.PageInfo
}

// Mount makes sure the home directory, data directory and index exist, then
// indexes every content directory that is not indexed yet at the root
// folder. All index changes are written at once.
func (s *mountService) Mount(ctx context.Context) (*vfsSvc.MountResult, error) {
	for _, dir := range []string{s.cfg.Home, s.cfg.DataDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	created, err := s.store.Init(ctx)
	if err != nil {
		return nil, fmt.Errorf("init index: %w", err)
	}

	result := &vfsSvc.MountResult{
		IndexCreated: created,
		Added:        make([]*vfs.Document, 0),
		Pruned:       make([]vfs.DocumentRef, 0),
		Skipped:      make([]string, 0),
	}

	dirs, err := s.content.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}

	// Read pages outside the write cycle
	pages := make([]pendingPage, 0, len(dirs))
	for _, dir := range dirs {
		if !IsXMLText(dir) {
			s.logger.Warn("skipping page with unstorable path", "document_path", strings.ToValidUTF8(dir, "?"))
			result.Skipped = append(result.Skipped, dir)
			continue
		}
		info, err := s.content.Inspect(ctx, dir)
		if err != nil {
			s.logger.Warn("skipping unreadable page", "document_path", dir, "error", err)
			result.Skipped = append(result.Skipped, dir)
			continue
		}
		pages = append(pages, pendingPage{documentPath: dir, info: info})
	}

	err = s.txManager.ExecTx(ctx, func(_ context.Context, tree *vfs.Tree) error {
		if s.cfg.PruneMissing {
			result.Pruned = s.prune(tree)
		}

		for _, page := range pages {
			if tree.ContainsDocument(page.documentPath) {
				continue
			}

			name := uniqueDisplayName(tree.Root, pageTitle(page.info.Title, page.documentPath))

			doc := vfs.NewDocument(page.documentPath, tree.Root.FolderPath, name, nil, pageTags(page.info.Tags))
			tree.Root.Documents = append(tree.Root.Documents, doc)
			result.Added = append(result.Added, doc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("scrapbook mounted",
		"index", s.store.Location(),
		"index_created", created,
		"added", len(result.Added),
		"pruned", len(result.Pruned),
		"skipped", len(result.Skipped),
	)

	return result, nil
}

// prune removes documents whose content directory no longer exists
func (s *mountService) prune(tree *vfs.Tree) []vfs.DocumentRef {
	pruned := make([]vfs.DocumentRef, 0)
	tree.Root.Walk(func(folder *vfs.Folder) bool {
		kept := folder.Documents[:0]
		for _, doc := range folder.Documents {
			if s.content.HasContent(doc.DocumentPath) {
				kept = append(kept, doc)
				continue
			}
			s.logger.Debug("pruning missing page", "document_path", doc.DocumentPath, "folder_path", folder.FolderPath)
			pruned = append(pruned, doc.Ref())
		}
		folder.Documents = kept
		return true
	})
	return pruned
}

// uniqueDisplayName returns name, or name with the first free " (n)"
// suffix when folder already has a document called name
func uniqueDisplayName(folder *vfs.Folder, name string) string {
	if folder.DocumentByName(name) == nil {
		return name
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", name, n)
		if folder.DocumentByName(candidate) == nil {
			return candidate
		}
	}
}
