package vfs

import (
	"context"
	"log/slog"

	"scrapbook/internal/domain/models/vfs"
	"scrapbook/internal/domain/repositories"
	vfsSvc "scrapbook/internal/domain/services/vfs"
)

type treeService struct {
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(txManager repositories.TransactionManager, logger *slog.Logger) vfsSvc.TreeService {
	return &treeService{
		txManager: txManager,
		logger:    logger,
	}
}

// GetTree returns the whole index
func (s *treeService) GetTree(ctx context.Context) (*vfs.Tree, error) {
	var result *vfs.Tree
	err := s.txManager.ReadTx(ctx, func(_ context.Context, tree *vfs.Tree) error {
		result = tree
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("tree loaded", "documents", len(result.Documents()))
	return result, nil
}
