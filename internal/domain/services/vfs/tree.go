package vfs

import (
	"context"

	"scrapbook/internal/domain/models/vfs"
)

// TreeService returns the whole index for rendering
type TreeService interface {
	GetTree(ctx context.Context) (*vfs.Tree, error)
}
