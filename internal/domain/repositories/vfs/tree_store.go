package vfs

import (
	"context"

	"scrapbook/internal/domain/models/vfs"
)

// TreeStore persists the whole index as a single document
type TreeStore interface {
	// Init creates an empty index if none exists.
	// Returns true if a new index was created.
	Init(ctx context.Context) (bool, error)

	// Load reads and decodes the whole index
	Load(ctx context.Context) (*vfs.Tree, error)

	// Save encodes and overwrites the whole index
	Save(ctx context.Context, tree *vfs.Tree) error

	// Location describes where the index lives (for logging)
	Location() string
}
