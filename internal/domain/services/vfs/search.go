package vfs

import (
	"context"

	"scrapbook/internal/domain/models/vfs"
)

// SearchService handles document search over the index
type SearchService interface {
	// Search finds documents by title or tag, limited by scope and date filter
	Search(ctx context.Context, opts *vfs.SearchOptions) (*vfs.SearchResults, error)
}
