package vfs

import (
	"context"
)

// PageInfo holds the attributes read from a saved page's content directory
type PageInfo struct {
	Title string
	Tags  []string
}

// ContentStore gives access to saved page content on disk.
// Content is owned by the caller of the index; the index only references it.
type ContentStore interface {
	// Inspect reads the page title and tags from a content directory
	Inspect(ctx context.Context, documentPath string) (*PageInfo, error)

	// Exists reports whether a content directory holds a saved page
	Exists(documentPath string) bool

	// HasContent reports whether the content directory is still on disk,
	// with or without a saved page
	HasContent(documentPath string) bool

	// List returns every content directory under the data directory
	List(ctx context.Context) ([]string, error)

	// Remove deletes a content directory. Paths outside the data
	// directory are rejected.
	Remove(documentPath string) error

	// ExportMarkdown renders the saved page as sanitized markdown
	ExportMarkdown(ctx context.Context, documentPath string) (string, error)
}
