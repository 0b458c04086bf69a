package vfs

import (
	"context"

	"scrapbook/internal/domain/models/vfs"
)

// MountService prepares the scrapbook home and syncs the index with the
// content directories on disk
type MountService interface {
	Mount(ctx context.Context) (*MountResult, error)
}

// MountResult summarizes what a mount changed
type MountResult struct {
	IndexCreated bool              `json:"index_created"`
	Added        []*vfs.Document   `json:"added"`
	Pruned       []vfs.DocumentRef `json:"pruned"`
	Skipped      []string          `json:"skipped"` // Content directories that could not be read
}
