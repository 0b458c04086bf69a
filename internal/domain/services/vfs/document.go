package vfs

import (
	"context"
	"time"

	"scrapbook/internal/domain/models/vfs"
)

// DocumentService handles document mutations and lookups on the index
type DocumentService interface {
	// InsertDocument adds a document to a folder
	InsertDocument(ctx context.Context, req *InsertDocumentRequest) (*vfs.Document, error)

	// DeleteDocument removes a document from a folder
	DeleteDocument(ctx context.Context, req *DeleteDocumentRequest) (*vfs.DocumentRef, error)

	// RenameDocument changes the display name of a document anywhere in the tree
	RenameDocument(ctx context.Context, req *RenameDocumentRequest) (*vfs.Document, error)

	// MoveDocument moves a document to another folder in one write
	MoveDocument(ctx context.Context, req *MoveDocumentRequest) (*vfs.Document, error)

	// SetTags replaces the tags of a document
	SetTags(ctx context.Context, req *SetTagsRequest) (*vfs.Document, error)

	// MarkViewed sets the last viewed date of a document to now
	MarkViewed(ctx context.Context, documentPath string) (*vfs.Document, error)

	// GetDocument finds a document anywhere in the tree
	GetDocument(ctx context.Context, documentPath string) (*vfs.Document, error)

	// ContainsDocument reports whether documentPath is indexed anywhere
	ContainsDocument(ctx context.Context, documentPath string) (bool, error)

	// IsUniqueDocumentName reports whether no document in folderPath uses displayName
	IsUniqueDocumentName(ctx context.Context, displayName, folderPath string) (bool, error)
}

// InsertDocumentRequest represents a document insertion request
type InsertDocumentRequest struct {
	DocumentPath   string     `json:"document_path"`
	FolderPath     string     `json:"folder_path"`
	DisplayName    string     `json:"display_name,omitempty"` // Derived from the page title when empty
	DateLastViewed *time.Time `json:"date_last_viewed,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
}

// DeleteDocumentRequest represents a document removal request
type DeleteDocumentRequest struct {
	DocumentPath string `json:"document_path"`
	FolderPath   string `json:"folder_path"`
}

// RenameDocumentRequest represents a document rename request
type RenameDocumentRequest struct {
	NewDisplayName string `json:"new_display_name"`
	DocumentPath   string `json:"document_path"`
}

// MoveDocumentRequest represents a document move request
type MoveDocumentRequest struct {
	TargetFolderPath  string `json:"target_folder_path"`
	CurrentFolderPath string `json:"current_folder_path"`
	DocumentPath      string `json:"document_path"`
}

// SetTagsRequest represents a tag replacement request
type SetTagsRequest struct {
	DocumentPath string   `json:"document_path"`
	Tags         []string `json:"tags"`
}
