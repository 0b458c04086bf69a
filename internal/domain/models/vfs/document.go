package vfs

import (
	"strings"
	"time"
)

// Document is an indexed reference to a saved web page's content directory.
// DocumentPath is the primary key; ID is only used for UI correlation.
type Document struct {
	ID           string   `json:"id"`
	DocumentPath string   `json:"document_path"`
	DisplayName  string   `json:"display_name"` // Unique among sibling documents
	FolderPath   string   `json:"folder_path"`
	Metadata     Metadata `json:"metadata"`
}

// Metadata holds the searchable attributes of a document
type Metadata struct {
	Title          string     `json:"title"` // Mirrors DisplayName
	DateLastViewed *time.Time `json:"date_last_viewed,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
}

// NewDocument creates a document stored in folderPath
func NewDocument(documentPath, folderPath, displayName string, dateLastViewed *time.Time, tags []string) *Document {
	return &Document{
		ID:           DocumentID(documentPath),
		DocumentPath: documentPath,
		DisplayName:  displayName,
		FolderPath:   folderPath,
		Metadata: Metadata{
			Title:          displayName,
			DateLastViewed: dateLastViewed,
			Tags:           tags,
		},
	}
}

// Rename sets the display name and keeps the metadata title in sync
func (d *Document) Rename(displayName string) {
	d.DisplayName = displayName
	d.Metadata.Title = displayName
}

// HasTag reports whether the document carries tag, ignoring case
func (d *Document) HasTag(tag string) bool {
	for _, t := range d.Metadata.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// DocumentID derives the UI id from the last segment of a document path.
// It is not unique across the tree; DocumentPath is.
func DocumentID(documentPath string) string {
	// Windows paths may be indexed from another machine
	trimmed := strings.TrimRight(strings.ReplaceAll(documentPath, `\`, "/"), "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// DocumentRef identifies a document for content cleanup by the caller
type DocumentRef struct {
	ID           string `json:"id"`
	DocumentPath string `json:"document_path"`
}

// Ref returns the identifiers of d
func (d *Document) Ref() DocumentRef {
	return DocumentRef{ID: d.ID, DocumentPath: d.DocumentPath}
}
