package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"scrapbook/internal/domain/models/vfs"
)

// printTree writes folder and its subtree, one node per line.
// Folders end with a slash; documents show their display name.
func printTree(w io.Writer, folder *vfs.Folder, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s/\n", indent, folder.Name)
	for _, doc := range folder.Documents {
		fmt.Fprintf(w, "%s  %s\n", indent, doc.DisplayName)
	}
	for _, child := range folder.Folders {
		printTree(w, child, depth+1)
	}
}

// printContents writes a directory listing
func printContents(w io.Writer, contents *vfs.FolderContents) {
	for _, f := range contents.Folders {
		fmt.Fprintf(w, "%s/\n", f.Name)
	}
	for _, doc := range contents.Documents {
		fmt.Fprintf(w, "%s\t%s\n", doc.DisplayName, doc.DocumentPath)
	}
}

// printDocuments writes one line per document with its location
func printDocuments(w io.Writer, docs []*vfs.Document) {
	for _, doc := range docs {
		fmt.Fprintf(w, "%s/%s\t%s\n", doc.FolderPath, doc.DisplayName, doc.DocumentPath)
	}
}

// documentView is the YAML shape printed by "doc show"
type documentView struct {
	ID             string   `yaml:"id"`
	DisplayName    string   `yaml:"display_name"`
	DocumentPath   string   `yaml:"document_path"`
	FolderPath     string   `yaml:"folder_path"`
	Title          string   `yaml:"title"`
	DateLastViewed string   `yaml:"date_last_viewed,omitempty"`
	Tags           []string `yaml:"tags,omitempty"`
}

// printDocument writes doc as YAML
func printDocument(w io.Writer, doc *vfs.Document) error {
	view := documentView{
		ID:           doc.ID,
		DisplayName:  doc.DisplayName,
		DocumentPath: doc.DocumentPath,
		FolderPath:   doc.FolderPath,
		Title:        doc.Metadata.Title,
		Tags:         doc.Metadata.Tags,
	}
	if doc.Metadata.DateLastViewed != nil {
		view.DateLastViewed = doc.Metadata.DateLastViewed.Format(time.RFC3339)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return enc.Close()
}
