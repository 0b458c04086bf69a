package xmlstore

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"scrapbook/internal/domain/models/vfs"
)

// XML schema of the index file. Children are repeated elements, so an empty,
// single-child and multi-child directory all decode into plain slices.
//
//	<Root>
//	  <Document displayName="" id="" documentPath="" folderPath="root">
//	    <Metadata title="" dateLastViewed="" tags="a;b"></Metadata>
//	  </Document>
//	  <Folder name="A" folderPath="root/A">...</Folder>
//	</Root>
type xmlRoot struct {
	XMLName   xml.Name      `xml:"Root"`
	Documents []xmlDocument `xml:"Document"`
	Folders   []xmlFolder   `xml:"Folder"`
}

type xmlFolder struct {
	Name       string        `xml:"name,attr"`
	FolderPath string        `xml:"folderPath,attr"`
	Documents  []xmlDocument `xml:"Document"`
	Folders    []xmlFolder   `xml:"Folder"`
}

type xmlDocument struct {
	DisplayName  string      `xml:"displayName,attr"`
	ID           string      `xml:"id,attr"`
	DocumentPath string      `xml:"documentPath,attr"`
	FolderPath   string      `xml:"folderPath,attr"`
	Metadata     xmlMetadata `xml:"Metadata"`
}

type xmlMetadata struct {
	Title          string `xml:"title,attr"`
	DateLastViewed string `xml:"dateLastViewed,attr,omitempty"`
	Tags           string `xml:"tags,attr,omitempty"`
}

// TagSeparator joins tags inside the tags attribute
const TagSeparator = ";"

// EmptyIndex is written when a new index is created
var EmptyIndex = []byte("<Root/>\n")

// Layouts accepted for dateLastViewed. The last one is the JavaScript
// Date.toString() form written by older versions of the app.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
}

// Marshal serializes the tree as indented XML
func Marshal(tree *vfs.Tree) ([]byte, error) {
	root := xmlRoot{
		Documents: encodeDocuments(tree.Root.Documents),
		Folders:   encodeFolders(tree.Root.Folders),
	}

	body, err := xml.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode index: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Unmarshal parses index XML into a tree. Folder paths are recomputed from
// each node's position, so a stale folderPath attribute cannot survive a load.
func Unmarshal(data []byte) (*vfs.Tree, error) {
	var root xmlRoot
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}

	tree := vfs.NewTree()
	docs, err := decodeDocuments(root.Documents, vfs.RootName)
	if err != nil {
		return nil, err
	}
	tree.Root.Documents = docs

	folders, err := decodeFolders(root.Folders, vfs.RootName)
	if err != nil {
		return nil, err
	}
	tree.Root.Folders = folders

	return tree, nil
}

func encodeFolders(folders []*vfs.Folder) []xmlFolder {
	out := make([]xmlFolder, 0, len(folders))
	for _, f := range folders {
		out = append(out, xmlFolder{
			Name:       f.Name,
			FolderPath: f.FolderPath,
			Documents:  encodeDocuments(f.Documents),
			Folders:    encodeFolders(f.Folders),
		})
	}
	return out
}

func encodeDocuments(docs []*vfs.Document) []xmlDocument {
	out := make([]xmlDocument, 0, len(docs))
	for _, d := range docs {
		meta := xmlMetadata{
			Title: d.Metadata.Title,
			Tags:  strings.Join(d.Metadata.Tags, TagSeparator),
		}
		if d.Metadata.DateLastViewed != nil {
			meta.DateLastViewed = d.Metadata.DateLastViewed.Format(time.RFC3339)
		}
		out = append(out, xmlDocument{
			DisplayName:  d.DisplayName,
			ID:           d.ID,
			DocumentPath: d.DocumentPath,
			FolderPath:   d.FolderPath,
			Metadata:     meta,
		})
	}
	return out
}

func decodeFolders(folders []xmlFolder, parentPath string) ([]*vfs.Folder, error) {
	out := make([]*vfs.Folder, 0, len(folders))
	for _, xf := range folders {
		folder := vfs.NewFolder(xf.Name, parentPath)

		docs, err := decodeDocuments(xf.Documents, folder.FolderPath)
		if err != nil {
			return nil, err
		}
		folder.Documents = docs

		children, err := decodeFolders(xf.Folders, folder.FolderPath)
		if err != nil {
			return nil, err
		}
		folder.Folders = children

		out = append(out, folder)
	}
	return out, nil
}

func decodeDocuments(docs []xmlDocument, folderPath string) ([]*vfs.Document, error) {
	out := make([]*vfs.Document, 0, len(docs))
	for _, xd := range docs {
		viewed, err := parseDate(xd.Metadata.DateLastViewed)
		if err != nil {
			return nil, fmt.Errorf("decode document %q: %w", xd.DocumentPath, err)
		}

		name := xd.DisplayName
		if name == "" {
			name = xd.Metadata.Title
		}

		doc := vfs.NewDocument(xd.DocumentPath, folderPath, name, viewed, SplitTags(xd.Metadata.Tags))
		if xd.ID != "" {
			doc.ID = xd.ID
		}
		out = append(out, doc)
	}
	return out, nil
}

func parseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	// Drop a trailing "(Zone Name)" from Date.toString() output
	if i := strings.Index(value, " ("); i > 0 {
		value = value[:i]
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid dateLastViewed %q", value)
}

// SplitTags splits a tags attribute into tokens, dropping empty ones
func SplitTags(value string) []string {
	if value == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(value, TagSeparator) {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
