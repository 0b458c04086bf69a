package vfs

// RootName is the literal first segment of every virtual folder path
const RootName = "root"

// Folder is a virtual folder. Children are kept as explicit ordered slices so
// a directory with zero, one or many children is represented the same way.
type Folder struct {
	Name       string      `json:"name"`
	FolderPath string      `json:"folder_path"` // Derived from tree position, e.g. "root/A/B"
	Documents  []*Document `json:"documents"`
	Folders    []*Folder   `json:"folders"`
}

// NewFolder creates an empty folder located under parentPath
func NewFolder(name, parentPath string) *Folder {
	return &Folder{
		Name:       name,
		FolderPath: parentPath + "/" + name,
		Documents:  []*Document{},
		Folders:    []*Folder{},
	}
}

// ChildFolder returns the direct child folder with the given name, or nil
func (f *Folder) ChildFolder(name string) *Folder {
	for _, child := range f.Folders {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// Document returns the direct child document with the given document path, or nil
func (f *Folder) Document(documentPath string) *Document {
	for _, doc := range f.Documents {
		if doc.DocumentPath == documentPath {
			return doc
		}
	}
	return nil
}

// DocumentByName returns the direct child document with the given display name, or nil
func (f *Folder) DocumentByName(displayName string) *Document {
	for _, doc := range f.Documents {
		if doc.DisplayName == displayName {
			return doc
		}
	}
	return nil
}

// RemoveFolder detaches the named child folder and returns it (nil if absent)
func (f *Folder) RemoveFolder(name string) *Folder {
	for i, child := range f.Folders {
		if child.Name == name {
			f.Folders = append(f.Folders[:i], f.Folders[i+1:]...)
			return child
		}
	}
	return nil
}

// RemoveDocument detaches the document with the given path and returns it (nil if absent)
func (f *Folder) RemoveDocument(documentPath string) *Document {
	for i, doc := range f.Documents {
		if doc.DocumentPath == documentPath {
			f.Documents = append(f.Documents[:i], f.Documents[i+1:]...)
			return doc
		}
	}
	return nil
}

// Walk visits f and every descendant folder depth-first, a folder before its
// children. Returning false from fn stops the walk below that folder.
func (f *Folder) Walk(fn func(folder *Folder) bool) {
	if !fn(f) {
		return
	}
	for _, child := range f.Folders {
		child.Walk(fn)
	}
}

// AllDocuments returns every document at or below f, in traversal order:
// a folder's own documents first, then each sub-folder depth-first.
func (f *Folder) AllDocuments() []*Document {
	var docs []*Document
	f.Walk(func(folder *Folder) bool {
		docs = append(docs, folder.Documents...)
		return true
	})
	return docs
}
