package vfs

// Tree is the whole index, rebuilt from the store on every operation
type Tree struct {
	Root *Folder `json:"root"`
}

// NewTree returns an empty tree containing only the root folder
func NewTree() *Tree {
	return &Tree{
		Root: &Folder{
			Name:       RootName,
			FolderPath: RootName,
			Documents:  []*Document{},
			Folders:    []*Folder{},
		},
	}
}

// FindDocument locates a document anywhere in the tree by its document path.
// The containing folder is returned alongside it.
func (t *Tree) FindDocument(documentPath string) (*Document, *Folder) {
	var (
		found  *Document
		parent *Folder
	)
	t.Root.Walk(func(folder *Folder) bool {
		if found != nil {
			return false
		}
		if doc := folder.Document(documentPath); doc != nil {
			found, parent = doc, folder
			return false
		}
		return true
	})
	return found, parent
}

// FindFolder locates a folder by its full folder path
func (t *Tree) FindFolder(folderPath string) *Folder {
	var found *Folder
	t.Root.Walk(func(folder *Folder) bool {
		if found != nil {
			return false
		}
		if folder.FolderPath == folderPath {
			found = folder
			return false
		}
		return true
	})
	return found
}

// ContainsDocument reports whether any folder holds documentPath
func (t *Tree) ContainsDocument(documentPath string) bool {
	doc, _ := t.FindDocument(documentPath)
	return doc != nil
}

// Documents returns every document in traversal order
func (t *Tree) Documents() []*Document {
	return t.Root.AllDocuments()
}

// FolderSummary describes a folder without its children
type FolderSummary struct {
	Name       string `json:"name"`
	FolderPath string `json:"folder_path"`
}

// FolderContents is the direct listing of a single directory
type FolderContents struct {
	FolderPath string          `json:"folder_path"`
	Folders    []FolderSummary `json:"folders"`
	Documents  []*Document     `json:"documents"`
}
