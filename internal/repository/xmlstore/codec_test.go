package xmlstore

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrapbook/internal/domain/models/vfs"
)

func sampleTree() *vfs.Tree {
	viewed := time.Date(2024, time.February, 3, 4, 5, 6, 0, time.UTC)

	tree := vfs.NewTree()
	tree.Root.Documents = append(tree.Root.Documents,
		vfs.NewDocument("/data/abc", "root", "Recipe", &viewed, []string{"food", "dinner"}))

	work := vfs.NewFolder("Work", "root")
	work.Documents = append(work.Documents,
		vfs.NewDocument("/data/one", "root/Work", "One & <Two>", nil, nil))
	drafts := vfs.NewFolder("Drafts", "root/Work")
	work.Folders = append(work.Folders, drafts)
	tree.Root.Folders = append(tree.Root.Folders, work, vfs.NewFolder("Empty", "root"))
	return tree
}

func TestMarshal_RoundTrip(t *testing.T) {
	tree := sampleTree()

	data, err := Marshal(tree)
	require.NoError(t, err)

	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, tree, decoded)

	again, err := Marshal(decoded)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestMarshal_Layout(t *testing.T) {
	data, err := Marshal(sampleTree())
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<Document displayName="Recipe" id="abc" documentPath="/data/abc" folderPath="root">`)
	assert.Contains(t, out, `<Metadata title="Recipe" dateLastViewed="2024-02-03T04:05:06Z" tags="food;dinner"></Metadata>`)
	assert.Contains(t, out, `<Folder name="Work" folderPath="root/Work">`)
	assert.Contains(t, out, `displayName="One &amp; &lt;Two&gt;"`)
	assert.Contains(t, out, "\n  <Folder")

	// Never-viewed and untagged documents omit the attributes
	assert.Contains(t, out, `<Metadata title="One &amp; &lt;Two&gt;"></Metadata>`)

	// Documents of a directory are written before its folders
	assert.Less(t, strings.Index(out, `id="abc"`), strings.Index(out, `name="Work"`))
}

func TestUnmarshal_EmptyIndex(t *testing.T) {
	tree, err := Unmarshal(EmptyIndex)
	require.NoError(t, err)
	assert.Equal(t, vfs.NewTree(), tree)
}

func TestUnmarshal_RepairsDerivedFields(t *testing.T) {
	input := `<?xml version="1.0" encoding="UTF-8"?>
<Root>
  <Folder name="Books" folderPath="root/Stale">
    <Document displayName="" id="" documentPath="/data/42" folderPath="root/Wrong">
      <Metadata title="From Title" dateLastViewed="Tue Mar 05 2024 14:30:00 GMT+0100 (Central European Standard Time)" tags="a; ;b;"></Metadata>
    </Document>
    <Folder name="Old" folderPath="x"></Folder>
  </Folder>
</Root>`

	tree, err := Unmarshal([]byte(input))
	require.NoError(t, err)

	books := tree.Root.ChildFolder("Books")
	require.NotNil(t, books)
	assert.Equal(t, "root/Books", books.FolderPath)
	assert.Equal(t, "root/Books/Old", books.ChildFolder("Old").FolderPath)

	require.Len(t, books.Documents, 1)
	doc := books.Documents[0]
	assert.Equal(t, "42", doc.ID)
	assert.Equal(t, "root/Books", doc.FolderPath)
	assert.Equal(t, "From Title", doc.DisplayName)
	assert.Equal(t, "From Title", doc.Metadata.Title)
	assert.Equal(t, []string{"a", "b"}, doc.Metadata.Tags)

	require.NotNil(t, doc.Metadata.DateLastViewed)
	want := time.Date(2024, time.March, 5, 13, 30, 0, 0, time.UTC)
	assert.True(t, want.Equal(*doc.Metadata.DateLastViewed))
}

func TestUnmarshal_Errors(t *testing.T) {
	_, err := Unmarshal([]byte("<Root><Folder>"))
	assert.Error(t, err)

	_, err = Unmarshal([]byte(`<Root><Document documentPath="/d/1"><Metadata title="x" dateLastViewed="yesterday"></Metadata></Document></Root>`))
	assert.ErrorContains(t, err, "dateLastViewed")
}

func TestSplitTags(t *testing.T) {
	assert.Nil(t, SplitTags(""))
	assert.Equal(t, []string{"one"}, SplitTags("one"))
	assert.Equal(t, []string{"one", "two words"}, SplitTags(" one ;two words;"))
}
