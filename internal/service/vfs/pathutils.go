package vfs

import (
	"strings"

	"scrapbook/internal/domain/models/vfs"
)

// PathSeparator separates segments of a virtual folder path
const PathSeparator = "/"

// SplitPath splits a virtual folder path into its segments.
//
// Examples:
//   - SplitPath("root/A/B") → ["root", "A", "B"]
//   - SplitPath("") → []
func SplitPath(folderPath string) []string {
	if folderPath == "" {
		return []string{}
	}
	return strings.Split(folderPath, PathSeparator)
}

// JoinPath appends a folder name to a parent folder path
func JoinPath(parentPath, name string) string {
	return parentPath + PathSeparator + name
}

// ParentPath returns the folder path of the parent of folderPath.
// The root folder has no parent and yields "".
func ParentPath(folderPath string) string {
	i := strings.LastIndex(folderPath, PathSeparator)
	if i < 0 {
		return ""
	}
	return folderPath[:i]
}

// BaseName returns the last segment of a folder path
func BaseName(folderPath string) string {
	return folderPath[strings.LastIndex(folderPath, PathSeparator)+1:]
}

// HasPathPrefix reports whether path equals prefix or lies below it.
// Matching is done on whole segments, so "root/AB" is not below "root/A".
func HasPathPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+PathSeparator)
}

// ReplacePathPrefix swaps the leading segments oldPrefix of path for
// newPrefix. The second result is false when path is not at or below oldPrefix.
//
// Examples:
//   - ReplacePathPrefix("root/Books/Old", "root/Books", "root/Novels") → "root/Novels/Old", true
//   - ReplacePathPrefix("root/Bookshelf", "root/Books", "root/Novels") → "root/Bookshelf", false
func ReplacePathPrefix(path, oldPrefix, newPrefix string) (string, bool) {
	if !HasPathPrefix(path, oldPrefix) {
		return path, false
	}
	return newPrefix + path[len(oldPrefix):], true
}

// rebaseSubtree rewrites the folder path of folder, every descendant folder
// and every contained document from oldPath to newPath
func rebaseSubtree(folder *vfs.Folder, oldPath, newPath string) int {
	rewritten := 0
	folder.Walk(func(f *vfs.Folder) bool {
		if p, ok := ReplacePathPrefix(f.FolderPath, oldPath, newPath); ok {
			f.FolderPath = p
			rewritten++
		}
		for _, doc := range f.Documents {
			if p, ok := ReplacePathPrefix(doc.FolderPath, oldPath, newPath); ok {
				doc.FolderPath = p
				rewritten++
			}
		}
		return true
	})
	return rewritten
}
