package vfs

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"scrapbook/internal/config"
	"scrapbook/internal/domain/models/vfs"
)

// ValidateFolderPath validates a virtual folder path such as "root/A/B".
//
// Rules:
//   - must start with the root segment
//   - no leading, trailing or consecutive slashes
//   - no "." or ".." segments
//   - at most config.MaxFolderPathLength bytes
func ValidateFolderPath(folderPath string) error {
	if folderPath == "" {
		return fmt.Errorf("folder path cannot be empty")
	}

	if len(folderPath) > config.MaxFolderPathLength {
		return fmt.Errorf("folder path exceeds maximum length of %d", config.MaxFolderPathLength)
	}

	if !IsXMLText(folderPath) {
		return fmt.Errorf("folder path contains characters that cannot be stored")
	}

	segments := SplitPath(folderPath)
	if segments[0] != vfs.RootName {
		return fmt.Errorf("folder path must start with %q", vfs.RootName)
	}

	for i, segment := range segments {
		if segment == "" {
			return fmt.Errorf("folder path contains empty segment at position %d", i)
		}
		if segment == "." || segment == ".." {
			return fmt.Errorf("folder path cannot contain '.' or '..' as folder names")
		}
	}

	return nil
}

// ValidateSimpleName validates a single folder name or display name
func ValidateSimpleName(name string, maxLength int) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	if len(name) > maxLength {
		return fmt.Errorf("name exceeds maximum length of %d", maxLength)
	}

	if !IsXMLText(name) {
		return fmt.Errorf("name contains characters that cannot be stored")
	}

	// Folder names are path segments
	if strings.Contains(name, PathSeparator) {
		return fmt.Errorf("name cannot contain '/' character")
	}

	if name == "." || name == ".." {
		return fmt.Errorf("name cannot be '.' or '..'")
	}

	return nil
}

// IsXMLText reports whether s is valid UTF-8 made only of characters an
// XML 1.0 document can carry. The index is XML, so anything else would not
// survive a save.
func IsXMLText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if !isXMLChar(r) {
			return false
		}
	}
	return true
}

func isXMLChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}
