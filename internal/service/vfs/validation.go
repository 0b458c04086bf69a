package vfs

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"scrapbook/internal/config"
	"scrapbook/internal/domain"
	"scrapbook/internal/domain/models/vfs"
)

var tagPattern = regexp.MustCompile(`^[^;]+$`)

// folderPathRule validates virtual folder paths
var folderPathRule = validation.By(func(value interface{}) error {
	path, _ := value.(string)
	return ValidateFolderPath(path)
})

// xmlTextRule rejects strings the XML index cannot store unchanged
var xmlTextRule = validation.By(func(value interface{}) error {
	text, _ := value.(string)
	if !IsXMLText(text) {
		return errors.New("contains characters that cannot be stored")
	}
	return nil
})

// cleanDocumentPath normalizes a document path so that "/data/a/" and
// "/data/a" address the same document
func cleanDocumentPath(documentPath string) string {
	if documentPath == "" {
		return ""
	}
	return filepath.Clean(documentPath)
}

// nameRule validates folder names and display names
func nameRule(maxLength int) validation.Rule {
	return validation.By(func(value interface{}) error {
		name, _ := value.(string)
		return ValidateSimpleName(name, maxLength)
	})
}

// tagRules validates a tag list
func tagRules() []validation.Rule {
	return []validation.Rule{
		validation.Length(0, config.MaxTags).Error(fmt.Sprintf("at most %d tags are allowed", config.MaxTags)),
		validation.Each(
			validation.Length(1, config.MaxTagLength),
			validation.Match(tagPattern).Error("tags cannot contain ';'"),
			xmlTextRule,
		),
	}
}

// normalizeTags trims tags, drops empty ones and removes case-insensitive duplicates
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		key := strings.ToLower(tag)
		if tag == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// pageTitle returns a usable display name for a saved page: its trimmed
// title capped at config.MaxDocumentNameLength, or the last segment of the
// document path when the page has no title
func pageTitle(title, documentPath string) string {
	title = strings.TrimSpace(xmlText(title))
	if title == "" {
		return vfs.DocumentID(documentPath)
	}
	if len(title) > config.MaxDocumentNameLength {
		// Cut on a rune boundary
		title = strings.TrimSpace(strings.ToValidUTF8(title[:config.MaxDocumentNameLength], ""))
	}
	return title
}

// xmlText drops invalid UTF-8 and characters XML cannot carry
func xmlText(s string) string {
	if IsXMLText(s) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == utf8.RuneError || !isXMLChar(r) {
			return -1
		}
		return r
	}, strings.ToValidUTF8(s, ""))
}

// pageTags cleans tags read from saved pages, which are not validated on
// input: invalid tags are dropped and the list is capped at config.MaxTags
func pageTags(tags []string) []string {
	tags = normalizeTags(tags)
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if len(tag) > config.MaxTagLength || !tagPattern.MatchString(tag) || !IsXMLText(tag) {
			continue
		}
		out = append(out, tag)
		if len(out) == config.MaxTags {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// invalid wraps a validation failure so it matches domain.ErrValidation
func invalid(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}

// folderConflict builds the error for a folder name collision
func folderConflict(parentPath, name string) error {
	return &domain.ConflictError{
		Message:      fmt.Sprintf("a folder named %q already exists in %q", name, parentPath),
		ResourceType: "folder",
		FolderPath:   parentPath,
		Name:         name,
	}
}

// documentNameConflict builds the error for a display name collision
func documentNameConflict(folderPath, displayName string) error {
	return &domain.ConflictError{
		Message:      fmt.Sprintf("a document named %q already exists in %q", displayName, folderPath),
		ResourceType: "document",
		FolderPath:   folderPath,
		Name:         displayName,
	}
}

// documentPathConflict builds the error for a document path indexed twice
func documentPathConflict(folderPath, documentPath string) error {
	return &domain.ConflictError{
		Message:      fmt.Sprintf("document %q is already indexed in %q", documentPath, folderPath),
		ResourceType: "document",
		FolderPath:   folderPath,
		Name:         documentPath,
	}
}
