package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"scrapbook/internal/domain"
	vfsSvc "scrapbook/internal/domain/services/vfs"
	"scrapbook/internal/service/vfs/content/sanitizer"
)

// File names inside a content directory
const (
	PageFile    = "index.html"
	SidecarFile = "metadata.yaml"
)

// Store reads and removes saved pages below a data directory.
// Each saved page is a directory holding PageFile and its assets.
type Store struct {
	dataDir   string
	sanitizer *sanitizer.HTMLSanitizer
	converter *md.Converter
	logger    *slog.Logger
}

// NewStore creates a content store rooted at dataDir
func NewStore(dataDir string, logger *slog.Logger) *Store {
	return &Store{
		dataDir:   filepath.Clean(dataDir),
		sanitizer: sanitizer.NewHTMLSanitizer(),
		converter: md.NewConverter("", true, nil),
		logger:    logger,
	}
}

var _ vfsSvc.ContentStore = (*Store)(nil)

// Inspect reads the page title and tags of a content directory.
// Sidecar values take precedence over what the HTML declares.
func (s *Store) Inspect(ctx context.Context, documentPath string) (*vfsSvc.PageInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(documentPath, PageFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.NewNotFound("no saved page in %q", documentPath)
		}
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer f.Close()

	pg, err := parsePage(f)
	if err != nil {
		return nil, err
	}

	info := &vfsSvc.PageInfo{Title: pg.Title, Tags: pg.Keywords}

	sc, err := readSidecar(filepath.Join(documentPath, SidecarFile))
	if err != nil {
		s.logger.Warn("ignoring unreadable sidecar", "document_path", documentPath, "error", err)
		return info, nil
	}
	if sc != nil {
		if strings.TrimSpace(sc.Title) != "" {
			info.Title = strings.TrimSpace(sc.Title)
		}
		if len(sc.Tags) > 0 {
			info.Tags = sc.Tags
		}
	}

	return info, nil
}

// Exists reports whether documentPath is a directory holding a saved page
func (s *Store) Exists(documentPath string) bool {
	st, err := os.Stat(filepath.Join(documentPath, PageFile))
	return err == nil && !st.IsDir()
}

// HasContent reports whether documentPath is an existing directory
func (s *Store) HasContent(documentPath string) bool {
	st, err := os.Stat(documentPath)
	return err == nil && st.IsDir()
}

// List returns every content directory under the data directory, sorted
// by name. Directories without a saved page are skipped.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read data directory: %w", err)
	}

	dirs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dir := filepath.Join(s.dataDir, entry.Name())
		if !s.Exists(dir) {
			s.logger.Debug("skipping directory without page", "dir", dir)
			continue
		}
		dirs = append(dirs, dir)
	}
	return dirs, nil
}

// Remove deletes a content directory below the data directory.
// Removing a directory that is already gone is not an error.
func (s *Store) Remove(documentPath string) error {
	target, err := s.confine(documentPath)
	if err != nil {
		return err
	}

	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("remove content %s: %w", target, err)
	}

	s.logger.Info("content removed", "document_path", target)
	return nil
}

// confine resolves documentPath and rejects anything that is not strictly
// inside the data directory
func (s *Store) confine(documentPath string) (string, error) {
	abs, err := filepath.Abs(documentPath)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", documentPath, err)
	}
	dataDir, err := filepath.Abs(s.dataDir)
	if err != nil {
		return "", fmt.Errorf("resolve data directory: %w", err)
	}

	rel, err := filepath.Rel(dataDir, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", domain.NewValidation("%q is outside the data directory", documentPath)
	}
	return abs, nil
}

// ExportMarkdown converts a saved page to markdown in two stages:
// sanitize the HTML, then convert it. The page title becomes the heading.
func (s *Store) ExportMarkdown(ctx context.Context, documentPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	raw, err := os.ReadFile(filepath.Join(documentPath, PageFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", domain.NewNotFound("no saved page in %q", documentPath)
		}
		return "", fmt.Errorf("read page: %w", err)
	}

	pg, err := parsePage(bytes.NewReader(raw))
	if err != nil {
		return "", err
	}

	markdown, err := s.converter.ConvertString(s.sanitizer.Sanitize(pg.Body))
	if err != nil {
		return "", fmt.Errorf("convert page to markdown: %w", err)
	}

	markdown = strings.TrimSpace(markdown)
	if pg.Title != "" && !strings.HasPrefix(markdown, "# ") {
		markdown = "# " + pg.Title + "\n\n" + markdown
	}
	return markdown + "\n", nil
}
