package xmlstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"scrapbook/internal/domain/models/vfs"
	vfsRepo "scrapbook/internal/domain/repositories/vfs"
)

// FileStore keeps the index in a single XML file on local disk
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore creates a store for the index file at path
func NewFileStore(path string, logger *slog.Logger) vfsRepo.TreeStore {
	return &FileStore{
		path:   path,
		logger: logger,
	}
}

// Init creates the parent directory and an empty index if the file is missing
func (s *FileStore) Init(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return false, fmt.Errorf("create index directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat index: %w", err)
	}

	if err := s.writeAtomic(EmptyIndex); err != nil {
		return false, err
	}

	s.logger.Info("index created", "path", s.path)
	return true, nil
}

// Load reads and decodes the whole index file
func (s *FileStore) Load(ctx context.Context) (*vfs.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read index %s: %w", s.path, err)
	}

	tree, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", s.path, err)
	}
	return tree, nil
}

// Save encodes the tree and replaces the index file
func (s *FileStore) Save(ctx context.Context, tree *vfs.Tree) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Marshal(tree)
	if err != nil {
		return err
	}

	if err := s.writeAtomic(data); err != nil {
		return err
	}

	s.logger.Debug("index saved", "path", s.path, "bytes", len(data))
	return nil
}

// Location returns the index file path
func (s *FileStore) Location() string {
	return s.path
}

// writeAtomic writes to a temp file in the same directory and renames it over
// the index, so readers never observe a partially written file.
func (s *FileStore) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(s.path), uuid.NewString()))

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("create temp index: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp index: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync temp index: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp index: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace index: %w", err)
	}
	return nil
}
