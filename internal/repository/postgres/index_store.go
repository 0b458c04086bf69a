package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"scrapbook/internal/domain"
	"scrapbook/internal/domain/models/vfs"
	vfsRepo "scrapbook/internal/domain/repositories/vfs"
	"scrapbook/internal/repository/xmlstore"
)

// indexRowID is the key of the single row holding the index document
const indexRowID = 1

// IndexStore keeps the XML index document in one postgres row.
// The stored text is exactly what the file store would write to disk.
type IndexStore struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewIndexStore creates a postgres-backed tree store
func NewIndexStore(config *RepositoryConfig) *IndexStore {
	return &IndexStore{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

var _ vfsRepo.TreeStore = (*IndexStore)(nil)

// Init creates the index table and an empty index row if missing
func (s *IndexStore) Init(ctx context.Context) (bool, error) {
	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id         SMALLINT PRIMARY KEY,
			content    TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`, s.tables.Index)

	if _, err := s.pool.Exec(ctx, createTable); err != nil {
		return false, fmt.Errorf("create index table: %w", err)
	}

	insert := fmt.Sprintf(`
		INSERT INTO %s (id, content)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`, s.tables.Index)

	tag, err := s.pool.Exec(ctx, insert, indexRowID, string(xmlstore.EmptyIndex))
	if err != nil {
		return false, fmt.Errorf("create index row: %w", err)
	}

	created := tag.RowsAffected() == 1
	if created {
		s.logger.Info("index created", "table", s.tables.Index)
	}
	return created, nil
}

// Load reads and decodes the index row
func (s *IndexStore) Load(ctx context.Context) (*vfs.Tree, error) {
	return s.load(ctx, false)
}

// loadForUpdate reads the index row and locks it until the surrounding
// transaction ends. Must be called with a transaction in ctx.
func (s *IndexStore) loadForUpdate(ctx context.Context) (*vfs.Tree, error) {
	return s.load(ctx, true)
}

func (s *IndexStore) load(ctx context.Context, lock bool) (*vfs.Tree, error) {
	query := fmt.Sprintf(`SELECT content FROM %s WHERE id = $1`, s.tables.Index)
	if lock {
		query += " FOR UPDATE"
	}

	var content string
	executor := GetExecutor(ctx, s.pool)
	if err := executor.QueryRow(ctx, query, indexRowID).Scan(&content); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("index row in %s: %w", s.tables.Index, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read index: %w", err)
	}

	return xmlstore.Unmarshal([]byte(content))
}

// Save encodes the tree and overwrites the index row
func (s *IndexStore) Save(ctx context.Context, tree *vfs.Tree) error {
	data, err := xmlstore.Marshal(tree)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, content, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at
	`, s.tables.Index)

	executor := GetExecutor(ctx, s.pool)
	if _, err := executor.Exec(ctx, query, indexRowID, string(data)); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	s.logger.Debug("index saved", "table", s.tables.Index, "bytes", len(data))
	return nil
}

// Location returns the table holding the index
func (s *IndexStore) Location() string {
	return "postgres:" + s.tables.Index
}
