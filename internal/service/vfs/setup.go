package vfs

import (
	"context"
	"fmt"
	"log/slog"

	"scrapbook/internal/config"
	"scrapbook/internal/domain/repositories"
	vfsRepo "scrapbook/internal/domain/repositories/vfs"
	vfsSvc "scrapbook/internal/domain/services/vfs"
	"scrapbook/internal/repository"
	"scrapbook/internal/repository/postgres"
	"scrapbook/internal/repository/xmlstore"
	"scrapbook/internal/service/vfs/content"
)

// Storage is the index backend selected by configuration
type Storage struct {
	Store     vfsRepo.TreeStore
	TxManager repositories.TransactionManager
	close     func()
}

// Close releases the backend's resources (the connection pool, if any)
func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

// SetupStorage opens the index backend named by cfg.StoreBackend.
// The index itself is created by the mount service, not here.
func SetupStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Storage, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendFile, "":
		store := xmlstore.NewFileStore(cfg.IndexFile, logger)
		logger.Info("index storage ready", "backend", config.StoreBackendFile, "location", store.Location())
		return &Storage{
			Store:     store,
			TxManager: repository.NewTransactionManager(store),
		}, nil

	case config.StoreBackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the %s backend", config.StoreBackendPostgres)
		}

		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}

		store := postgres.NewIndexStore(&postgres.RepositoryConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		})
		logger.Info("index storage ready", "backend", config.StoreBackendPostgres, "location", store.Location())

		return &Storage{
			Store:     store,
			TxManager: postgres.NewTransactionManager(pool, store, logger),
			close:     pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q (supported: %s, %s)",
			cfg.StoreBackend, config.StoreBackendFile, config.StoreBackendPostgres)
	}
}

// Services holds every index service
type Services struct {
	Folders   vfsSvc.FolderService
	Documents vfsSvc.DocumentService
	Search    vfsSvc.SearchService
	Tree      vfsSvc.TreeService
	Mount     vfsSvc.MountService
	Content   vfsSvc.ContentStore
}

// SetupServices wires the index services over storage
func SetupServices(storage *Storage, cfg *config.Config, logger *slog.Logger) *Services {
	resolver := NewPathResolver()
	contentStore := content.NewStore(cfg.DataDir, logger)

	return &Services{
		Folders:   NewFolderService(storage.TxManager, resolver, logger),
		Documents: NewDocumentService(storage.TxManager, resolver, contentStore, nil, logger),
		Search:    NewSearchService(storage.TxManager, resolver, nil, logger),
		Tree:      NewTreeService(storage.TxManager, logger),
		Mount: NewMountService(storage.Store, storage.TxManager, contentStore, MountConfig{
			Home:         cfg.Home,
			DataDir:      cfg.DataDir,
			PruneMissing: cfg.MountPruneMissing,
		}, logger),
		Content: contentStore,
	}
}
