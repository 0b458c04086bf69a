package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"scrapbook/internal/domain/repositories"
)

// TransactionManager runs each load/mutate/save cycle inside one postgres
// transaction, holding a row lock on the index between load and save.
type TransactionManager struct {
	pool   *pgxpool.Pool
	store  *IndexStore
	logger *slog.Logger
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(pool *pgxpool.Pool, store *IndexStore, logger *slog.Logger) repositories.TransactionManager {
	return &TransactionManager{pool: pool, store: store, logger: logger}
}

// ExecTx loads the locked index row, runs fn, saves and commits
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return tm.withTx(ctx, func(txCtx context.Context) error {
		tree, err := tm.store.loadForUpdate(txCtx)
		if err != nil {
			return fmt.Errorf("load index: %w", err)
		}

		if err := fn(txCtx, tree); err != nil {
			return err
		}

		if err := tm.store.Save(txCtx, tree); err != nil {
			return fmt.Errorf("save index: %w", err)
		}
		return nil
	})
}

// ReadTx loads the index and runs fn without writing
func (tm *TransactionManager) ReadTx(ctx context.Context, fn repositories.TxFn) error {
	tree, err := tm.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load index: %w", err)
	}
	return fn(ctx, tree)
}

func (tm *TransactionManager) withTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	tx, err := tm.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	// Rollback is a no-op once the transaction is committed
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
			tm.logger.Warn("rollback failed", "error", err)
		}
	}()

	if err := fn(SetTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
