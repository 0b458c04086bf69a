package repository

import (
	"context"
	"fmt"
	"sync"

	"scrapbook/internal/domain/repositories"
	vfsRepo "scrapbook/internal/domain/repositories/vfs"
)

// TransactionManager runs load/mutate/save cycles against a TreeStore.
// Cycles inside one process are serialized; there is no cross-process lock.
type TransactionManager struct {
	store vfsRepo.TreeStore
	mu    sync.Mutex
}

// NewTransactionManager creates a transaction manager over store
func NewTransactionManager(store vfsRepo.TreeStore) repositories.TransactionManager {
	return &TransactionManager{store: store}
}

// ExecTx loads the tree, runs fn and saves the result.
// Nothing is written when fn returns an error.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tree, err := tm.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load index: %w", err)
	}

	if err := fn(ctx, tree); err != nil {
		return err
	}

	if err := tm.store.Save(ctx, tree); err != nil {
		return fmt.Errorf("save index: %w", err)
	}

	return nil
}

// ReadTx loads the tree and runs fn without saving
func (tm *TransactionManager) ReadTx(ctx context.Context, fn repositories.TxFn) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tree, err := tm.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load index: %w", err)
	}

	return fn(ctx, tree)
}
