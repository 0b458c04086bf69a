package repositories

import (
	"context"

	"scrapbook/internal/domain/models/vfs"
)

// TxFn is a function that runs against a freshly loaded tree
type TxFn func(ctx context.Context, tree *vfs.Tree) error

// TransactionManager runs load/mutate/save cycles over the index.
// Every call loads the whole tree; nothing is cached between calls.
type TransactionManager interface {
	// ExecTx loads the tree, runs fn and saves the tree if fn returns nil.
	// If fn fails nothing is written.
	ExecTx(ctx context.Context, fn TxFn) error

	// ReadTx loads the tree and runs fn without saving
	ReadTx(ctx context.Context, fn TxFn) error
}
