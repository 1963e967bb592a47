package task

import "context"

// Repository defines the storage interface for the task tree.
//
// The chart edits a working copy and commits whole trees, so the interface
// is tree-at-a-time: SaveTree replaces everything atomically rather than
// patching individual rows.
type Repository interface {
	// LoadTree reads the full task tree, subtasks in stored order.
	LoadTree(ctx context.Context) (Tree, error)

	// SaveTree replaces the stored tree with tr in one transaction.
	SaveTree(ctx context.Context, tr Tree) error

	// Close releases any resources held by the repository.
	Close() error
}
