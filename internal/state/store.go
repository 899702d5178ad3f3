// Package state keeps local operational state in SQLite: snapshots of the
// last successfully reconciled navigation tree, used as the fallback when a
// scan of the backing store fails, and the trash log backing restore.
package state

import (
	"context"
	"errors"
	"time"

	"github.com/inkwell-labs/inkwell/pkg/nav"
)

// ErrNoSnapshot is returned by LatestSnapshot when nothing was ever cached.
var ErrNoSnapshot = errors.New("state: no snapshot recorded")

// TrashEntry records one item moved to the trash area of the backing store.
type TrashEntry struct {
	ID           string
	OriginalPath string
	TrashPath    string
	Kind         string
	TrashedAt    time.Time
	RestoredAt   *time.Time
}

// Store is the local state store.
type Store interface {
	// SaveSnapshot records tree as the most recent successfully reconciled
	// navigation tree.
	SaveSnapshot(ctx context.Context, tree nav.Tree) error

	// LatestSnapshot returns the most recent snapshot and when it was
	// taken, or ErrNoSnapshot.
	LatestSnapshot(ctx context.Context) (nav.Tree, time.Time, error)

	// RecordTrash logs a move into the trash area.
	RecordTrash(ctx context.Context, e TrashEntry) error

	// MarkRestored stamps the entry for trashPath as restored.
	MarkRestored(ctx context.Context, trashPath string) error

	// ListTrash returns unrestored entries, most recent first.
	ListTrash(ctx context.Context) ([]TrashEntry, error)

	Close() error
}
