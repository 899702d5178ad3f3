// Package blob abstracts the backing content store as a key-value store of
// byte blobs keyed by slash-separated path, with revision-token optimistic
// concurrency. Two implementations exist: a filesystem store for local
// content roots and an in-memory store used by tests and as a stand-in for a
// remote store.
package blob

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// Revision is an opaque revision token for one blob. Tokens are content
// digests, so identical content always yields the same token.
type Revision string

var (
	// ErrNotFound is returned when no blob exists at the requested path.
	ErrNotFound = errors.New("blob: not found")
	// ErrRevisionMismatch is returned by Put/Delete when the supplied
	// revision no longer matches the stored blob (a concurrent write won).
	ErrRevisionMismatch = errors.New("blob: revision mismatch")
)

// Entry is one name in a directory listing.
type Entry struct {
	Name  string
	IsDir bool
}

// Store is the backing content store. Paths use forward slashes and are
// relative to the store root; they never start or end with a slash.
type Store interface {
	// Get returns the blob at path and its current revision.
	Get(ctx context.Context, path string) ([]byte, Revision, error)

	// Put writes the blob at path. An empty rev writes unconditionally
	// (create or last-write-wins replace); a non-empty rev must match the
	// stored revision or ErrRevisionMismatch is returned. The new revision
	// is returned on success.
	Put(ctx context.Context, path string, data []byte, rev Revision) (Revision, error)

	// Delete removes the blob (or empty directory) at path. A non-empty rev
	// must match the stored revision.
	Delete(ctx context.Context, path string, rev Revision) error

	// List returns the immediate children of dir ("" for the root). A
	// missing directory is ErrNotFound, never an empty listing, so a failed
	// scan is distinguishable from genuinely empty content.
	List(ctx context.Context, dir string) ([]Entry, error)

	// EnsureDir makes the directory at path exist, creating parents as
	// needed. Stores that cannot represent empty directories report that
	// via RequiresPlaceholder and treat this as a no-op.
	EnsureDir(ctx context.Context, path string) error

	// RequiresPlaceholder reports whether the store needs a placeholder
	// blob to keep an otherwise-empty directory visible.
	RequiresPlaceholder() bool
}

// Digest computes the revision token for the given content.
func Digest(data []byte) Revision {
	sum := sha256.Sum256(data)
	return Revision(hex.EncodeToString(sum[:]))
}
