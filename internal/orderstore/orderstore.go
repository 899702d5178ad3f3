// Package orderstore persists the configured navigation tree as a single
// JSON document in the backing store, read and replaced whole under one
// revision token.
package orderstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/inkwell-labs/inkwell/internal/blob"
	"github.com/inkwell-labs/inkwell/pkg/nav"
)

// DocPath is the fixed blob path of the navigation document, one per
// deployment. It lives under the reserved prefix so scans never see it.
const DocPath = "_meta/navigation.json"

// document is the wire shape of the persisted configuration.
type document struct {
	Structure nav.Tree `json:"structure"`
}

// Store reads and writes the configured tree document.
type Store struct {
	blobs  blob.Store
	logger *slog.Logger
}

// New returns a Store over the given blob store.
func New(blobs blob.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{blobs: blobs, logger: logger}
}

// Get returns the last persisted configured tree and its revision token.
// A document that was never saved is reported as ok=false with a nil error;
// callers treat missing identically to empty. A document that exists but
// fails to parse degrades the same way, so content stays navigable from the
// observed tree alone, but its revision is still returned so the next save
// can replace the corrupt document.
func (s *Store) Get(ctx context.Context) (nav.Tree, blob.Revision, bool, error) {
	data, rev, err := s.blobs.Get(ctx, DocPath)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return nil, "", false, nil
		}
		return nil, "", false, fmt.Errorf("failed to read navigation document: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("navigation document is corrupt, treating as missing", "error", err)
		return nil, rev, false, nil
	}
	if doc.Structure == nil {
		s.logger.Warn("navigation document has no structure field, treating as missing")
		return nil, rev, false, nil
	}
	return doc.Structure, rev, true, nil
}

// Put replaces the document with tree under the given revision token. The
// store is last-write-wins at document granularity; callers re-reconcile
// against a fresh observed tree immediately before calling Put.
func (s *Store) Put(ctx context.Context, tree nav.Tree, rev blob.Revision) (blob.Revision, error) {
	if tree == nil {
		tree = nav.Tree{}
	}
	data, err := json.MarshalIndent(document{Structure: tree}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode navigation document: %w", err)
	}
	newRev, err := s.blobs.Put(ctx, DocPath, data, rev)
	if err != nil {
		return "", fmt.Errorf("failed to write navigation document: %w", err)
	}
	return newRev, nil
}
