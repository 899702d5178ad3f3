package content

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/inkwell-labs/inkwell/internal/blob"
	"github.com/inkwell-labs/inkwell/pkg/nav"
)

// Scanner walks the backing store and produces the observed navigation tree:
// ground truth for which pages and folders exist right now. It is stateless
// and read-only; every Scan recomputes the tree in full.
type Scanner struct {
	store blob.Store
}

// NewScanner returns a scanner over the given store.
func NewScanner(store blob.Store) *Scanner {
	return &Scanner{store: store}
}

// Scan lists the store recursively from its root. Each recognized page file
// yields a page node at the corresponding slug path, each subdirectory a
// folder node with recursively scanned children. Sibling emission order is
// alphabetical case-insensitive, files before subdirectories, with order
// numbered 1..N; this baseline matters only when no configuration exists.
//
// Any listing failure aborts the whole scan. A partial tree must never be
// returned: downstream reconciliation would mistake it for mass deletion.
func (s *Scanner) Scan(ctx context.Context) (nav.Tree, error) {
	tree, err := s.scanDir(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to scan content root: %w", err)
	}
	return tree, nil
}

func (s *Scanner) scanDir(ctx context.Context, dir string) (nav.Tree, error) {
	entries, err := s.store.List(ctx, dir)
	if err != nil {
		if dir == "" && errors.Is(err, blob.ErrNotFound) {
			// A store with no content yet scans as empty, not as failed.
			return nav.Tree{}, nil
		}
		return nil, err
	}

	var files, dirs []blob.Entry
	for _, e := range entries {
		if strings.HasPrefix(e.Name, ".") || strings.HasPrefix(e.Name, "_") {
			continue
		}
		if e.IsDir {
			dirs = append(dirs, e)
			continue
		}
		if strings.HasSuffix(e.Name, PageExt) {
			files = append(files, e)
		}
	}
	sortEntries(files)
	sortEntries(dirs)

	tree := make(nav.Tree, 0, len(files)+len(dirs))
	order := 0
	for _, f := range files {
		slug := strings.TrimSuffix(f.Name, PageExt)
		if !nav.ValidSlug(slug) {
			continue
		}
		order++
		tree = append(tree, &nav.Node{Kind: nav.KindPage, Path: childPath(dir, slug), Order: order})
	}
	for _, d := range dirs {
		if !nav.ValidSlug(d.Name) {
			continue
		}
		path := childPath(dir, d.Name)
		children, err := s.scanDir(ctx, path)
		if err != nil {
			return nil, err
		}
		order++
		tree = append(tree, &nav.Node{Kind: nav.KindFolder, Path: path, Order: order, Children: children})
	}
	return tree, nil
}

func sortEntries(entries []blob.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
}

func childPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}
