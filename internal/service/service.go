// Package service exposes the operation surface of the content platform: it
// wires the content scanner, the order store, and the backing blob store into
// the fetch/save/create/rename/trash operations the renderer calls, applying
// the error taxonomy at every boundary.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/inkwell-labs/inkwell/internal/blob"
	"github.com/inkwell-labs/inkwell/internal/content"
	"github.com/inkwell-labs/inkwell/internal/orderstore"
	"github.com/inkwell-labs/inkwell/internal/state"
	"github.com/inkwell-labs/inkwell/pkg/nav"
)

// TrashPrefix is where trashed content lives in the backing store, outside
// the scanned content tree.
const TrashPrefix = "_trash"

// Service implements the operation surface over one backing store.
type Service struct {
	store     blob.Store
	scanner   *content.Scanner
	orders    *orderstore.Store
	snapshots state.Store // optional; nil disables the stale fallback and trash log
	logger    *slog.Logger
}

// Config holds the collaborators of a Service.
type Config struct {
	Store     blob.Store
	Snapshots state.Store
	Logger    *slog.Logger
}

// New creates a Service.
func New(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:     cfg.Store,
		scanner:   content.NewScanner(cfg.Store),
		orders:    orderstore.New(cfg.Store, logger),
		snapshots: cfg.Snapshots,
		logger:    logger,
	}
}

// FetchObservedTree scans the backing store, with bounded backoff on
// transient failures.
func (s *Service) FetchObservedTree(ctx context.Context) (nav.Tree, error) {
	var tree nav.Tree
	err := withReadRetry(ctx, func(ctx context.Context) error {
		var err error
		tree, err = s.scanner.Scan(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return tree, nil
}

// FetchConfiguredTree returns the persisted configured tree, its revision
// token, and whether a document existed at all.
func (s *Service) FetchConfiguredTree(ctx context.Context) (nav.Tree, blob.Revision, bool, error) {
	var (
		tree nav.Tree
		rev  blob.Revision
		ok   bool
	)
	err := withReadRetry(ctx, func(ctx context.Context) error {
		var err error
		tree, rev, ok, err = s.orders.Get(ctx)
		return err
	})
	if err != nil {
		return nil, "", false, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return tree, rev, ok, nil
}

// DisplayResult is a tree ready for rendering.
type DisplayResult struct {
	Tree nav.Tree
	// Stale is set when the backing store could not be scanned and the
	// tree comes from the last successful reconciliation instead.
	Stale bool
}

// DisplayTree reconciles the configured tree against a fresh scan and
// returns the deterministic display order. When the scan fails, the last
// successfully reconciled tree is served instead, marked stale; a stale tree
// is never written back.
func (s *Service) DisplayTree(ctx context.Context) (DisplayResult, error) {
	merged, err := s.reconciled(ctx)
	if err != nil {
		if s.snapshots != nil {
			if snap, takenAt, serr := s.snapshots.LatestSnapshot(ctx); serr == nil {
				s.logger.Warn("serving stale navigation tree", "taken_at", takenAt, "error", err)
				return DisplayResult{Tree: nav.DisplaySort(snap), Stale: true}, nil
			}
		}
		return DisplayResult{}, err
	}
	return DisplayResult{Tree: nav.DisplaySort(merged)}, nil
}

// reconciled merges the configured tree against a fresh scan and snapshots
// the result. Nothing is persisted to the backing store.
func (s *Service) reconciled(ctx context.Context) (nav.Tree, error) {
	observed, err := s.FetchObservedTree(ctx)
	if err != nil {
		return nil, err
	}
	configured, _, _, err := s.FetchConfiguredTree(ctx)
	if err != nil {
		return nil, err
	}
	merged := nav.Reconcile(configured, observed)
	s.snapshot(ctx, merged)
	return merged, nil
}

func (s *Service) snapshot(ctx context.Context, tree nav.Tree) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.SaveSnapshot(ctx, tree); err != nil {
		s.logger.Warn("failed to record navigation snapshot", "error", err)
	}
}

// SaveConfiguredTree normalizes and persists a tree edited by the user. The
// tree is filtered and re-reconciled against a fresh scan immediately before
// writing, minimizing lost updates under concurrent edits; this is the only
// path that renumbers order fields to a dense 1..N.
func (s *Service) SaveConfiguredTree(ctx context.Context, tree nav.Tree) error {
	observed, err := s.FetchObservedTree(ctx)
	if err != nil {
		// Writing a tree derived from a failed scan would look like mass
		// deletion.
		return err
	}
	tree = nav.FilterToExisting(tree, nav.ValidPaths(observed))
	merged := nav.Normalize(nav.Reconcile(tree, observed))

	_, rev, _, err := s.FetchConfiguredTree(ctx)
	if err != nil {
		return err
	}
	if _, err := s.orders.Put(ctx, merged, rev); err != nil {
		if errors.Is(err, blob.ErrRevisionMismatch) {
			return fmt.Errorf("%w: navigation was saved by someone else, reload and retry", ErrConflict)
		}
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	s.snapshot(ctx, merged)
	return nil
}

// CreatePage creates a new page document at path. The display name defaults
// to a titled form of the last slug.
func (s *Service) CreatePage(ctx context.Context, path, displayName string) error {
	const op = "create-page"
	if err := s.checkCreatable(ctx, path); err != nil {
		return err
	}

	if displayName == "" {
		displayName = TitleFromSlug(path[strings.LastIndexByte(path, '/')+1:])
	}
	doc := &content.Document{Meta: content.Meta{Name: displayName}}
	data, err := doc.Encode()
	if err != nil {
		return opErr(op, "encode", path, err)
	}
	if _, err := s.store.Put(ctx, path+content.PageExt, data, ""); err != nil {
		return opErr(op, "write-page", path, fmt.Errorf("%w: %w", ErrUpstream, err))
	}
	return s.syncConfig(ctx, op, path)
}

// CreateFolder creates an empty folder at path, writing a placeholder blob
// when the store cannot represent empty directories.
func (s *Service) CreateFolder(ctx context.Context, path string) error {
	const op = "create-folder"
	if err := s.checkCreatable(ctx, path); err != nil {
		return err
	}

	if err := s.store.EnsureDir(ctx, path); err != nil {
		return opErr(op, "create-dir", path, fmt.Errorf("%w: %w", ErrUpstream, err))
	}
	if s.store.RequiresPlaceholder() {
		if _, err := s.store.Put(ctx, path+"/"+content.PlaceholderName, nil, ""); err != nil {
			return opErr(op, "write-placeholder", path, fmt.Errorf("%w: %w", ErrUpstream, err))
		}
	}
	return s.syncConfig(ctx, op, path)
}

// checkCreatable validates path syntax and rejects creates that would
// collide with an existing page or folder, or tunnel through a page.
func (s *Service) checkCreatable(ctx context.Context, path string) error {
	if !nav.ValidPath(path) {
		return fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	observed, err := s.FetchObservedTree(ctx)
	if err != nil {
		return err
	}
	valid := nav.ValidPaths(observed)
	if _, exists := valid[path]; exists {
		return fmt.Errorf("%w: %s already exists", ErrConflict, path)
	}
	for p := nav.ParentPath(path); p != ""; p = nav.ParentPath(p) {
		if valid[p] == nav.KindPage {
			return fmt.Errorf("%w: %s is a page", ErrConflict, p)
		}
	}
	return nil
}

// RenameFolder moves the folder at oldPath to newPath, rewriting every
// descendant path. The destination subtree is fully created before anything
// at the source is touched; a mid-sequence failure leaves both halves in
// place for a manual retry. Returns the resulting path.
func (s *Service) RenameFolder(ctx context.Context, oldPath, newPath string) (string, error) {
	const op = "rename-folder"
	if !nav.ValidPath(newPath) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, newPath)
	}
	observed, err := s.FetchObservedTree(ctx)
	if err != nil {
		return "", err
	}
	node := nav.Find(observed, oldPath)
	if node == nil || node.Kind != nav.KindFolder {
		return "", fmt.Errorf("%w: folder %s", ErrNotFound, oldPath)
	}
	if _, exists := nav.ValidPaths(observed)[newPath]; exists {
		return "", fmt.Errorf("%w: %s already exists", ErrConflict, newPath)
	}

	if err := s.moveSubtree(ctx, op, oldPath, newPath); err != nil {
		return "", err
	}
	if err := s.patchConfigRename(ctx, op, oldPath, newPath); err != nil {
		return "", err
	}
	return newPath, nil
}

// Delete removes a single page or empty folder. A folder that still has
// children is rejected without mutating anything; empty it or trash it
// whole instead.
func (s *Service) Delete(ctx context.Context, path string) error {
	const op = "delete"
	observed, err := s.FetchObservedTree(ctx)
	if err != nil {
		return err
	}
	node := nav.Find(observed, path)
	if node == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if node.Kind == nav.KindFolder && len(node.Children) > 0 {
		return fmt.Errorf("%w: folder %s is not empty", ErrConflict, path)
	}

	if node.Kind == nav.KindPage {
		if err := s.store.Delete(ctx, path+content.PageExt, ""); err != nil {
			return opErr(op, "delete-page", path, fmt.Errorf("%w: %w", ErrUpstream, err))
		}
	} else {
		if s.store.RequiresPlaceholder() {
			err := s.store.Delete(ctx, path+"/"+content.PlaceholderName, "")
			if err != nil && !errors.Is(err, blob.ErrNotFound) {
				return opErr(op, "delete-placeholder", path, fmt.Errorf("%w: %w", ErrUpstream, err))
			}
		} else if err := s.store.Delete(ctx, path, ""); err != nil {
			return opErr(op, "delete-dir", path, fmt.Errorf("%w: %w", ErrUpstream, err))
		}
	}
	return s.syncConfig(ctx, op, path)
}

// MoveToTrash moves a page or folder subtree under the trash prefix and logs
// it for later restore. Returns the trash path.
func (s *Service) MoveToTrash(ctx context.Context, path string) (string, error) {
	const op = "move-to-trash"
	observed, err := s.FetchObservedTree(ctx)
	if err != nil {
		return "", err
	}
	node := nav.Find(observed, path)
	if node == nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	trashPath := TrashPrefix + "/" + path
	if node.Kind == nav.KindPage {
		err = s.moveBlob(ctx, op, path+content.PageExt, trashPath+content.PageExt)
	} else {
		err = s.moveSubtree(ctx, op, path, trashPath)
	}
	if err != nil {
		return "", err
	}

	if s.snapshots != nil {
		entry := state.TrashEntry{OriginalPath: path, TrashPath: trashPath, Kind: string(node.Kind)}
		if err := s.snapshots.RecordTrash(ctx, entry); err != nil {
			s.logger.Warn("failed to record trash entry", "path", path, "error", err)
		}
	}
	if err := s.syncConfig(ctx, op, path); err != nil {
		return "", err
	}
	return trashPath, nil
}

// RestoreFromTrash moves a previously trashed item back to its original
// path. Returns the restored path.
func (s *Service) RestoreFromTrash(ctx context.Context, trashPath string) (string, error) {
	const op = "restore-from-trash"
	original := strings.TrimPrefix(trashPath, TrashPrefix+"/")
	if original == trashPath || !nav.ValidPath(original) {
		return "", fmt.Errorf("%w: %q is not a trash path", ErrInvalidPath, trashPath)
	}

	observed, err := s.FetchObservedTree(ctx)
	if err != nil {
		return "", err
	}
	if _, exists := nav.ValidPaths(observed)[original]; exists {
		return "", fmt.Errorf("%w: %s already exists", ErrConflict, original)
	}

	// A page leaves a single document blob in the trash; anything else is a
	// folder subtree.
	if _, _, err := s.store.Get(ctx, trashPath+content.PageExt); err == nil {
		err = s.moveBlob(ctx, op, trashPath+content.PageExt, original+content.PageExt)
	} else if errors.Is(err, blob.ErrNotFound) {
		err = s.moveSubtree(ctx, op, trashPath, original)
	} else {
		return "", opErr(op, "probe-trash", trashPath, fmt.Errorf("%w: %w", ErrUpstream, err))
	}
	if err != nil {
		return "", err
	}

	if s.snapshots != nil {
		if err := s.snapshots.MarkRestored(ctx, trashPath); err != nil {
			s.logger.Warn("failed to mark trash entry restored", "path", trashPath, "error", err)
		}
	}
	if err := s.syncConfig(ctx, op, original); err != nil {
		return "", err
	}
	return original, nil
}

// ListTrash returns the unrestored trash log.
func (s *Service) ListTrash(ctx context.Context) ([]state.TrashEntry, error) {
	if s.snapshots == nil {
		return nil, nil
	}
	return s.snapshots.ListTrash(ctx)
}

// FetchPage reads and parses the page document at path.
func (s *Service) FetchPage(ctx context.Context, path string) (*content.Document, error) {
	if !nav.ValidPath(path) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	var data []byte
	err := withReadRetry(ctx, func(ctx context.Context) error {
		var err error
		data, _, err = s.store.Get(ctx, path+content.PageExt)
		return err
	})
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return nil, fmt.Errorf("%w: page %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	doc, err := content.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page %s: %w", path, err)
	}
	return doc, nil
}

// SavePageContent writes the full file text of an existing page. When
// displayNameForRename is given and slugs to a different name, the page is
// also renamed: the destination is created first, then the source deleted,
// then the configuration patched. Returns the resulting path.
func (s *Service) SavePageContent(ctx context.Context, path, fullText, displayNameForRename string) (string, error) {
	const op = "save-page"
	observed, err := s.FetchObservedTree(ctx)
	if err != nil {
		return "", err
	}
	node := nav.Find(observed, path)
	if node == nil || node.Kind != nav.KindPage {
		return "", fmt.Errorf("%w: page %s", ErrNotFound, path)
	}

	newPath := path
	if displayNameForRename != "" {
		slug := Slugify(displayNameForRename)
		if slug == "" {
			return "", fmt.Errorf("%w: cannot derive a slug from %q", ErrInvalidPath, displayNameForRename)
		}
		if parent := nav.ParentPath(path); parent != "" {
			newPath = parent + "/" + slug
		} else {
			newPath = slug
		}
	}
	if newPath != path {
		if _, exists := nav.ValidPaths(observed)[newPath]; exists {
			return "", fmt.Errorf("%w: %s already exists", ErrConflict, newPath)
		}
	}

	if _, err := s.store.Put(ctx, newPath+content.PageExt, []byte(fullText), ""); err != nil {
		return "", opErr(op, "write-page", newPath, fmt.Errorf("%w: %w", ErrUpstream, err))
	}
	if newPath == path {
		return path, nil
	}

	if err := s.store.Delete(ctx, path+content.PageExt, ""); err != nil {
		return "", opErr(op, "delete-source", path, fmt.Errorf("%w: %w", ErrUpstream, err))
	}
	if err := s.patchConfigRename(ctx, op, path, newPath); err != nil {
		return "", err
	}
	return newPath, nil
}

// moveBlob copies src to dst, then deletes src. The destination is created
// before the source is touched.
func (s *Service) moveBlob(ctx context.Context, op, src, dst string) error {
	data, _, err := s.store.Get(ctx, src)
	if err != nil {
		return opErr(op, "read-source", src, fmt.Errorf("%w: %w", ErrUpstream, err))
	}
	if _, err := s.store.Put(ctx, dst, data, ""); err != nil {
		return opErr(op, "copy-destination", dst, fmt.Errorf("%w: %w", ErrUpstream, err))
	}
	if err := s.store.Delete(ctx, src, ""); err != nil {
		return opErr(op, "delete-source", src, fmt.Errorf("%w: %w", ErrUpstream, err))
	}
	return nil
}

// moveSubtree copies every blob under src to the same relative path under
// dst, then deletes the source. If any destination write fails the source is
// left untouched.
func (s *Service) moveSubtree(ctx context.Context, op, src, dst string) error {
	files, dirs, err := s.collect(ctx, src)
	if err != nil {
		return opErr(op, "list-source", src, fmt.Errorf("%w: %w", ErrUpstream, err))
	}

	rel := func(p string) string { return strings.TrimPrefix(p, src) }

	if err := s.store.EnsureDir(ctx, dst); err != nil {
		return opErr(op, "create-destination", dst, fmt.Errorf("%w: %w", ErrUpstream, err))
	}
	for _, d := range dirs {
		if err := s.store.EnsureDir(ctx, dst+rel(d)); err != nil {
			return opErr(op, "create-destination", dst+rel(d), fmt.Errorf("%w: %w", ErrUpstream, err))
		}
	}
	for _, f := range files {
		data, _, err := s.store.Get(ctx, f)
		if err != nil {
			return opErr(op, "read-source", f, fmt.Errorf("%w: %w", ErrUpstream, err))
		}
		if _, err := s.store.Put(ctx, dst+rel(f), data, ""); err != nil {
			return opErr(op, "copy-destination", dst+rel(f), fmt.Errorf("%w: %w", ErrUpstream, err))
		}
	}

	// Destination complete; remove the source, files first, then
	// directories deepest-first.
	for _, f := range files {
		if err := s.store.Delete(ctx, f, ""); err != nil {
			return opErr(op, "delete-source", f, fmt.Errorf("%w: %w", ErrUpstream, err))
		}
	}
	if !s.store.RequiresPlaceholder() {
		for i := len(dirs) - 1; i >= 0; i-- {
			if err := s.store.Delete(ctx, dirs[i], ""); err != nil {
				return opErr(op, "delete-source", dirs[i], fmt.Errorf("%w: %w", ErrUpstream, err))
			}
		}
		if err := s.store.Delete(ctx, src, ""); err != nil {
			return opErr(op, "delete-source", src, fmt.Errorf("%w: %w", ErrUpstream, err))
		}
	}
	return nil
}

// collect returns every blob key under dir (placeholders included) and every
// subdirectory, parents before children.
func (s *Service) collect(ctx context.Context, dir string) (files, dirs []string, err error) {
	entries, err := s.store.List(ctx, dir)
	if err != nil {
		return nil, nil, err
	}
	for _, e := range entries {
		full := dir + "/" + e.Name
		if !e.IsDir {
			files = append(files, full)
			continue
		}
		dirs = append(dirs, full)
		subFiles, subDirs, err := s.collect(ctx, full)
		if err != nil {
			return nil, nil, err
		}
		files = append(files, subFiles...)
		dirs = append(dirs, subDirs...)
	}
	return files, dirs, nil
}

// syncConfig re-reconciles the configured tree against a fresh scan and
// persists it, so structural mutations are reflected in the stored
// configuration immediately rather than on the next save. Order fields are
// not renumbered here.
func (s *Service) syncConfig(ctx context.Context, op, path string) error {
	observed, err := s.FetchObservedTree(ctx)
	if err != nil {
		return opErr(op, "update-config", path, err)
	}
	configured, rev, _, err := s.FetchConfiguredTree(ctx)
	if err != nil {
		return opErr(op, "update-config", path, err)
	}
	merged := nav.Reconcile(configured, observed)
	if _, err := s.orders.Put(ctx, merged, rev); err != nil {
		return opErr(op, "update-config", path, fmt.Errorf("%w: %w", ErrUpstream, err))
	}
	s.snapshot(ctx, merged)
	return nil
}

// patchConfigRename rewrites the configured tree for a completed move and
// persists it against a fresh scan.
func (s *Service) patchConfigRename(ctx context.Context, op, oldPath, newPath string) error {
	observed, err := s.FetchObservedTree(ctx)
	if err != nil {
		return opErr(op, "update-config", newPath, err)
	}
	configured, rev, _, err := s.FetchConfiguredTree(ctx)
	if err != nil {
		return opErr(op, "update-config", newPath, err)
	}
	patched := nav.RenamePath(configured, oldPath, newPath)
	merged := nav.Reconcile(patched, observed)
	if _, err := s.orders.Put(ctx, merged, rev); err != nil {
		return opErr(op, "update-config", newPath, fmt.Errorf("%w: %w", ErrUpstream, err))
	}
	s.snapshot(ctx, merged)
	return nil
}
