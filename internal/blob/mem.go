package blob

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemStore is a map-backed Store with the semantics of a remote
// version-controlled key-value store: directories exist only implicitly
// through the blobs under them, so empty folders need a placeholder blob.
type MemStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte

	// failList, when set, makes List return this error. Tests use it to
	// exercise scan-failure paths.
	failList error
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{blobs: make(map[string][]byte)}
}

// FailListWith makes every subsequent List call fail with err (nil restores
// normal behavior).
func (s *MemStore) FailListWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failList = err
}

// Get implements Store.
func (s *MemStore) Get(_ context.Context, path string) ([]byte, Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[path]
	if !ok {
		return nil, "", ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, Digest(data), nil
}

// Put implements Store.
func (s *MemStore) Put(_ context.Context, path string, data []byte, rev Revision) (Revision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rev != "" {
		current, ok := s.blobs[path]
		if !ok {
			return "", ErrNotFound
		}
		if Digest(current) != rev {
			return "", ErrRevisionMismatch
		}
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.blobs[path] = cp
	return Digest(data), nil
}

// Delete implements Store.
func (s *MemStore) Delete(_ context.Context, path string, rev Revision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.blobs[path]
	if !ok {
		return ErrNotFound
	}
	if rev != "" && Digest(current) != rev {
		return ErrRevisionMismatch
	}
	delete(s.blobs, path)
	return nil
}

// List implements Store. Directory membership is derived from blob keys.
// Reserved "_"-prefixed names are hidden from root listings.
func (s *MemStore) List(_ context.Context, dir string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failList != nil {
		return nil, s.failList
	}

	prefix := ""
	if dir != "" {
		prefix = dir + "/"
	}

	seen := make(map[string]bool)
	var out []Entry
	found := dir == ""
	for key := range s.blobs {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		found = true
		rest := key[len(prefix):]
		name, isDir := rest, false
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			name, isDir = rest[:i], true
		}
		if seen[name] {
			continue
		}
		if dir == "" && strings.HasPrefix(name, "_") {
			continue
		}
		seen[name] = true
		out = append(out, Entry{Name: name, IsDir: isDir})
	}
	if !found {
		return nil, ErrNotFound
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// EnsureDir implements Store. Directories are implicit; callers write a
// placeholder blob to keep empty folders visible.
func (s *MemStore) EnsureDir(_ context.Context, _ string) error {
	return nil
}

// RequiresPlaceholder implements Store.
func (s *MemStore) RequiresPlaceholder() bool {
	return true
}
