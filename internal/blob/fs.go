package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FSStore serves blobs from a directory on the local filesystem. Revision
// checks compare content digests, so the store itself stays stateless across
// processes.
type FSStore struct {
	root string
}

// NewFSStore returns a store rooted at dir, creating it if absent.
func NewFSStore(dir string) (*FSStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve content root: %w", err)
	}
	if err := os.MkdirAll(abs, 0750); err != nil {
		return nil, fmt.Errorf("failed to create content root: %w", err)
	}
	return &FSStore{root: abs}, nil
}

// Root returns the absolute content root directory.
func (s *FSStore) Root() string {
	return s.root
}

func (s *FSStore) resolve(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return "", fmt.Errorf("path %q escapes content root", path)
	}
	return filepath.Join(s.root, clean), nil
}

// Get implements Store.
func (s *FSStore) Get(_ context.Context, path string) ([]byte, Revision, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(full) //nolint:gosec // G304: resolve confines the path to the root
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, Digest(data), nil
}

// Put implements Store.
func (s *FSStore) Put(ctx context.Context, path string, data []byte, rev Revision) (Revision, error) {
	full, err := s.resolve(path)
	if err != nil {
		return "", err
	}
	if rev != "" {
		_, current, err := s.Get(ctx, path)
		if err != nil {
			return "", err
		}
		if current != rev {
			return "", ErrRevisionMismatch
		}
	}
	if err := os.MkdirAll(filepath.Dir(full), 0750); err != nil {
		return "", fmt.Errorf("failed to create parent of %s: %w", path, err)
	}
	if err := os.WriteFile(full, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return Digest(data), nil
}

// Delete implements Store. Directories are removable only when empty.
func (s *FSStore) Delete(ctx context.Context, path string, rev Revision) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if rev != "" && !info.IsDir() {
		_, current, err := s.Get(ctx, path)
		if err != nil {
			return err
		}
		if current != rev {
			return ErrRevisionMismatch
		}
	}
	if err := os.Remove(full); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

// List implements Store. Names beginning with "_" are reserved for platform
// documents and are hidden from root listings.
func (s *FSStore) List(_ context.Context, dir string) ([]Entry, error) {
	full, err := s.resolve(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if dir == "" && strings.HasPrefix(e.Name(), "_") {
			continue
		}
		out = append(out, Entry{Name: e.Name(), IsDir: e.IsDir()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// EnsureDir implements Store.
func (s *FSStore) EnsureDir(_ context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(full, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// RequiresPlaceholder implements Store. Real directories exist on disk, so
// empty folders need no marker file.
func (s *FSStore) RequiresPlaceholder() bool {
	return false
}
