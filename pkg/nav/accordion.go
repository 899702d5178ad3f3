package nav

import "strings"

// OpenState tracks which folders are expanded, keyed by normalized path
// rather than array index so insertions elsewhere never invalidate unrelated
// state. Flags are independent per path; a folder whose ancestor is closed
// keeps its flag and simply is not visible.
//
// The zero value is not usable; construct with NewOpenState or unmarshal from
// a persisted map.
type OpenState map[string]bool

// NewOpenState returns an empty open-state map.
func NewOpenState() OpenState {
	return make(OpenState)
}

// IsOpen reports whether the folder at path is expanded.
func (s OpenState) IsOpen(path string) bool {
	return s[path]
}

// Open expands the folder at path. Every ancestor on the path is opened too,
// so navigating to a nested page always reveals the trail. At each level the
// newly opened folder closes its sibling folders (single-open-per-level
// accordion); folders nested under different subtrees are unaffected.
func (s OpenState) Open(t Tree, path string) {
	segs := strings.Split(path, "/")
	siblings := t
	prefix := ""
	for _, seg := range segs {
		if prefix == "" {
			prefix = seg
		} else {
			prefix = prefix + "/" + seg
		}
		next := Find(siblings, prefix)
		if next == nil || next.Kind != KindFolder {
			// Path runs past the tree, or through a page; flags for the
			// folder levels that exist are already set.
			return
		}
		for _, sib := range siblings {
			if sib.Kind == KindFolder && sib.Path != prefix {
				delete(s, sib.Path)
			}
		}
		s[prefix] = true
		siblings = next.Children
	}
}

// Close collapses the folder at path, leaving descendant flags untouched.
func (s OpenState) Close(path string) {
	delete(s, path)
}

// Toggle opens the folder at path if closed, closes it if open.
func (s OpenState) Toggle(t Tree, path string) {
	if s.IsOpen(path) {
		s.Close(path)
		return
	}
	s.Open(t, path)
}
