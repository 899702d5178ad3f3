package nav

import "strings"

// ValidPaths returns the path of every page and folder in the tree mapped to
// its kind. It is used for existence checks and to detect create/rename
// collisions, including kind collisions on one path.
func ValidPaths(t Tree) map[string]Kind {
	out := make(map[string]Kind)
	var walk func(Tree)
	walk = func(tt Tree) {
		for _, n := range tt {
			if n.Kind == KindDivider {
				continue
			}
			out[n.Path] = n.Kind
			if n.Kind == KindFolder {
				walk(n.Children)
			}
		}
	}
	walk(t)
	return out
}

// FilterToExisting prunes every page or folder whose path is absent from
// valid, or present under a different kind. Dividers always survive. It is a
// defensive pre-pass independent of Reconcile so stale entries never leak
// into drag targets even transiently. The input is not mutated.
func FilterToExisting(t Tree, valid map[string]Kind) Tree {
	out := make(Tree, 0, len(t))
	for _, n := range t {
		if n.Kind == KindDivider {
			out = append(out, &Node{Kind: KindDivider, Order: n.Order})
			continue
		}
		if valid[n.Path] != n.Kind {
			continue
		}
		c := *n
		if n.Kind == KindFolder {
			c.Children = FilterToExisting(n.Children, valid)
		}
		out = append(out, &c)
	}
	return out
}

// RenamePath returns a copy of the tree in which the node at oldPath and
// every descendant whose path has oldPath as a segment-boundary prefix are
// rewritten to start with newPath. Paths that merely share a string prefix
// (e.g. "component-legacy" when renaming "component") are untouched.
func RenamePath(t Tree, oldPath, newPath string) Tree {
	out := make(Tree, len(t))
	for i, n := range t {
		c := *n
		switch {
		case n.Path == oldPath:
			c.Path = newPath
		case strings.HasPrefix(n.Path, oldPath+"/"):
			c.Path = newPath + n.Path[len(oldPath):]
		}
		if n.Kind == KindFolder {
			c.Children = RenamePath(n.Children, oldPath, newPath)
		}
		out[i] = &c
	}
	return out
}

// Find returns the node at path, or nil if absent. Dividers are not
// addressable.
func Find(t Tree, path string) *Node {
	for _, n := range t {
		if n.Kind == KindDivider {
			continue
		}
		if n.Path == path {
			return n
		}
		if n.Kind == KindFolder && strings.HasPrefix(path, n.Path+"/") {
			return Find(n.Children, path)
		}
	}
	return nil
}

// ParentPath returns the path of the parent folder, or "" for a root-level
// path.
func ParentPath(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return ""
}
