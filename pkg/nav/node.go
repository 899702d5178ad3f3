// Package nav implements the sidebar navigation model: a forest of pages,
// folders, and dividers, the reconciliation of persisted ordering
// configuration against the content actually present in the backing store,
// and the deterministic display-order sort used for rendering.
package nav

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies the variant of a Node.
type Kind string

const (
	// KindPage is a leaf content page.
	KindPage Kind = "page"
	// KindFolder is a container with ordered children.
	KindFolder Kind = "folder"
	// KindDivider is a visual separator within one sibling list. It has no
	// path, cannot be pinned, and never exists in the backing store.
	KindDivider Kind = "divider"
)

// ErrBadShape is returned when a serialized tree does not match the expected
// tagged-union document shape.
var ErrBadShape = errors.New("nav: malformed tree document")

// Node is one entry in a navigation tree.
//
// Path is the `/`-joined slug sequence uniquely identifying a Page or Folder;
// it is empty for dividers. Order is a sort hint within the node's sibling
// list, dense 1..N only immediately after Normalize.
type Node struct {
	Kind     Kind
	Path     string
	Order    int
	Pinned   bool
	Children Tree
}

// Tree is an ordered sibling list of nodes. The navigation structure is a
// forest: there is no imposed single root.
type Tree []*Node

// Name returns the last path segment, or "" for dividers.
func (n *Node) Name() string {
	if n.Path == "" {
		return ""
	}
	if i := strings.LastIndexByte(n.Path, '/'); i >= 0 {
		return n.Path[i+1:]
	}
	return n.Path
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	c := *n
	c.Children = n.Children.Clone()
	return &c
}

// Clone returns a deep copy of the tree.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for i, n := range t {
		out[i] = n.Clone()
	}
	return out
}

// nodeJSON is the wire form of a Node.
type nodeJSON struct {
	Type     string          `json:"type"`
	Path     string          `json:"path,omitempty"`
	Order    int             `json:"order"`
	Pinned   bool            `json:"pinned,omitempty"`
	Children json.RawMessage `json:"children,omitempty"`
}

// MarshalJSON encodes the node in its tagged wire form.
func (n *Node) MarshalJSON() ([]byte, error) {
	w := nodeJSON{Type: string(n.Kind), Order: n.Order}
	switch n.Kind {
	case KindDivider:
	case KindPage:
		w.Path = n.Path
		w.Pinned = n.Pinned
	case KindFolder:
		w.Path = n.Path
		w.Pinned = n.Pinned
		children := n.Children
		if children == nil {
			children = Tree{}
		}
		raw, err := json.Marshal(children)
		if err != nil {
			return nil, err
		}
		w.Children = raw
	default:
		return nil, fmt.Errorf("%w: unknown node kind %q", ErrBadShape, n.Kind)
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the tagged wire form, rejecting unknown or missing
// type tags and paths that fail slug syntax.
func (n *Node) UnmarshalJSON(data []byte) error {
	var w nodeJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrBadShape, err)
	}

	switch Kind(w.Type) {
	case KindDivider:
		n.Kind = KindDivider
		n.Order = w.Order
	case KindPage:
		if !ValidPath(w.Path) {
			return fmt.Errorf("%w: invalid page path %q", ErrBadShape, w.Path)
		}
		n.Kind = KindPage
		n.Path = w.Path
		n.Order = w.Order
		n.Pinned = w.Pinned
	case KindFolder:
		if !ValidPath(w.Path) {
			return fmt.Errorf("%w: invalid folder path %q", ErrBadShape, w.Path)
		}
		n.Kind = KindFolder
		n.Path = w.Path
		n.Order = w.Order
		n.Pinned = w.Pinned
		n.Children = Tree{}
		if len(w.Children) > 0 {
			if err := json.Unmarshal(w.Children, &n.Children); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: unknown node type %q", ErrBadShape, w.Type)
	}
	return nil
}

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidSlug reports whether s is a URL-safe lowercase token of letters,
// digits, and interior hyphens.
func ValidSlug(s string) bool {
	return slugRe.MatchString(s)
}

// ValidPath reports whether p is a non-empty `/`-joined sequence of valid
// slugs.
func ValidPath(p string) bool {
	if p == "" {
		return false
	}
	for _, seg := range strings.Split(p, "/") {
		if !ValidSlug(seg) {
			return false
		}
	}
	return true
}
