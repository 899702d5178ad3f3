// Package tui provides the interactive terminal browser for the
// navigation tree.
package tui

import "github.com/inkwell-labs/inkwell/pkg/nav"

// Row is one visible line of the flattened tree.
type Row struct {
	Node     *nav.Node
	Depth    int
	Parent   *nav.Node // nil for root rows
	Siblings nav.Tree  // the sibling list this row belongs to
	Index    int       // position within Siblings
}

// Flatten renders the tree into visible rows. Children of closed folders
// are skipped.
func Flatten(t nav.Tree, open nav.OpenState) []Row {
	var rows []Row
	var walk func(siblings nav.Tree, parent *nav.Node, depth int)
	walk = func(siblings nav.Tree, parent *nav.Node, depth int) {
		for i, n := range siblings {
			rows = append(rows, Row{Node: n, Depth: depth, Parent: parent, Siblings: siblings, Index: i})
			if n.Kind == nav.KindFolder && open.IsOpen(n.Path) {
				walk(n.Children, n, depth+1)
			}
		}
	}
	walk(t, nil, 0)
	return rows
}

// MoveSibling swaps the node at idx with its neighbor at idx+delta within
// siblings and rewrites the sibling orders to match the new arrangement.
// Returns false when the move falls off either end.
func MoveSibling(siblings nav.Tree, idx, delta int) bool {
	j := idx + delta
	if j < 0 || j >= len(siblings) {
		return false
	}
	siblings[idx], siblings[j] = siblings[j], siblings[idx]
	renumber(siblings)
	return true
}

// InsertDivider places a new divider immediately after idx in siblings and
// returns the grown list with orders rewritten.
func InsertDivider(siblings nav.Tree, idx int) nav.Tree {
	div := &nav.Node{Kind: nav.KindDivider}
	out := make(nav.Tree, 0, len(siblings)+1)
	out = append(out, siblings[:idx+1]...)
	out = append(out, div)
	out = append(out, siblings[idx+1:]...)
	renumber(out)
	return out
}

// RemoveAt drops the node at idx and rewrites the remaining orders.
func RemoveAt(siblings nav.Tree, idx int) nav.Tree {
	out := append(siblings[:idx:idx], siblings[idx+1:]...)
	renumber(out)
	return out
}

// renumber assigns orders 1..N following slice position. Unpinned entries
// in subfolders ignore their order at display time, so rewriting it is
// harmless.
func renumber(siblings nav.Tree) {
	for i, n := range siblings {
		n.Order = i + 1
	}
}
