package nav

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// newCollator builds the case-insensitive comparator used for unpinned
// items. Und keeps collation locale-neutral so the display order is
// identical on every machine. A Collator buffers sort keys internally and
// is not safe for concurrent use, so each sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.IgnoreCase)
}

// DisplaySort returns the render order of an already-reconciled tree. The
// stored order and pinned values are never mutated; the sort is recomputed
// from them on every call.
//
// The root level is fully custom-ordered: every item, dividers included, is
// sorted ascending by order and pinned is ignored. Below the root each
// sibling list is partitioned into three zones, in fixed sequence: pinned
// pages/folders ascending by order, dividers ascending by order, and unpinned
// pages/folders alphabetically case-insensitively by path with order
// ignored. Pinned items get explicit manual placement; everything else
// degrades to predictable alphabetical placement so new content needs no
// manual numbering.
func DisplaySort(t Tree) Tree {
	return sortLevel(t, 0, newCollator())
}

func sortLevel(t Tree, depth int, col *collate.Collator) Tree {
	out := make(Tree, len(t))
	for i, n := range t {
		c := *n
		if n.Kind == KindFolder {
			c.Children = sortLevel(n.Children, depth+1, col)
		}
		out[i] = &c
	}

	if depth == 0 {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Order < out[j].Order
		})
		return out
	}

	var pinned, dividers, unpinned Tree
	for _, n := range out {
		switch {
		case n.Kind == KindDivider:
			dividers = append(dividers, n)
		case n.Pinned:
			pinned = append(pinned, n)
		default:
			unpinned = append(unpinned, n)
		}
	}

	sort.SliceStable(pinned, func(i, j int) bool {
		return pinned[i].Order < pinned[j].Order
	})
	sort.SliceStable(dividers, func(i, j int) bool {
		return dividers[i].Order < dividers[j].Order
	})
	sort.SliceStable(unpinned, func(i, j int) bool {
		return col.CompareString(unpinned[i].Path, unpinned[j].Path) < 0
	})

	merged := make(Tree, 0, len(out))
	merged = append(merged, pinned...)
	merged = append(merged, dividers...)
	merged = append(merged, unpinned...)
	return merged
}

// CanReorder reports whether a node at the given depth is drag-reorderable.
// Everything at the root is; below the root only pinned pages/folders and
// dividers are, since unpinned position is derived alphabetically rather than
// stored.
func CanReorder(n *Node, depth int) bool {
	if depth == 0 {
		return true
	}
	return n.Kind == KindDivider || n.Pinned
}
