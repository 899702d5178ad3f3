package nav

// Reconcile merges a previously persisted sibling list against the sibling
// list observed in the backing store, producing a list that contains exactly
// the observed paths while preserving every surviving node's order and pinned
// flag and every divider.
//
// Per sibling list:
//   - Configured nodes are walked in their original sequence. Dividers pass
//     through unchanged. A page or folder survives only if the observed list
//     holds a node of the same kind at the same path; folders recurse into
//     their observed counterpart's children. A kind mismatch at one path is
//     treated as not found and the stale entry is dropped.
//   - Observed nodes not consumed above are appended in observed sequence,
//     unpinned, with order assigned past the running maximum. An appended
//     folder's entire subtree counts as newly discovered.
//
// Existing order values are never renumbered here; dense 1..N renumbering
// happens only in Normalize, on an explicit save.
//
// Both inputs are left untouched; the result shares no nodes with either.
func Reconcile(configured, observed Tree) Tree {
	byPath := make(map[string]*Node, len(observed))
	for _, o := range observed {
		if o.Kind != KindDivider {
			byPath[o.Path] = o
		}
	}

	out := make(Tree, 0, len(observed)+len(configured))
	consumed := make(map[string]bool, len(configured))
	maxOrder := 0

	for _, c := range configured {
		switch c.Kind {
		case KindDivider:
			out = append(out, &Node{Kind: KindDivider, Order: c.Order})
		case KindPage:
			o, ok := byPath[c.Path]
			if !ok || o.Kind != KindPage {
				continue
			}
			out = append(out, &Node{Kind: KindPage, Path: c.Path, Order: c.Order, Pinned: c.Pinned})
			consumed[c.Path] = true
		case KindFolder:
			o, ok := byPath[c.Path]
			if !ok || o.Kind != KindFolder {
				continue
			}
			out = append(out, &Node{
				Kind:     KindFolder,
				Path:     c.Path,
				Order:    c.Order,
				Pinned:   c.Pinned,
				Children: Reconcile(c.Children, o.Children),
			})
			consumed[c.Path] = true
		}
		if last := out[len(out)-1]; last.Order > maxOrder {
			maxOrder = last.Order
		}
	}

	for _, o := range observed {
		if o.Kind == KindDivider || consumed[o.Path] {
			continue
		}
		maxOrder++
		n := &Node{Kind: o.Kind, Path: o.Path, Order: maxOrder}
		if o.Kind == KindFolder {
			n.Children = Reconcile(nil, o.Children)
		}
		out = append(out, n)
	}

	return out
}

// Normalize returns a copy of the tree with every sibling list renumbered to
// a dense 1..N in its current sequence. It runs only on explicit saves, never
// implicitly on read, so unrelated items do not appear to shift between
// reads.
func Normalize(t Tree) Tree {
	out := make(Tree, len(t))
	for i, n := range t {
		c := *n
		c.Order = i + 1
		if n.Kind == KindFolder {
			c.Children = Normalize(n.Children)
		}
		out[i] = &c
	}
	return out
}
