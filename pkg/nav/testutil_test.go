package nav

// Tree construction helpers shared by the tests in this package.

func page(path string, order int) *Node {
	return &Node{Kind: KindPage, Path: path, Order: order}
}

func pinnedPage(path string, order int) *Node {
	return &Node{Kind: KindPage, Path: path, Order: order, Pinned: true}
}

func folder(path string, order int, children ...*Node) *Node {
	return &Node{Kind: KindFolder, Path: path, Order: order, Children: Tree(children)}
}

func pinnedFolder(path string, order int, children ...*Node) *Node {
	return &Node{Kind: KindFolder, Path: path, Order: order, Pinned: true, Children: Tree(children)}
}

func divider(order int) *Node {
	return &Node{Kind: KindDivider, Order: order}
}

// paths flattens a sibling list to its page/folder paths in sequence,
// substituting "---" for dividers.
func paths(t Tree) []string {
	out := make([]string, len(t))
	for i, n := range t {
		if n.Kind == KindDivider {
			out[i] = "---"
		} else {
			out[i] = n.Path
		}
	}
	return out
}
