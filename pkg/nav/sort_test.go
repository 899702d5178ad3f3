package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplaySort_RootIgnoresPinned(t *testing.T) {
	in := Tree{
		page("c", 3),
		pinnedPage("a", 1),
		divider(2),
	}

	got := DisplaySort(in)

	assert.Equal(t, []string{"a", "---", "c"}, paths(got))
}

func TestDisplaySort_ZonesBelowRoot(t *testing.T) {
	in := Tree{
		folder("kit", 1,
			page("kit/z", 1),
			pinnedPage("kit/b", 5),
			divider(3),
			pinnedPage("kit/a", 1),
			page("kit/a-widget", 9),
		),
	}

	got := DisplaySort(in)

	children := got[0].Children
	// Pinned by order, then dividers, then unpinned alphabetically.
	assert.Equal(t, []string{"kit/a", "kit/b", "---", "kit/a-widget", "kit/z"}, paths(children))
}

func TestDisplaySort_UnpinnedCaseInsensitive(t *testing.T) {
	// Slugs are lowercase by construction, but the comparison must not
	// depend on it.
	in := Tree{
		folder("s", 1,
			&Node{Kind: KindPage, Path: "s/Zebra", Order: 1},
			&Node{Kind: KindPage, Path: "s/apple", Order: 2},
			&Node{Kind: KindPage, Path: "s/Mango", Order: 3},
		),
	}

	got := DisplaySort(in)

	assert.Equal(t, []string{"s/apple", "s/Mango", "s/Zebra"}, paths(got[0].Children))
}

func TestDisplaySort_Deterministic(t *testing.T) {
	in := Tree{
		folder("kit", 2,
			pinnedPage("kit/b", 2),
			pinnedPage("kit/a", 2), // tied order, input sequence wins
			page("kit/c", 1),
		),
		page("intro", 1),
	}

	first := DisplaySort(in)
	second := DisplaySort(in)

	require.Equal(t, first, second)
	assert.Equal(t, []string{"kit/b", "kit/a", "kit/c"}, paths(first[1].Children))
}

func TestDisplaySort_DoesNotMutateStoredFields(t *testing.T) {
	in := Tree{
		folder("kit", 2, page("kit/z", 1), page("kit/a", 2)),
		page("intro", 1),
	}

	_ = DisplaySort(in)

	assert.Equal(t, "kit", in[0].Path)
	assert.Equal(t, []string{"kit/z", "kit/a"}, paths(in[0].Children))
	assert.Equal(t, 1, in[0].Children[0].Order)
}

func TestCanReorder(t *testing.T) {
	tests := []struct {
		name  string
		node  *Node
		depth int
		want  bool
	}{
		{"root page", page("a", 1), 0, true},
		{"root divider", divider(1), 0, true},
		{"nested pinned page", pinnedPage("a/b", 1), 1, true},
		{"nested pinned folder", pinnedFolder("a/b", 1), 2, true},
		{"nested divider", divider(1), 1, true},
		{"nested unpinned page", page("a/b", 1), 1, false},
		{"nested unpinned folder", folder("a/b", 1), 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanReorder(tt.node, tt.depth))
		})
	}
}
