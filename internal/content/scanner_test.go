package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/inkwell/internal/blob"
	"github.com/inkwell-labs/inkwell/pkg/nav"
)

func seedStore(t *testing.T, paths ...string) *blob.MemStore {
	t.Helper()
	s := blob.NewMemStore()
	for _, p := range paths {
		_, err := s.Put(context.Background(), p, []byte("---\n---\n"), "")
		require.NoError(t, err)
	}
	return s
}

func TestScanner_FilesBeforeFoldersAlphabetical(t *testing.T) {
	store := seedStore(t,
		"zz-page.md",
		"about.md",
		"aa-folder/child.md",
		"kit/button.md",
	)

	tree, err := NewScanner(store).Scan(context.Background())
	require.NoError(t, err)

	require.Len(t, tree, 4)
	assert.Equal(t, "about", tree[0].Path)
	assert.Equal(t, nav.KindPage, tree[0].Kind)
	assert.Equal(t, "zz-page", tree[1].Path)
	assert.Equal(t, "aa-folder", tree[2].Path)
	assert.Equal(t, nav.KindFolder, tree[2].Kind)
	assert.Equal(t, "kit", tree[3].Path)

	for i, n := range tree {
		assert.Equal(t, i+1, n.Order)
		assert.False(t, n.Pinned)
	}

	require.Len(t, tree[3].Children, 1)
	assert.Equal(t, "kit/button", tree[3].Children[0].Path)
	assert.Equal(t, 1, tree[3].Children[0].Order)
}

func TestScanner_SkipsPlaceholdersAndReservedNames(t *testing.T) {
	store := seedStore(t,
		"kit/.gitkeep",
		"kit/button.md",
		"notes.txt", // not a page file
		"_meta/navigation.json",
	)

	tree, err := NewScanner(store).Scan(context.Background())
	require.NoError(t, err)

	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "kit/button", tree[0].Children[0].Path)
}

func TestScanner_EmptyFolderPermitted(t *testing.T) {
	store := seedStore(t, "drafts/.gitkeep")

	tree, err := NewScanner(store).Scan(context.Background())
	require.NoError(t, err)

	require.Len(t, tree, 1)
	assert.Equal(t, nav.KindFolder, tree[0].Kind)
	assert.Equal(t, "drafts", tree[0].Path)
	assert.Empty(t, tree[0].Children)
}

func TestScanner_EmptyStoreScansEmpty(t *testing.T) {
	tree, err := NewScanner(blob.NewMemStore()).Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tree)
}

func TestScanner_ListFailureAbortsWholeScan(t *testing.T) {
	store := seedStore(t, "a.md", "kit/button.md")
	store.FailListWith(assert.AnError)

	tree, err := NewScanner(store).Scan(context.Background())

	require.Error(t, err)
	assert.Nil(t, tree, "a failed scan must never yield a partial tree")
}

func TestScanner_UnboundedDepth(t *testing.T) {
	store := seedStore(t, "a/b/c/d/e/deep.md")

	tree, err := NewScanner(store).Scan(context.Background())
	require.NoError(t, err)

	n := tree[0]
	for _, p := range []string{"a/b", "a/b/c", "a/b/c/d", "a/b/c/d/e"} {
		require.Len(t, n.Children, 1)
		n = n.Children[0]
		assert.Equal(t, p, n.Path)
	}
	require.Len(t, n.Children, 1)
	assert.Equal(t, "a/b/c/d/e/deep", n.Children[0].Path)
	assert.Equal(t, nav.KindPage, n.Children[0].Kind)
}
