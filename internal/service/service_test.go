package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/inkwell/internal/blob"
	"github.com/inkwell-labs/inkwell/internal/state"
	"github.com/inkwell-labs/inkwell/pkg/nav"
)

func newTestService(t *testing.T, pagePaths ...string) (*Service, *blob.MemStore) {
	t.Helper()
	store := blob.NewMemStore()
	for _, p := range pagePaths {
		_, err := store.Put(context.Background(), p+".md", []byte("---\n---\n"), "")
		require.NoError(t, err)
	}
	snapshots, err := state.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = snapshots.Close() })

	return New(Config{Store: store, Snapshots: snapshots}), store
}

func treePaths(t nav.Tree) []string {
	out := make([]string, len(t))
	for i, n := range t {
		if n.Kind == nav.KindDivider {
			out[i] = "---"
		} else {
			out[i] = n.Path
		}
	}
	return out
}

func TestDisplayTree_ObservedOnlyFallback(t *testing.T) {
	svc, _ := newTestService(t, "intro", "kit/button")

	res, err := svc.DisplayTree(context.Background())
	require.NoError(t, err)

	assert.False(t, res.Stale)
	assert.Equal(t, []string{"intro", "kit"}, treePaths(res.Tree))
}

func TestDisplayTree_StaleSnapshotWhenScanFails(t *testing.T) {
	svc, store := newTestService(t, "intro")
	ctx := context.Background()

	// Prime the snapshot with one good read.
	_, err := svc.DisplayTree(ctx)
	require.NoError(t, err)

	store.FailListWith(assert.AnError)
	res, err := svc.DisplayTree(ctx)

	require.NoError(t, err)
	assert.True(t, res.Stale)
	assert.Equal(t, []string{"intro"}, treePaths(res.Tree))
}

func TestDisplayTree_ScanFailureWithoutSnapshotSurfaces(t *testing.T) {
	store := blob.NewMemStore()
	store.FailListWith(assert.AnError)
	svc := New(Config{Store: store})

	_, err := svc.DisplayTree(context.Background())

	assert.ErrorIs(t, err, ErrUpstream)
}

func TestSaveConfiguredTree_NormalizesAndPersists(t *testing.T) {
	svc, _ := newTestService(t, "b", "a", "kit/x")
	ctx := context.Background()

	err := svc.SaveConfiguredTree(ctx, nav.Tree{
		{Kind: nav.KindPage, Path: "b", Order: 40},
		{Kind: nav.KindDivider, Order: 55},
		{Kind: nav.KindPage, Path: "ghost", Order: 60}, // no longer observed
	})
	require.NoError(t, err)

	tree, _, ok, err := svc.FetchConfiguredTree(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	// Ghost filtered, survivors renumbered densely, discoveries appended.
	assert.Equal(t, []string{"b", "---", "a", "kit"}, treePaths(tree))
	for i, n := range tree {
		assert.Equal(t, i+1, n.Order)
	}
}

func TestSaveConfiguredTree_RefusesToWriteAfterFailedScan(t *testing.T) {
	svc, store := newTestService(t, "a")
	store.FailListWith(assert.AnError)

	err := svc.SaveConfiguredTree(context.Background(), nav.Tree{})

	assert.ErrorIs(t, err, ErrUpstream)
}

func TestCreatePage(t *testing.T) {
	svc, store := newTestService(t, "intro")
	ctx := context.Background()

	require.NoError(t, svc.CreatePage(ctx, "kit/button", ""))

	data, _, err := store.Get(ctx, "kit/button.md")
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Button")

	// The configuration now records the discovery.
	tree, _, ok, err := svc.FetchConfiguredTree(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"intro", "kit"}, treePaths(tree))
}

func TestCreatePage_Conflicts(t *testing.T) {
	svc, _ := newTestService(t, "intro", "kit/button")
	ctx := context.Background()

	assert.ErrorIs(t, svc.CreatePage(ctx, "kit/button", ""), ErrConflict)
	assert.ErrorIs(t, svc.CreatePage(ctx, "intro/nested", ""), ErrConflict) // intro is a page
	assert.ErrorIs(t, svc.CreatePage(ctx, "Bad Path", ""), ErrInvalidPath)
}

func TestCreateFolder_PlaceholderWhenRequired(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateFolder(ctx, "drafts"))

	_, _, err := store.Get(ctx, "drafts/.gitkeep")
	require.NoError(t, err)

	observed, err := svc.FetchObservedTree(ctx)
	require.NoError(t, err)
	require.Len(t, observed, 1)
	assert.Equal(t, nav.KindFolder, observed[0].Kind)
	assert.Empty(t, observed[0].Children)
}

func TestRenameFolder_CascadesPathsAndConfig(t *testing.T) {
	svc, store := newTestService(t, "component/button", "component/forms/input", "other")
	ctx := context.Background()

	// Pin a nested page so the config carries state worth preserving.
	require.NoError(t, svc.SaveConfiguredTree(ctx, nav.Tree{
		{Kind: nav.KindFolder, Path: "component", Order: 1, Children: nav.Tree{
			{Kind: nav.KindPage, Path: "component/button", Order: 1, Pinned: true},
		}},
	}))

	newPath, err := svc.RenameFolder(ctx, "component", "components")
	require.NoError(t, err)
	assert.Equal(t, "components", newPath)

	// Blobs moved, source gone.
	_, _, err = store.Get(ctx, "components/forms/input.md")
	require.NoError(t, err)
	_, _, err = store.Get(ctx, "component/button.md")
	assert.ErrorIs(t, err, blob.ErrNotFound)

	// Config rewritten with customization intact.
	tree, _, ok, err := svc.FetchConfiguredTree(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	f := nav.Find(tree, "components")
	require.NotNil(t, f)
	btn := nav.Find(tree, "components/button")
	require.NotNil(t, btn)
	assert.True(t, btn.Pinned)
	assert.Nil(t, nav.Find(tree, "component"))
}

func TestRenameFolder_Errors(t *testing.T) {
	svc, _ := newTestService(t, "kit/button", "guides/intro")
	ctx := context.Background()

	_, err := svc.RenameFolder(ctx, "missing", "elsewhere")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.RenameFolder(ctx, "kit/button", "elsewhere") // a page, not a folder
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.RenameFolder(ctx, "kit", "guides")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.RenameFolder(ctx, "kit", "Bad Slug")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestDelete_FolderWithChildrenGuard(t *testing.T) {
	svc, store := newTestService(t, "kit/button")
	ctx := context.Background()

	err := svc.Delete(ctx, "kit")
	assert.ErrorIs(t, err, ErrConflict)

	// Nothing was mutated.
	_, _, err = store.Get(ctx, "kit/button.md")
	assert.NoError(t, err)
}

func TestDelete_PageAndEmptyFolder(t *testing.T) {
	svc, store := newTestService(t, "kit/button")
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "kit/button"))
	_, _, err := store.Get(ctx, "kit/button.md")
	assert.ErrorIs(t, err, blob.ErrNotFound)

	require.NoError(t, svc.CreateFolder(ctx, "drafts"))
	require.NoError(t, svc.Delete(ctx, "drafts"))

	observed, err := svc.FetchObservedTree(ctx)
	require.NoError(t, err)
	assert.Empty(t, observed)
}

func TestTrashRoundTrip(t *testing.T) {
	svc, store := newTestService(t, "kit/button", "kit/forms/input")
	ctx := context.Background()

	trashPath, err := svc.MoveToTrash(ctx, "kit")
	require.NoError(t, err)
	assert.Equal(t, "_trash/kit", trashPath)

	observed, err := svc.FetchObservedTree(ctx)
	require.NoError(t, err)
	assert.Empty(t, observed)
	_, _, err = store.Get(ctx, "_trash/kit/forms/input.md")
	require.NoError(t, err)

	entries, err := svc.ListTrash(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kit", entries[0].OriginalPath)

	restored, err := svc.RestoreFromTrash(ctx, trashPath)
	require.NoError(t, err)
	assert.Equal(t, "kit", restored)

	observed, err = svc.FetchObservedTree(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"kit"}, treePaths(observed))

	entries, err = svc.ListTrash(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRestoreFromTrash_ConflictWhenRecreated(t *testing.T) {
	svc, _ := newTestService(t, "note")
	ctx := context.Background()

	trashPath, err := svc.MoveToTrash(ctx, "note")
	require.NoError(t, err)

	require.NoError(t, svc.CreatePage(ctx, "note", "Note"))

	_, err = svc.RestoreFromTrash(ctx, trashPath)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSavePageContent_InPlace(t *testing.T) {
	svc, _ := newTestService(t, "kit/button")
	ctx := context.Background()

	text := "---\nname: Button\n---\n\nUpdated body.\n"
	gotPath, err := svc.SavePageContent(ctx, "kit/button", text, "")
	require.NoError(t, err)
	assert.Equal(t, "kit/button", gotPath)

	doc, err := svc.FetchPage(ctx, "kit/button")
	require.NoError(t, err)
	assert.Equal(t, "Button", doc.Meta.Name)
	assert.Equal(t, "Updated body.\n", doc.Body)
}

func TestSavePageContent_RenameViaDisplayName(t *testing.T) {
	svc, store := newTestService(t, "kit/button")
	ctx := context.Background()

	gotPath, err := svc.SavePageContent(ctx, "kit/button", "---\nname: Push Button\n---\n", "Push Button")
	require.NoError(t, err)
	assert.Equal(t, "kit/push-button", gotPath)

	_, _, err = store.Get(ctx, "kit/button.md")
	assert.ErrorIs(t, err, blob.ErrNotFound)
	_, _, err = store.Get(ctx, "kit/push-button.md")
	assert.NoError(t, err)
}

func TestSavePageContent_MissingPage(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SavePageContent(context.Background(), "nope", "x", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSlugify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Push Button", "push-button"},
		{"  Ragged  Name ", "ragged-name"},
		{"Already-slugged", "already-slugged"},
		{"v2.0 (beta)", "v2-0-beta"},
		{"???", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), tt.in)
	}
}

func TestTitleFromSlug(t *testing.T) {
	assert.Equal(t, "Getting Started", TitleFromSlug("getting-started"))
	assert.Equal(t, "Button", TitleFromSlug("button"))
}
