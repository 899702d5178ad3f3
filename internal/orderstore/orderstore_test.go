package orderstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/inkwell/internal/blob"
	"github.com/inkwell-labs/inkwell/pkg/nav"
)

func TestStore_MissingDocument(t *testing.T) {
	s := New(blob.NewMemStore(), nil)

	tree, rev, ok, err := s.Get(context.Background())

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, tree)
	assert.Empty(t, rev)
}

func TestStore_PutGetRoundTrip(t *testing.T) {
	s := New(blob.NewMemStore(), nil)
	ctx := context.Background()
	tree := nav.Tree{
		{Kind: nav.KindPage, Path: "intro", Order: 1, Pinned: true},
		{Kind: nav.KindDivider, Order: 2},
		{Kind: nav.KindFolder, Path: "kit", Order: 3, Children: nav.Tree{
			{Kind: nav.KindPage, Path: "kit/button", Order: 1},
		}},
	}

	_, err := s.Put(ctx, tree, "")
	require.NoError(t, err)

	got, rev, ok, err := s.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEmpty(t, rev)
	assert.Equal(t, tree, got)
}

func TestStore_PutRejectsStaleRevision(t *testing.T) {
	s := New(blob.NewMemStore(), nil)
	ctx := context.Background()

	_, err := s.Put(ctx, nav.Tree{{Kind: nav.KindPage, Path: "a", Order: 1}}, "")
	require.NoError(t, err)
	_, rev, _, err := s.Get(ctx)
	require.NoError(t, err)

	// A concurrent save replaces the document.
	_, err = s.Put(ctx, nav.Tree{{Kind: nav.KindPage, Path: "b", Order: 1}}, rev)
	require.NoError(t, err)

	_, err = s.Put(ctx, nav.Tree{{Kind: nav.KindPage, Path: "c", Order: 1}}, rev)
	assert.ErrorIs(t, err, blob.ErrRevisionMismatch)
}

func TestStore_CorruptDocumentTreatedAsMissing(t *testing.T) {
	mem := blob.NewMemStore()
	ctx := context.Background()

	for name, payload := range map[string]string{
		"not json":    "{nope",
		"wrong shape": `{"structure":[{"type":"widget","order":1}]}`,
		"no field":    `{"items":[]}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := mem.Put(ctx, DocPath, []byte(payload), "")
			require.NoError(t, err)

			s := New(mem, nil)
			tree, rev, ok, err := s.Get(ctx)

			require.NoError(t, err)
			assert.False(t, ok)
			assert.Nil(t, tree)
			// The revision survives so the next save can replace the
			// corrupt document without a blind write.
			assert.NotEmpty(t, rev)

			_, err = s.Put(ctx, nav.Tree{}, rev)
			assert.NoError(t, err)
		})
	}
}
