package nav

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeJSON_RoundTrip(t *testing.T) {
	in := Tree{
		pinnedPage("intro", 1),
		divider(2),
		folder("kit", 3,
			page("kit/button", 1),
			folder("kit/forms", 2),
		),
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Tree
	require.NoError(t, json.Unmarshal(data, &out))

	require.Len(t, out, 3)
	assert.Equal(t, KindPage, out[0].Kind)
	assert.True(t, out[0].Pinned)
	assert.Equal(t, KindDivider, out[1].Kind)
	assert.Equal(t, 2, out[1].Order)
	assert.Empty(t, out[1].Path)
	require.Len(t, out[2].Children, 2)
	assert.Equal(t, "kit/forms", out[2].Children[1].Path)
	assert.NotNil(t, out[2].Children[1].Children)
}

func TestTreeJSON_DividerCarriesNoPath(t *testing.T) {
	data, err := json.Marshal(Tree{divider(4)})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"divider","order":4}]`, string(data))
}

func TestTreeJSON_RejectsBadShape(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown type", `[{"type":"widget","path":"a","order":1}]`},
		{"missing type", `[{"path":"a","order":1}]`},
		{"invalid path", `[{"type":"page","path":"Not A Slug","order":1}]`},
		{"page without path", `[{"type":"page","order":1}]`},
		{"not an object", `[42]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out Tree
			err := json.Unmarshal([]byte(tt.in), &out)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrBadShape)
		})
	}
}

func TestNodeName(t *testing.T) {
	assert.Equal(t, "input", page("kit/forms/input", 1).Name())
	assert.Equal(t, "kit", folder("kit", 1).Name())
	assert.Equal(t, "", divider(1).Name())
}
