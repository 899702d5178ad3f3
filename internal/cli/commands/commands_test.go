package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/inkwell/internal/config"
	"github.com/inkwell-labs/inkwell/internal/testutil"
	"github.com/inkwell-labs/inkwell/pkg/nav"
)

// newTestProject seeds a content root on disk and returns a context
// carrying the matching config.
func newTestProject(t *testing.T, files map[string]string) context.Context {
	t.Helper()
	dir := t.TempDir()

	contentDir := filepath.Join(dir, "content")
	for path, body := range files {
		full := filepath.Join(contentDir, filepath.FromSlash(path))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0750))
		require.NoError(t, os.WriteFile(full, []byte(body), 0600))
	}

	cfg := &config.Config{
		ProjectRoot: dir,
		ContentDir:  contentDir,
		StatePath:   filepath.Join(dir, ".inkwell", "state.db"),
		Port:        config.DefaultPort,
	}

	ctx := WithConfig(context.Background(), cfg)
	return WithLogger(ctx, testutil.NewTestLogger(t))
}

func execute(t *testing.T, ctx context.Context, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return buf.String(), err
}

func TestTreeCommandText(t *testing.T) {
	ctx := newTestProject(t, map[string]string{
		"getting-started.md":    "# Hi",
		"components/button.md":  "# Button",
		"components/_hidden.md": "skipped",
	})

	out, err := execute(t, ctx, NewTreeCommand())
	require.NoError(t, err)

	assert.Contains(t, out, "getting-started")
	assert.Contains(t, out, "components/")
	assert.Contains(t, out, "button")
	assert.NotContains(t, out, "_hidden")
}

func TestTreeCommandJSON(t *testing.T) {
	ctx := newTestProject(t, map[string]string{
		"alpha.md": "a",
		"beta.md":  "b",
	})

	out, err := execute(t, ctx, NewTreeCommand(), "--format", "json")
	require.NoError(t, err)

	var res TreeJSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Tree, 2)
	assert.Equal(t, "alpha", res.Tree[0].Path)
	assert.False(t, res.Stale)
}

func TestCheckCommandCleanProject(t *testing.T) {
	ctx := newTestProject(t, map[string]string{
		"index.md": "x",
	})

	out, err := execute(t, ctx, NewCheckCommand(), "--format", "json")
	require.NoError(t, err)

	var res CheckOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 1, res.Pages)
	for _, check := range res.Results {
		assert.NotEqual(t, "fail", check.Status, check.Check)
	}
}

func TestCheckCommandReportsGhosts(t *testing.T) {
	ctx := newTestProject(t, map[string]string{
		"index.md": "x",
		"_meta/navigation.json": `{"structure":[
			{"type":"page","path":"index","order":1},
			{"type":"page","path":"gone","order":2}
		]}`,
	})

	out, err := execute(t, ctx, NewCheckCommand(), "--format", "json")
	require.NoError(t, err)

	var res CheckOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))

	var found bool
	for _, check := range res.Results {
		if check.Check == "ghost entries" {
			found = true
			assert.Equal(t, "warn", check.Status)
			assert.Contains(t, check.Detail, "gone")
		}
	}
	assert.True(t, found, "expected a ghost entries finding")
}

func TestDriftChecksKindMismatch(t *testing.T) {
	configured := nav.Tree{
		&nav.Node{Kind: nav.KindFolder, Path: "guides", Order: 1},
	}
	observed := nav.Tree{
		&nav.Node{Kind: nav.KindPage, Path: "guides", Order: 1},
	}

	results := driftChecks(configured, observed)
	require.Len(t, results, 1)
	assert.Equal(t, "kind mismatches", results[0].Check)
}
