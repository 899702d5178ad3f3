package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runInitCmd(t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestInitScaffoldsProject(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, runInitCmd(t))

	for _, f := range []string{"inkwell.yaml", "content", "content/welcome.md", ".inkwell"} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, f)
	}
}

func TestInitIntoNamedDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, runInitCmd(t, "my-docs"))

	_, err := os.Stat(filepath.Join(dir, "my-docs", "inkwell.yaml"))
	assert.NoError(t, err)
}

func TestInitRefusesExistingConfigWithoutForce(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inkwell.yaml"), []byte("existing"), 0600))

	err := runInitCmd(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, runInitCmd(t, "--force"))
}

func TestInitKeepsExistingWelcomePage(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "content"), 0750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "content", "welcome.md"), []byte("mine"), 0600))

	require.NoError(t, runInitCmd(t))

	data, err := os.ReadFile(filepath.Join(dir, "content", "welcome.md"))
	require.NoError(t, err)
	assert.Equal(t, "mine", string(data))
}
