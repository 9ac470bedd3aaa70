package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beeftornado/gitchangelog/internal/config"
	clierrors "github.com/beeftornado/gitchangelog/internal/errors"
)

// execute runs the root command with the given args and captured output.
// Flag values persist on the package-level commands between executions, so
// the ones these tests touch are reset afterwards.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		_ = initCmd.Flags().Set("force", "false")
		_ = rootCmd.Flags().Set("output", "")
		_ = rootCmd.Flags().Set("engine", "")
		_ = rootCmd.Flags().Set("watch", "false")
		_ = rootCmd.PersistentFlags().Set("config", "")
		_ = rootCmd.PersistentFlags().Set("plain", "false")
	})

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestInit_WritesConfigTemplate(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "created at")

	path := filepath.Join(dir, config.ProjectConfigName)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tag_filter_regexp")
	assert.Contains(t, string(data), "ignore_regexps")
}

func TestInit_RefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ProjectConfigName)
	require.NoError(t, os.WriteFile(path, []byte("git_flow: true\n"), 0644))

	_, err := execute(t, "init", dir)
	require.Error(t, err)

	cliErr := clierrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, clierrors.Argument, cliErr.Category)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "git_flow: true\n", string(data), "existing file must be untouched")
}

func TestInit_ForceOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ProjectConfigName)
	require.NoError(t, os.WriteFile(path, []byte("git_flow: true\n"), 0644))

	_, err := execute(t, "init", dir, "--force")
	require.NoError(t, err)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "tag_filter_regexp")
}

func TestVersion_PrintsBuildInfo(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)

	assert.Contains(t, out, "gitchangelog dev")
	assert.Contains(t, out, "go: go")
}
