package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProjectConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ProjectConfigName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.True(t, cfg.IncludeMerges)
	assert.False(t, cfg.GitFlow)
	assert.Equal(t, `^v?\d+(\.\d+)*$`, cfg.TagFilterRegexp)
	assert.False(t, cfg.ReplaceUnreleasedVersionLabel)
	assert.Equal(t, "%%version%%", cfg.UnreleasedVersionLabel)
	assert.Equal(t, "Other", cfg.DefaultCategory)
	assert.Equal(t, []string{"New", "Changes", "Fix", "Other"}, cfg.CategoryOrder)
	assert.Equal(t, "rst", cfg.OutputEngine)
	assert.Equal(t, "New", cfg.Categories["new"])
	assert.Equal(t, "Changes", cfg.Categories["chg"])
}

func TestLoad_ProjectConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeProjectConfig(t, dir, `
include_merges: false
git_flow: true
replace_unreleased_version_label: true
tag_filter_regexp: '^sprint[-._\s]*\d+$'
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.False(t, cfg.IncludeMerges)
	assert.True(t, cfg.GitFlow)
	assert.True(t, cfg.ReplaceUnreleasedVersionLabel)
	assert.Equal(t, `^sprint[-._\s]*\d+$`, cfg.TagFilterRegexp)
	// Untouched keys keep their defaults.
	assert.Equal(t, "%%version%%", cfg.UnreleasedVersionLabel)
}

func TestLoad_EnvironmentOverridesProject(t *testing.T) {
	dir := t.TempDir()
	writeProjectConfig(t, dir, "git_flow: false\n")
	t.Setenv("GITCHANGELOG_GIT_FLOW", "true")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, cfg.GitFlow)
}

func TestLoad_LegacyJSONConfigWarns(t *testing.T) {
	dir := t.TempDir()
	legacy := filepath.Join(dir, ".gitchangelog.json")
	require.NoError(t, os.WriteFile(legacy, []byte(`{"git_flow": true}`), 0o644))

	var warnings strings.Builder
	cfg, err := LoadWithOptions(LoadOptions{RepoPath: dir, WarningWriter: &warnings})
	require.NoError(t, err)

	assert.True(t, cfg.GitFlow)
	assert.Contains(t, warnings.String(), "deprecated JSON config")
}

func TestLoad_InvalidTagFilterRegexpFails(t *testing.T) {
	dir := t.TempDir()
	writeProjectConfig(t, dir, "tag_filter_regexp: '(['\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tag_filter_regexp")
}

func TestLoad_InvalidYAMLSyntaxFails(t *testing.T) {
	dir := t.TempDir()
	writeProjectConfig(t, dir, "include_merges: [unclosed\n")

	_, err := Load(dir)
	require.Error(t, err)
}

func TestLoad_UnknownOutputEngineFails(t *testing.T) {
	dir := t.TempDir()
	writeProjectConfig(t, dir, "output_engine: html\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output_engine")
}

func TestEngineOptions_LowercasesTokenKeys(t *testing.T) {
	cfg := &Configuration{
		Categories:      map[string]string{"NEW": "New", "Fix": "Fix"},
		DefaultCategory: "Other",
	}

	opts := cfg.EngineOptions()
	assert.Equal(t, "New", opts.Categories["new"])
	assert.Equal(t, "Fix", opts.Categories["fix"])
}
