// Package config provides hierarchical configuration management for
// gitchangelog using koanf. Values are loaded with priority: environment
// variables > project config (.gitchangelog.yml in the repository) >
// user config (~/.config/gitchangelog/config.yml) > defaults. A legacy
// JSON project file (.gitchangelog.json) is still read, with a
// deprecation warning.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/beeftornado/gitchangelog/internal/changelog"
)

// Configuration holds every option the changelog build recognizes.
type Configuration struct {
	// IncludeMerges classifies merge commits like any other commit.
	// Teams that rely on a merging (rather than rebasing) workflow turn
	// this off to keep merge noise out of the changelog.
	IncludeMerges bool `koanf:"include_merges"`

	// GitFlow reclassifies completion merges (feature/fix/hotfix branch
	// naming) into synthetic entries when IncludeMerges is off.
	GitFlow bool `koanf:"git_flow"`

	// TagFilterRegexp selects the tags that define release boundaries.
	TagFilterRegexp string `koanf:"tag_filter_regexp"`

	// ReplaceUnreleasedVersionLabel derives a pseudo-version for the
	// unreleased section from the nearest tag, commit offset, and head
	// timestamp.
	ReplaceUnreleasedVersionLabel bool `koanf:"replace_unreleased_version_label"`

	// UnreleasedVersionLabel is the literal label used when derivation
	// is off or no tag exists to derive from.
	UnreleasedVersionLabel string `koanf:"unreleased_version_label"`

	// Categories maps a subject token (e.g. "new", "fix") to the section
	// heading its commits appear under.
	Categories map[string]string `koanf:"categories"`

	// CategoryOrder is the priority order of headings within a release.
	CategoryOrder []string `koanf:"category_order"`

	// DefaultCategory receives commits with no recognized token.
	DefaultCategory string `koanf:"default_category"`

	// IgnoreRegexps drop commits whose subject matches any pattern.
	IgnoreRegexps []string `koanf:"ignore_regexps"`

	// OutputEngine selects the document renderer: "rst" or "markdown".
	OutputEngine string `koanf:"output_engine"`

	// OutputFile, when set, writes the document there instead of stdout.
	OutputFile string `koanf:"output_file"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// RepoPath is the repository the project config is looked up in.
	RepoPath string
	// ProjectConfigPath overrides the project config path (for testing).
	ProjectConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr).
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings.
	SkipWarnings bool
}

// Load loads configuration for the repository at repoPath.
// Priority: environment variables > project config > user config > defaults.
func Load(repoPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{RepoPath: repoPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts, warningWriter); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr.
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values.
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config when it exists.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil || !fileExists(path) {
		return nil
	}
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating user config: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading user config %s: %w", path, err)
	}
	return nil
}

// loadProjectConfig loads the repository-level config. YAML is preferred;
// a legacy JSON file is still honored with a migration warning.
func loadProjectConfig(k *koanf.Koanf, opts LoadOptions, warningWriter io.Writer) error {
	yamlPath := ProjectConfigPath(opts.RepoPath)
	if opts.ProjectConfigPath != "" {
		yamlPath = opts.ProjectConfigPath
	}
	legacyPath := LegacyProjectConfigPath(opts.RepoPath)

	if fileExists(yamlPath) {
		if err := ValidateYAMLSyntax(yamlPath); err != nil {
			return fmt.Errorf("validating project config: %w", err)
		}
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading project config %s: %w", yamlPath, err)
		}
		return nil
	}

	if fileExists(legacyPath) {
		if err := k.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			return fmt.Errorf("loading legacy project config %s: %w", legacyPath, err)
		}
		if !opts.SkipWarnings {
			fmt.Fprintf(warningWriter, "Warning: using deprecated JSON config at %s\n", legacyPath)
			fmt.Fprintf(warningWriter, "  Run 'gitchangelog init' to write a %s and delete the old file.\n\n", ProjectConfigName)
		}
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider("GITCHANGELOG_", ".", envTransform), nil); err != nil {
		return fmt.Errorf("loading environment config: %w", err)
	}
	return nil
}

// envTransform converts environment variable names to config keys.
// Example: GITCHANGELOG_INCLUDE_MERGES -> include_merges.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "GITCHANGELOG_"))
}

// finalizeConfig unmarshals and validates the merged configuration.
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// EngineOptions converts the configuration into the options value the
// build engine consumes. The token map keys are lowercased here so the
// engine's lookups stay case-insensitive regardless of how the config
// file spelled them.
func (c *Configuration) EngineOptions() changelog.Options {
	categories := make(map[string]string, len(c.Categories))
	for token, name := range c.Categories {
		categories[strings.ToLower(token)] = name
	}

	return changelog.Options{
		IncludeMerges:          c.IncludeMerges,
		GitFlow:                c.GitFlow,
		TagFilterPattern:       c.TagFilterRegexp,
		ReplaceUnreleasedLabel: c.ReplaceUnreleasedVersionLabel,
		UnreleasedLabel:        c.UnreleasedVersionLabel,
		Categories:             categories,
		CategoryOrder:          append([]string(nil), c.CategoryOrder...),
		DefaultCategory:        c.DefaultCategory,
		IgnoreRegexps:          append([]string(nil), c.IgnoreRegexps...),
	}
}

// UserConfigPath returns the user-level config file path, following the
// XDG base directory convention via os.UserConfigDir.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "gitchangelog", "config.yml"), nil
}

// ProjectConfigName is the repository-level config file name.
const ProjectConfigName = ".gitchangelog.yml"

// ProjectConfigPath returns the repository-level config file path.
func ProjectConfigPath(repoPath string) string {
	return filepath.Join(repoPath, ProjectConfigName)
}

// LegacyProjectConfigPath returns the deprecated JSON config file path.
func LegacyProjectConfigPath(repoPath string) string {
	return filepath.Join(repoPath, ".gitchangelog.json")
}
