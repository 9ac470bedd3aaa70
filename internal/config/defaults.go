package config

import "github.com/beeftornado/gitchangelog/internal/changelog"

// GetDefaults returns the default configuration values as koanf keys.
// They mirror the engine defaults so configuration-free runs behave like
// the engine's own DefaultOptions.
func GetDefaults() map[string]interface{} {
	engine := changelog.DefaultOptions()

	return map[string]interface{}{
		"include_merges":                   engine.IncludeMerges,
		"git_flow":                         engine.GitFlow,
		"tag_filter_regexp":                engine.TagFilterPattern,
		"replace_unreleased_version_label": engine.ReplaceUnreleasedLabel,
		"unreleased_version_label":         engine.UnreleasedLabel,
		"categories":                       engine.Categories,
		"category_order":                   engine.CategoryOrder,
		"default_category":                 engine.DefaultCategory,
		"ignore_regexps":                   engine.IgnoreRegexps,
		"output_engine":                    "rst",
		"output_file":                      "",
	}
}

// GetDefaultConfigTemplate returns a fully commented config template that
// documents every available option. It is what 'gitchangelog init' writes.
func GetDefaultConfigTemplate() string {
	return `# gitchangelog configuration
# Values shown are the defaults.

# Merge handling
include_merges: true                  # Classify merge commits like any other commit
git_flow: false                       # Reclassify feature/fix/hotfix completion merges
                                      # (only consulted when include_merges is false)

# Release boundaries
tag_filter_regexp: '^v?\d+(\.\d+)*$'  # Tags that define release sections

# Unreleased section labeling
replace_unreleased_version_label: false   # Derive <tag>-<offset>.dev_r<timestamp> labels
unreleased_version_label: '%%version%%'   # Literal label when derivation is off

# Commit classification
categories:                           # Subject token -> section heading
  new: New
  chg: Changes
  change: Changes
  fix: Fix
category_order: [New, Changes, Fix, Other]
default_category: Other
ignore_regexps:                       # Commits matching any pattern are dropped
  - '!minor'
  - '!cosmetic'
  - '!refactor'
  - '!wip'

# Output
output_engine: rst                    # rst | markdown
output_file: ''                       # Empty writes to stdout
`
}
