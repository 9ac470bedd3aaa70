package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCannedMessages(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err      *CLIError
		category ErrorCategory
		contains []string
	}{
		"not a git repository": {
			err:      NotAGitRepository("/tmp/nowhere"),
			category: Repository,
			contains: []string{"/tmp/nowhere"},
		},
		"invalid tag filter keeps the cause": {
			err:      InvalidTagFilter(fmt.Errorf(`compiling tag_filter_regexp "[unclosed": missing closing ]`)),
			category: Configuration,
			contains: []string{`"[unclosed"`},
		},
		"config file invalid": {
			err:      ConfigFileInvalid(fmt.Errorf("yaml: line 3: mapping values are not allowed")),
			category: Configuration,
			contains: []string{"loading configuration", "line 3"},
		},
		"config file exists": {
			err:      ConfigFileExists(".gitchangelog.yml"),
			category: Argument,
			contains: []string{".gitchangelog.yml"},
		},
		"unknown output engine": {
			err:      UnknownOutputEngine("asciidoc"),
			category: Argument,
			contains: []string{`"asciidoc"`},
		},
		"output file unwritable": {
			err:      OutputFileUnwritable("CHANGELOG.rst", fmt.Errorf("permission denied")),
			category: Generation,
			contains: []string{"CHANGELOG.rst", "permission denied"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.category, tt.err.Category)
			assert.NotEmpty(t, tt.err.Remediation, "every canned message carries a fix hint")
			for _, want := range tt.contains {
				assert.Contains(t, tt.err.Error(), want)
			}
		})
	}
}

func TestNotAGitRepository_PointsAtPositionalArg(t *testing.T) {
	t.Parallel()

	err := NotAGitRepository(".")
	remediation := fmt.Sprint(err.Remediation)
	assert.Contains(t, remediation, "gitchangelog <path>")
	assert.NotContains(t, remediation, "--repo")
}

func TestUnknownOutputEngine_CarriesUsage(t *testing.T) {
	t.Parallel()

	err := UnknownOutputEngine("asciidoc")
	assert.Equal(t, "gitchangelog --engine <rst|markdown>", err.Usage)
}
