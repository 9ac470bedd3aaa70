package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValidationError represents a configuration validation error with context.
type ValidationError struct {
	FilePath string
	Field    string
	Message  string
}

func (e *ValidationError) Error() string {
	switch {
	case e.FilePath != "" && e.Field != "":
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	case e.FilePath != "":
		return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
	case e.Field != "":
		return fmt.Sprintf("field '%s': %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidateYAMLSyntax checks that a YAML file parses at all before koanf
// merges it, so syntax problems surface with the file path attached.
// A missing or empty file is fine — defaults apply.
func ValidateYAMLSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}
	return nil
}

// Validate checks the merged configuration values. An uncompilable
// tag_filter_regexp is operator misconfiguration and must be surfaced,
// not silently replaced with the default.
func Validate(cfg *Configuration) error {
	if cfg.TagFilterRegexp != "" {
		if _, err := regexp.Compile(cfg.TagFilterRegexp); err != nil {
			return &ValidationError{
				Field:   "tag_filter_regexp",
				Message: fmt.Sprintf("invalid pattern %q: %v", cfg.TagFilterRegexp, err),
			}
		}
	}

	switch cfg.OutputEngine {
	case "", "rst", "markdown":
	default:
		return &ValidationError{
			Field:   "output_engine",
			Message: fmt.Sprintf("unknown engine %q (expected rst or markdown)", cfg.OutputEngine),
		}
	}

	if cfg.DefaultCategory == "" {
		return &ValidationError{
			Field:   "default_category",
			Message: "must not be empty",
		}
	}

	return nil
}
