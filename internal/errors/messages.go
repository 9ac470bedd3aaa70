package errors

import "fmt"

// Common error messages for the gitchangelog CLI.
// These templates keep error output consistent and actionable.

// NotAGitRepository creates an error for a path with no git repository.
func NotAGitRepository(path string) *CLIError {
	return NewRepositoryError(
		fmt.Sprintf("no git repository found at %s", path),
		"Run gitchangelog from inside a git working tree",
		"Or point it at one with: gitchangelog <path>",
	)
}

// InvalidTagFilter creates an error for an uncompilable tag_filter_regexp.
// The cause already names the pattern.
func InvalidTagFilter(cause error) *CLIError {
	return NewConfigError(
		cause.Error(),
		"Fix tag_filter_regexp in .gitchangelog.yml",
		"Leave tag_filter_regexp unset to match semantic version tags",
	)
}

// ConfigFileInvalid creates an error for configuration that failed to load
// or validate.
func ConfigFileInvalid(cause error) *CLIError {
	return NewConfigError(
		fmt.Sprintf("loading configuration: %v", cause),
		"Check the YAML syntax and field names",
		"Regenerate a commented starting point with: gitchangelog init --force",
	)
}

// ConfigFileExists creates an error for init refusing to overwrite.
func ConfigFileExists(path string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("%s already exists", path),
		"Use --force to overwrite the existing file",
	)
}

// UnknownOutputEngine creates an error for an unsupported --engine value.
func UnknownOutputEngine(engine string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("unknown output engine %q", engine),
		"gitchangelog --engine <rst|markdown>",
		"Supported engines: rst, markdown",
	)
}

// OutputFileUnwritable creates an error for a changelog destination that
// cannot be written.
func OutputFileUnwritable(path string, cause error) *CLIError {
	return NewGenerationError(
		fmt.Sprintf("cannot write %s: %v", path, cause),
		"Check the directory exists and is writable",
	)
}
