package changelog

import (
	"regexp"
	"strings"
)

// ParseSubject splits a raw commit subject into a category and the
// cleaned display text. The first colon-delimited segment is inspected
// for a known token (case-insensitive); the remainder, trimmed, becomes
// the display text. An unrecognized or absent token classifies the whole
// subject under the default category. Parsing always succeeds.
func ParseSubject(subject string, opts Options) (category, display string) {
	category = opts.DefaultCategory
	display = strings.TrimSpace(subject)

	token, rest, found := strings.Cut(subject, ":")
	if !found {
		return category, display
	}

	name, ok := opts.Categories[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return category, display
	}

	return name, strings.TrimSpace(rest)
}

// Ignored reports whether a subject carries one of the configured ignore
// annotations (`!minor` and friends). Patterns that fail to compile are
// skipped rather than surfaced: exclusion rules degrade, never abort.
func Ignored(subject string, opts Options) bool {
	for _, pattern := range opts.IgnoreRegexps {
		re, err := regexp.Compile(pattern)
		if err != nil {
			continue
		}
		if re.MatchString(subject) {
			return true
		}
	}
	return false
}
