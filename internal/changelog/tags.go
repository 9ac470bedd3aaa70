package changelog

import (
	"fmt"
	"regexp"
	"sort"
)

// ResolveTags keeps the tags whose name matches the configured filter
// pattern and orders them newest first by the commit time of the commit
// they target. Two tags on the same commit order by name, descending, so
// the result is deterministic.
//
// A pattern that fails to compile is an operator misconfiguration and is
// returned as an error rather than silently replaced with the default.
func ResolveTags(tags []TagRef, opts Options) ([]TagRef, error) {
	pattern := opts.TagFilterPattern
	if pattern == "" {
		pattern = DefaultTagFilterPattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling tag_filter_regexp %q: %w", pattern, err)
	}

	var matched []TagRef
	for _, tag := range tags {
		if re.MatchString(tag.Name) {
			matched = append(matched, tag)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].Name > matched[j].Name
	})

	return matched, nil
}
