package changelog

import "time"

// CommitRecord is one commit as supplied by the source feed.
// Fields are never mutated by the engine. Hash must be unique within a
// feed and Parents preserves the order recorded by the repository.
type CommitRecord struct {
	Hash        string
	Parents     []string
	AuthorName  string
	AuthorEmail string
	Date        time.Time
	Tags        []string
	Subject     string
	Body        []string
}

// IsMerge reports whether the commit joins two or more history lines.
func (c *CommitRecord) IsMerge() bool {
	return len(c.Parents) >= 2
}

// ClassifiedCommit is a commit that survived filtering, annotated with the
// category it will appear under and the text that will be printed.
type ClassifiedCommit struct {
	// Commit points back at the originating record.
	Commit *CommitRecord
	// Category is the changelog bucket name (e.g. "New", "Fix").
	Category string
	// DisplaySubject is the cleaned, humanized text, safe to print.
	DisplaySubject string
	// Synthetic is true when the entry was produced by merge
	// reclassification rather than directly from the subject line.
	Synthetic bool
	// Author is the commit author's name, copied for rendering.
	Author string
}

// TagRef is a release-defining tag: its name, the commit it targets, and
// that commit's time. Constructed once per qualifying tag per build.
type TagRef struct {
	Name string
	Hash string
	Date time.Time
}

// ReleaseSection is one release worth of classified commits.
// Sections are ordered newest first. Categories preserves the configured
// priority order and lists only non-empty buckets.
type ReleaseSection struct {
	// Label is a real tag name, a synthesized pseudo-version, or the
	// configured literal placeholder for unreleased history.
	Label string
	// Date is the boundary tag's commit date. Nil for the unreleased
	// section with a literal label.
	Date *time.Time
	// Categories is the ordered list of non-empty category buckets.
	Categories []CategoryBucket
}

// CategoryBucket groups a section's commits under one category name,
// preserving the feed's newest-first order.
type CategoryBucket struct {
	Name    string
	Commits []ClassifiedCommit
}

// Options carries every configuration value the engine consults. It is
// threaded explicitly through each call so concurrent builds never share
// mutable state.
type Options struct {
	// IncludeMerges classifies merge commits like any other commit,
	// bypassing git-flow reclassification entirely.
	IncludeMerges bool
	// GitFlow enables merge reclassification using feature/fix/hotfix
	// branch naming. Ignored when IncludeMerges is set.
	GitFlow bool
	// TagFilterPattern selects release-defining tags. An empty pattern
	// falls back to DefaultTagFilterPattern. A pattern that fails to
	// compile makes Build return an error.
	TagFilterPattern string
	// ReplaceUnreleasedLabel derives a pseudo-version for the unreleased
	// section instead of using UnreleasedLabel.
	ReplaceUnreleasedLabel bool
	// UnreleasedLabel is the literal label for untagged history, and the
	// base label for derivation when no tag precedes the head.
	UnreleasedLabel string
	// Categories maps a lowercase subject token to a category name.
	Categories map[string]string
	// CategoryOrder is the priority order buckets appear in within a
	// section.
	CategoryOrder []string
	// DefaultCategory receives commits whose token is missing or unknown.
	DefaultCategory string
	// IgnoreRegexps drop commits whose subject matches any pattern
	// (e.g. the `!minor` annotation). Patterns that fail to compile are
	// skipped; exclusion never aborts a build.
	IgnoreRegexps []string
}

// DefaultTagFilterPattern accepts dotted numeric versions with an
// optional leading "v" (0.0.3, 1.2, v2.0.1).
const DefaultTagFilterPattern = `^v?\d+(\.\d+)*$`

// DefaultUnreleasedLabel is the placeholder the original tooling expects
// templates to substitute at release time.
const DefaultUnreleasedLabel = "%%version%%"

// DefaultOptions returns the engine defaults used when configuration does
// not override them. Merges are included by default; teams that rely on
// git-flow turn IncludeMerges off and GitFlow on.
func DefaultOptions() Options {
	return Options{
		IncludeMerges:    true,
		TagFilterPattern: DefaultTagFilterPattern,
		UnreleasedLabel:  DefaultUnreleasedLabel,
		Categories: map[string]string{
			"new":    "New",
			"chg":    "Changes",
			"change": "Changes",
			"fix":    "Fix",
		},
		CategoryOrder:   []string{"New", "Changes", "Fix", "Other"},
		DefaultCategory: "Other",
		IgnoreRegexps:   []string{`!minor`, `!cosmetic`, `!refactor`, `!wip`},
	}
}

// categoryRank returns the position of a category in the configured
// priority order. Unknown categories sort after every known one.
func (o *Options) categoryRank(name string) int {
	for i, c := range o.CategoryOrder {
		if c == name {
			return i
		}
	}
	return len(o.CategoryOrder)
}
