package changelog

import (
	"regexp"
	"strings"
)

// MergeOutcome is the decision for one merge commit: either drop it or
// recast it as a synthetic "completed work" entry.
type MergeOutcome struct {
	// Discard is true when the merge produces no changelog entry.
	Discard bool
	// Category and Subject are the reclassified values when Discard is
	// false.
	Category string
	Subject  string
}

var discardMerge = MergeOutcome{Discard: true}

// mergeRule pairs a subject pattern with a builder for its outcome.
// Rules are evaluated in order; the first match wins.
type mergeRule struct {
	re    *regexp.Regexp
	build func(groups []string) MergeOutcome
}

// mergeRules recognizes the subject shapes git writes for merges.
// Group 1 is always the merged branch name; group 2, when present, is the
// target branch of the longer "into" form.
var mergeRules = []mergeRule{
	{
		re:    regexp.MustCompile(`^Merge branch '([^']+)' into (\S+)`),
		build: func(g []string) MergeOutcome { return reclassifyBranch(g[1], g[2]) },
	},
	{
		re:    regexp.MustCompile(`^Merge branch '([^']+)'`),
		build: func(g []string) MergeOutcome { return reclassifyBranch(g[1], "") },
	},
	{
		re:    regexp.MustCompile(`^Merge branch (\S+) into (\S+)`),
		build: func(g []string) MergeOutcome { return reclassifyBranch(g[1], g[2]) },
	},
	{
		re:    regexp.MustCompile(`^Merge branch (\S+)`),
		build: func(g []string) MergeOutcome { return reclassifyBranch(g[1], "") },
	},
	{
		re:    regexp.MustCompile(`^Merge (\S+)$`),
		build: func(g []string) MergeOutcome { return reclassifyBranch(g[1], "") },
	},
}

// ClassifyMerge decides what a merge commit's subject contributes when
// git-flow reclassification is active. Unparseable subjects and branches
// without a recognized prefix are discarded: the safe default is no entry
// rather than merge noise.
func ClassifyMerge(subject string) MergeOutcome {
	for _, rule := range mergeRules {
		if groups := rule.re.FindStringSubmatch(subject); groups != nil {
			return rule.build(groups)
		}
	}
	return discardMerge
}

// reclassifyBranch maps a merged branch name (and the merge target, when
// the subject records one) to an outcome. A target that is itself a
// feature/fix/hotfix branch marks a progress merge into ongoing work, not
// a completion, so it never yields an entry even when the merged name has
// a recognized prefix.
func reclassifyBranch(name, target string) MergeOutcome {
	if target != "" {
		if _, _, ok := splitFlowBranch(target); ok {
			return discardMerge
		}
	}

	prefix, slug, ok := splitFlowBranch(name)
	if !ok {
		return discardMerge
	}

	switch prefix {
	case "feature":
		return MergeOutcome{Category: "New", Subject: "Completed " + Humanize(slug)}
	case "fix", "hotfix":
		return MergeOutcome{Category: "Fix", Subject: "Fixed " + Humanize(slug)}
	}
	return discardMerge
}

// splitFlowBranch splits a branch name at its first slash and reports
// whether the leading segment is a git-flow work prefix. The prefix match
// is case-insensitive.
func splitFlowBranch(name string) (prefix, slug string, ok bool) {
	head, rest, found := strings.Cut(name, "/")
	if !found {
		return "", "", false
	}
	switch strings.ToLower(head) {
	case "feature", "fix", "hotfix":
		return strings.ToLower(head), rest, true
	}
	return "", "", false
}
