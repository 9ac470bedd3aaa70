package changelog

import (
	"sort"
	"strings"
	"time"
)

// Build turns a commit feed into the ordered release sections ready for
// rendering. The feed must be newest first, already restricted to the
// range of interest; tags is the repository's full tag set. The only
// error condition is a tag filter pattern that fails to compile — every
// irregularity in the history itself degrades to a defined fallback.
func Build(commits []CommitRecord, tags []TagRef, opts Options) ([]ReleaseSection, error) {
	matched, err := ResolveTags(tags, opts)
	if err != nil {
		return nil, err
	}
	if len(commits) == 0 {
		return nil, nil
	}

	boundaries := boundaryByHash(matched)
	label, date := SynthesizeLabel(commits, matched, opts)

	var sections []ReleaseSection
	cur := newSectionAccum(label, date)
	unreleased := true
	sinceLastTag := 0

	for i := range commits {
		c := &commits[i]

		if tag, ok := boundaries[c.Hash]; ok {
			if !unreleased || emitUnreleased(sinceLastTag, opts) {
				sections = append(sections, cur.section(opts))
			}
			unreleased = false
			tagDate := tag.Date
			cur = newSectionAccum(tag.Name, &tagDate)
		}

		if unreleased {
			sinceLastTag++
		}

		if classified, ok := Classify(c, opts); ok {
			cur.add(classified)
		}
	}

	if !unreleased || emitUnreleased(sinceLastTag, opts) {
		sections = append(sections, cur.section(opts))
	}

	return sections, nil
}

// Classify produces at most one classified commit for a record. Merges
// follow the git-flow rules when merge inclusion is off; everything else
// goes through subject parsing. The boolean is false for discarded
// commits (filtered merges, ignore annotations).
func Classify(c *CommitRecord, opts Options) (ClassifiedCommit, bool) {
	if Ignored(c.Subject, opts) {
		return ClassifiedCommit{}, false
	}

	if !opts.IncludeMerges && (c.IsMerge() || looksLikeMerge(c.Subject)) {
		if !opts.GitFlow {
			return ClassifiedCommit{}, false
		}
		outcome := ClassifyMerge(c.Subject)
		if outcome.Discard {
			return ClassifiedCommit{}, false
		}
		return ClassifiedCommit{
			Commit:         c,
			Category:       outcome.Category,
			DisplaySubject: outcome.Subject,
			Synthetic:      true,
			Author:         c.AuthorName,
		}, true
	}

	category, display := ParseSubject(c.Subject, opts)
	return ClassifiedCommit{
		Commit:         c,
		Category:       category,
		DisplaySubject: display,
		Author:         c.AuthorName,
	}, true
}

// looksLikeMerge catches commits that read as merges even when the
// parent list says otherwise (squashed or hand-written merge subjects).
// They follow the same rules as real merges so they cannot leak branch
// names into the output.
func looksLikeMerge(subject string) bool {
	return strings.HasPrefix(subject, "Merge ")
}

// emitUnreleased decides whether the head accumulation becomes a section.
// It is skipped only when derivation is on and the head commit is itself
// tagged: the tag's own section already covers that history. With
// derivation off an empty unreleased section still appears under the
// literal label.
func emitUnreleased(sinceLastTag int, opts Options) bool {
	return sinceLastTag > 0 || !opts.ReplaceUnreleasedLabel
}

// sectionAccum collects classified commits for one section, keeping each
// category's commits in feed order.
type sectionAccum struct {
	label   string
	date    *time.Time
	order   []string
	buckets map[string][]ClassifiedCommit
}

func newSectionAccum(label string, date *time.Time) *sectionAccum {
	return &sectionAccum{
		label:   label,
		date:    date,
		buckets: make(map[string][]ClassifiedCommit),
	}
}

func (a *sectionAccum) add(c ClassifiedCommit) {
	if _, ok := a.buckets[c.Category]; !ok {
		a.order = append(a.order, c.Category)
	}
	a.buckets[c.Category] = append(a.buckets[c.Category], c)
}

// section finalizes the accumulation, ordering buckets by the configured
// category priority. Categories outside the configured order keep their
// first-seen order after the known ones.
func (a *sectionAccum) section(opts Options) ReleaseSection {
	names := append([]string(nil), a.order...)
	sort.SliceStable(names, func(i, j int) bool {
		return opts.categoryRank(names[i]) < opts.categoryRank(names[j])
	})

	buckets := make([]CategoryBucket, 0, len(names))
	for _, name := range names {
		buckets = append(buckets, CategoryBucket{Name: name, Commits: a.buckets[name]})
	}

	return ReleaseSection{Label: a.label, Date: a.date, Categories: buckets}
}
