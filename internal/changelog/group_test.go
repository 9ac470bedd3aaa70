package changelog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commit builds a single-parent record; parents override the default.
func commit(hash, subject, author string, date time.Time, parents ...string) CommitRecord {
	return CommitRecord{
		Hash:       hash,
		Parents:    parents,
		AuthorName: author,
		Date:       date,
		Subject:    subject,
	}
}

func at(day, hour int) time.Time {
	return time.Date(2000, 1, day, hour, 0, 0, 0, time.UTC)
}

// referenceFeed mirrors the fixture repository used throughout: four
// tagged releases' worth of linear history, newest first.
func referenceFeed() ([]CommitRecord, []TagRef) {
	commits := []CommitRecord{
		commit("f1", "chg: modified ``b`` XXX", "Alice", at(6, 11), "e1"),
		commit("e1", "chg: modified ``b`` !minor", "Bob", at(5, 13), "d1"),
		commit("d1", "new: add file ``e``, modified ``b``", "Bob", at(4, 13), "c1"),
		commit("c1", "new: add file ``c``", "Charly", at(3, 12), "b1"),
		commit("b1", "new: add ``b`` with non-ascii chars", "Alice", at(2, 11), "a1"),
		commit("a1", "new: first commit", "Bob", at(1, 10)),
	}
	tags := []TagRef{
		{Name: "0.0.1", Hash: "a1", Date: at(1, 10)},
		{Name: "0.0.2", Hash: "b1", Date: at(2, 11)},
		{Name: "0.0.3", Hash: "e1", Date: at(5, 13)},
	}
	return commits, tags
}

// sectionLabels extracts the ordered labels for easy comparison.
func sectionLabels(sections []ReleaseSection) []string {
	labels := make([]string, len(sections))
	for i, s := range sections {
		labels[i] = s.Label
	}
	return labels
}

// allText flattens every display subject for substring assertions.
func allText(sections []ReleaseSection) string {
	var b strings.Builder
	for _, s := range sections {
		for _, bucket := range s.Categories {
			for _, c := range bucket.Commits {
				b.WriteString(c.DisplaySubject)
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func TestBuild_ReferenceGrouping(t *testing.T) {
	commits, tags := referenceFeed()

	sections, err := Build(commits, tags, DefaultOptions())
	require.NoError(t, err)

	require.Equal(t, []string{"%%version%%", "0.0.3", "0.0.2", "0.0.1"}, sectionLabels(sections))

	unreleased := sections[0]
	assert.Nil(t, unreleased.Date)
	require.Len(t, unreleased.Categories, 1)
	assert.Equal(t, "Changes", unreleased.Categories[0].Name)
	require.Len(t, unreleased.Categories[0].Commits, 1)
	assert.Equal(t, "modified ``b`` XXX", unreleased.Categories[0].Commits[0].DisplaySubject)
	assert.Equal(t, "Alice", unreleased.Categories[0].Commits[0].Author)

	v3 := sections[1]
	require.NotNil(t, v3.Date)
	assert.True(t, v3.Date.Equal(at(5, 13)))
	// The !minor commit is excluded, leaving only the two "new" entries,
	// newest first.
	require.Len(t, v3.Categories, 1)
	assert.Equal(t, "New", v3.Categories[0].Name)
	require.Len(t, v3.Categories[0].Commits, 2)
	assert.Equal(t, "add file ``e``, modified ``b``", v3.Categories[0].Commits[0].DisplaySubject)
	assert.Equal(t, "add file ``c``", v3.Categories[0].Commits[1].DisplaySubject)

	v1 := sections[3]
	require.Len(t, v1.Categories, 1)
	assert.Equal(t, "first commit", v1.Categories[0].Commits[0].DisplaySubject)
}

func TestBuild_CategoryPriorityOrderWithinSection(t *testing.T) {
	commits := []CommitRecord{
		commit("c3", "fix: something", "Alice", at(7, 11), "c2"),
		commit("c2", "chg: modified ``b`` XXX", "Alice", at(6, 11), "c1"),
		commit("c1", "new: latest feature", "Bob", at(5, 14)),
	}

	sections, err := Build(commits, nil, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, sections, 1)

	var names []string
	for _, bucket := range sections[0].Categories {
		names = append(names, bucket.Name)
	}
	assert.Equal(t, []string{"New", "Changes", "Fix"}, names)
}

func TestBuild_MergesExcludedLeaveNoTrace(t *testing.T) {
	// feature/long_feature_1 merged --no-ff into master; the first-parent
	// feed carries only the merge commit.
	commits, tags := referenceFeed()
	merge := commit("m1", "Merge branch 'feature/long_feature_1'", "Monty", at(10, 11), "f1", "x2")
	commits = append([]CommitRecord{merge}, commits...)

	opts := DefaultOptions()
	opts.IncludeMerges = false
	opts.GitFlow = false

	sections, err := Build(commits, tags, opts)
	require.NoError(t, err)

	text := allText(sections)
	assert.NotContains(t, text, "long_feature_1")
	assert.NotContains(t, text, "long feature 1")
	assert.NotContains(t, text, "Merge")
}

func TestBuild_GitFlowReclassifiesCompletionMerge(t *testing.T) {
	commits, tags := referenceFeed()
	merge := commit("m1", "Merge branch 'feature/long_feature_1'", "Monty", at(10, 11), "f1", "x2")
	commits = append([]CommitRecord{merge}, commits...)

	opts := DefaultOptions()
	opts.IncludeMerges = false
	opts.GitFlow = true

	sections, err := Build(commits, tags, opts)
	require.NoError(t, err)

	unreleased := sections[0]
	require.Len(t, unreleased.Categories, 2)
	assert.Equal(t, "New", unreleased.Categories[0].Name)
	entry := unreleased.Categories[0].Commits[0]
	assert.Equal(t, "Completed long feature 1", entry.DisplaySubject)
	assert.True(t, entry.Synthetic)
	assert.Equal(t, "New", entry.Category)
}

func TestBuild_GitFlowSkipsNonWorkMerges(t *testing.T) {
	commits, tags := referenceFeed()
	head := []CommitRecord{
		commit("m3", "Merge branch 'develop' into master", "Monty", at(12, 11), "m2"),
		commit("m2", "Merge branch 'feature/long_feature_1'", "Monty", at(11, 11), "p1", "x9"),
		commit("p1", "chg: i made lots of progress", "Monty", at(10, 11), "f1"),
	}
	commits = append(head, commits...)

	opts := DefaultOptions()
	opts.IncludeMerges = false
	opts.GitFlow = true

	sections, err := Build(commits, tags, opts)
	require.NoError(t, err)

	text := allText(sections)
	assert.Contains(t, text, "Completed long feature 1")
	assert.NotContains(t, text, "master")
}

func TestBuild_GitFlowSubjectShapes(t *testing.T) {
	commits := []CommitRecord{
		commit("c3", "Merge branch hotfix/ticket-123_red_button into develop", "Monty", at(9, 11), "c2"),
		commit("c2", "Merge branch fix/save_the_world", "Monty", at(8, 11), "c1"),
		commit("c1", "Merge branch feature/big_feature into develop", "Monty", at(7, 11)),
	}

	opts := DefaultOptions()
	opts.IncludeMerges = false
	opts.GitFlow = true

	sections, err := Build(commits, nil, opts)
	require.NoError(t, err)

	text := allText(sections)
	assert.Contains(t, text, "Completed big feature")
	assert.Contains(t, text, "Fixed save the world")
	assert.Contains(t, text, "Fixed ticket-123 red button")
	assert.NotContains(t, text, "into develop")
}

func TestBuild_IncludeMergesClassifiesNormally(t *testing.T) {
	commits := []CommitRecord{
		commit("m1", "Merge branch 'feature/big_feature' into develop", "Monty", at(7, 11), "c1", "x1"),
		commit("c1", "new: base work", "Alice", at(6, 11)),
	}

	sections, err := Build(commits, nil, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, sections, 1)

	text := allText(sections)
	assert.Contains(t, text, "Merge branch 'feature/big_feature' into develop")
}

func TestBuild_DerivedUnreleasedLabel(t *testing.T) {
	commits, tags := referenceFeed()

	opts := DefaultOptions()
	opts.ReplaceUnreleasedLabel = true

	sections, err := Build(commits, tags, opts)
	require.NoError(t, err)
	assert.Equal(t, "0.0.3-1.dev_r200001061100", sections[0].Label)
	assert.Nil(t, sections[0].Date)
}

func TestBuild_HeadTaggedSkipsUnreleasedSection(t *testing.T) {
	commits, tags := referenceFeed()
	tags = append(tags, TagRef{Name: "0.0.4", Hash: "f1", Date: at(6, 11)})

	opts := DefaultOptions()
	opts.ReplaceUnreleasedLabel = true

	sections, err := Build(commits, tags, opts)
	require.NoError(t, err)
	require.Equal(t, []string{"0.0.4", "0.0.3", "0.0.2", "0.0.1"}, sectionLabels(sections))
	require.NotNil(t, sections[0].Date)
	assert.True(t, sections[0].Date.Equal(at(6, 11)))
}

func TestBuild_CustomTagFilterBoundaries(t *testing.T) {
	commits, tags := referenceFeed()
	head := commit("g1", "fix: something", "Alice", at(7, 19), "f1")
	commits = append([]CommitRecord{head}, commits...)
	tags = append(tags, TagRef{Name: "sprint-8", Hash: "f1", Date: at(6, 11)})

	opts := DefaultOptions()
	opts.TagFilterPattern = `^sprint[-._\s]*\d+$`
	opts.ReplaceUnreleasedLabel = true

	sections, err := Build(commits, tags, opts)
	require.NoError(t, err)

	labels := sectionLabels(sections)
	require.Len(t, labels, 2)
	assert.Equal(t, "sprint-8-1.dev_r200001071900", labels[0])
	assert.Equal(t, "sprint-8", labels[1])
	assert.NotContains(t, labels, "0.0.3")
}

func TestBuild_EmptyTaggedSectionStillEmitted(t *testing.T) {
	commits := []CommitRecord{
		commit("c2", "chg: release prep !minor", "Alice", at(5, 11), "c1"),
		commit("c1", "new: first commit", "Bob", at(1, 10)),
	}
	tags := []TagRef{
		{Name: "0.0.2", Hash: "c2", Date: at(5, 11)},
		{Name: "0.0.1", Hash: "c1", Date: at(1, 10)},
	}

	sections, err := Build(commits, tags, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, []string{"%%version%%", "0.0.2", "0.0.1"}, sectionLabels(sections))
	assert.Empty(t, sections[1].Categories)
}

func TestBuild_EmptyFeedYieldsNoSections(t *testing.T) {
	sections, err := Build(nil, nil, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, sections)
}

func TestBuild_InvalidTagFilterIsAConfigError(t *testing.T) {
	commits, tags := referenceFeed()

	opts := DefaultOptions()
	opts.TagFilterPattern = "(["

	_, err := Build(commits, tags, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tag_filter_regexp")
}
