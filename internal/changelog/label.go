package changelog

import (
	"fmt"
	"time"
)

// labelTimeLayout renders a commit time as a sortable numeric string:
// year, month, day, hour, minute, no separators.
const labelTimeLayout = "200601021504"

// SynthesizeLabel computes the label (and date, when one applies) for the
// newest, not-yet-released section.
//
// With derivation disabled the literal configured label is used and the
// section carries no date. With derivation enabled: a head commit sitting
// at a matching tag simply uses that tag; otherwise the label is
// "<tag>-<offset>.dev_r<timestamp>" where <tag> is the nearest preceding
// matching tag along the first-parent walk, <offset> the number of
// commits since it, and <timestamp> the head commit's time. With no
// preceding tag at all the configured label stands in as the base.
func SynthesizeLabel(commits []CommitRecord, matched []TagRef, opts Options) (string, *time.Time) {
	if !opts.ReplaceUnreleasedLabel || len(commits) == 0 {
		return opts.UnreleasedLabel, nil
	}

	boundaries := boundaryByHash(matched)

	if tag, ok := boundaries[commits[0].Hash]; ok {
		date := tag.Date
		return tag.Name, &date
	}

	head := commits[0]
	base := opts.UnreleasedLabel
	offset := len(commits)
	for i, c := range commits {
		if tag, ok := boundaries[c.Hash]; ok {
			base = tag.Name
			offset = i
			break
		}
	}

	return fmt.Sprintf("%s-%d.dev_r%s", base, offset, head.Date.Format(labelTimeLayout)), nil
}

// boundaryByHash indexes the resolved tags by target commit. When several
// matching tags share a commit the first in resolved order (newest, then
// name-descending) defines the boundary.
func boundaryByHash(matched []TagRef) map[string]TagRef {
	byHash := make(map[string]TagRef, len(matched))
	for _, tag := range matched {
		if _, ok := byHash[tag.Hash]; !ok {
			byHash[tag.Hash] = tag
		}
	}
	return byHash
}
