// Package render turns built release sections into output documents.
// Two document engines are provided (reStructuredText and Markdown) plus
// a colorized formatter for interactive terminal preview.
package render

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/beeftornado/gitchangelog/internal/changelog"
)

// Options controls document rendering.
type Options struct {
	// Title is the document heading (default "Changelog").
	Title string
	// UnreleasedLabel is the literal placeholder label; a dateless
	// section carrying exactly this label is annotated "(unreleased)".
	// Derived pseudo-versions are printed as-is.
	UnreleasedLabel string
}

func (o Options) title() string {
	if o.Title == "" {
		return "Changelog"
	}
	return o.Title
}

// sectionTitle renders a section's heading text: the label plus either
// the release date or the unreleased annotation.
func sectionTitle(s changelog.ReleaseSection, opts Options) string {
	if s.Date != nil {
		return fmt.Sprintf("%s (%s)", s.Label, s.Date.Format("2006-01-02"))
	}
	if s.Label == opts.UnreleasedLabel {
		return s.Label + " (unreleased)"
	}
	return s.Label
}

// entryText finishes a display subject for printing: first letter
// uppercased and a closing period added when the text ends in a letter
// or digit. Subjects ending in markup (e.g. ``b``) stay untouched so the
// markup isn't broken.
func entryText(c changelog.ClassifiedCommit) string {
	text := finalDot(ucfirst(c.DisplaySubject))
	if c.Author != "" {
		text += " [" + c.Author + "]"
	}
	return text
}

func ucfirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func finalDot(s string) string {
	r, _ := utf8.DecodeLastRuneInString(s)
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return s + "."
	}
	return s
}
