package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/beeftornado/gitchangelog/internal/changelog"
)

// RenderRST writes the sections as a reStructuredText document. The
// layout matches the format the original tooling's templates produced:
// an underlined document title, one underlined heading per release, one
// underlined subheading per category, and one bullet per commit with the
// author in brackets.
//
// The function is idempotent: the same sections produce byte-identical
// output.
func RenderRST(sections []changelog.ReleaseSection, opts Options, w io.Writer) error {
	if err := writeUnderlined(w, opts.title(), '='); err != nil {
		return fmt.Errorf("rendering title: %w", err)
	}

	for _, s := range sections {
		if err := renderRSTSection(s, opts, w); err != nil {
			return fmt.Errorf("rendering section %s: %w", s.Label, err)
		}
	}

	return nil
}

// RenderRSTString is a convenience wrapper that renders to a string.
func RenderRSTString(sections []changelog.ReleaseSection, opts Options) (string, error) {
	var b strings.Builder
	if err := RenderRST(sections, opts, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderRSTSection(s changelog.ReleaseSection, opts Options, w io.Writer) error {
	if err := writeUnderlined(w, sectionTitle(s, opts), '-'); err != nil {
		return err
	}

	for _, bucket := range s.Categories {
		if err := writeUnderlined(w, bucket.Name, '~'); err != nil {
			return err
		}
		for _, c := range bucket.Commits {
			if err := writeRSTEntry(c, w); err != nil {
				return err
			}
		}
	}

	return nil
}

// writeRSTEntry writes one bullet, with body lines indented underneath
// as continuation text.
func writeRSTEntry(c changelog.ClassifiedCommit, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "- %s\n\n", entryText(c)); err != nil {
		return err
	}

	if c.Commit == nil || len(c.Commit.Body) == 0 {
		return nil
	}
	for _, line := range c.Commit.Body {
		if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// writeUnderlined writes a heading followed by an underline of the same
// display width.
func writeUnderlined(w io.Writer, text string, underline rune) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n\n",
		text, strings.Repeat(string(underline), utf8.RuneCountInString(text)))
	return err
}
