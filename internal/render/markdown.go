package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/beeftornado/gitchangelog/internal/changelog"
)

// Engine names accepted by Render.
const (
	EngineRST      = "rst"
	EngineMarkdown = "markdown"
)

// Render dispatches to the named document engine.
func Render(engine string, sections []changelog.ReleaseSection, opts Options, w io.Writer) error {
	switch engine {
	case "", EngineRST:
		return RenderRST(sections, opts, w)
	case EngineMarkdown:
		return RenderMarkdown(sections, opts, w)
	}
	return fmt.Errorf("unknown output engine %q", engine)
}

// RenderMarkdown writes the sections as a Markdown document: an H1
// title, an H2 per release, an H3 per category, and a bullet list of
// entries with bodies as indented continuations.
func RenderMarkdown(sections []changelog.ReleaseSection, opts Options, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# %s\n", opts.title()); err != nil {
		return fmt.Errorf("rendering title: %w", err)
	}

	for _, s := range sections {
		if err := renderMarkdownSection(s, opts, w); err != nil {
			return fmt.Errorf("rendering section %s: %w", s.Label, err)
		}
	}

	return nil
}

// RenderMarkdownString is a convenience wrapper that renders to a string.
func RenderMarkdownString(sections []changelog.ReleaseSection, opts Options) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(sections, opts, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderMarkdownSection(s changelog.ReleaseSection, opts Options, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "\n## %s\n", sectionTitle(s, opts)); err != nil {
		return err
	}

	for _, bucket := range s.Categories {
		if _, err := fmt.Fprintf(w, "\n### %s\n\n", bucket.Name); err != nil {
			return err
		}
		for _, c := range bucket.Commits {
			if err := writeMarkdownEntry(c, w); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeMarkdownEntry(c changelog.ClassifiedCommit, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "- %s\n", entryText(c)); err != nil {
		return err
	}
	if c.Commit == nil {
		return nil
	}
	for _, line := range c.Commit.Body {
		if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
			return err
		}
	}
	return nil
}
