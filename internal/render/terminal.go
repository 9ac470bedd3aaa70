package render

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/beeftornado/gitchangelog/internal/changelog"
)

// CategoryStyle defines the color and icon for a category heading.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

// categoryStyles maps the default category names to terminal styling.
// Unknown categories fall back to plain white.
var categoryStyles = map[string]CategoryStyle{
	"New":     {Color: color.New(color.FgGreen), Icon: "+"},
	"Changes": {Color: color.New(color.FgBlue), Icon: "~"},
	"Fix":     {Color: color.New(color.FgYellow), Icon: "!"},
	"Other":   {Color: color.New(color.FgWhite), Icon: "·"},
}

var defaultStyle = CategoryStyle{Color: color.New(color.FgWhite), Icon: "·"}

// TerminalOptions controls the interactive preview formatting.
type TerminalOptions struct {
	// Plain disables colors and icons.
	Plain bool
	// UnreleasedLabel mirrors Options.UnreleasedLabel.
	UnreleasedLabel string
}

// IsTerminal reports whether the writer is an interactive terminal, used
// by the CLI to pick between the preview formatter and a plain document.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// FormatTerminal writes the sections with color-coded release and
// category headers for reading in a terminal. It is a preview format,
// not a document format: no underlines, one line per entry.
func FormatTerminal(sections []changelog.ReleaseSection, w io.Writer, opts TerminalOptions) error {
	for i, s := range sections {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := formatTerminalSection(s, w, opts); err != nil {
			return fmt.Errorf("formatting section %s: %w", s.Label, err)
		}
	}
	return nil
}

func formatTerminalSection(s changelog.ReleaseSection, w io.Writer, opts TerminalOptions) error {
	header := sectionTitle(s, Options{UnreleasedLabel: opts.UnreleasedLabel})
	if !opts.Plain {
		header = color.New(color.FgCyan, color.Bold).Sprint(header)
	}
	if _, err := fmt.Fprintf(w, "%s\n", header); err != nil {
		return err
	}

	for _, bucket := range s.Categories {
		if err := formatTerminalBucket(bucket, w, opts); err != nil {
			return err
		}
	}
	return nil
}

func formatTerminalBucket(bucket changelog.CategoryBucket, w io.Writer, opts TerminalOptions) error {
	style, ok := categoryStyles[bucket.Name]
	if !ok {
		style = defaultStyle
	}

	heading := bucket.Name
	if !opts.Plain {
		heading = style.Color.Sprint(heading)
	}
	if _, err := fmt.Fprintf(w, "  %s\n", heading); err != nil {
		return err
	}

	for _, c := range bucket.Commits {
		marker := "-"
		if !opts.Plain {
			marker = style.Color.Sprint(style.Icon)
		}
		if _, err := fmt.Fprintf(w, "    %s %s\n", marker, entryText(c)); err != nil {
			return err
		}
	}
	return nil
}
