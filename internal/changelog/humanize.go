package changelog

import "strings"

// Humanize converts a branch or ticket slug into readable prose:
// underscores become spaces, repeated whitespace collapses, and the
// result is trimmed. Hyphens, digits, and casing pass through untouched,
// so "ticket-123_red_button" becomes "ticket-123 red button".
//
// The function is pure and total: it never fails, empty input yields
// empty output, and it is idempotent.
func Humanize(slug string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(slug, "_", " ")), " ")
}
