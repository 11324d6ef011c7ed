package formatter

import (
	"html"
	"strings"
)

// FirstNonEmpty returns the first value that is not blank after trimming.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// CleanText unescapes HTML entities and trims surrounding whitespace.
// Page metadata frequently double-encodes entities, so this is safe to
// apply to already-clean strings.
func CleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(s))
}
