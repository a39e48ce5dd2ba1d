package utils

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
)

// Slugify converts a display name into its URL-safe form: ASCII-folded,
// lowercased, punctuation stripped, words joined with underscores.
// "Chrono Trigger" becomes "chrono_trigger".
func Slugify(name string) string {
	folded := unidecode.Unidecode(name)

	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			// Word separators collapse below
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), "_")
}
