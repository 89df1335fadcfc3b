package types

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeLabel folds a free-form label for comparison: trimmed, lower-cased
// and with diacritics removed ("Média" and "media" compare equal).
func NormalizeLabel(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		folded = strings.TrimSpace(s)
	}
	return strings.ToLower(folded)
}

// lookupLabel resolves s against a table keyed by normalized labels.
func lookupLabel[T any](s string, table map[string]T) (T, bool) {
	v, ok := table[NormalizeLabel(s)]
	return v, ok
}
