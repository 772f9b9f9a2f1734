// Package normalizer canonicalizes free-text category labels so that
// accent, case and spacing variants compare equal. It is the basis of the
// espelho column matching.
package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize strips diacritics, collapses internal whitespace, trims and
// lower-cases. Total and idempotent; nil-ish input (empty string) maps to
// the empty string.
func Normalize(s string) string {
	return strings.ToLower(Display(s))
}

// Display is the variant used for column headers: same folding as Normalize
// but the original case is kept.
func Display(s string) string {
	folded, _, err := transform.String(stripAccents, s)
	if err != nil {
		// Malformed UTF-8; fall back to the raw bytes rather than fail,
		// the labels are operator input.
		folded = s
	}
	return strings.Join(strings.Fields(folded), " ")
}
