package page

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// typographic characters commonly found in LLM-produced evidence text but
// rarely in extracted word boxes
var asciiReplacer = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"–", "-", // en dash
	"—", "-", // em dash
	" ", " ", // no-break space
)

// Fold normalizes a string into the canonical searchable form shared by
// page indexes and resolution queries: typographic punctuation mapped to
// ASCII, compatibility decomposition with combining marks stripped, then
// lowercased. Folding words and queries through the same function makes
// matching insensitive to the quote/ligature/accent drift between
// extracted text layers and upstream evidence strings.
func Fold(s string) string {
	s = asciiReplacer.Replace(s)

	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		// Fall back to the replaced input; lowercasing still applies
		folded = s
	}

	return strings.ToLower(folded)
}

// collapseSpaces reduces every whitespace run to a single space and trims
// the ends
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
