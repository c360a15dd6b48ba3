package anchor

import (
	"regexp"
	"strings"
	"unicode"
)

// NormalizerConfig holds configuration for evidence text normalization
type NormalizerConfig struct {
	// MaxAnchorWords is the window size used when shortening long
	// evidence to its best anchor chunk
	MaxAnchorWords int

	// MinAnchorWords is the minimum word count for a usable anchor;
	// shorter inputs are too ambiguous to search safely
	MinAnchorWords int

	// ContextWordLimit caps the context words extracted for number
	// disambiguation
	ContextWordLimit int

	// MinWordLength is the minimum length for a significant word
	MinWordLength int
}

// DefaultNormalizerConfig returns sensible default configuration
func DefaultNormalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		MaxAnchorWords:   4,
		MinAnchorWords:   3,
		ContextWordLimit: 3,
		MinWordLength:    3,
	}
}

// ellipsisMarkers matches bracketed and bare ellipsis markers that LLMs
// insert when quoting evidence partially
var ellipsisMarkers = regexp.MustCompile(`\[\s*(?:\.\.\.|…)\s*\]|\.\.\.|…`)

// numberPattern matches a decimal or integer token with optional currency
// prefix and thousands separators
var numberPattern = regexp.MustCompile(`[£$]?[0-9][0-9,]*\.?[0-9]*`)

// Normalizer cleans raw evidence strings into searchable anchors. All
// resolution strategies consume its output.
type Normalizer struct {
	config NormalizerConfig
}

// NewNormalizer creates a normalizer with default configuration
func NewNormalizer() *Normalizer {
	return &Normalizer{config: DefaultNormalizerConfig()}
}

// NewNormalizerWithConfig creates a normalizer with custom configuration
func NewNormalizerWithConfig(config NormalizerConfig) *Normalizer {
	return &Normalizer{config: config}
}

// Clean strips ellipsis markers and escaped newlines, collapses
// whitespace, and shortens long evidence to its best maxWords-word anchor
// chunk. Returns ok=false for empty or sub-MinAnchorWords input, which is
// too ambiguous to anchor safely.
func (n *Normalizer) Clean(text string, maxWords int) (string, bool) {
	if maxWords <= 0 {
		maxWords = n.config.MaxAnchorWords
	}

	cleaned := ellipsisMarkers.ReplaceAllString(text, " ")
	cleaned = strings.ReplaceAll(cleaned, `\n`, " ")
	words := strings.Fields(cleaned)

	if len(words) < n.config.MinAnchorWords {
		return "", false
	}
	if len(words) <= maxWords {
		return strings.Join(words, " "), true
	}

	// Slide a maxWords window across the text and keep the highest
	// scoring chunk; the earliest window wins ties
	bestStart, bestScore := 0, -1
	for start := 0; start+maxWords <= len(words); start++ {
		score := anchorQuality(words[start : start+maxWords])
		if score > bestScore {
			bestStart, bestScore = start, score
		}
	}

	return strings.Join(words[bestStart:bestStart+maxWords], " "), true
}

// anchorQuality scores a candidate anchor chunk. Punctuation typical of
// financial figures, numeric-looking tokens, and capitalized tokens are
// the most reliably unique, searchable substrings.
func anchorQuality(words []string) int {
	score := 0
	for _, w := range words {
		score += strings.Count(w, ",")
		score += strings.Count(w, "£")
		score += strings.Count(w, "$")
		score += strings.Count(w, "%")
		if strings.ContainsFunc(w, unicode.IsDigit) {
			score++
		}
		if first := []rune(w); len(first) > 0 && unicode.IsUpper(first[0]) {
			score++
		}
	}
	return score
}

// ExtractNumber returns the last (rightmost) number token in the text.
// Computed results appear after intermediate workings in left-to-right
// answers, so the rightmost figure is the one worth anchoring to.
// Returns ok=false when the text contains no digits.
func (n *Normalizer) ExtractNumber(text string) (string, bool) {
	matches := numberPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return "", false
	}

	last := matches[len(matches)-1]
	last = strings.TrimRight(last, ".,")
	if last == "" || !strings.ContainsFunc(last, unicode.IsDigit) {
		return "", false
	}
	return last, true
}

// ContextWords returns up to limit content words from the text: tokens
// longer than MinWordLength-1 that contain at least one letter,
// deduplicated preserving order. Used to disambiguate repeated numeric
// occurrences on a page.
func (n *Normalizer) ContextWords(text string, limit int) []string {
	if limit <= 0 {
		limit = n.config.ContextWordLimit
	}

	var words []string
	seen := make(map[string]bool)
	for _, tok := range strings.Fields(text) {
		tok = trimEdgePunct(tok)
		if len([]rune(tok)) < n.config.MinWordLength {
			continue
		}
		if !strings.ContainsFunc(tok, unicode.IsLetter) {
			continue
		}
		key := strings.ToLower(tok)
		if seen[key] {
			continue
		}
		seen[key] = true
		words = append(words, tok)
		if len(words) == limit {
			break
		}
	}
	return words
}

// SignificantWords returns the text's tokens of at least MinWordLength
// runes after trimming edge punctuation, deduplicated preserving order
// and capped at max. Numeric tokens count; they are often the most
// distinctive part of exam evidence.
func (n *Normalizer) SignificantWords(text string, max int) []string {
	var words []string
	seen := make(map[string]bool)
	for _, tok := range strings.Fields(text) {
		tok = trimEdgePunct(tok)
		if len([]rune(tok)) < n.config.MinWordLength {
			continue
		}
		key := strings.ToLower(tok)
		if seen[key] {
			continue
		}
		seen[key] = true
		words = append(words, tok)
		if len(words) == max {
			break
		}
	}
	return words
}

// NumberVariants returns the spellings a number may take on the page:
// as extracted, without thousands separators, without a currency prefix,
// and with separators regrouped. Order preserved, duplicates removed.
func (n *Normalizer) NumberVariants(number string) []string {
	if number == "" {
		return nil
	}

	bare := strings.TrimLeft(number, "£$")
	noCommas := strings.ReplaceAll(bare, ",", "")

	candidates := []string{
		number,
		bare,
		noCommas,
		groupThousands(noCommas),
	}

	var variants []string
	seen := make(map[string]bool)
	for _, v := range candidates {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		variants = append(variants, v)
	}
	return variants
}

// groupThousands inserts comma separators into the integer part of a
// bare numeric string
func groupThousands(s string) string {
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if len(intPart) <= 3 || strings.ContainsAny(intPart, ",") {
		return s
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}

// trimEdgePunct trims punctuation from both ends of a token, keeping
// interior punctuation such as thousands separators
func trimEdgePunct(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}
