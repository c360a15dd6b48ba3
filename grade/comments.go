package grade

import (
	"regexp"
	"strings"
)

// totalScorePattern matches comment fragments restating the total score
var totalScorePattern = regexp.MustCompile(`(?i)total\s+score`)

// bareScorePattern matches a fragment that is nothing but an "n/m"
// score, optionally decorated with surrounding punctuation
var bareScorePattern = regexp.MustCompile(`^[\s:\-]*\d+(?:\.\d+)?\s*/\s*\d+(?:\.\d+)?[\s.!]*$`)

// SplitComments splits a raw comment string into individual comment
// fragments on semicolons outside double quotes, dropping fragments that
// duplicate the main score (TOTAL SCORE restatements and bare "n/m"
// fragments).
func SplitComments(raw string) []string {
	var fragments []string
	for _, part := range splitOutsideQuotes(raw, ';') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if totalScorePattern.MatchString(part) || bareScorePattern.MatchString(part) {
			continue
		}
		fragments = append(fragments, part)
	}
	return fragments
}

// splitOutsideQuotes splits s on sep, treating double-quoted runs as
// opaque. Quotes are kept in the output; evidence quotes are part of the
// comment text.
func splitOutsideQuotes(s string, sep rune) []string {
	var (
		parts    []string
		current  strings.Builder
		inQuotes bool
	)

	for _, r := range s {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case r == sep && !inQuotes:
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	parts = append(parts, current.String())

	return parts
}
