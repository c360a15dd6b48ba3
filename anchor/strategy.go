package anchor

import (
	"strings"

	"github.com/jmcrae/rubrica/model"
	"github.com/jmcrae/rubrica/page"
)

// Query is the normalized form of one evidence string, computed once per
// resolution and shared by every strategy in the cascade
type Query struct {
	// Raw is the whitespace-collapsed original evidence text
	Raw string

	// Cleaned is the shortened anchor chunk, empty when the input was
	// too short to clean
	Cleaned string

	// Number is the rightmost number in the evidence, empty when none
	Number string

	// NumberVariants are the page spellings Number may take
	NumberVariants []string

	// ContextWords are folded content words used to validate number
	// occurrences
	ContextWords []string

	// ClusterWords are folded significant words used by the word
	// cluster strategy
	ClusterWords []string
}

// Strategy is one matching approach in the resolution cascade. Candidates
// returns every acceptable rectangle on the page in preference order; the
// resolver takes the first one that is not already occupied.
type Strategy interface {
	// Name identifies the strategy in resolutions, reports, and logs
	Name() string

	// Candidates finds matching rectangles on one page
	Candidates(idx *page.Index, q Query) []model.Rect
}

// ExactPhrase matches the untouched evidence text literally. Preferred
// because a full-phrase hit guarantees uniqueness of meaning.
type ExactPhrase struct{}

func (ExactPhrase) Name() string { return "exact-phrase" }

func (ExactPhrase) Candidates(idx *page.Index, q Query) []model.Rect {
	if q.Raw == "" {
		return nil
	}
	return idx.Search(q.Raw)
}

// CleanedPhrase matches the normalizer's shortened anchor chunk, for
// evidence containing ellipses or filler around the quotable core
type CleanedPhrase struct{}

func (CleanedPhrase) Name() string { return "cleaned-phrase" }

func (CleanedPhrase) Candidates(idx *page.Index, q Query) []model.Rect {
	if q.Cleaned == "" || q.Cleaned == q.Raw {
		return nil
	}
	return idx.Search(q.Cleaned)
}

// NumberContext matches an occurrence of the evidence number only when a
// context word from the evidence shares its line. This picks the right
// occurrence when the same figure appears several times on a page and
// only one sits next to the claimed justification. Line membership uses
// the index's own tolerance.
type NumberContext struct{}

func (NumberContext) Name() string { return "number-context" }

func (NumberContext) Candidates(idx *page.Index, q Query) []model.Rect {
	if q.Number == "" || len(q.ContextWords) == 0 {
		return nil
	}

	var results []model.Rect
	seen := make(map[model.Rect]bool)
	for _, variant := range q.NumberVariants {
		for _, rect := range idx.Search(variant) {
			if seen[rect] {
				continue
			}
			if lineHasContext(idx, rect.Y0, q.ContextWords) {
				seen[rect] = true
				results = append(results, rect)
			}
		}
	}
	return results
}

// lineHasContext reports whether any context word appears among the words
// on the line at y
func lineHasContext(idx *page.Index, y float64, contextWords []string) bool {
	for _, w := range idx.WordsOnLine(y) {
		folded := page.Fold(w.Text)
		if folded == "" {
			continue
		}
		for _, cw := range contextWords {
			if strings.Contains(folded, cw) || strings.Contains(cw, folded) {
				return true
			}
		}
	}
	return false
}

// WordCluster locates the evidence's significant words independently and
// accepts only when enough of them land on one line. Containment matching
// in both directions tolerates truncation and pluralization drift.
type WordCluster struct {
	// YTolerance is the same-line test tolerance (points)
	YTolerance float64
}

func (WordCluster) Name() string { return "word-cluster" }

func (s WordCluster) Candidates(idx *page.Index, q Query) []model.Rect {
	if len(q.ClusterWords) < 2 {
		return nil
	}

	var found []model.Rect
	for _, w := range q.ClusterWords {
		if rect, ok := idx.FindWord(w); ok {
			found = append(found, rect)
		}
	}

	required := len(q.ClusterWords) - 2
	if required < 2 {
		required = 2
	}
	if len(found) < required {
		return nil
	}

	// Every located word must share a line for the cluster to count as
	// one coherent anchor
	minY, maxY := found[0].Y0, found[0].Y0
	union := found[0]
	for _, rect := range found[1:] {
		if rect.Y0 < minY {
			minY = rect.Y0
		}
		if rect.Y0 > maxY {
			maxY = rect.Y0
		}
		union = union.Union(rect)
	}
	if maxY-minY > s.YTolerance {
		return nil
	}

	return []model.Rect{union}
}

// NumberOnly matches any occurrence of the evidence number, unvalidated
// by context. Last resort when no stricter strategy produced a usable,
// unoccupied result.
type NumberOnly struct{}

func (NumberOnly) Name() string { return "number-only" }

func (NumberOnly) Candidates(idx *page.Index, q Query) []model.Rect {
	if q.Number == "" {
		return nil
	}

	var results []model.Rect
	seen := make(map[model.Rect]bool)
	for _, variant := range q.NumberVariants {
		for _, rect := range idx.Search(variant) {
			if seen[rect] {
				continue
			}
			seen[rect] = true
			results = append(results, rect)
		}
	}
	return results
}

// DefaultStrategies returns the resolution cascade in its fixed order:
// exact phrase, cleaned phrase, number with context, word cluster, and
// number alone. The order is data, reviewable here, not control flow.
func DefaultStrategies(config ResolverConfig) []Strategy {
	return []Strategy{
		ExactPhrase{},
		CleanedPhrase{},
		NumberContext{},
		WordCluster{YTolerance: config.YTolerance},
		NumberOnly{},
	}
}
