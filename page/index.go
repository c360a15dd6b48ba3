package page

import (
	"fmt"
	"strings"

	"github.com/jmcrae/rubrica/model"
)

// Config holds configuration for page indexing
type Config struct {
	// YTolerance is the vertical distance within which two words are
	// considered to sit on the same text line (points)
	YTolerance float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		YTolerance: 2.0,
	}
}

// Index wraps one page's text layer and exposes phrase and word search
// with bounding boxes. It is a pure query surface: building an index never
// mutates the page, and an index remains valid while marks are added,
// since marks do not alter the word list.
type Index struct {
	page   *model.Page
	config Config
	lines  []Line
}

// NewIndex creates an index over a page with default configuration
func NewIndex(p *model.Page) *Index {
	return NewIndexWithConfig(p, DefaultConfig())
}

// NewIndexWithConfig creates an index with custom configuration
func NewIndexWithConfig(p *model.Page, config Config) *Index {
	return &Index{
		page:   p,
		config: config,
		lines:  groupIntoLines(p.Words, config.YTolerance),
	}
}

// NewIndexes builds indexes for the given 1-based page numbers of a
// document, preserving the caller's page order. A page number outside the
// document is a programmer error and returns an error.
func NewIndexes(doc *model.Document, numbers []int, config Config) ([]*Index, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil document")
	}
	if len(numbers) == 0 {
		numbers = make([]int, doc.PageCount())
		for i := range numbers {
			numbers[i] = i + 1
		}
	}

	indexes := make([]*Index, 0, len(numbers))
	for _, n := range numbers {
		p := doc.GetPage(n)
		if p == nil {
			return nil, fmt.Errorf("page %d out of range [1, %d]", n, doc.PageCount())
		}
		indexes = append(indexes, NewIndexWithConfig(p, config))
	}
	return indexes, nil
}

// Page returns the underlying page
func (x *Index) Page() *model.Page {
	return x.page
}

// Number returns the 1-based page number
func (x *Index) Number() int {
	return x.page.Number
}

// Width returns the page width in points
func (x *Index) Width() float64 {
	return x.page.Width
}

// Height returns the page height in points
func (x *Index) Height() float64 {
	return x.page.Height
}

// Words returns the page's words in reading order
func (x *Index) Words() []model.Word {
	return x.page.Words
}

// Lines returns the detected text lines, top to bottom
func (x *Index) Lines() []Line {
	return x.lines
}

// Search finds every occurrence of a literal phrase on the page and
// returns the bounding rectangle of the covered words for each, in
// top-to-bottom reading order. Matching is case- and accent-insensitive
// and does not cross line boundaries.
func (x *Index) Search(phrase string) []model.Rect {
	q := collapseSpaces(Fold(phrase))
	if q == "" {
		return nil
	}

	var results []model.Rect
	for li := range x.lines {
		line := &x.lines[li]
		start := 0
		for {
			i := strings.Index(line.folded[start:], q)
			if i < 0 {
				break
			}
			abs := start + i
			results = append(results, line.rectForSpan(abs, abs+len(q)))
			start = abs + 1
		}
	}
	return results
}

// FindWord locates a single token by bidirectional containment: the query
// matches a page word when either string contains the other (after
// folding). This tolerates truncation and pluralization drift between
// evidence text and the extracted word list. Returns the first occurrence
// in reading order.
func (x *Index) FindWord(word string) (model.Rect, bool) {
	q := Fold(strings.TrimSpace(word))
	if q == "" {
		return model.Rect{}, false
	}

	for li := range x.lines {
		line := &x.lines[li]
		for wi, fw := range line.foldedWords {
			if fw == "" {
				continue
			}
			if strings.Contains(fw, q) || strings.Contains(q, fw) {
				return line.Words[wi].Rect, true
			}
		}
	}
	return model.Rect{}, false
}

// WordsOnLine returns the words whose top edges lie within the index's
// y tolerance of y
func (x *Index) WordsOnLine(y float64) []model.Word {
	var words []model.Word
	for li := range x.lines {
		line := &x.lines[li]
		for _, w := range line.Words {
			diff := w.Rect.Y0 - y
			if diff >= -x.config.YTolerance && diff <= x.config.YTolerance {
				words = append(words, w)
			}
		}
	}
	return words
}

// Text returns the page text assembled line by line
func (x *Index) Text() string {
	parts := make([]string, 0, len(x.lines))
	for _, line := range x.lines {
		parts = append(parts, line.Text)
	}
	return strings.Join(parts, "\n")
}
