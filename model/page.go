package model

import "strings"

// Page represents a single rendered page: its dimensions, the positioned
// words of its text layer, and any marks drawn on it
type Page struct {
	Number int     // 1-indexed page number
	Width  float64 // Page width in points
	Height float64 // Page height in points
	Words  []Word  // Positioned tokens in reading order
	Marks  []Mark  // Marks drawn on this page
}

// NewPage creates a new page with given dimensions
func NewPage(width, height float64) *Page {
	return &Page{
		Width:  width,
		Height: height,
		Words:  make([]Word, 0),
		Marks:  make([]Mark, 0),
	}
}

// AddWord appends a word to the page's text layer. Insertion order is
// reading order
func (p *Page) AddWord(text string, rect Rect) {
	p.Words = append(p.Words, Word{Text: text, Rect: rect})
}

// AddMark appends a drawn mark to the page
func (p *Page) AddMark(m Mark) {
	p.Marks = append(p.Marks, m)
}

// Bounds returns the page rectangle
func (p *Page) Bounds() Rect {
	return Rect{X0: 0, Y0: 0, X1: p.Width, Y1: p.Height}
}

// Text concatenates all words in reading order
func (p *Page) Text() string {
	parts := make([]string, 0, len(p.Words))
	for _, w := range p.Words {
		parts = append(parts, w.Text)
	}
	return strings.Join(parts, " ")
}

// WordsInRegion returns the words whose rectangles intersect the region
func (p *Page) WordsInRegion(region Rect) []Word {
	var words []Word
	for _, w := range p.Words {
		if region.Intersects(w.Rect) {
			words = append(words, w)
		}
	}
	return words
}

// MarksByKind returns the page's marks of the given kind
func (p *Page) MarksByKind(kind MarkKind) []Mark {
	var marks []Mark
	for _, m := range p.Marks {
		if m.Type() == kind {
			marks = append(marks, m)
		}
	}
	return marks
}
