package page

import (
	"sort"
	"strings"

	"github.com/jmcrae/rubrica/model"
)

// Line represents a single text line on a page: the words grouped by
// vertical position, sorted left to right
type Line struct {
	// Rect is the bounding box of the line
	Rect model.Rect

	// Words are the line's words, sorted left to right
	Words []model.Word

	// Text is the assembled text content of the line
	Text string

	// Index is the line's position on the page (0-based, top to bottom)
	Index int

	// folded is the searchable form of Text; foldedWords[i] is word i's
	// searchable form and starts[i] its offset within folded
	folded      string
	foldedWords []string
	starts      []int
}

// groupIntoLines groups page words into horizontal lines. Words whose top
// edges fall within yTolerance of the line's running average belong to the
// same line. Each line is then sorted left to right and its text assembled
// with single spaces.
func groupIntoLines(words []model.Word, yTolerance float64) []Line {
	if len(words) == 0 {
		return nil
	}

	// Sort by Y only; same-line words keep reading order until the
	// per-line X sort below
	sorted := make([]model.Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		yDiff := sorted[i].Rect.Y0 - sorted[j].Rect.Y0
		if yDiff < -yTolerance || yDiff > yTolerance {
			return yDiff < 0
		}
		return false
	})

	var groups [][]model.Word
	var current []model.Word

	for _, w := range sorted {
		if len(current) == 0 {
			current = append(current, w)
			continue
		}

		avgY := averageTopY(current)
		diff := w.Rect.Y0 - avgY
		if diff >= -yTolerance && diff <= yTolerance {
			current = append(current, w)
		} else {
			groups = append(groups, current)
			current = []model.Word{w}
		}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	lines := make([]Line, 0, len(groups))
	for i, group := range groups {
		sort.SliceStable(group, func(a, b int) bool {
			return group[a].Rect.X0 < group[b].Rect.X0
		})
		lines = append(lines, buildLine(group, i))
	}

	return lines
}

// averageTopY returns the mean top edge of the words collected so far
func averageTopY(words []model.Word) float64 {
	sum := 0.0
	for _, w := range words {
		sum += w.Rect.Y0
	}
	return sum / float64(len(words))
}

// buildLine assembles a Line from left-to-right sorted words. The folded
// text is built word by word so that character offsets map cleanly back to
// word rectangles even when folding changes a word's length.
func buildLine(words []model.Word, index int) Line {
	var (
		rect    model.Rect
		texts   = make([]string, 0, len(words))
		foldeds = make([]string, 0, len(words))
		starts  = make([]int, 0, len(words))
		offset  = 0
	)

	for i, w := range words {
		rect = rect.Union(w.Rect)
		texts = append(texts, w.Text)

		fw := Fold(w.Text)
		if i > 0 {
			offset++ // the joining space
		}
		starts = append(starts, offset)
		foldeds = append(foldeds, fw)
		offset += len(fw)
	}

	return Line{
		Rect:        rect,
		Words:       words,
		Text:        strings.Join(texts, " "),
		Index:       index,
		folded:      strings.Join(foldeds, " "),
		foldedWords: foldeds,
		starts:      starts,
	}
}

// rectForSpan returns the union rectangle of the words overlapping the
// folded-text span [start, end)
func (l *Line) rectForSpan(start, end int) model.Rect {
	var rect model.Rect
	for i, wordStart := range l.starts {
		wordEnd := wordStart + len(l.foldedWords[i])
		if wordStart < end && wordEnd > start {
			rect = rect.Union(l.Words[i].Rect)
		}
	}
	return rect
}
