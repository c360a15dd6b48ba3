package grade

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmcrae/rubrica/model"
)

// Score is an awarded/maximum mark pair
type Score struct {
	Awarded float64 `json:"awarded" yaml:"awarded"`
	Max     float64 `json:"max" yaml:"max"`
}

// Render formats the score in the "awarded/max" form drawn next to a
// question heading
func (s Score) Render() string {
	return formatMarks(s.Awarded) + "/" + formatMarks(s.Max)
}

// BreakdownItem is one criterion row of a structured grading breakdown
type BreakdownItem struct {
	Criterion       string  `json:"criterion" yaml:"criterion"`
	MarksAwarded    float64 `json:"marks_awarded" yaml:"marks_awarded"`
	MaxPossible     float64 `json:"max_possible" yaml:"max_possible"`
	Reason          string  `json:"reason,omitempty" yaml:"reason,omitempty"`
	Evidence        string  `json:"evidence,omitempty" yaml:"evidence,omitempty"`
	CommentsSummary string  `json:"comments_summary,omitempty" yaml:"comments_summary,omitempty"`
}

// Sheet is one graded question for one student: the canonical
// structured-breakdown evidence contract. Older flat shapes are mapped
// into sheets at load time and never reach resolution.
type Sheet struct {
	Student   string          `json:"student" yaml:"student"`
	Question  string          `json:"question" yaml:"question"`
	Score     Score           `json:"score" yaml:"score"`
	Breakdown []BreakdownItem `json:"breakdown" yaml:"breakdown"`
	Comments  []string        `json:"comments,omitempty" yaml:"comments,omitempty"`
}

// Items maps the sheet to the evidence sequence the annotator consumes,
// in placement order: the main score first, then criterion rows with
// marks awarded, then parsed comments. Criterion rows keep empty
// evidence text — the annotator records those unplaced without invoking
// resolution. Comment fragments duplicating the main score are dropped.
func (s *Sheet) Items() ([]model.Evidence, error) {
	if strings.TrimSpace(s.Question) == "" {
		return nil, fmt.Errorf("%w: sheet has no question number", model.ErrMalformedEvidence)
	}

	items := make([]model.Evidence, 0, 1+len(s.Breakdown)+len(s.Comments))

	main, err := model.NewMainScore(s.Question, s.Score.Render())
	if err != nil {
		return nil, err
	}
	items = append(items, main)

	for _, row := range s.Breakdown {
		if row.MarksAwarded <= 0 {
			continue
		}
		item, err := model.NewCriterionScore(row.Criterion, row.Evidence, formatMarks(row.MarksAwarded))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	for _, raw := range s.Comments {
		for _, fragment := range SplitComments(raw) {
			item, err := model.NewComment(fragment)
			if err != nil {
				// Empty fragments carry no feedback; skip them
				continue
			}
			items = append(items, item)
		}
	}

	return items, nil
}

// formatMarks renders a mark value without trailing zeros ("1", "0.5")
func formatMarks(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
