package rubrica

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/jmcrae/rubrica/model"
)

// previewLength bounds the evidence text carried per unplaced entry
const previewLength = 60

// UnplacedItem records one evidence item that could not be placed
type UnplacedItem struct {
	Kind            string `json:"kind"`
	Label           string `json:"label"`
	EvidencePreview string `json:"evidence_preview"`
	Reason          string `json:"reason"`
}

// Report is the placement outcome of one annotation run: per-kind
// placed/unplaced counts plus a bounded list of unplaced items for
// diagnostics. It never feeds back into resolution.
type Report struct {
	RunID           string         `json:"run_id"`
	Student         string         `json:"student,omitempty"`
	Question        string         `json:"question,omitempty"`
	MainScorePlaced bool           `json:"main_score_placed"`
	TotalCriteria   int            `json:"total_criteria"`
	CriteriaPlaced  int            `json:"criteria_placed"`
	TotalComments   int            `json:"total_comments"`
	CommentsPlaced  int            `json:"comments_placed"`
	Unplaced        []UnplacedItem `json:"unplaced,omitempty"`
	UnplacedTotal   int            `json:"unplaced_total"`

	maxUnplaced int
}

// newReport creates an empty report with a fresh run ID
func newReport(student, question string, maxUnplaced int) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		Student:     student,
		Question:    question,
		maxUnplaced: maxUnplaced,
	}
}

// recordUnplaced counts an unplaced item, keeping its details while the
// report's cap allows
func (r *Report) recordUnplaced(item model.Evidence, reason string) {
	r.UnplacedTotal++
	if len(r.Unplaced) >= r.maxUnplaced {
		return
	}
	r.Unplaced = append(r.Unplaced, UnplacedItem{
		Kind:            item.Kind.String(),
		Label:           item.Label,
		EvidencePreview: item.Preview(previewLength),
		Reason:          reason,
	})
}

// AllPlaced reports whether every item found a position
func (r *Report) AllPlaced() bool {
	return r.UnplacedTotal == 0
}

// Summary returns a one-line human-readable outcome
func (r *Report) Summary() string {
	main := "not placed"
	if r.MainScorePlaced {
		main = "placed"
	}
	return fmt.Sprintf("main score %s, criteria %d/%d, comments %d/%d, %d unplaced",
		main, r.CriteriaPlaced, r.TotalCriteria,
		r.CommentsPlaced, r.TotalComments, r.UnplacedTotal)
}

// JSON serializes the report as a flat JSON record
func (r *Report) JSON() ([]byte, error) {
	data, err := sonic.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return data, nil
}
