package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedEvidence indicates an evidence record that fails structural
// validation at construction time
var ErrMalformedEvidence = errors.New("malformed evidence")

// EvidenceKind represents the type of an evidence item
type EvidenceKind int

const (
	KindUnknown EvidenceKind = iota
	KindMainScore
	KindCriterionScore
	KindComment
)

func (ek EvidenceKind) String() string {
	switch ek {
	case KindMainScore:
		return "MainScore"
	case KindCriterionScore:
		return "CriterionScore"
	case KindComment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// CommentDelimiter separates the anchor phrase from the feedback body in
// a comment string. The two-part format "<anchor> → <feedback>" is the
// upstream contract; the arrow is a field delimiter, not decoration.
const CommentDelimiter = "→"

// Evidence is a single item to be placed on the document. It is created
// once from a grading record, consumed exactly once by the annotator, and
// never mutated.
type Evidence struct {
	Kind     EvidenceKind
	Label    string // short identifier for reports and logs
	Raw      string // untrusted upstream text, kept for diagnostics
	Text     string // anchor text handed to the resolver
	Score    string // rendered score, score kinds only
	Feedback string // feedback body, comment kind only
}

// NewMainScore creates the document-level score item. The heading is the
// question identifier the score is anchored to (e.g. "2" or "Question 2").
func NewMainScore(heading, score string) (Evidence, error) {
	heading = strings.TrimSpace(heading)
	score = strings.TrimSpace(score)
	if heading == "" {
		return Evidence{}, fmt.Errorf("%w: main score requires a heading", ErrMalformedEvidence)
	}
	if score == "" {
		return Evidence{}, fmt.Errorf("%w: main score requires score text", ErrMalformedEvidence)
	}
	return Evidence{
		Kind:  KindMainScore,
		Label: "TOTAL",
		Raw:   heading,
		Text:  heading,
		Score: score,
	}, nil
}

// NewCriterionScore creates a per-criterion score item. The evidence text
// may be empty; the annotator records such items as unplaced without
// attempting resolution.
func NewCriterionScore(label, evidence, score string) (Evidence, error) {
	score = strings.TrimSpace(score)
	if score == "" {
		return Evidence{}, fmt.Errorf("%w: criterion score requires score text", ErrMalformedEvidence)
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = "criterion"
	}
	evidence = strings.TrimSpace(evidence)
	return Evidence{
		Kind:  KindCriterionScore,
		Label: label,
		Raw:   evidence,
		Text:  evidence,
		Score: score,
	}, nil
}

// NewComment creates a comment item from the two-part upstream format
// "<anchor> → <feedback>". A comment without the delimiter uses the whole
// string as both anchor and feedback.
func NewComment(raw string) (Evidence, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Evidence{}, fmt.Errorf("%w: empty comment", ErrMalformedEvidence)
	}

	anchor, feedback := splitComment(raw)
	return Evidence{
		Kind:     KindComment,
		Label:    anchor,
		Raw:      raw,
		Text:     anchor,
		Feedback: feedback,
	}, nil
}

// splitComment separates anchor and feedback on the arrow delimiter,
// accepting the ASCII form "->" as a fallback spelling. A dangling
// delimiter with one side empty collapses to the non-empty side; the
// anchor is stripped of surrounding quotes so a quoted phrase still
// matches the page text literally.
func splitComment(raw string) (anchor, feedback string) {
	for _, delim := range []string{CommentDelimiter, "->"} {
		idx := strings.Index(raw, delim)
		if idx < 0 {
			continue
		}
		anchor = trimAnchor(raw[:idx])
		feedback = strings.TrimSpace(raw[idx+len(delim):])
		switch {
		case anchor != "" && feedback != "":
			return anchor, feedback
		case anchor != "":
			return anchor, anchor
		case feedback != "":
			return feedback, feedback
		}
	}
	anchor = trimAnchor(raw)
	return anchor, anchor
}

// trimAnchor drops whitespace and surrounding quote characters from an
// anchor phrase
func trimAnchor(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'“”‘’`)
	return strings.TrimSpace(s)
}

// NoteText renders the text body for a placed comment note, preserving
// the anchor → feedback structure
func (e Evidence) NoteText() string {
	if e.Kind != KindComment || e.Text == e.Feedback {
		return e.Feedback
	}
	return e.Text + " " + CommentDelimiter + " " + e.Feedback
}

// Preview returns the first n runes of the evidence text, for reports
func (e Evidence) Preview(n int) string {
	runes := []rune(e.Text)
	if len(runes) <= n {
		return e.Text
	}
	return string(runes[:n]) + "..."
}
