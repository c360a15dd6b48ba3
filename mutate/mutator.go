package mutate

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/jmcrae/rubrica/model"
)

// ErrMutation indicates the document rejected a drawing call: bad page
// number, non-finite geometry, or empty label text. The offending item
// is reported unplaced and the run continues.
var ErrMutation = errors.New("mutation failed")

// ErrPersistence indicates saving the final mutated document failed.
// Fatal for the run; there is no rollback.
var ErrPersistence = errors.New("persistence failed")

// Mutator applies visual marks to a document's pages. It is the only
// component that appends to a page's mark list; resolution and placement
// stay read-only over the text layer.
type Mutator struct {
	doc    *model.Document
	logger *zap.Logger
}

// NewMutator creates a mutator over the document. A nil document is a
// programmer error.
func NewMutator(doc *model.Document) (*Mutator, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", ErrMutation)
	}
	return &Mutator{doc: doc, logger: zap.NewNop()}, nil
}

// WithLogger sets the mutator's logger and returns the mutator
func (m *Mutator) WithLogger(logger *zap.Logger) *Mutator {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// Document returns the mutated document
func (m *Mutator) Document() *model.Document {
	return m.doc
}

// DrawUnderline adds an underline mark to the page
func (m *Mutator) DrawUnderline(pageNumber int, rect model.Rect, color model.Color, width float64) error {
	p, err := m.page(pageNumber)
	if err != nil {
		return err
	}
	if !rect.IsValid() {
		return fmt.Errorf("%w: invalid underline rect on page %d", ErrMutation, pageNumber)
	}
	if width <= 0 || !isFinite(width) {
		return fmt.Errorf("%w: invalid underline width %v", ErrMutation, width)
	}

	p.AddMark(&model.Underline{Rect: rect, Color: color, LineWidth: width})
	m.logger.Debug("underline drawn",
		zap.Int("page", pageNumber),
		zap.Float64("y", rect.Y0))
	return nil
}

// DrawScoreLabel adds a score label mark to the page
func (m *Mutator) DrawScoreLabel(pageNumber int, at model.Point, text string, fontSize float64, color model.Color) error {
	p, err := m.page(pageNumber)
	if err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("%w: empty score label on page %d", ErrMutation, pageNumber)
	}
	if fontSize <= 0 || !isFinite(fontSize) {
		return fmt.Errorf("%w: invalid font size %v", ErrMutation, fontSize)
	}
	if !isFinite(at.X) || !isFinite(at.Y) {
		return fmt.Errorf("%w: non-finite label position on page %d", ErrMutation, pageNumber)
	}

	p.AddMark(&model.ScoreLabel{At: at, Text: text, FontSize: fontSize, Color: color})
	m.logger.Debug("score label drawn",
		zap.Int("page", pageNumber),
		zap.String("text", text))
	return nil
}

// DrawNote adds a sticky-note comment mark to the page
func (m *Mutator) DrawNote(pageNumber int, at model.Point, title, text string, color model.Color, opacity float64) error {
	p, err := m.page(pageNumber)
	if err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("%w: empty note text on page %d", ErrMutation, pageNumber)
	}
	if opacity < 0 || opacity > 1 {
		return fmt.Errorf("%w: opacity %v out of range", ErrMutation, opacity)
	}
	if !isFinite(at.X) || !isFinite(at.Y) {
		return fmt.Errorf("%w: non-finite note position on page %d", ErrMutation, pageNumber)
	}

	p.AddMark(&model.Note{At: at, Title: title, Text: text, Color: color, Opacity: opacity})
	m.logger.Debug("note drawn",
		zap.Int("page", pageNumber),
		zap.String("title", title))
	return nil
}

// page resolves a 1-based page number, escalating out-of-range numbers
// as mutation errors rather than panics
func (m *Mutator) page(pageNumber int) (*model.Page, error) {
	p := m.doc.GetPage(pageNumber)
	if p == nil {
		return nil, fmt.Errorf("%w: page %d out of range [1, %d]", ErrMutation, pageNumber, m.doc.PageCount())
	}
	return p, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
