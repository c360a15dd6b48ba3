package mutate

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/jmcrae/rubrica/model"
)

// MarkRecord is the flat, renderer-friendly form of one drawn mark
type MarkRecord struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Page     int     `json:"page"`
	X0       float64 `json:"x0"`
	Y0       float64 `json:"y0"`
	X1       float64 `json:"x1"`
	Y1       float64 `json:"y1"`
	Text     string  `json:"text,omitempty"`
	Title    string  `json:"title,omitempty"`
	Color    string  `json:"color"`
	Opacity  float64 `json:"opacity,omitempty"`
	FontSize float64 `json:"font_size,omitempty"`
	LineW    float64 `json:"line_width,omitempty"`
}

// PageSummary describes one page of the exported document
type PageSummary struct {
	Number    int     `json:"number"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	WordCount int     `json:"word_count"`
	MarkCount int     `json:"mark_count"`
}

// ExportDocument is the top-level annotated-document export record
type ExportDocument struct {
	Student    string        `json:"student,omitempty"`
	Assignment string        `json:"assignment,omitempty"`
	Source     string        `json:"source,omitempty"`
	Pages      []PageSummary `json:"pages"`
	Marks      []MarkRecord  `json:"marks"`
}

// Export flattens a mutated document into its export record. Every mark
// gets a fresh ID; colors serialize as "#rrggbb".
func Export(doc *model.Document) (*ExportDocument, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", ErrMutation)
	}

	out := &ExportDocument{
		Student:    doc.Metadata.Student,
		Assignment: doc.Metadata.Assignment,
		Source:     doc.Metadata.Source,
		Pages:      make([]PageSummary, 0, len(doc.Pages)),
		Marks:      make([]MarkRecord, 0, doc.MarkCount()),
	}

	for _, p := range doc.Pages {
		out.Pages = append(out.Pages, PageSummary{
			Number:    p.Number,
			Width:     p.Width,
			Height:    p.Height,
			WordCount: len(p.Words),
			MarkCount: len(p.Marks),
		})
		for _, m := range p.Marks {
			out.Marks = append(out.Marks, markRecord(p.Number, m))
		}
	}

	return out, nil
}

// markRecord flattens one mark into its export form
func markRecord(pageNumber int, m model.Mark) MarkRecord {
	bounds := m.Bounds()
	rec := MarkRecord{
		ID:   uuid.NewString(),
		Type: m.Type().String(),
		Page: pageNumber,
		X0:   bounds.X0,
		Y0:   bounds.Y0,
		X1:   bounds.X1,
		Y1:   bounds.Y1,
	}

	switch mark := m.(type) {
	case *model.Underline:
		rec.Color = hexColor(mark.Color)
		rec.LineW = mark.LineWidth
	case *model.ScoreLabel:
		rec.Color = hexColor(mark.Color)
		rec.Text = mark.Text
		rec.FontSize = mark.FontSize
	case *model.Note:
		rec.Color = hexColor(mark.Color)
		rec.Text = mark.Text
		rec.Title = mark.Title
		rec.Opacity = mark.Opacity
	}

	return rec
}

// hexColor renders a color as "#rrggbb"
func hexColor(c model.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ExportJSON serializes the document's export record as JSON
func ExportJSON(doc *model.Document) ([]byte, error) {
	record, err := Export(doc)
	if err != nil {
		return nil, err
	}
	data, err := sonic.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding export: %v", ErrPersistence, err)
	}
	return data, nil
}

// WriteJSON writes the document's export record as JSON to w
func WriteJSON(w io.Writer, doc *model.Document) error {
	data, err := ExportJSON(doc)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: writing export: %v", ErrPersistence, err)
	}
	return nil
}
