package source

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/jmcrae/rubrica/model"
)

// wordBox is one positioned token in the interchange format
type wordBox struct {
	Text string  `json:"text"`
	X0   float64 `json:"x0"`
	Y0   float64 `json:"y0"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
}

// pageBox is one page of the interchange format
type pageBox struct {
	Number int       `json:"number"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Words  []wordBox `json:"words"`
}

// documentBox is the top-level positioned-text interchange record, as
// produced by external extraction tools
type documentBox struct {
	Student    string    `json:"student,omitempty"`
	Assignment string    `json:"assignment,omitempty"`
	Source     string    `json:"source,omitempty"`
	Pages      []pageBox `json:"pages"`
}

// DecodeJSON builds a document from positioned-text interchange JSON.
// Page order follows the input; word order within a page is reading
// order.
func DecodeJSON(data []byte) (*model.Document, error) {
	var in documentBox
	if err := sonic.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to decode word-box JSON: %w", err)
	}
	if len(in.Pages) == 0 {
		return nil, fmt.Errorf("word-box JSON has no pages")
	}

	doc := model.NewDocument()
	doc.Metadata.Student = in.Student
	doc.Metadata.Assignment = in.Assignment
	doc.Metadata.Source = in.Source

	for i, pb := range in.Pages {
		if pb.Width <= 0 || pb.Height <= 0 {
			return nil, fmt.Errorf("page %d: invalid dimensions %gx%g", i+1, pb.Width, pb.Height)
		}
		p := model.NewPage(pb.Width, pb.Height)
		for _, w := range pb.Words {
			if w.Text == "" {
				continue
			}
			p.AddWord(w.Text, model.NewRect(w.X0, w.Y0, w.X1, w.Y1))
		}
		doc.AddPage(p)
	}

	return doc, nil
}
