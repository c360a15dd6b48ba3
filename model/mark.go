package model

// MarkKind represents the type of visual mark drawn on a page
type MarkKind int

const (
	MarkKindUnknown MarkKind = iota
	MarkKindUnderline
	MarkKindScoreLabel
	MarkKindNote
)

func (mk MarkKind) String() string {
	switch mk {
	case MarkKindUnderline:
		return "Underline"
	case MarkKindScoreLabel:
		return "ScoreLabel"
	case MarkKindNote:
		return "Note"
	default:
		return "Unknown"
	}
}

// Mark is the interface for all visual marks
type Mark interface {
	Type() MarkKind
	Bounds() Rect
}

// Underline represents a line drawn beneath matched text
type Underline struct {
	Rect      Rect
	Color     Color
	LineWidth float64
}

func (u *Underline) Type() MarkKind { return MarkKindUnderline }
func (u *Underline) Bounds() Rect   { return u.Rect }

// ScoreLabel represents an inline score annotation
type ScoreLabel struct {
	At       Point
	Text     string
	FontSize float64
	Color    Color
}

func (s *ScoreLabel) Type() MarkKind { return MarkKindScoreLabel }
func (s *ScoreLabel) Bounds() Rect {
	// Approximate extent from the anchor point; labels are short
	w := float64(len(s.Text)) * s.FontSize * 0.6
	return Rect{X0: s.At.X, Y0: s.At.Y, X1: s.At.X + w, Y1: s.At.Y + s.FontSize}
}

// Note represents a sticky-note style comment anchored in the margin
type Note struct {
	At      Point
	Title   string
	Text    string
	Color   Color
	Opacity float64
}

func (n *Note) Type() MarkKind { return MarkKindNote }
func (n *Note) Bounds() Rect {
	// Note icons render at a fixed nominal size
	const iconSize = 18.0
	return Rect{X0: n.At.X, Y0: n.At.Y, X1: n.At.X + iconSize, Y1: n.At.Y + iconSize}
}

// Color represents an RGB color
type Color struct {
	R, G, B uint8
}

// Word represents a positioned token of page text
type Word struct {
	Text string
	Rect Rect
}
