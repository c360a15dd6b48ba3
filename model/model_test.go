package model

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// ============================================================================
// Point Tests
// ============================================================================

func TestPointDistance(t *testing.T) {
	tests := []struct {
		name     string
		p1, p2   Point
		expected float64
	}{
		{"same point", Point{0, 0}, Point{0, 0}, 0},
		{"horizontal", Point{0, 0}, Point{3, 0}, 3},
		{"vertical", Point{0, 0}, Point{0, 4}, 4},
		{"diagonal 3-4-5", Point{0, 0}, Point{3, 4}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.p1.Distance(tt.p2)
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("Distance() = %v, want %v", result, tt.expected)
			}
		})
	}
}

// ============================================================================
// Rect Tests
// ============================================================================

func TestNewRect(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		want           Rect
	}{
		{"normal", 10, 20, 110, 70, Rect{10, 20, 110, 70}},
		{"reversed corners", 110, 70, 10, 20, Rect{10, 20, 110, 70}},
		{"zero size", 10, 10, 10, 10, Rect{10, 10, 10, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewRect(tt.x0, tt.y0, tt.x1, tt.y1)
			if got != tt.want {
				t.Errorf("NewRect() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectDimensions(t *testing.T) {
	r := NewRect(10, 20, 110, 70)

	if r.Width() != 100 {
		t.Errorf("Width() = %v, want 100", r.Width())
	}
	if r.Height() != 50 {
		t.Errorf("Height() = %v, want 50", r.Height())
	}

	center := r.Center()
	if center.X != 60 || center.Y != 45 {
		t.Errorf("Center() = %+v, want {60, 45}", center)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 100, 100)

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Point{50, 50}, true},
		{"on edge", Point{10, 50}, true},
		{"corner", Point{100, 100}, true},
		{"outside left", Point{5, 50}, false},
		{"outside below", Point{50, 105}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRectIntersects(t *testing.T) {
	base := NewRect(0, 0, 50, 50)

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlapping", NewRect(25, 25, 75, 75), true},
		{"contained", NewRect(10, 10, 20, 20), true},
		{"touching edge", NewRect(50, 0, 100, 50), true},
		{"disjoint right", NewRect(60, 0, 100, 50), false},
		{"disjoint below", NewRect(0, 60, 50, 100), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectIntersection(t *testing.T) {
	a := NewRect(0, 0, 50, 50)
	b := NewRect(25, 25, 75, 75)

	got := a.Intersection(b)
	want := Rect{25, 25, 50, 50}
	if got != want {
		t.Errorf("Intersection() = %+v, want %+v", got, want)
	}

	disjoint := a.Intersection(NewRect(100, 100, 200, 200))
	if !disjoint.IsEmpty() {
		t.Errorf("Intersection() of disjoint rects = %+v, want empty", disjoint)
	}
}

func TestRectUnion(t *testing.T) {
	a := NewRect(10, 10, 50, 50)
	b := NewRect(40, 5, 90, 45)

	got := a.Union(b)
	want := Rect{10, 5, 90, 50}
	if got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}

	// Union with an empty rect keeps the non-empty extent
	if got := a.Union(Rect{}); got != a {
		t.Errorf("Union(empty) = %+v, want %+v", got, a)
	}
	if got := (Rect{}).Union(b); got != b {
		t.Errorf("empty.Union() = %+v, want %+v", got, b)
	}
}

func TestRectSameLine(t *testing.T) {
	base := NewRect(10, 200, 100, 212)

	tests := []struct {
		name      string
		other     Rect
		tolerance float64
		want      bool
	}{
		{"identical top", NewRect(300, 200, 350, 212), 2, true},
		{"within tolerance", NewRect(300, 201.5, 350, 213), 2, true},
		{"at tolerance", NewRect(300, 202, 350, 214), 2, true},
		{"beyond tolerance", NewRect(300, 203, 350, 215), 2, false},
		{"different line", NewRect(10, 220, 100, 232), 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.SameLine(tt.other, tt.tolerance); got != tt.want {
				t.Errorf("SameLine() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectLineKey(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		want int
	}{
		{"integral", NewRect(0, 200, 10, 210), 200},
		{"rounds down", NewRect(0, 200.4, 10, 210), 200},
		{"rounds up", NewRect(0, 200.6, 10, 210), 201},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.LineKey(); got != tt.want {
				t.Errorf("LineKey() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRectIsValid(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		want bool
	}{
		{"valid", NewRect(0, 0, 10, 10), true},
		{"zero area", Rect{10, 10, 10, 10}, false},
		{"inverted", Rect{10, 10, 5, 5}, false},
		{"NaN coordinate", Rect{math.NaN(), 0, 10, 10}, false},
		{"infinite coordinate", Rect{0, 0, math.Inf(1), 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectClamp(t *testing.T) {
	page := NewRect(0, 0, 612, 792)

	overhang := NewRect(600, 100, 650, 112)
	got := overhang.Clamp(page)
	want := Rect{600, 100, 612, 112}
	if got != want {
		t.Errorf("Clamp() = %+v, want %+v", got, want)
	}
}

// ============================================================================
// Mark Tests
// ============================================================================

func TestMarkKindString(t *testing.T) {
	tests := []struct {
		kind MarkKind
		want string
	}{
		{MarkKindUnderline, "Underline"},
		{MarkKindScoreLabel, "ScoreLabel"},
		{MarkKindNote, "Note"},
		{MarkKindUnknown, "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestMarkInterfaces(t *testing.T) {
	var marks = []Mark{
		&Underline{Rect: NewRect(10, 20, 100, 22), LineWidth: 1.5},
		&ScoreLabel{At: Point{10, 20}, Text: "2/5", FontSize: 10},
		&Note{At: Point{580, 100}, Title: "Feedback", Text: "check this"},
	}

	wantKinds := []MarkKind{MarkKindUnderline, MarkKindScoreLabel, MarkKindNote}
	for i, m := range marks {
		if m.Type() != wantKinds[i] {
			t.Errorf("mark %d Type() = %v, want %v", i, m.Type(), wantKinds[i])
		}
		if m.Bounds().X0 > m.Bounds().X1 {
			t.Errorf("mark %d Bounds() inverted: %+v", i, m.Bounds())
		}
	}
}

// ============================================================================
// Evidence Tests
// ============================================================================

func TestNewMainScore(t *testing.T) {
	e, err := NewMainScore("2", "12/20")
	if err != nil {
		t.Fatalf("NewMainScore() error = %v", err)
	}
	if e.Kind != KindMainScore {
		t.Errorf("Kind = %v, want MainScore", e.Kind)
	}
	if e.Text != "2" || e.Score != "12/20" {
		t.Errorf("fields = %q/%q, want 2/12-20", e.Text, e.Score)
	}

	if _, err := NewMainScore("", "12/20"); !errors.Is(err, ErrMalformedEvidence) {
		t.Errorf("empty heading error = %v, want ErrMalformedEvidence", err)
	}
	if _, err := NewMainScore("2", ""); !errors.Is(err, ErrMalformedEvidence) {
		t.Errorf("empty score error = %v, want ErrMalformedEvidence", err)
	}
}

func TestNewCriterionScore(t *testing.T) {
	e, err := NewCriterionScore("Consideration", "375,000 * 32 = 12,000,000", "2")
	if err != nil {
		t.Fatalf("NewCriterionScore() error = %v", err)
	}
	if e.Kind != KindCriterionScore {
		t.Errorf("Kind = %v, want CriterionScore", e.Kind)
	}
	if e.Label != "Consideration" {
		t.Errorf("Label = %q, want Consideration", e.Label)
	}

	// Empty evidence is constructible; the annotator skips it later
	e, err = NewCriterionScore("Goodwill", "", "1")
	if err != nil {
		t.Fatalf("empty evidence error = %v, want nil", err)
	}
	if e.Text != "" {
		t.Errorf("Text = %q, want empty", e.Text)
	}

	if _, err := NewCriterionScore("Goodwill", "evidence", ""); !errors.Is(err, ErrMalformedEvidence) {
		t.Errorf("empty score error = %v, want ErrMalformedEvidence", err)
	}
}

func TestNewComment(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantAnchor   string
		wantFeedback string
	}{
		{
			"arrow delimited",
			"Revenue recognised early → timing error. Recognise on delivery.",
			"Revenue recognised early",
			"timing error. Recognise on delivery.",
		},
		{
			"ascii arrow",
			"Depreciation omitted -> include 10% straight line",
			"Depreciation omitted",
			"include 10% straight line",
		},
		{
			"no delimiter",
			"Good use of workings",
			"Good use of workings",
			"Good use of workings",
		},
		{
			"quoted anchor",
			`"Revenue recognised early" → timing error`,
			"Revenue recognised early",
			"timing error",
		},
		{
			"smart quoted anchor",
			"“Net assets acquired” → correct figure",
			"Net assets acquired",
			"correct figure",
		},
		{
			"dangling arrow no feedback",
			"Revenue recognised early →",
			"Revenue recognised early",
			"Revenue recognised early",
		},
		{
			"arrow with no anchor",
			"→ recheck the workings",
			"recheck the workings",
			"recheck the workings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewComment(tt.raw)
			if err != nil {
				t.Fatalf("NewComment() error = %v", err)
			}
			if e.Text != tt.wantAnchor {
				t.Errorf("anchor = %q, want %q", e.Text, tt.wantAnchor)
			}
			if e.Feedback != tt.wantFeedback {
				t.Errorf("feedback = %q, want %q", e.Feedback, tt.wantFeedback)
			}
		})
	}

	if _, err := NewComment("   "); !errors.Is(err, ErrMalformedEvidence) {
		t.Errorf("blank comment error = %v, want ErrMalformedEvidence", err)
	}
}

func TestEvidenceNoteText(t *testing.T) {
	e, err := NewComment("Revenue recognised early → timing error.")
	if err != nil {
		t.Fatalf("NewComment() error = %v", err)
	}
	want := "Revenue recognised early → timing error."
	if got := e.NoteText(); got != want {
		t.Errorf("NoteText() = %q, want %q", got, want)
	}

	plain, _ := NewComment("Good use of workings")
	if got := plain.NoteText(); got != "Good use of workings" {
		t.Errorf("NoteText() without delimiter = %q", got)
	}
}

func TestEvidencePreview(t *testing.T) {
	e, _ := NewCriterionScore("c", strings.Repeat("a", 60), "1")
	got := e.Preview(40)
	if len([]rune(got)) != 43 {
		t.Errorf("Preview() length = %d, want 43 (40 + ellipsis)", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Preview() = %q, want ... suffix", got)
	}

	short, _ := NewCriterionScore("c", "brief", "1")
	if got := short.Preview(40); got != "brief" {
		t.Errorf("Preview() = %q, want brief", got)
	}
}

// ============================================================================
// Page and Document Tests
// ============================================================================

func TestPageWordsAndMarks(t *testing.T) {
	page := NewPage(612, 792)
	page.AddWord("Consideration", NewRect(80, 200, 180, 212))
	page.AddWord("12,000,000", NewRect(301, 200, 370, 212))

	if got := page.Text(); got != "Consideration 12,000,000" {
		t.Errorf("Text() = %q", got)
	}

	page.AddMark(&Underline{Rect: NewRect(80, 212, 180, 214)})
	page.AddMark(&ScoreLabel{At: Point{65, 202}, Text: "2"})

	if len(page.Marks) != 2 {
		t.Errorf("Marks count = %d, want 2", len(page.Marks))
	}
	if got := len(page.MarksByKind(MarkKindUnderline)); got != 1 {
		t.Errorf("MarksByKind(Underline) = %d, want 1", got)
	}

	region := NewRect(0, 195, 200, 215)
	words := page.WordsInRegion(region)
	if len(words) != 1 || words[0].Text != "Consideration" {
		t.Errorf("WordsInRegion() = %+v, want [Consideration]", words)
	}
}

func TestDocumentPages(t *testing.T) {
	doc := NewDocument()
	doc.AddPage(NewPage(612, 792))
	doc.AddPage(NewPage(612, 792))

	if doc.PageCount() != 2 {
		t.Errorf("PageCount() = %d, want 2", doc.PageCount())
	}
	if p := doc.GetPage(1); p == nil || p.Number != 1 {
		t.Errorf("GetPage(1) = %+v, want page 1", p)
	}
	if p := doc.GetPage(3); p != nil {
		t.Errorf("GetPage(3) = %+v, want nil", p)
	}
	if p := doc.GetPage(0); p != nil {
		t.Errorf("GetPage(0) = %+v, want nil", p)
	}
}

func TestDocumentMarkCount(t *testing.T) {
	doc := NewDocument()
	p1 := NewPage(612, 792)
	p2 := NewPage(612, 792)
	doc.AddPage(p1)
	doc.AddPage(p2)

	p1.AddMark(&Underline{Rect: NewRect(10, 20, 100, 22)})
	p2.AddMark(&Note{At: Point{580, 50}, Text: "margin note"})
	p2.AddMark(&ScoreLabel{At: Point{10, 50}, Text: "1/2"})

	if doc.MarkCount() != 3 {
		t.Errorf("MarkCount() = %d, want 3", doc.MarkCount())
	}
	if got := len(doc.AllMarks()); got != 3 {
		t.Errorf("AllMarks() = %d, want 3", got)
	}
	if got := len(doc.MarksByKind(MarkKindNote)); got != 1 {
		t.Errorf("MarksByKind(Note) = %d, want 1", got)
	}
}
