package place

import (
	"testing"

	"github.com/jmcrae/rubrica/model"
	"github.com/jmcrae/rubrica/mutate"
	"github.com/jmcrae/rubrica/page"
)

// answerPage builds a page with a heading and two answer lines
func answerPage() *model.Page {
	p := model.NewPage(612, 792)
	p.AddWord("Question", model.NewRect(72, 60, 140, 74))
	p.AddWord("2", model.NewRect(145, 60, 153, 74))

	p.AddWord("Goodwill", model.NewRect(80, 200, 138, 212))
	p.AddWord("2,500,000", model.NewRect(301, 200, 365, 212))

	p.AddWord("Depreciation", model.NewRect(80, 400, 160, 412))
	p.AddWord("175,000", model.NewRect(301, 400, 350, 412))
	return p
}

// newTestEngine wires an engine over a fresh single-page document
func newTestEngine(t *testing.T, p *model.Page) (*Engine, *model.Document, *page.Index) {
	t.Helper()

	doc := model.NewDocument()
	doc.AddPage(p)

	mutator, err := mutate.NewMutator(doc)
	if err != nil {
		t.Fatalf("NewMutator() error = %v", err)
	}

	registry := NewRegistry(DefaultConfig().YTolerance)
	return NewEngine(mutator, registry), doc, page.NewIndex(p)
}

// ============================================================================
// Registry Tests
// ============================================================================

func TestRegistryOccupied(t *testing.T) {
	r := NewRegistry(2.0)

	if r.Occupied(1, model.NewRect(0, 200, 10, 210)) {
		t.Error("empty registry reports occupied")
	}

	r.Claim(1, 200)

	tests := []struct {
		name string
		page int
		y    float64
		want bool
	}{
		{"exact", 1, 200, true},
		{"within tolerance above", 1, 198.5, true},
		{"within tolerance below", 1, 201.5, true},
		{"outside tolerance", 1, 203, false},
		{"other page", 2, 200, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Occupied(tt.page, model.NewRect(0, tt.y, 10, tt.y+10))
			if got != tt.want {
				t.Errorf("Occupied(%d, y=%v) = %v, want %v", tt.page, tt.y, got, tt.want)
			}
		})
	}
}

func TestRegistryLineUsed(t *testing.T) {
	r := NewRegistry(2.0)

	r.ClaimLine(3, 200.4)

	// Exact on the rounded value, unlike the tolerance-based Occupied
	if !r.LineUsed(3, 200) {
		t.Error("LineUsed(200) = false after claiming 200.4")
	}
	if r.LineUsed(3, 201) {
		t.Error("LineUsed(201) = true, want exact rounded match only")
	}
	if r.LineUsed(2, 200) {
		t.Error("LineUsed on other page = true")
	}
}

func TestRegistryMonotonic(t *testing.T) {
	r := NewRegistry(2.0)

	prev := r.Len()
	for i := 0; i < 10; i++ {
		r.Claim(1, float64(100+i*20))
		if r.Len() < prev {
			t.Fatalf("Len() decreased from %d to %d", prev, r.Len())
		}
		prev = r.Len()
	}
	if r.Len() != 10 {
		t.Errorf("Len() = %d, want 10", r.Len())
	}

	// Re-claiming an existing slot neither grows nor shrinks
	r.Claim(1, 100)
	if r.Len() != 10 {
		t.Errorf("Len() after duplicate claim = %d, want 10", r.Len())
	}
}

func TestRegistryLowestY(t *testing.T) {
	r := NewRegistry(2.0)

	if _, ok := r.LowestY(1); ok {
		t.Error("LowestY() ok = true on empty page")
	}

	r.Claim(1, 200)
	r.Claim(1, 500)
	r.Claim(1, 350)
	r.Claim(2, 700)

	lowest, ok := r.LowestY(1)
	if !ok {
		t.Fatal("LowestY() ok = false")
	}
	if lowest != 500 {
		t.Errorf("LowestY() = %v, want 500", lowest)
	}
}

// ============================================================================
// PlaceScore Tests
// ============================================================================

func TestPlaceScore(t *testing.T) {
	engine, doc, idx := newTestEngine(t, answerPage())

	rect := model.NewRect(80, 200, 365, 212)
	if !engine.PlaceScore(idx, rect, "1") {
		t.Fatal("PlaceScore() = false, want true")
	}

	underlines := doc.MarksByKind(model.MarkKindUnderline)
	labels := doc.MarksByKind(model.MarkKindScoreLabel)
	if len(underlines) != 1 || len(labels) != 1 {
		t.Fatalf("marks = %d underlines, %d labels, want 1 each", len(underlines), len(labels))
	}

	// Underline sits just below the matched rectangle
	u := underlines[0].(*model.Underline)
	if u.Rect.Y0 != 214 {
		t.Errorf("underline Y0 = %v, want 214", u.Rect.Y0)
	}

	// Label offset from the rectangle's top-left
	l := labels[0].(*model.ScoreLabel)
	if l.At.X != 65 || l.At.Y != 202 {
		t.Errorf("label at (%v, %v), want (65, 202)", l.At.X, l.At.Y)
	}

	if engine.Registry().Len() != 1 {
		t.Errorf("registry Len() = %d, want 1", engine.Registry().Len())
	}
}

func TestPlaceScoreStaggersOnCollision(t *testing.T) {
	engine, doc, idx := newTestEngine(t, answerPage())

	rect := model.NewRect(80, 200, 365, 212)
	if !engine.PlaceScore(idx, rect, "1") {
		t.Fatal("first PlaceScore() = false")
	}
	if !engine.PlaceScore(idx, rect, "0.5") {
		t.Fatal("second PlaceScore() = false")
	}

	labels := doc.MarksByKind(model.MarkKindScoreLabel)
	if len(labels) != 2 {
		t.Fatalf("labels = %d, want 2", len(labels))
	}

	first := labels[0].(*model.ScoreLabel)
	second := labels[1].(*model.ScoreLabel)
	if second.At.Y != first.At.Y+DefaultConfig().StaggerStep {
		t.Errorf("second label Y = %v, want %v (staggered one step)",
			second.At.Y, first.At.Y+DefaultConfig().StaggerStep)
	}

	// Both underlines drawn, vertically separated
	underlines := doc.MarksByKind(model.MarkKindUnderline)
	if len(underlines) != 2 {
		t.Fatalf("underlines = %d, want 2", len(underlines))
	}
	u1 := underlines[0].(*model.Underline)
	u2 := underlines[1].(*model.Underline)
	if u1.Rect.Y0 == u2.Rect.Y0 {
		t.Error("staggered underlines share a Y position")
	}
}

func TestPlacedScoresNeverCollide(t *testing.T) {
	engine, _, idx := newTestEngine(t, answerPage())
	tolerance := DefaultConfig().YTolerance

	rect := model.NewRect(80, 200, 365, 212)
	var placedYs []float64
	for i := 0; i < 4; i++ {
		if !engine.PlaceScore(idx, rect, "1") {
			t.Fatalf("PlaceScore() #%d = false", i)
		}
	}

	reg := engine.Registry()
	for y := 0.0; y < 792; y++ {
		if reg.OccupiedY(1, y) {
			placedYs = append(placedYs, y)
		}
	}
	if len(placedYs) == 0 {
		t.Fatal("no occupied positions recorded")
	}

	// Re-check the claimed positions pairwise via the raw claims
	ys := reg.perPage[1]
	for i := 0; i < len(ys); i++ {
		for j := i + 1; j < len(ys); j++ {
			diff := ys[i] - ys[j]
			if diff < 0 {
				diff = -diff
			}
			if diff <= tolerance {
				t.Errorf("claims %v and %v within tolerance %v", ys[i], ys[j], tolerance)
			}
		}
	}
}

func TestPlaceScoreMarginFallback(t *testing.T) {
	engine, doc, idx := newTestEngine(t, answerPage())
	cfg := DefaultConfig()

	// Exhaust the stagger range below y=200
	rect := model.NewRect(80, 200, 365, 212)
	for i := 0; i <= cfg.StaggerRetries; i++ {
		engine.Registry().Claim(1, 200+float64(i)*cfg.StaggerStep)
	}

	if !engine.PlaceScore(idx, rect, "1") {
		t.Fatal("PlaceScore() = false, want margin fallback")
	}

	labels := doc.MarksByKind(model.MarkKindScoreLabel)
	if len(labels) != 1 {
		t.Fatalf("labels = %d, want 1", len(labels))
	}
	l := labels[0].(*model.ScoreLabel)
	if l.At.X != idx.Width()-cfg.MarginOffset {
		t.Errorf("fallback label X = %v, want margin %v", l.At.X, idx.Width()-cfg.MarginOffset)
	}

	lowest := 200 + float64(cfg.StaggerRetries)*cfg.StaggerStep
	wantY := lowest + cfg.StaggerStep + cfg.ScoreOffset.Y
	if l.At.Y != wantY {
		t.Errorf("fallback label Y = %v, want %v (below lowest mark)", l.At.Y, wantY)
	}
}

func TestPlaceScoreDuplicateLineStaggered(t *testing.T) {
	engine, _, idx := newTestEngine(t, answerPage())

	// The same source line claimed twice lands on two distinct positions
	rect := model.NewRect(80, 400, 350, 412)
	if !engine.PlaceScore(idx, rect, "1") {
		t.Fatal("first PlaceScore() = false")
	}
	if !engine.PlaceScore(idx, rect, "0.5") {
		t.Fatal("second PlaceScore() = false")
	}

	if !engine.Registry().LineUsed(1, 400) {
		t.Error("LineUsed(400) = false after placement")
	}
	if !engine.Registry().OccupiedY(1, 412) {
		t.Error("second score not staggered to 412")
	}
}

// ============================================================================
// PlaceComment Tests
// ============================================================================

func TestPlaceComment(t *testing.T) {
	engine, doc, idx := newTestEngine(t, answerPage())
	cfg := DefaultConfig()

	rect := model.NewRect(80, 200, 365, 212)
	if !engine.PlaceComment(idx, rect, "timing error. Recognise on delivery.") {
		t.Fatal("PlaceComment() = false, want true")
	}

	notes := doc.MarksByKind(model.MarkKindNote)
	if len(notes) != 1 {
		t.Fatalf("notes = %d, want 1", len(notes))
	}

	n := notes[0].(*model.Note)
	if n.At.X != idx.Width()-cfg.MarginOffset {
		t.Errorf("note X = %v, want margin %v", n.At.X, idx.Width()-cfg.MarginOffset)
	}
	if n.At.Y != rect.Y0+cfg.NoteOffset {
		t.Errorf("note Y = %v, want %v", n.At.Y, rect.Y0+cfg.NoteOffset)
	}
	if n.Title != cfg.NoteTitle {
		t.Errorf("note Title = %q, want %q", n.Title, cfg.NoteTitle)
	}
}

func TestPlaceCommentIgnoresCollisions(t *testing.T) {
	engine, doc, idx := newTestEngine(t, answerPage())

	// A score already occupies the line; the comment still lands there
	rect := model.NewRect(80, 200, 365, 212)
	if !engine.PlaceScore(idx, rect, "1") {
		t.Fatal("PlaceScore() = false")
	}
	if !engine.PlaceComment(idx, rect, "also check the workings") {
		t.Error("PlaceComment() = false on occupied line, want true")
	}
	if !engine.PlaceComment(idx, rect, "second comment, same line") {
		t.Error("second PlaceComment() = false, want true")
	}

	if got := len(doc.MarksByKind(model.MarkKindNote)); got != 2 {
		t.Errorf("notes = %d, want 2", got)
	}
}

// ============================================================================
// PlaceHeadingScore Tests
// ============================================================================

func TestPlaceHeadingScore(t *testing.T) {
	tests := []struct {
		name    string
		heading string
		want    bool
	}{
		{"literal hit", "Question 2", true},
		// "2" appears only as part of "Question 2"; the variants cover it
		{"bare question number", "2", true},
		{"absent heading", "7", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, doc, idx := newTestEngine(t, headingOnlyPage())

			got := engine.PlaceHeadingScore(idx, tt.heading, "7/10")
			if got != tt.want {
				t.Fatalf("PlaceHeadingScore(%q) = %v, want %v", tt.heading, got, tt.want)
			}

			wantMarks := 0
			if tt.want {
				wantMarks = 2 // underline + label
			}
			if doc.MarkCount() != wantMarks {
				t.Errorf("MarkCount() = %d, want %d", doc.MarkCount(), wantMarks)
			}
		})
	}
}

// headingOnlyPage has "Question 2" but no bare "2" token anywhere else
func headingOnlyPage() *model.Page {
	p := model.NewPage(612, 792)
	p.AddWord("Question", model.NewRect(72, 60, 140, 74))
	p.AddWord("2", model.NewRect(145, 60, 153, 74))
	p.AddWord("Goodwill", model.NewRect(80, 200, 138, 212))
	return p
}

func TestPlaceHeadingScoreLabelStaysOnPage(t *testing.T) {
	engine, doc, idx := newTestEngine(t, headingOnlyPage())

	if !engine.PlaceHeadingScore(idx, "2", "7/10") {
		t.Fatal("PlaceHeadingScore() = false")
	}

	labels := doc.MarksByKind(model.MarkKindScoreLabel)
	l := labels[0].(*model.ScoreLabel)
	if l.At.X < 0 || l.At.Y < 0 {
		t.Errorf("label at (%v, %v) is off the page", l.At.X, l.At.Y)
	}
}
