package place

import (
	"go.uber.org/zap"

	"github.com/jmcrae/rubrica/model"
	"github.com/jmcrae/rubrica/mutate"
	"github.com/jmcrae/rubrica/page"
)

// Config holds every placement tunable. Defaults mirror the production
// annotation constants.
type Config struct {
	// YTolerance is the vertical distance within which two marks are
	// considered colliding (points)
	YTolerance float64

	// StaggerStep is the downward shift applied per collision retry
	StaggerStep float64

	// StaggerRetries bounds the collision retries before the margin
	// fallback kicks in
	StaggerRetries int

	// MarginOffset is the distance of margin-placed marks from the
	// page's right edge
	MarginOffset float64

	// PrintableInset keeps underlines off the page edges
	PrintableInset float64

	// UnderlineWidth is the underline stroke width
	UnderlineWidth float64

	// UnderlineDrop is how far below the matched rectangle the
	// underline is drawn
	UnderlineDrop float64

	// UnderlineColor is the underline stroke color
	UnderlineColor model.Color

	// ScoreOffset positions a criterion score label relative to the
	// matched rectangle's top-left corner
	ScoreOffset model.Point

	// ScoreFontSize is the criterion score label size
	ScoreFontSize float64

	// ScoreColor is the criterion score label color
	ScoreColor model.Color

	// MainScoreOffset positions the main score label relative to the
	// matched heading's top-left corner
	MainScoreOffset model.Point

	// MainScoreFontSize is the main score label size
	MainScoreFontSize float64

	// MainScoreColor is the main score label color
	MainScoreColor model.Color

	// NoteOffset is the downward shift of a comment note from its
	// anchor line
	NoteOffset float64

	// NoteTitle is the title shown on comment notes
	NoteTitle string

	// NoteColor is the comment note color
	NoteColor model.Color

	// NoteOpacity is the comment note opacity
	NoteOpacity float64
}

// DefaultConfig returns the production placement constants
func DefaultConfig() Config {
	return Config{
		YTolerance:        2.0,
		StaggerStep:       12.0,
		StaggerRetries:    5,
		MarginOffset:      30.0,
		PrintableInset:    5.0,
		UnderlineWidth:    1.5,
		UnderlineDrop:     2.0,
		UnderlineColor:    model.Color{R: 0, G: 179, B: 0},
		ScoreOffset:       model.Point{X: -15, Y: 2},
		ScoreFontSize:     10.0,
		ScoreColor:        model.Color{R: 0, G: 77, B: 0},
		MainScoreOffset:   model.Point{X: -20, Y: -28},
		MainScoreFontSize: 14.0,
		MainScoreColor:    model.Color{R: 0, G: 0, B: 255},
		NoteOffset:        2.0,
		NoteTitle:         "Feedback",
		NoteColor:         model.Color{R: 255, G: 0, B: 0},
		NoteOpacity:       0.85,
	}
}

// Engine decides where a resolved rectangle's mark actually lands and
// draws it through the mutator. It consults and updates the registry so
// that score marks never collide; comment notes are exempt.
//
// Every placement returns a success flag and logs the reason on
// failure. Missing anchors and exhausted positions are normal outcomes,
// not errors; only mutation failures from the document layer are logged
// as warnings.
type Engine struct {
	config   Config
	registry *Registry
	mutator  *mutate.Mutator
	logger   *zap.Logger
}

// NewEngine creates an engine with default configuration
func NewEngine(mutator *mutate.Mutator, registry *Registry) *Engine {
	return NewEngineWithConfig(mutator, registry, DefaultConfig())
}

// NewEngineWithConfig creates an engine with custom configuration
func NewEngineWithConfig(mutator *mutate.Mutator, registry *Registry, config Config) *Engine {
	return &Engine{
		config:   config,
		registry: registry,
		mutator:  mutator,
		logger:   zap.NewNop(),
	}
}

// WithLogger sets the engine's logger and returns the engine
func (e *Engine) WithLogger(logger *zap.Logger) *Engine {
	if logger != nil {
		e.logger = logger
	}
	return e
}

// Registry returns the engine's registry
func (e *Engine) Registry() *Registry {
	return e.registry
}

// PlaceScore draws an underline beneath the matched rectangle and a
// score label beside it. When the intended position collides with an
// existing mark, or the source line already carries a score, the mark is
// staggered downward in fixed steps; once the retry budget is exhausted
// it falls back to the right margin below the lowest existing mark. The
// final position is claimed in the registry.
func (e *Engine) PlaceScore(idx *page.Index, rect model.Rect, scoreText string) bool {
	pageNum := idx.Number()

	y, inMargin := e.freePosition(pageNum, rect.Y0)
	delta := y - rect.Y0

	labelAt := model.Point{
		X: rect.X0 + e.config.ScoreOffset.X,
		Y: y + e.config.ScoreOffset.Y,
	}
	if inMargin {
		labelAt.X = idx.Width() - e.config.MarginOffset
	}

	underline := e.underlineRect(idx, rect, delta)
	if err := e.mutator.DrawUnderline(pageNum, underline, e.config.UnderlineColor, e.config.UnderlineWidth); err != nil {
		e.logger.Warn("underline rejected",
			zap.Int("page", pageNum),
			zap.Error(err))
		return false
	}
	if err := e.mutator.DrawScoreLabel(pageNum, labelAt, scoreText, e.config.ScoreFontSize, e.config.ScoreColor); err != nil {
		e.logger.Warn("score label rejected",
			zap.Int("page", pageNum),
			zap.String("score", scoreText),
			zap.Error(err))
		return false
	}

	e.registry.Claim(pageNum, y)
	e.registry.ClaimLine(pageNum, y)
	return true
}

// freePosition finds the first non-colliding, unclaimed vertical
// position at or below y. inMargin reports that the retry budget ran out
// and the position is the margin fallback below the lowest existing
// mark.
func (e *Engine) freePosition(pageNum int, y float64) (final float64, inMargin bool) {
	for attempt := 0; attempt <= e.config.StaggerRetries; attempt++ {
		if !e.registry.OccupiedY(pageNum, y) && !e.registry.LineUsed(pageNum, y) {
			if attempt > 0 {
				e.logger.Debug("staggered to avoid collision",
					zap.Int("page", pageNum),
					zap.Float64("y", y),
					zap.Int("attempts", attempt))
			}
			return y, false
		}
		y += e.config.StaggerStep
	}

	lowest, ok := e.registry.LowestY(pageNum)
	if !ok {
		return y, false
	}
	e.logger.Debug("stagger budget exhausted, using margin fallback",
		zap.Int("page", pageNum),
		zap.Float64("below", lowest))
	return lowest + e.config.StaggerStep, true
}

// underlineRect builds the underline geometry: a thin strip just below
// the matched rectangle, shifted by any stagger delta and clamped to the
// page's printable area
func (e *Engine) underlineRect(idx *page.Index, rect model.Rect, delta float64) model.Rect {
	printable := idx.Page().Bounds().Expand(-e.config.PrintableInset)
	y := rect.Y1 + e.config.UnderlineDrop + delta

	strip := model.Rect{
		X0: rect.X0,
		Y0: y,
		X1: rect.X1,
		Y1: y + e.config.UnderlineWidth,
	}
	clamped := strip.Clamp(printable)
	if clamped.IsEmpty() {
		return strip
	}
	return clamped
}

// PlaceComment anchors a note at the page's right margin at the
// rectangle's vertical level. Comments are collected in the margin to
// avoid obscuring text, and visual collision is intentionally not
// enforced: several comments may legitimately cluster near one line.
func (e *Engine) PlaceComment(idx *page.Index, rect model.Rect, text string) bool {
	pageNum := idx.Number()
	at := model.Point{
		X: idx.Width() - e.config.MarginOffset,
		Y: rect.Y0 + e.config.NoteOffset,
	}

	err := e.mutator.DrawNote(pageNum, at, e.config.NoteTitle, text, e.config.NoteColor, e.config.NoteOpacity)
	if err != nil {
		e.logger.Warn("note rejected",
			zap.Int("page", pageNum),
			zap.Error(err))
		return false
	}
	return true
}

// PlaceHeadingScore places the document's main score next to its
// question heading. Heading variants are tried in order: the literal
// text, then "Q"-prefixed, then "Question "-prefixed; the first hit on
// the page wins. The placement is independent of the registry.
func (e *Engine) PlaceHeadingScore(idx *page.Index, headingText, scoreText string) bool {
	pageNum := idx.Number()

	for _, variant := range headingVariants(headingText) {
		rects := idx.Search(variant)
		if len(rects) == 0 {
			continue
		}
		rect := rects[0]

		labelAt := model.Point{
			X: rect.X0 + e.config.MainScoreOffset.X,
			Y: rect.Y0 + e.config.MainScoreOffset.Y,
		}
		if labelAt.X < e.config.PrintableInset {
			labelAt.X = e.config.PrintableInset
		}
		if labelAt.Y < e.config.PrintableInset {
			labelAt.Y = e.config.PrintableInset
		}

		underline := e.underlineRect(idx, rect, 0)
		if err := e.mutator.DrawUnderline(pageNum, underline, e.config.UnderlineColor, e.config.UnderlineWidth); err != nil {
			e.logger.Warn("heading underline rejected",
				zap.Int("page", pageNum),
				zap.Error(err))
			return false
		}
		if err := e.mutator.DrawScoreLabel(pageNum, labelAt, scoreText, e.config.MainScoreFontSize, e.config.MainScoreColor); err != nil {
			e.logger.Warn("main score label rejected",
				zap.Int("page", pageNum),
				zap.String("score", scoreText),
				zap.Error(err))
			return false
		}

		e.logger.Debug("main score placed",
			zap.Int("page", pageNum),
			zap.String("heading", variant))
		return true
	}

	e.logger.Debug("heading not found on page",
		zap.Int("page", pageNum),
		zap.String("heading", headingText))
	return false
}

// headingVariants returns the heading spellings tried for the main
// score, in preference order
func headingVariants(heading string) []string {
	return []string{heading, "Q" + heading, "Question " + heading}
}
