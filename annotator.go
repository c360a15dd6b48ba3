package rubrica

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jmcrae/rubrica/anchor"
	"github.com/jmcrae/rubrica/grade"
	"github.com/jmcrae/rubrica/model"
	"github.com/jmcrae/rubrica/mutate"
	"github.com/jmcrae/rubrica/page"
	"github.com/jmcrae/rubrica/place"
)

// runState is the annotation run's position in its strict forward
// sequence. There is no retry and no rollback: each state runs once, in
// order, and FINALIZE is terminal.
type runState int

const (
	stateInit runState = iota
	stateMainScore
	stateCriterionScores
	stateComments
	stateFinalize
)

func (s runState) String() string {
	switch s {
	case stateInit:
		return "INIT"
	case stateMainScore:
		return "MAIN_SCORE"
	case stateCriterionScores:
		return "CRITERION_SCORES"
	case stateComments:
		return "COMMENTS"
	case stateFinalize:
		return "FINALIZE"
	default:
		return "UNKNOWN"
	}
}

// Annotator orchestrates one document's annotation: evidence items are
// processed main score first, then criterion scores, then comments, each
// through the resolver and the placement engine. Configuration methods
// return a new Annotator instance, making chains safe to share; each
// Apply call constructs its own registry and page indexes, so separate
// Annotators may run concurrently over separate documents.
type Annotator struct {
	doc     *model.Document
	options annotateOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Annotator with a deep copy of
// options. This ensures immutability - each chain method returns a new
// instance.
func (a *Annotator) clone() *Annotator {
	return &Annotator{
		doc:     a.doc,
		options: a.options.clone(),
		err:     a.err,
	}
}

// Pages restricts resolution to specific pages (1-indexed) in the given
// search order. Without it, all pages are searched in document order.
func (a *Annotator) Pages(pageNumbers ...int) *Annotator {
	newA := a.clone()
	newA.options.pages = append([]int(nil), pageNumbers...)
	return newA
}

// WithLogger sets the logger used by the run and every component it
// constructs
func (a *Annotator) WithLogger(logger *zap.Logger) *Annotator {
	newA := a.clone()
	if logger != nil {
		newA.options.logger = logger
	}
	return newA
}

// WithConfig replaces the placement configuration
func (a *Annotator) WithConfig(config place.Config) *Annotator {
	newA := a.clone()
	newA.options.config = config
	return newA
}

// WithResolver replaces the default resolver, e.g. to reorder or extend
// the strategy cascade
func (a *Annotator) WithResolver(resolver *anchor.Resolver) *Annotator {
	newA := a.clone()
	newA.options.resolver = resolver
	return newA
}

// WithSaver sets the saver invoked at FINALIZE. Saver failure is the
// run's only fatal outcome.
func (a *Annotator) WithSaver(saver mutate.Saver) *Annotator {
	newA := a.clone()
	newA.options.saver = saver
	return newA
}

// MaxUnplaced caps the unplaced entries carried in the report
func (a *Annotator) MaxUnplaced(n int) *Annotator {
	newA := a.clone()
	if n >= 0 {
		newA.options.maxUnplaced = n
	}
	return newA
}

// Apply runs the annotation sequence for one sheet and returns the
// placement report. Resolution and placement misses are recorded in the
// report, never returned as errors; the only error outcomes are
// structural (nil document, bad page numbers, malformed sheet) and
// persistence failure at FINALIZE.
func (a *Annotator) Apply(sheet *grade.Sheet) (*Report, error) {
	if a.err != nil {
		return nil, a.err
	}
	if a.doc == nil {
		return nil, fmt.Errorf("no document to annotate")
	}
	if sheet == nil {
		return nil, fmt.Errorf("no sheet to apply")
	}

	items, err := sheet.Items()
	if err != nil {
		return nil, err
	}

	logger := a.options.logger

	// INIT: per-run state only; nothing is shared across runs
	state := stateInit
	logger.Debug("annotation state", zap.String("state", state.String()))

	indexes, err := page.NewIndexes(a.doc, a.options.pages, page.Config{
		YTolerance: a.options.config.YTolerance,
	})
	if err != nil {
		return nil, err
	}

	mutator, err := mutate.NewMutator(a.doc)
	if err != nil {
		return nil, err
	}
	mutator = mutator.WithLogger(logger)

	registry := place.NewRegistry(a.options.config.YTolerance)
	engine := place.NewEngineWithConfig(mutator, registry, a.options.config).WithLogger(logger)

	resolver := a.options.resolver
	if resolver == nil {
		resolver = anchor.NewResolverWithConfig(anchor.ResolverConfig{
			YTolerance:       a.options.config.YTolerance,
			MaxAnchorWords:   anchor.DefaultResolverConfig().MaxAnchorWords,
			MaxClusterWords:  anchor.DefaultResolverConfig().MaxClusterWords,
			ContextWordLimit: anchor.DefaultResolverConfig().ContextWordLimit,
		}).WithLogger(logger)
	}

	report := newReport(sheet.Student, sheet.Question, a.options.maxUnplaced)

	state = stateMainScore
	logger.Debug("annotation state", zap.String("state", state.String()))
	for _, item := range items {
		if item.Kind != model.KindMainScore {
			continue
		}
		a.placeMainScore(engine, indexes, item, report)
		break // one placement per document
	}

	state = stateCriterionScores
	logger.Debug("annotation state", zap.String("state", state.String()))
	for _, item := range items {
		if item.Kind != model.KindCriterionScore {
			continue
		}
		a.placeCriterion(resolver, engine, registry, indexes, item, report)
	}

	state = stateComments
	logger.Debug("annotation state", zap.String("state", state.String()))
	for _, item := range items {
		if item.Kind != model.KindComment {
			continue
		}
		a.placeComment(resolver, engine, indexes, item, report)
	}

	state = stateFinalize
	logger.Debug("annotation state", zap.String("state", state.String()))
	if a.options.saver != nil {
		if err := a.options.saver.Save(a.doc); err != nil {
			logger.Error("persistence failed", zap.Error(err))
			return report, fmt.Errorf("saving annotated document: %w", err)
		}
	}

	logger.Info("annotation complete",
		zap.String("question", sheet.Question),
		zap.Bool("main_score_placed", report.MainScorePlaced),
		zap.Int("criteria_placed", report.CriteriaPlaced),
		zap.Int("comments_placed", report.CommentsPlaced),
		zap.Int("marks", a.doc.MarkCount()))
	return report, nil
}

// placeMainScore tries the heading strategies on each allowed page in
// order and stops at the first success; the main score is placed at most
// once per document, independent of the registry
func (a *Annotator) placeMainScore(engine *place.Engine, indexes []*page.Index, item model.Evidence, report *Report) {
	for _, idx := range indexes {
		if engine.PlaceHeadingScore(idx, item.Text, item.Score) {
			report.MainScorePlaced = true
			return
		}
	}
	a.options.logger.Info("main score heading not found",
		zap.String("heading", item.Text))
	report.recordUnplaced(item, "heading not found")
}

// placeCriterion resolves and places one criterion score. Empty evidence
// short-circuits to an unplaced entry without invoking the resolver.
func (a *Annotator) placeCriterion(resolver *anchor.Resolver, engine *place.Engine, registry *place.Registry, indexes []*page.Index, item model.Evidence, report *Report) {
	report.TotalCriteria++

	if item.Text == "" {
		report.recordUnplaced(item, "empty evidence")
		return
	}

	res, ok := resolver.Resolve(indexes, item.Text, registry)
	if !ok {
		a.options.logger.Info("anchor not found",
			zap.String("label", item.Label))
		report.recordUnplaced(item, "anchor not found")
		return
	}

	idx := indexByNumber(indexes, res.Page)
	if idx == nil || !engine.PlaceScore(idx, res.Rect, item.Score) {
		report.recordUnplaced(item, "placement failed")
		return
	}
	report.CriteriaPlaced++
}

// placeComment resolves and places one comment note. Resolution runs
// with deduplication disabled: a comment may share its line with a score
// mark.
func (a *Annotator) placeComment(resolver *anchor.Resolver, engine *place.Engine, indexes []*page.Index, item model.Evidence, report *Report) {
	report.TotalComments++

	res, ok := resolver.Resolve(indexes, item.Text, nil)
	if !ok {
		a.options.logger.Info("comment anchor not found",
			zap.String("anchor", item.Label))
		report.recordUnplaced(item, "anchor not found")
		return
	}

	idx := indexByNumber(indexes, res.Page)
	if idx == nil || !engine.PlaceComment(idx, res.Rect, item.NoteText()) {
		report.recordUnplaced(item, "placement failed")
		return
	}
	report.CommentsPlaced++
}

// indexByNumber finds the index for a 1-based page number
func indexByNumber(indexes []*page.Index, number int) *page.Index {
	for _, idx := range indexes {
		if idx.Number() == number {
			return idx
		}
	}
	return nil
}
