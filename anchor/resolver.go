package anchor

import (
	"strings"

	"go.uber.org/zap"

	"github.com/jmcrae/rubrica/model"
	"github.com/jmcrae/rubrica/page"
)

// ResolverConfig holds configuration for anchor resolution
type ResolverConfig struct {
	// YTolerance is the same-line test tolerance in points
	YTolerance float64

	// MaxAnchorWords is the anchor chunk window size for the cleaned
	// phrase strategy
	MaxAnchorWords int

	// MaxClusterWords caps the significant words the word cluster
	// strategy locates
	MaxClusterWords int

	// ContextWordLimit caps the context words validating number
	// occurrences
	ContextWordLimit int
}

// DefaultResolverConfig returns sensible default configuration
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		YTolerance:       2.0,
		MaxAnchorWords:   4,
		MaxClusterWords:  6,
		ContextWordLimit: 3,
	}
}

// Resolution is the successful outcome of resolving one evidence string:
// the matched rectangle, its 1-based page number, and the name of the
// strategy that produced it. Ephemeral; consumed by one placement
// decision and discarded.
type Resolution struct {
	Rect     model.Rect
	Page     int
	Strategy string
}

// Occupied is the resolver's view of already-claimed positions. A nil
// Occupied disables deduplication entirely; comments may legitimately
// share a location with a score mark.
type Occupied interface {
	Occupied(pageNumber int, rect model.Rect) bool
}

// Resolver turns evidence text into page geometry by running a cascade
// of matching strategies over the caller's pages in order, accepting the
// first candidate not rejected by the occupied check. Resolution never
// fails with an error; a miss is a normal, reportable outcome.
type Resolver struct {
	config     ResolverConfig
	normalizer *Normalizer
	strategies []Strategy
	logger     *zap.Logger
}

// NewResolver creates a resolver with the default strategy cascade and
// configuration
func NewResolver() *Resolver {
	return NewResolverWithConfig(DefaultResolverConfig())
}

// NewResolverWithConfig creates a resolver with custom configuration
func NewResolverWithConfig(config ResolverConfig) *Resolver {
	return &Resolver{
		config: config,
		normalizer: NewNormalizerWithConfig(NormalizerConfig{
			MaxAnchorWords:   config.MaxAnchorWords,
			MinAnchorWords:   DefaultNormalizerConfig().MinAnchorWords,
			ContextWordLimit: config.ContextWordLimit,
			MinWordLength:    DefaultNormalizerConfig().MinWordLength,
		}),
		strategies: DefaultStrategies(config),
		logger:     zap.NewNop(),
	}
}

// WithLogger sets the resolver's logger and returns the resolver
func (r *Resolver) WithLogger(logger *zap.Logger) *Resolver {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// WithStrategies replaces the strategy cascade. The slice order is the
// cascade order.
func (r *Resolver) WithStrategies(strategies []Strategy) *Resolver {
	if len(strategies) > 0 {
		r.strategies = strategies
	}
	return r
}

// BuildQuery normalizes one evidence string into the shared query form
// consumed by every strategy
func (r *Resolver) BuildQuery(evidence string) Query {
	q := Query{
		Raw: strings.Join(strings.Fields(evidence), " "),
	}

	if cleaned, ok := r.normalizer.Clean(evidence, r.config.MaxAnchorWords); ok {
		q.Cleaned = page.Fold(cleaned)
	}
	q.Raw = page.Fold(q.Raw)

	if number, ok := r.normalizer.ExtractNumber(evidence); ok {
		q.Number = number
		q.NumberVariants = r.normalizer.NumberVariants(number)
	}

	for _, w := range r.normalizer.ContextWords(evidence, r.config.ContextWordLimit) {
		q.ContextWords = append(q.ContextWords, page.Fold(w))
	}
	for _, w := range r.normalizer.SignificantWords(evidence, r.config.MaxClusterWords) {
		q.ClusterWords = append(q.ClusterWords, page.Fold(w))
	}

	return q
}

// Resolve locates the evidence text on the given pages. Pages are
// searched in the order supplied; per page, strategies run in cascade
// order and the first candidate not rejected by the occupied check wins.
// Occupied candidates are skipped in favor of later occurrences,
// strategies, and pages; when every candidate is occupied, the best
// occupied match comes back anyway so the placement layer can stagger
// it onto a free position. Returns ok=false only when nothing matched
// at all.
func (r *Resolver) Resolve(pages []*page.Index, evidence string, occupied Occupied) (Resolution, bool) {
	q := r.BuildQuery(evidence)
	if q.Raw == "" {
		return Resolution{}, false
	}

	var fallback Resolution
	for _, idx := range pages {
		bounds := idx.Page().Bounds()
		for _, strategy := range r.strategies {
			for _, rect := range strategy.Candidates(idx, q) {
				rect = rect.Clamp(bounds)
				if !rect.IsValid() {
					continue
				}
				if occupied != nil && occupied.Occupied(idx.Number(), rect) {
					if fallback.Page == 0 {
						fb := rect
						if refined := r.refineToNumber(idx, fb, q).Clamp(bounds); refined.IsValid() {
							fb = refined
						}
						fallback = Resolution{
							Rect:     fb,
							Page:     idx.Number(),
							Strategy: strategy.Name(),
						}
					}
					r.logger.Debug("candidate occupied, continuing",
						zap.String("strategy", strategy.Name()),
						zap.Int("page", idx.Number()),
						zap.Float64("y", rect.Y0))
					continue
				}

				if refined := r.refineToNumber(idx, rect, q).Clamp(bounds); refined.IsValid() {
					rect = refined
				}
				r.logger.Debug("anchor resolved",
					zap.String("strategy", strategy.Name()),
					zap.Int("page", idx.Number()),
					zap.Float64("x", rect.X0),
					zap.Float64("y", rect.Y0))
				return Resolution{
					Rect:     rect,
					Page:     idx.Number(),
					Strategy: strategy.Name(),
				}, true
			}
		}
	}

	if fallback.Page != 0 {
		r.logger.Debug("all candidates occupied, reusing best occupied match",
			zap.String("strategy", fallback.Strategy),
			zap.Int("page", fallback.Page),
			zap.Float64("y", fallback.Rect.Y0))
		return fallback, true
	}

	r.logger.Debug("anchor not found",
		zap.String("evidence", q.Raw),
		zap.Int("pages", len(pages)))
	return Resolution{}, false
}

// refineToNumber substitutes the rectangle of the evidence's number when
// it sits on the matched line strictly to the right of the match's left
// edge. The number is the computed result, so it is the more useful
// anchor for a score than the label preceding it. Assumes left-to-right
// single-line layout; on other layouts no substitution happens.
func (r *Resolver) refineToNumber(idx *page.Index, rect model.Rect, q Query) model.Rect {
	if q.Number == "" {
		return rect
	}

	best := model.Rect{}
	for _, variant := range q.NumberVariants {
		for _, hit := range idx.Search(variant) {
			if !hit.SameLine(rect, r.config.YTolerance) {
				continue
			}
			if hit.X0 <= rect.X0 {
				continue
			}
			if best.IsEmpty() || hit.X0 > best.X0 {
				best = hit
			}
		}
	}

	if best.IsEmpty() {
		return rect
	}
	r.logger.Debug("refined anchor to number",
		zap.String("number", q.Number),
		zap.Float64("from_x", rect.X0),
		zap.Float64("to_x", best.X0))
	return best
}
