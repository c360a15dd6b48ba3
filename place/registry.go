package place

import (
	"math"

	"github.com/jmcrae/rubrica/model"
)

// slot identifies one claimed vertical position on one page
type slot struct {
	page int
	y    int
}

// Registry tracks which (page, vertical-position) slots are occupied by
// placed marks, so that new marks never overlap existing ones. It also
// tracks which source text lines have already received a mark, a
// distinct rule that stops two criteria from claiming the literal same
// line even when their marks would not collide visually.
//
// A registry is created fresh for one annotation run and discarded
// after. Claims accumulate monotonically; there is no release.
type Registry struct {
	yTolerance float64
	claimed    map[slot]bool
	perPage    map[int][]float64
	usedLines  map[slot]bool
}

// NewRegistry creates an empty registry with the given same-line
// tolerance in points
func NewRegistry(yTolerance float64) *Registry {
	return &Registry{
		yTolerance: yTolerance,
		claimed:    make(map[slot]bool),
		perPage:    make(map[int][]float64),
		usedLines:  make(map[slot]bool),
	}
}

// Occupied reports whether any claimed position on the page lies within
// the registry's tolerance of the rectangle's top edge. This is the
// resolver's deduplication check.
func (r *Registry) Occupied(pageNumber int, rect model.Rect) bool {
	return r.OccupiedY(pageNumber, rect.Y0)
}

// OccupiedY reports whether any claimed position on the page lies within
// tolerance of y
func (r *Registry) OccupiedY(pageNumber int, y float64) bool {
	for _, claimed := range r.perPage[pageNumber] {
		if math.Abs(claimed-y) <= r.yTolerance {
			return true
		}
	}
	return false
}

// Claim records y as occupied on the page
func (r *Registry) Claim(pageNumber int, y float64) {
	key := slot{page: pageNumber, y: int(math.Round(y))}
	if !r.claimed[key] {
		r.claimed[key] = true
		r.perPage[pageNumber] = append(r.perPage[pageNumber], y)
	}
}

// LineUsed reports whether the source line at y on the page has already
// received a mark. The test is exact on the rounded y, unlike the
// tolerance-based Occupied check.
func (r *Registry) LineUsed(pageNumber int, y float64) bool {
	return r.usedLines[slot{page: pageNumber, y: int(math.Round(y))}]
}

// ClaimLine records the source line at y on the page as used
func (r *Registry) ClaimLine(pageNumber int, y float64) {
	r.usedLines[slot{page: pageNumber, y: int(math.Round(y))}] = true
}

// Len returns the number of claimed position slots
func (r *Registry) Len() int {
	return len(r.claimed)
}

// LowestY returns the lowest (largest-y) claimed position on the page.
// ok is false when the page has no claims. Used for the margin fallback
// when staggering runs out of room.
func (r *Registry) LowestY(pageNumber int) (float64, bool) {
	ys := r.perPage[pageNumber]
	if len(ys) == 0 {
		return 0, false
	}
	lowest := ys[0]
	for _, y := range ys[1:] {
		if y > lowest {
			lowest = y
		}
	}
	return lowest, true
}
