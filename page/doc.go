// Package page provides the searchable index over one page's text layer.
//
// An [Index] wraps a [model.Page] and answers the two geometric text
// queries anchor resolution is built on: literal phrase search and
// token-level word search, both returning bounding rectangles.
//
// # Building an Index
//
//	idx := page.NewIndex(p)
//	rects := idx.Search("net assets acquired")
//	rect, ok := idx.FindWord("12,000,000")
//
// Construction groups the page's words into text lines by vertical
// position (the only layout analysis this system performs) and precomputes
// the folded, searchable form of each line. Indexes are pure query
// surfaces: they never mutate the page.
//
// # Matching
//
// All matching is case-insensitive and tolerant of the typographic drift
// between extracted text layers and upstream evidence strings: smart
// quotes, dashes, ligatures, and combining accents are folded by [Fold]
// before comparison. Phrase matches never cross line boundaries.
//
// # Configuration
//
//	cfg := page.DefaultConfig()
//	cfg.YTolerance = 3.0
//	idx := page.NewIndexWithConfig(p, cfg)
package page
