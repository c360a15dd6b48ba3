// Package anchor resolves evidence text to page geometry.
//
// Upstream grading produces textual claims about where a score or comment
// belongs; pages only expose words with bounding boxes. This package
// bridges the two with a [Normalizer] that turns raw, LLM-produced
// evidence strings into searchable anchors and a [Resolver] that runs a
// cascade of matching strategies over the allowed pages.
//
// # The Cascade
//
// Strategies are an ordered list of [Strategy] values, not control flow.
// The default order, from strictest to loosest:
//
//  1. [ExactPhrase] - the untouched evidence text, matched literally
//  2. [CleanedPhrase] - the normalizer's shortened anchor chunk
//  3. [NumberContext] - a number occurrence validated by a same-line
//     context word
//  4. [WordCluster] - enough significant words landing on one line
//  5. [NumberOnly] - any occurrence of the number, unvalidated
//
// The resolver accepts the first candidate not rejected by the caller's
// [Occupied] check; occupied candidates are skipped and the search
// continues rather than failing.
//
// # Usage
//
//	r := anchor.NewResolver()
//	res, ok := r.Resolve(indexes, "Consideration (375,000*32): 12,000,000", registry)
//	if ok {
//		// res.Rect, res.Page, res.Strategy
//	}
//
// Resolution never returns an error: a miss is a normal, reportable
// outcome, not a fault.
package anchor
