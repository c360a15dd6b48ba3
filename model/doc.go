// Package model provides the intermediate representation (IR) for pages,
// marks, and grading evidence.
//
// This package defines the user-facing data structures every other package
// operates on. A document is a sequence of pages; a page exposes its text
// layer as positioned words; annotation produces marks attached to pages.
//
// # Document Structure
//
// The [Document] type represents a complete document with metadata and pages:
//
//	doc := model.NewDocument()
//	doc.Metadata.Student = "s1024"
//	doc.AddPage(page)
//
// Each [Page] carries dimensions, the positioned [Word] tokens of its text
// layer in reading order, and the [Mark] values drawn on it.
//
// # Marks
//
// All drawn marks implement the [Mark] interface. The concrete types are:
//
//   - [Underline] - a line beneath matched text
//   - [ScoreLabel] - an inline score annotation
//   - [Note] - a sticky-note comment anchored in the margin
//
// # Evidence
//
// [Evidence] is the validated, tagged representation of one upstream
// grading claim. Items are built with the validating constructors
// [NewMainScore], [NewCriterionScore], and [NewComment]; structural
// problems fail fast with [ErrMalformedEvidence]. Comments follow the
// two-part "<anchor> → <feedback>" format, split on [CommentDelimiter].
//
// # Geometry
//
// Geometric primitives support position and layout calculations:
//
//   - [Rect] - rectangle with top-left origin, y increasing downward
//   - [Point] - 2D point with distance calculation
//
// [Rect.SameLine] implements the tolerance-based "same text line" test the
// resolver and the placement engine share, and [Rect.LineKey] produces the
// rounded vertical key used for collision bookkeeping.
package model
