// Package grade defines the evidence contract between upstream grading
// and annotation.
//
// A [Sheet] is one graded question for one student in the canonical
// structured-breakdown shape: an overall score, criterion rows with
// awarded marks and evidence text, and free-form comments in the
// "<anchor> → <feedback>" format. [Sheet.Items] maps a sheet to the
// ordered evidence sequence the annotator consumes.
//
// Loaders cover the formats graders actually produce: JSON ([LoadJSON]),
// human-authored YAML ([LoadYAML]), and the legacy flat-CSV rows
// ([LoadCSV]), which are grouped into sheets at load time so that only
// one schema ever reaches resolution.
package grade
