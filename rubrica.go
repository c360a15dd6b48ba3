// Package rubrica provides a fluent API for annotating graded documents:
// resolving grading evidence to page positions and drawing score and
// comment marks that never collide.
//
// Basic usage:
//
//	report, err := rubrica.New(doc).Apply(sheet)
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(report.Summary())
//
// With options:
//
//	report, err := rubrica.New(doc).
//	    Pages(2, 3, 4).
//	    WithLogger(logger).
//	    WithSaver(mutate.FileSaver{Path: "annotated.json"}).
//	    Apply(sheet)
//
// For advanced use cases, the lower-level anchor and place packages are
// also available.
package rubrica

import (
	"github.com/jmcrae/rubrica/model"
)

// New creates an Annotator over a document for fluent configuration.
// Each configuration method returns a new Annotator instance, so a
// configured chain can be shared and reused safely.
//
// Example:
//
//	report, err := rubrica.New(doc).Pages(1, 2).Apply(sheet)
func New(doc *model.Document) *Annotator {
	return &Annotator{
		doc:     doc,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	report := rubrica.Must(rubrica.New(doc).Apply(sheet))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
