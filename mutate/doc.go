// Package mutate applies decided marks to a document and persists the
// result.
//
// The [Mutator] is the single write path onto a document's pages: the
// placement engine decides geometry, the mutator validates and appends
// the marks. Drawing problems (bad page number, non-finite geometry,
// empty label text) surface as [ErrMutation] — the item is reported
// unplaced and the run continues. Persistence problems surface as
// [ErrPersistence] and are fatal for the run.
//
// [Export] flattens a mutated document into renderer-friendly records:
// one flat mark record per drawn mark plus per-page summaries. The
// [Saver] interface and its file-backed [FileSaver] implementation carry
// the export through the run's FINALIZE step.
package mutate
