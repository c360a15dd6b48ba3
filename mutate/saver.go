package mutate

import (
	"fmt"
	"os"

	"github.com/jmcrae/rubrica/model"
)

// Saver persists a mutated document. Implementations report failures as
// errors wrapping ErrPersistence; the annotation run treats those as
// fatal.
type Saver interface {
	Save(doc *model.Document) error
}

// FileSaver writes the annotated-document JSON export to a file
type FileSaver struct {
	// Path is the destination file
	Path string
}

// Save writes the document's export record to the saver's path
func (s FileSaver) Save(doc *model.Document) error {
	if s.Path == "" {
		return fmt.Errorf("%w: no output path", ErrPersistence)
	}

	data, err := ExportJSON(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrPersistence, s.Path, err)
	}
	return nil
}
