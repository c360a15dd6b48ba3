package model

// Document represents a complete rendered document with its text layer
// and any marks applied to it
type Document struct {
	Metadata Metadata
	Pages    []*Page
}

// Metadata contains document-level information
type Metadata struct {
	Student    string
	Assignment string
	Source     string // path or identifier of the originating file
	// Custom metadata
	Custom map[string]string
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Metadata: Metadata{
			Custom: make(map[string]string),
		},
		Pages: make([]*Page, 0),
	}
}

// AddPage adds a page to the document
func (d *Document) AddPage(page *Page) {
	page.Number = len(d.Pages) + 1
	d.Pages = append(d.Pages, page)
}

// GetPage returns a page by number (1-indexed)
func (d *Document) GetPage(number int) *Page {
	if number < 1 || number > len(d.Pages) {
		return nil
	}
	return d.Pages[number-1]
}

// PageCount returns the total number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Text returns all text content concatenated
func (d *Document) Text() string {
	var text string
	for _, page := range d.Pages {
		text += page.Text() + "\n"
	}
	return text
}

// MarkCount returns the total number of marks across all pages
func (d *Document) MarkCount() int {
	count := 0
	for _, page := range d.Pages {
		count += len(page.Marks)
	}
	return count
}

// AllMarks returns all marks from all pages in page order
func (d *Document) AllMarks() []Mark {
	var marks []Mark
	for _, page := range d.Pages {
		marks = append(marks, page.Marks...)
	}
	return marks
}

// MarksByKind returns all marks of the given kind across the document
func (d *Document) MarksByKind(kind MarkKind) []Mark {
	var marks []Mark
	for _, page := range d.Pages {
		marks = append(marks, page.MarksByKind(kind)...)
	}
	return marks
}
