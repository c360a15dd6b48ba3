package source

import (
	"os"
	"path/filepath"
	"testing"
)

const wordBoxJSON = `{
	"student": "s1024",
	"pages": [
		{
			"number": 1,
			"width": 612,
			"height": 792,
			"words": [
				{"text": "Goodwill", "x0": 80, "y0": 200, "x1": 138, "y1": 212},
				{"text": "2,500,000", "x0": 301, "y0": 200, "x1": 365, "y1": 212}
			]
		},
		{"number": 2, "width": 612, "height": 792, "words": []}
	]
}`

const hocrSample = `<html>
 <body>
  <div class="ocr_page" title="image scan.png; bbox 0 0 612 792">
   <span class="ocr_line" title="bbox 80 200 365 212">
    <span class="ocrx_word" title="bbox 80 200 138 212">Goodwill</span>
    <span class="ocrx_word" title="bbox 301 200 365 212; x_wconf 91">2,500,000</span>
   </span>
  </div>
 </body>
</html>`

// ============================================================================
// JSON Tests
// ============================================================================

func TestDecodeJSON(t *testing.T) {
	doc, err := DecodeJSON([]byte(wordBoxJSON))
	if err != nil {
		t.Fatalf("DecodeJSON() error = %v", err)
	}

	if doc.Metadata.Student != "s1024" {
		t.Errorf("Student = %q, want s1024", doc.Metadata.Student)
	}
	if doc.PageCount() != 2 {
		t.Fatalf("PageCount() = %d, want 2", doc.PageCount())
	}

	p := doc.GetPage(1)
	if p.Width != 612 || p.Height != 792 {
		t.Errorf("page dimensions = %vx%v", p.Width, p.Height)
	}
	if len(p.Words) != 2 {
		t.Fatalf("words = %d, want 2", len(p.Words))
	}
	if p.Words[1].Text != "2,500,000" || p.Words[1].Rect.X0 != 301 {
		t.Errorf("word = %+v", p.Words[1])
	}
}

func TestDecodeJSONInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "goodwill 2,500,000"},
		{"no pages", `{"pages": []}`},
		{"bad dimensions", `{"pages": [{"width": 0, "height": 792}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeJSON([]byte(tt.data)); err == nil {
				t.Error("DecodeJSON() error = nil, want failure")
			}
		})
	}
}

// ============================================================================
// hOCR Tests
// ============================================================================

func TestDecodeHOCR(t *testing.T) {
	doc, err := DecodeHOCR([]byte(hocrSample))
	if err != nil {
		t.Fatalf("DecodeHOCR() error = %v", err)
	}

	if doc.PageCount() != 1 {
		t.Fatalf("PageCount() = %d, want 1", doc.PageCount())
	}

	p := doc.GetPage(1)
	if p.Width != 612 || p.Height != 792 {
		t.Errorf("page dimensions = %vx%v, want 612x792", p.Width, p.Height)
	}
	if len(p.Words) != 2 {
		t.Fatalf("words = %d, want 2", len(p.Words))
	}
	if p.Words[0].Text != "Goodwill" {
		t.Errorf("first word = %q", p.Words[0].Text)
	}
	// The bbox property parses even with trailing properties in the title
	if p.Words[1].Rect.X0 != 301 || p.Words[1].Rect.Y1 != 212 {
		t.Errorf("second word rect = %+v", p.Words[1].Rect)
	}
}

func TestDecodeHOCRNoPages(t *testing.T) {
	if _, err := DecodeHOCR([]byte("<html><body><p>plain</p></body></html>")); err == nil {
		t.Error("DecodeHOCR() error = nil, want failure")
	}
}

// ============================================================================
// Detection Tests
// ============================================================================

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Format
	}{
		{"json object", wordBoxJSON, FormatJSON},
		{"json array", `[{"pages": []}]`, FormatJSON},
		{"json with leading space", "  \n" + wordBoxJSON, FormatJSON},
		{"hocr", hocrSample, FormatHOCR},
		{"plain html", "<html><body></body></html>", FormatUnknown},
		{"empty", "", FormatUnknown},
		{"plain text", "goodwill", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect([]byte(tt.data)); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "answers.json")
	if err := os.WriteFile(path, []byte(wordBoxJSON), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.PageCount() != 2 {
		t.Errorf("PageCount() = %d, want 2", doc.PageCount())
	}
	if doc.Metadata.Source != path {
		t.Errorf("Source = %q, want load path", doc.Metadata.Source)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Load() error = nil, want failure")
	}
}
