package source

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jmcrae/rubrica/model"
)

// Format identifies a positioned-text input format
type Format int

const (
	// FormatUnknown means the input matched no known format
	FormatUnknown Format = iota
	// FormatJSON is the word-box JSON interchange format
	FormatJSON
	// FormatHOCR is hOCR markup
	FormatHOCR
)

// String returns a human-readable representation of the format
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatHOCR:
		return "hocr"
	default:
		return "unknown"
	}
}

// Detect sniffs the input format from content, not file extension: JSON
// starts with an object or array, hOCR with markup
func Detect(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return FormatUnknown
	}

	switch trimmed[0] {
	case '{', '[':
		return FormatJSON
	case '<':
		if bytes.Contains(data, []byte("ocr_page")) || bytes.Contains(data, []byte("ocrx_word")) {
			return FormatHOCR
		}
	}
	return FormatUnknown
}

// Decode sniffs the format and builds a document
func Decode(data []byte) (*model.Document, error) {
	switch Detect(data) {
	case FormatJSON:
		return DecodeJSON(data)
	case FormatHOCR:
		return DecodeHOCR(data)
	default:
		return nil, fmt.Errorf("unrecognized positioned-text format")
	}
}

// Load reads and decodes a positioned-text file
func Load(path string) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Metadata.Source == "" {
		doc.Metadata.Source = path
	}
	return doc, nil
}
