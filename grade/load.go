package grade

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"
)

// LoadJSON decodes one sheet or a list of sheets from JSON
func LoadJSON(data []byte) ([]*Sheet, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var sheets []*Sheet
		if err := sonic.Unmarshal(data, &sheets); err != nil {
			return nil, fmt.Errorf("failed to decode sheets: %w", err)
		}
		return sheets, nil
	}

	var sheet Sheet
	if err := sonic.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("failed to decode sheet: %w", err)
	}
	return []*Sheet{&sheet}, nil
}

// LoadYAML decodes a list of sheets from YAML. A single document decodes
// as one sheet.
func LoadYAML(data []byte) ([]*Sheet, error) {
	var sheets []*Sheet
	if err := yaml.Unmarshal(data, &sheets); err == nil && len(sheets) > 0 {
		return sheets, nil
	}

	var sheet Sheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("failed to decode sheet: %w", err)
	}
	return []*Sheet{&sheet}, nil
}

// csvHeader is the legacy flat-row column order: one criterion row per
// line, grouped into sheets by student and question
var csvHeader = []string{
	"student", "question", "criterion",
	"marks_awarded", "max_possible", "evidence", "comment",
}

// LoadCSV maps the legacy flat-CSV grading shape into sheets. Rows are
// grouped by (student, question) preserving first-seen order; per-group
// scores sum the rows; non-empty comment cells collect onto the sheet.
// The mapping is purely a data concern — flat rows never reach the
// resolver as a second schema.
func LoadCSV(r io.Reader) ([]*Sheet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV input")
	}

	start := 0
	if isCSVHeader(records[0]) {
		start = 1
	}

	var (
		sheets []*Sheet
		byKey  = make(map[string]*Sheet)
	)

	for i, rec := range records[start:] {
		student := strings.TrimSpace(rec[0])
		question := strings.TrimSpace(rec[1])
		key := student + "\x00" + question

		sheet, ok := byKey[key]
		if !ok {
			sheet = &Sheet{Student: student, Question: question}
			byKey[key] = sheet
			sheets = append(sheets, sheet)
		}

		awarded, err := strconv.ParseFloat(strings.TrimSpace(rec[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad marks_awarded %q: %w", start+i+1, rec[3], err)
		}
		maxPossible, err := strconv.ParseFloat(strings.TrimSpace(rec[4]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad max_possible %q: %w", start+i+1, rec[4], err)
		}

		sheet.Breakdown = append(sheet.Breakdown, BreakdownItem{
			Criterion:    strings.TrimSpace(rec[2]),
			MarksAwarded: awarded,
			MaxPossible:  maxPossible,
			Evidence:     strings.TrimSpace(rec[5]),
		})
		sheet.Score.Awarded += awarded
		sheet.Score.Max += maxPossible

		if comment := strings.TrimSpace(rec[6]); comment != "" {
			sheet.Comments = append(sheet.Comments, comment)
		}
	}

	return sheets, nil
}

// isCSVHeader reports whether the record is the column-name header row
func isCSVHeader(record []string) bool {
	for i, name := range csvHeader {
		if !strings.EqualFold(strings.TrimSpace(record[i]), name) {
			return false
		}
	}
	return true
}

// Load reads sheets from a file, picking the decoder by extension:
// .json, .yaml/.yml, or .csv
func Load(path string) ([]*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(data)
	case ".yaml", ".yml":
		return LoadYAML(data)
	case ".csv":
		return LoadCSV(strings.NewReader(string(data)))
	default:
		return nil, fmt.Errorf("unsupported sheet format: %s", path)
	}
}
