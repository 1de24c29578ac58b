package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Load reads the course dataset at path, dispatching on file extension.
// CSV and XLSX are supported.
func Load(path string) (*Catalog, error) {
	var (
		courses []Course
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		courses, err = readCSV(path)
	case ".xlsx":
		courses, err = readXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("loading dataset %s: %w", path, err)
	}

	cat := New(courses)
	slog.Info("catalog loaded", "path", path, "courses", cat.Len())
	return cat, nil
}

// columnIndex maps header names to column positions, tolerating surrounding
// whitespace in headers.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}

func readCSV(path string) ([]Course, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	idx := columnIndex(header)

	var courses []Course
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			slog.Warn("skipping malformed dataset row", "line", line, "error", err)
			continue
		}
		if course, ok := parseRow(record, idx, line); ok {
			courses = append(courses, course)
		}
	}
	return courses, nil
}

func readXLSX(path string) ([]Course, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheets[0])
	}

	idx := columnIndex(rows[0])
	var courses []Course
	for i, row := range rows[1:] {
		if course, ok := parseRow(row, idx, i+2); ok {
			courses = append(courses, course)
		}
	}
	return courses, nil
}

// parseRow turns one dataset row into a Course. Rows missing an ID, title or
// category are dropped; a malformed prerequisite list degrades to empty so a
// single bad cell never aborts the load.
func parseRow(record []string, idx map[string]int, line int) (Course, bool) {
	field := func(name string) string {
		i, ok := idx[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	id, err := strconv.Atoi(field("course_id"))
	if err != nil || id <= 0 {
		slog.Warn("skipping row with invalid course_id", "line", line, "value", field("course_id"))
		return Course{}, false
	}

	title := field("course_title")
	category := field("category")
	if title == "" || category == "" {
		slog.Warn("skipping row with missing title or category", "line", line, "course_id", id)
		return Course{}, false
	}

	prereqs, err := ParsePrereqList(field("prerequisite_ids"))
	if err != nil {
		slog.Warn("malformed prerequisite list, using empty", "line", line, "course_id", id, "error", err)
		prereqs = nil
	}

	return Course{
		ID:              id,
		Title:           title,
		Category:        category,
		PrerequisiteIDs: prereqs,
		EstHours:        parseFloat(field("est_hours")),
		Difficulty:      field("course_difficulty"),
		Rating:          parseFloat(field("course_rating")),
		Organization:    field("course_organization"),
	}, true
}

// parseFloat degrades unparsable numerics to zero, mirroring the dataset's
// fillna behaviour.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParsePrereqList parses the dataset's textual prerequisite list, e.g.
// "[1001, 1002]", "[]" or "". Unknown IDs are kept; the path builder drops
// them at traversal time.
func ParsePrereqList(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("not a bracketed list: %q", s)
	}
	s = strings.TrimSpace(s[1 : len(s)-1])
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid prerequisite id %q", strings.TrimSpace(p))
		}
		ids = append(ids, id)
	}
	return ids, nil
}
