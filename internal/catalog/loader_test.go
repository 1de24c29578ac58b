package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/edupath-ai/edupath/internal/catalog"
)

const sampleCSV = `course_id,course_title,category,prerequisite_ids,est_hours,course_difficulty,course_rating,course_organization
1001,Python for Everybody,Programming,[],24,Beginner,4.8,UMich
1002,Intro to SQL,Database,[],18,Beginner,4.2,Stanford
1003,Data Structures,Computer Sci,"[1001, 1002]",32,Intermediate,4.5,MIT
1003,Duplicate Row,Computer Sci,[],1,Beginner,1.0,Nowhere
1004,Broken Prereqs,AI,"not a list",20,Advanced,4.0,OpenU
1005,,Programming,[],10,Beginner,3.9,X
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "courses.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_CSV(t *testing.T) {
	cat, err := catalog.Load(writeCSV(t, sampleCSV))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// 1005 has no title, the second 1003 is a duplicate: both dropped.
	if cat.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", cat.Len())
	}

	c, ok := cat.Lookup(1003)
	if !ok {
		t.Fatal("Lookup(1003) not found")
	}
	if c.Title != "Data Structures" {
		t.Errorf("Title = %q, want the first occurrence", c.Title)
	}
	if len(c.PrerequisiteIDs) != 2 || c.PrerequisiteIDs[0] != 1001 || c.PrerequisiteIDs[1] != 1002 {
		t.Errorf("PrerequisiteIDs = %v, want [1001 1002]", c.PrerequisiteIDs)
	}
	if c.EstHours != 32 {
		t.Errorf("EstHours = %v, want 32", c.EstHours)
	}
}

func TestLoad_MalformedPrereqsDegradeToEmpty(t *testing.T) {
	cat, err := catalog.Load(writeCSV(t, sampleCSV))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	c, ok := cat.Lookup(1004)
	if !ok {
		t.Fatal("Lookup(1004) not found: a bad prereq cell must not drop the row")
	}
	if len(c.PrerequisiteIDs) != 0 {
		t.Errorf("PrerequisiteIDs = %v, want empty", c.PrerequisiteIDs)
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	if _, err := catalog.Load("courses.parquet"); err == nil {
		t.Error("Load() should reject unsupported formats")
	}
}

func TestLoad_XLSX(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]any{
		{"course_id", "course_title", "category", "prerequisite_ids", "est_hours", "course_difficulty", "course_rating", "course_organization"},
		{"1001", "Python for Everybody", "Programming", "[]", "24", "Beginner", "4.8", "UMich"},
		{"1003", "Data Structures", "Computer Sci", "[1001]", "32", "Intermediate", "4.5", "MIT"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "courses.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	cat, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cat.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cat.Len())
	}
	c, ok := cat.Lookup(1003)
	if !ok {
		t.Fatal("Lookup(1003) not found")
	}
	if len(c.PrerequisiteIDs) != 1 || c.PrerequisiteIDs[0] != 1001 {
		t.Errorf("PrerequisiteIDs = %v, want [1001]", c.PrerequisiteIDs)
	}
}

func TestParsePrereqList(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"", nil, false},
		{"[]", nil, false},
		{"[1001]", []int{1001}, false},
		{"[1001, 1002]", []int{1001, 1002}, false},
		{"[ 1001 ,1002 ]", []int{1001, 1002}, false},
		{"1001, 1002", nil, true},
		{"[a, b]", nil, true},
		{"not a list", nil, true},
	}

	for _, tt := range tests {
		got, err := catalog.ParsePrereqList(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePrereqList(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("ParsePrereqList(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParsePrereqList(%q)[%d] = %d, want %d", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
