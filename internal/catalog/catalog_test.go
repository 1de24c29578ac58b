package catalog_test

import (
	"testing"

	"github.com/edupath-ai/edupath/internal/catalog"
)

func sampleCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Course{
		{ID: 1005, Title: "Machine Learning Basics", Category: "AI", Rating: 4.7},
		{ID: 1001, Title: "Python for Everybody", Category: "Programming", Rating: 4.8},
		{ID: 1003, Title: "Data Structures", Category: "Computer Sci", Rating: 4.5},
		{ID: 1002, Title: "Intro to SQL", Category: "Database", Rating: 4.2},
	})
}

func TestCatalog_Lookup(t *testing.T) {
	cat := sampleCatalog()

	course, ok := cat.Lookup(1003)
	if !ok {
		t.Fatal("Lookup(1003) not found")
	}
	if course.Title != "Data Structures" {
		t.Errorf("Title = %q, want Data Structures", course.Title)
	}

	if _, ok := cat.Lookup(9999); ok {
		t.Error("Lookup(9999) should not be found")
	}
}

func TestCatalog_OrderedByID(t *testing.T) {
	cat := sampleCatalog()

	ordered := cat.OrderedByID()
	if len(ordered) != 4 {
		t.Fatalf("len = %d, want 4", len(ordered))
	}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].ID >= ordered[i].ID {
			t.Errorf("ordered[%d].ID = %d >= ordered[%d].ID = %d",
				i-1, ordered[i-1].ID, i, ordered[i].ID)
		}
	}
}

func TestCatalog_DuplicateIDsKeepFirst(t *testing.T) {
	cat := catalog.New([]catalog.Course{
		{ID: 1001, Title: "First", Category: "A"},
		{ID: 1001, Title: "Second", Category: "B"},
	})

	if cat.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", cat.Len())
	}
	course, _ := cat.Lookup(1001)
	if course.Title != "First" {
		t.Errorf("Title = %q, want First (first occurrence wins)", course.Title)
	}
}

func TestCatalog_BinarySearch(t *testing.T) {
	cat := sampleCatalog()

	tests := []struct {
		id        int
		wantFound bool
	}{
		{1001, true},
		{1002, true},
		{1005, true},
		{1000, false},
		{9999, false},
	}

	for _, tt := range tests {
		course, found := cat.BinarySearch(tt.id)
		if found != tt.wantFound {
			t.Errorf("BinarySearch(%d) found = %v, want %v", tt.id, found, tt.wantFound)
		}
		if found && course.ID != tt.id {
			t.Errorf("BinarySearch(%d) returned course %d", tt.id, course.ID)
		}
	}
}

func TestCatalog_BinarySearchEmpty(t *testing.T) {
	cat := catalog.New(nil)

	if _, found := cat.BinarySearch(1); found {
		t.Error("BinarySearch on empty catalog should not find anything")
	}
}

func TestCatalog_SearchByTitle(t *testing.T) {
	cat := sampleCatalog()

	tests := []struct {
		keyword string
		wantIDs []int
	}{
		{"python", []int{1001}},
		{"SQL", []int{1002}},
		{"data", []int{1003}},
		{"nomatch", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got := cat.SearchByTitle(tt.keyword)
		if len(got) != len(tt.wantIDs) {
			t.Errorf("SearchByTitle(%q) returned %d courses, want %d", tt.keyword, len(got), len(tt.wantIDs))
			continue
		}
		for i, c := range got {
			if c.ID != tt.wantIDs[i] {
				t.Errorf("SearchByTitle(%q)[%d] = %d, want %d", tt.keyword, i, c.ID, tt.wantIDs[i])
			}
		}
	}
}

func TestCatalog_FilterByCategory(t *testing.T) {
	cat := sampleCatalog()

	got := cat.FilterByCategory("ai")
	if len(got) != 1 || got[0].ID != 1005 {
		t.Errorf("FilterByCategory(ai) = %v, want [1005]", got)
	}
}
