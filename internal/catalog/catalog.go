// Package catalog holds the immutable in-process course table.
//
// A Catalog is built once at startup from the dataset and is read-only for
// the remainder of the process lifetime, so concurrent readers need no
// coordination.
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Catalog is an ID-keyed course table with a cached ID-ascending view.
type Catalog struct {
	byID    map[int]Course
	ordered []Course
}

// New builds a catalog from course records. Duplicate IDs keep the first
// occurrence. The ordered view is sorted ascending by ID and cached here so
// binary search never re-sorts.
func New(courses []Course) *Catalog {
	c := &Catalog{
		byID:    make(map[int]Course, len(courses)),
		ordered: make([]Course, 0, len(courses)),
	}
	for _, course := range courses {
		if _, exists := c.byID[course.ID]; exists {
			continue
		}
		c.byID[course.ID] = course
		c.ordered = append(c.ordered, course)
	}
	sort.Slice(c.ordered, func(i, j int) bool {
		return c.ordered[i].ID < c.ordered[j].ID
	})
	return c
}

// Lookup returns the course with the given ID.
func (c *Catalog) Lookup(id int) (Course, bool) {
	course, ok := c.byID[id]
	return course, ok
}

// OrderedByID returns all courses sorted ascending by ID. Callers must not
// mutate the returned slice.
func (c *Catalog) OrderedByID() []Course {
	return c.ordered
}

// Len returns the number of courses in the catalog.
func (c *Catalog) Len() int {
	return len(c.ordered)
}

// BinarySearch finds a course by ID in O(log n) over the ordered view.
func (c *Catalog) BinarySearch(id int) (Course, bool) {
	lo, hi := 0, len(c.ordered)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		switch midID := c.ordered[mid].ID; {
		case midID == id:
			return c.ordered[mid], true
		case midID < id:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return Course{}, false
}

// SearchByTitle returns courses whose title contains the keyword,
// case-folded, in ID order.
func (c *Catalog) SearchByTitle(keyword string) []Course {
	fold := cases.Fold()
	keyword = fold.String(strings.TrimSpace(keyword))
	if keyword == "" {
		return nil
	}
	var matches []Course
	for _, course := range c.ordered {
		if strings.Contains(fold.String(course.Title), keyword) {
			matches = append(matches, course)
		}
	}
	return matches
}

// FilterByCategory returns courses whose category contains the keyword,
// case-folded, in ID order.
func (c *Catalog) FilterByCategory(keyword string) []Course {
	fold := cases.Fold()
	keyword = fold.String(strings.TrimSpace(keyword))
	if keyword == "" {
		return nil
	}
	var matches []Course
	for _, course := range c.ordered {
		if strings.Contains(fold.String(course.Category), keyword) {
			matches = append(matches, course)
		}
	}
	return matches
}

// Fold lower-cases s using Unicode case folding. Shared by the recommender
// and chat tokenizers so all text matching agrees on one folding.
func Fold(s string) string {
	return cases.Fold().String(s)
}
