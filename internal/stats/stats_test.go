package stats_test

import (
	"testing"

	"github.com/edupath-ai/edupath/internal/catalog"
	"github.com/edupath-ai/edupath/internal/stats"
)

func TestCompute(t *testing.T) {
	cat := catalog.New([]catalog.Course{
		{ID: 1, Title: "A", Category: "AI", Difficulty: "Beginner", EstHours: 10, Rating: 4.0},
		{ID: 2, Title: "B", Category: "AI", Difficulty: "Advanced", EstHours: 30, Rating: 5.0},
		{ID: 3, Title: "C", Category: "Programming", Difficulty: "Beginner", EstHours: 20, Rating: 3.0},
	})

	s := stats.Compute(cat)

	if s.TotalCourses != 3 {
		t.Errorf("TotalCourses = %d, want 3", s.TotalCourses)
	}
	if s.CoursesPerCategory["AI"] != 2 || s.CoursesPerCategory["Programming"] != 1 {
		t.Errorf("CoursesPerCategory = %v", s.CoursesPerCategory)
	}
	if s.MostPopularCategory != "AI" {
		t.Errorf("MostPopularCategory = %q, want AI", s.MostPopularCategory)
	}
	if s.DifficultyDistribution["Beginner"] != 2 {
		t.Errorf("DifficultyDistribution = %v", s.DifficultyDistribution)
	}
	if s.AvgHoursByDifficulty["Beginner"] != 15.0 {
		t.Errorf("AvgHoursByDifficulty[Beginner] = %v, want 15.0", s.AvgHoursByDifficulty["Beginner"])
	}
	if s.AvgRating != 4.0 {
		t.Errorf("AvgRating = %v, want 4.0", s.AvgRating)
	}
	if len(s.TopRatedCourses) != 3 || s.TopRatedCourses[0].Title != "B" {
		t.Errorf("TopRatedCourses = %v, want B first", s.TopRatedCourses)
	}
}

func TestCompute_EmptyCatalog(t *testing.T) {
	s := stats.Compute(catalog.New(nil))

	if s.TotalCourses != 0 {
		t.Errorf("TotalCourses = %d, want 0", s.TotalCourses)
	}
	if s.AvgRating != 0 {
		t.Errorf("AvgRating = %v, want 0", s.AvgRating)
	}
	if len(s.TopRatedCourses) != 0 {
		t.Errorf("TopRatedCourses = %v, want empty", s.TopRatedCourses)
	}
}
