// Package stats derives dashboard aggregates from the course catalog.
package stats

import (
	"math"
	"sort"

	"github.com/edupath-ai/edupath/internal/catalog"
)

// RatedCourse is one entry of the top-rated listing.
type RatedCourse struct {
	Title  string  `json:"course_title"`
	Rating float64 `json:"course_rating"`
}

// Summary holds the catalog-wide analytics served by the dashboard.
type Summary struct {
	CoursesPerCategory     map[string]int     `json:"courses_per_category"`
	DifficultyDistribution map[string]int     `json:"difficulty_distribution"`
	TopRatedCourses        []RatedCourse      `json:"top_rated_courses"`
	AvgHoursByDifficulty   map[string]float64 `json:"avg_hours_by_difficulty"`
	TotalCourses           int                `json:"total_courses"`
	AvgRating              float64            `json:"avg_rating"`
	MostPopularCategory    string             `json:"most_popular_category"`
}

const topRatedCount = 10

// Compute derives the summary from the catalog. The catalog is immutable, so
// this is done once at startup and the result shared read-only.
func Compute(cat *catalog.Catalog) *Summary {
	courses := cat.OrderedByID()

	s := &Summary{
		CoursesPerCategory:     make(map[string]int),
		DifficultyDistribution: make(map[string]int),
		AvgHoursByDifficulty:   make(map[string]float64),
		TopRatedCourses:        []RatedCourse{},
		TotalCourses:           len(courses),
	}

	hoursByDifficulty := make(map[string]float64)
	var ratingSum float64
	for _, c := range courses {
		s.CoursesPerCategory[c.Category]++
		s.DifficultyDistribution[c.Difficulty]++
		hoursByDifficulty[c.Difficulty] += c.EstHours
		ratingSum += c.Rating
	}

	for difficulty, total := range hoursByDifficulty {
		avg := total / float64(s.DifficultyDistribution[difficulty])
		s.AvgHoursByDifficulty[difficulty] = math.Round(avg*10) / 10
	}

	if len(courses) > 0 {
		s.AvgRating = math.Round(ratingSum/float64(len(courses))*100) / 100
	}

	// Most popular category; ties broken by name for determinism.
	best := -1
	for cat, n := range s.CoursesPerCategory {
		if n > best || (n == best && cat < s.MostPopularCategory) {
			best = n
			s.MostPopularCategory = cat
		}
	}

	byRating := append([]catalog.Course(nil), courses...)
	sort.SliceStable(byRating, func(i, j int) bool {
		return byRating[i].Rating > byRating[j].Rating
	})
	for i, c := range byRating {
		if i == topRatedCount {
			break
		}
		s.TopRatedCourses = append(s.TopRatedCourses, RatedCourse{Title: c.Title, Rating: c.Rating})
	}

	return s
}
