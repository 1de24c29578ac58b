package progress_test

import (
	"testing"

	"github.com/edupath-ai/edupath/internal/catalog"
	"github.com/edupath-ai/edupath/internal/progress"
)

func TestCourseXP(t *testing.T) {
	tests := []struct {
		difficulty string
		hours      float64
		want       int
	}{
		{"Beginner", 24, 24},
		{"Intermediate", 24, 36},
		{"Advanced", 24, 48},
		{"Expert", 24, 24}, // unrecognized: default multiplier
		{"", 10, 10},
		{"Intermediate", 5, 8}, // 7.5 rounds up
	}

	for _, tt := range tests {
		course := catalog.Course{Difficulty: tt.difficulty, EstHours: tt.hours}
		if got := progress.CourseXP(course); got != tt.want {
			t.Errorf("CourseXP(%s, %.0fh) = %d, want %d", tt.difficulty, tt.hours, got, tt.want)
		}
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{250, 3},
		{-5, 1},
	}

	for _, tt := range tests {
		if got := progress.Level(tt.xp); got != tt.want {
			t.Errorf("Level(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestBadges(t *testing.T) {
	none := progress.Badges(progress.Record{})
	if len(none) != 0 {
		t.Errorf("Badges(empty) = %v, want none", none)
	}

	one := progress.Badges(progress.Record{CompletedIDs: []int{1001}, XP: 24})
	if len(one) != 1 || one[0].ID != "first_steps" {
		t.Errorf("Badges(1 course) = %v, want [first_steps]", one)
	}

	many := progress.Badges(progress.Record{
		CompletedIDs: []int{1, 2, 3, 4, 5},
		XP:           600,
	})
	ids := make(map[string]bool)
	for _, b := range many {
		ids[b.ID] = true
	}
	for _, want := range []string{"first_steps", "pathfinder", "dedicated"} {
		if !ids[want] {
			t.Errorf("Badges() missing %q, got %v", want, many)
		}
	}
	if ids["scholar"] || ids["master"] {
		t.Errorf("Badges() unlocked too much: %v", many)
	}
}

func TestBuildProfile(t *testing.T) {
	profile := progress.BuildProfile(progress.Record{
		UserID:       "alice",
		CompletedIDs: []int{1001},
		XP:           150,
	})

	if profile.Level != 2 {
		t.Errorf("Level = %d, want 2", profile.Level)
	}
	if len(profile.Badges) != 1 {
		t.Errorf("Badges = %v, want [first_steps]", profile.Badges)
	}
}
