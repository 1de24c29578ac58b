package progress

import (
	"math"

	"github.com/edupath-ai/edupath/internal/catalog"
)

// xpPerLevel is how much XP separates consecutive learner levels.
const xpPerLevel = 100

// Badge is a named achievement with its unlock rule.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// badgeThresholds keys badges by completed-course count and accumulated XP.
var badgeThresholds = []struct {
	badge   Badge
	courses int
	xp      int
}{
	{Badge{ID: "first_steps", Name: "First Steps", Description: "Complete your first course"}, 1, 0},
	{Badge{ID: "pathfinder", Name: "Pathfinder", Description: "Complete 5 courses"}, 5, 0},
	{Badge{ID: "scholar", Name: "Scholar", Description: "Complete 10 courses"}, 10, 0},
	{Badge{ID: "dedicated", Name: "Dedicated", Description: "Earn 500 XP"}, 0, 500},
	{Badge{ID: "master", Name: "Master", Description: "Earn 1000 XP"}, 0, 1000},
}

// CourseXP computes the XP a course awards on completion: estimated hours
// scaled by a difficulty multiplier. Unrecognized difficulty values get the
// default multiplier.
func CourseXP(course catalog.Course) int {
	multiplier := 1.0
	switch course.Difficulty {
	case catalog.DifficultyIntermediate:
		multiplier = 1.5
	case catalog.DifficultyAdvanced:
		multiplier = 2.0
	}
	return int(math.Round(course.EstHours * multiplier))
}

// Level converts accumulated XP to a learner level, starting at 1.
func Level(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return 1 + xp/xpPerLevel
}

// Badges returns the badges unlocked by a record, in threshold order.
func Badges(rec Record) []Badge {
	completed := len(rec.CompletedIDs)
	badges := []Badge{}
	for _, t := range badgeThresholds {
		if t.courses > 0 && completed < t.courses {
			continue
		}
		if t.xp > 0 && rec.XP < t.xp {
			continue
		}
		badges = append(badges, t.badge)
	}
	return badges
}

// Profile is the gamified view of a learner's record served to clients.
type Profile struct {
	Record
	Level  int     `json:"level"`
	Badges []Badge `json:"badges"`
}

// BuildProfile derives level and badges from a record.
func BuildProfile(rec Record) Profile {
	return Profile{
		Record: rec,
		Level:  Level(rec.XP),
		Badges: Badges(rec),
	}
}
