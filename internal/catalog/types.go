package catalog

// Course represents one learning unit loaded from the dataset.
// Records are immutable after catalog construction.
type Course struct {
	ID              int     `json:"course_id"`
	Title           string  `json:"course_title"`
	Category        string  `json:"category"`
	PrerequisiteIDs []int   `json:"prerequisite_ids"`
	EstHours        float64 `json:"est_hours"`
	Difficulty      string  `json:"course_difficulty"`
	Rating          float64 `json:"course_rating"`
	Organization    string  `json:"course_organization"`
}

// Difficulty levels used across the dataset. Other literal values are
// tolerated and treated as Beginner-equivalent where a multiplier is needed.
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)
