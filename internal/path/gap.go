package path

import (
	"math"

	"github.com/edupath-ai/edupath/internal/catalog"
)

// defaultNextRecommended is how many missing courses the gap report proposes
// as immediate next steps.
const defaultNextRecommended = 3

// GapReport compares a learner's completed courses against the full
// prerequisite set of a target course.
type GapReport struct {
	Target          catalog.Course   `json:"target"`
	MissingCourses  []catalog.Course `json:"missing_courses"`
	CompletedIDs    []int            `json:"completed_courses"`
	ProgressPercent float64          `json:"progress_percent"`
	NextRecommended []catalog.Course `json:"next_recommended"`
	TotalMissing    int              `json:"total_missing"`
	TotalRequired   int              `json:"total_required"`
}

// AnalyzeGap builds the learning path for targetID and reports which
// prerequisites from it are still missing given the completed set. It
// returns false when the target is absent from the catalog.
//
// Missing courses are ordered by level then discovery order, so earlier-needed
// prerequisites come first. Progress is 100.0 for a target with no
// prerequisites.
func (b *Builder) AnalyzeGap(targetID int, completedIDs []int) (*GapReport, bool) {
	lp, ok := b.Build(targetID)
	if !ok {
		return nil, false
	}

	completed := make(map[int]struct{}, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = struct{}{}
	}

	report := &GapReport{
		Target:          lp.Target,
		MissingCourses:  []catalog.Course{},
		CompletedIDs:    []int{},
		NextRecommended: []catalog.Course{},
	}

	// Re-walk levels in order so the missing list respects prerequisite
	// ordering.
	for _, level := range lp.Levels {
		for _, course := range level {
			report.TotalRequired++
			if _, done := completed[course.ID]; done {
				report.CompletedIDs = append(report.CompletedIDs, course.ID)
			} else {
				report.MissingCourses = append(report.MissingCourses, course)
			}
		}
	}
	report.TotalMissing = len(report.MissingCourses)

	if report.TotalRequired == 0 {
		report.ProgressPercent = 100.0
	} else {
		pct := 100 * float64(len(report.CompletedIDs)) / float64(report.TotalRequired)
		report.ProgressPercent = math.Round(pct*10) / 10
	}

	n := defaultNextRecommended
	if n > len(report.MissingCourses) {
		n = len(report.MissingCourses)
	}
	report.NextRecommended = append(report.NextRecommended, report.MissingCourses[:n]...)

	return report, true
}
