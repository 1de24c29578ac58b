package chat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/edupath-ai/edupath/internal/catalog"
	"github.com/edupath-ai/edupath/internal/path"
	"github.com/edupath-ai/edupath/internal/recommend"
)

// Response is one assistant reply: a text message, the courses it refers to,
// and the intent that produced it.
type Response struct {
	Reply   string           `json:"reply"`
	Courses []catalog.Course `json:"courses"`
	Intent  Intent           `json:"intent"`
}

// AssistantConfig holds the assistant's collaborators.
type AssistantConfig struct {
	Catalog     *catalog.Catalog
	Recommender *recommend.Engine
	Careers     *recommend.Careers
	Builder     *path.Builder
}

// Assistant answers chat messages with rule-based handlers. Replies are pure
// functions of the message, the completed set and the immutable catalog, so
// an Assistant is safe for concurrent use.
type Assistant struct {
	catalog     *catalog.Catalog
	recommender *recommend.Engine
	careers     *recommend.Careers
	builder     *path.Builder
}

// NewAssistant creates the assistant.
func NewAssistant(cfg AssistantConfig) *Assistant {
	return &Assistant{
		catalog:     cfg.Catalog,
		recommender: cfg.Recommender,
		careers:     cfg.Careers,
		builder:     cfg.Builder,
	}
}

// Reply dispatches a message to its intent handler.
func (a *Assistant) Reply(message string, completedIDs []int) Response {
	switch intent := DetectIntent(message); intent {
	case IntentRecommendNext:
		return a.recommendNext(completedIDs)
	case IntentCareerPath:
		return a.careerPath(message)
	case IntentSkillGap:
		return a.skillGap(message)
	case IntentTimeEstimate:
		return a.timeEstimate(message)
	case IntentFindCourse:
		return a.findCourse(message)
	default:
		return a.fallback()
	}
}

func (a *Assistant) recommendNext(completedIDs []int) Response {
	if len(completedIDs) == 0 {
		return Response{
			Reply:   "You haven't marked any courses as completed yet! Here are some top-rated courses to start with:",
			Courses: a.recommender.TopRated(5),
			Intent:  IntentRecommendNext,
		}
	}

	completed := make(map[int]struct{}, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = struct{}{}
	}

	lastID := completedIDs[len(completedIDs)-1]
	var courses []catalog.Course
	for _, c := range a.recommender.Similar(lastID, 10) {
		if _, done := completed[c.ID]; done {
			continue
		}
		courses = append(courses, c)
		if len(courses) == 5 {
			break
		}
	}
	return Response{
		Reply:   "Based on your last completed course, here are great next steps:",
		Courses: courses,
		Intent:  IntentRecommendNext,
	}
}

func (a *Assistant) careerPath(message string) Response {
	track, ok := a.careers.MatchGoal(message)
	if !ok {
		return Response{
			Reply:  fmt.Sprintf("Which career path are you aiming for? Options: %v.", a.careers.Goals()),
			Intent: IntentCareerPath,
		}
	}

	var courses []catalog.Course
	for i, cat := range track.Categories {
		if i == 2 {
			break
		}
		courses = append(courses, a.recommender.ByFilters(recommend.Filters{Category: cat, TopK: 2})...)
	}
	if len(courses) > 5 {
		courses = courses[:5]
	}
	return Response{
		Reply:   fmt.Sprintf("Great choice! Here's your %s learning roadmap. Start with these key courses:", track.Goal),
		Courses: courses,
		Intent:  IntentCareerPath,
	}
}

func (a *Assistant) skillGap(message string) Response {
	if id, ok := extractCourseID(message); ok {
		if lp, found := a.builder.Build(id); found {
			prereqs := lp.FlatPath
			if len(prereqs) > 5 {
				prereqs = prereqs[:5]
			}
			return Response{
				Reply:   fmt.Sprintf("To take %q, you need these prerequisites:", lp.Target.Title),
				Courses: prereqs,
				Intent:  IntentSkillGap,
			}
		}
	}
	return Response{
		Reply:  `To check skill gaps, use the skill-gap analyzer, or mention a course ID like "What am I missing for course 1010?"`,
		Intent: IntentSkillGap,
	}
}

func (a *Assistant) timeEstimate(message string) Response {
	if id, ok := extractCourseID(message); ok {
		if course, found := a.catalog.BinarySearch(id); found {
			return Response{
				Reply: fmt.Sprintf("%q takes approximately %.0f hours to complete (%s level).",
					course.Title, course.EstHours, course.Difficulty),
				Courses: []catalog.Course{course},
				Intent:  IntentTimeEstimate,
			}
		}
	}

	// No usable course ID: try a category keyword, then fall back to the
	// catalog-wide average.
	folded := catalog.Fold(message)
	for _, cat := range []string{"ai", "programming", "data science", "web dev", "cloud", "cybersecurity"} {
		if !strings.Contains(folded, cat) {
			continue
		}
		matching := a.catalog.FilterByCategory(cat)
		if len(matching) == 0 {
			continue
		}
		var total float64
		for _, c := range matching {
			total += c.EstHours
		}
		return Response{
			Reply: fmt.Sprintf("The average time to complete a %s course is ~%.0f hours.",
				cat, total/float64(len(matching))),
			Intent: IntentTimeEstimate,
		}
	}

	courses := a.catalog.OrderedByID()
	if len(courses) == 0 {
		return a.fallback()
	}
	var total float64
	for _, c := range courses {
		total += c.EstHours
	}
	return Response{
		Reply: fmt.Sprintf("On average, courses take about %.0f hours. Use the roadmap endpoint for full path time estimates.",
			total/float64(len(courses))),
		Intent: IntentTimeEstimate,
	}
}

func (a *Assistant) findCourse(message string) Response {
	topic := extractTopic(message)
	if topic == "" {
		return Response{
			Reply:  `What topic would you like to search for? E.g. "Show me courses on machine learning"`,
			Intent: IntentFindCourse,
		}
	}

	results := a.catalog.SearchByTitle(topic)
	if len(results) == 0 {
		results = a.catalog.FilterByCategory(topic)
	}
	results = sortByRating(results)
	if len(results) > 5 {
		results = results[:5]
	}

	if len(results) == 0 {
		return Response{
			Reply:  fmt.Sprintf("No courses found for %q. Try a broader keyword.", topic),
			Intent: IntentFindCourse,
		}
	}
	return Response{
		Reply:   fmt.Sprintf("Found %d courses matching %q:", len(results), topic),
		Courses: results,
		Intent:  IntentFindCourse,
	}
}

func (a *Assistant) fallback() Response {
	return Response{
		Reply: "I'm the EduPath assistant! Here are things I can help with:\n" +
			`- Recommend next courses: "What should I learn after Python?"` + "\n" +
			`- Career roadmap: "I want to become a Data Scientist"` + "\n" +
			`- Skill gap: "What am I missing for course 1010?"` + "\n" +
			`- Time estimate: "How long is course 1005?"` + "\n" +
			`- Find courses: "Show me courses on AI"`,
		Intent: IntentFallback,
	}
}

func sortByRating(courses []catalog.Course) []catalog.Course {
	out := append([]catalog.Course(nil), courses...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})
	return out
}
