// Package chat implements the rule-based study assistant: keyword intent
// detection over a small fixed intent set, with handlers composed from the
// catalog, recommender and path builder.
package chat

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/edupath-ai/edupath/internal/catalog"
)

// Intent identifies what a chat message is asking for.
type Intent string

const (
	IntentRecommendNext Intent = "recommend_next"
	IntentCareerPath    Intent = "career_path"
	IntentSkillGap      Intent = "skill_gap"
	IntentTimeEstimate  Intent = "time_estimate"
	IntentFindCourse    Intent = "find_course"
	IntentFallback      Intent = "fallback"
)

// intentKeywords maps each intent to its trigger phrases. Order matters:
// earlier intents win when several match.
var intentKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{IntentRecommendNext, []string{
		"what should i learn", "next course", "after python", "what's next",
		"what next", "recommend", "suggest",
	}},
	{IntentCareerPath, []string{
		"become", "career", "want to be", "path to", "how to become",
	}},
	{IntentSkillGap, []string{
		"missing", "gap", "what am i missing", "need to learn", "prerequisite",
	}},
	{IntentTimeEstimate, []string{
		"how long", "hours", "time", "duration", "how many hours",
	}},
	{IntentFindCourse, []string{
		"find", "search", "show me courses", "courses about", "courses on",
	}},
}

// DetectIntent classifies a message by keyword matching.
func DetectIntent(message string) Intent {
	msg := catalog.Fold(message)
	for _, entry := range intentKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(msg, kw) {
				return entry.intent
			}
		}
	}
	return IntentFallback
}

var courseIDPattern = regexp.MustCompile(`\b\d{3,6}\b`)

// extractCourseID pulls the first course-ID-looking number out of a message.
func extractCourseID(message string) (int, bool) {
	m := courseIDPattern.FindString(message)
	if m == "" {
		return 0, false
	}
	id, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return id, true
}

var topicPrefixPattern = regexp.MustCompile(`.*(find|search|show me courses|courses about|courses on)\s*`)

// extractTopic strips search-phrase prefixes to leave the topic keyword.
func extractTopic(message string) string {
	return strings.TrimSpace(topicPrefixPattern.ReplaceAllString(catalog.Fold(message), ""))
}
