// Package recommend provides content-based course recommendations: TF-IDF
// cosine similarity over course text, filter-based ranking, and career-track
// roadmaps.
package recommend

import (
	"math"
	"sort"
	"strings"

	"github.com/edupath-ai/edupath/internal/catalog"
)

// stopWords are excluded from the TF-IDF vocabulary.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "in": {}, "into": {}, "is": {}, "it": {},
	"of": {}, "on": {}, "or": {}, "the": {}, "to": {}, "with": {},
}

// Engine precomputes normalized TF-IDF vectors for every course at startup.
// The catalog is immutable, so the engine is read-only after construction
// and safe for concurrent use.
type Engine struct {
	catalog *catalog.Catalog
	vectors []map[string]float64 // unit-length, aligned with OrderedByID
	index   map[int]int          // course ID -> position in vectors
}

// NewEngine builds the recommendation engine from the catalog. The text
// feature for each course is its title, category and difficulty, tokenized
// into fold-cased unigrams and bigrams.
func NewEngine(cat *catalog.Catalog) *Engine {
	courses := cat.OrderedByID()
	e := &Engine{
		catalog: cat,
		vectors: make([]map[string]float64, len(courses)),
		index:   make(map[int]int, len(courses)),
	}

	docs := make([][]string, len(courses))
	df := make(map[string]int)
	for i, c := range courses {
		e.index[c.ID] = i
		terms := tokenize(c.Title + " " + c.Category + " " + c.Difficulty)
		docs[i] = terms
		for _, term := range uniqueTerms(terms) {
			df[term]++
		}
	}

	n := float64(len(courses))
	for i, terms := range docs {
		vec := make(map[string]float64)
		for _, term := range terms {
			vec[term]++
		}
		var norm float64
		for term, tf := range vec {
			// Smoothed IDF keeps terms present in every document non-zero.
			w := tf * (math.Log(n/float64(1+df[term])) + 1)
			vec[term] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for term := range vec {
				vec[term] /= norm
			}
		}
		e.vectors[i] = vec
	}
	return e
}

// Similar returns the topK courses most similar to courseID by cosine
// similarity, excluding the course itself. Unknown IDs yield an empty slice.
func (e *Engine) Similar(courseID, topK int) []catalog.Course {
	idx, ok := e.index[courseID]
	if !ok || topK <= 0 {
		return nil
	}

	courses := e.catalog.OrderedByID()
	type scored struct {
		pos   int
		score float64
	}
	scores := make([]scored, 0, len(courses)-1)
	for i := range courses {
		if i == idx {
			continue
		}
		scores = append(scores, scored{pos: i, score: cosine(e.vectors[idx], e.vectors[i])})
	}
	sort.SliceStable(scores, func(a, b int) bool {
		return scores[a].score > scores[b].score
	})

	if topK > len(scores) {
		topK = len(scores)
	}
	result := make([]catalog.Course, 0, topK)
	for _, s := range scores[:topK] {
		result = append(result, courses[s.pos])
	}
	return result
}

// Filters narrows the candidate set for ByFilters. Zero values mean "any".
type Filters struct {
	Category   string
	Difficulty string
	MaxHours   float64
	MinRating  float64
	TopK       int
}

// ByFilters returns courses matching the filters, sorted by rating
// descending. TopK defaults to 5.
func (e *Engine) ByFilters(f Filters) []catalog.Course {
	topK := f.TopK
	if topK <= 0 {
		topK = 5
	}
	category := catalog.Fold(f.Category)
	difficulty := catalog.Fold(f.Difficulty)

	var matches []catalog.Course
	for _, c := range e.catalog.OrderedByID() {
		if category != "" && !strings.Contains(catalog.Fold(c.Category), category) {
			continue
		}
		if difficulty != "" && !strings.Contains(catalog.Fold(c.Difficulty), difficulty) {
			continue
		}
		if f.MaxHours > 0 && c.EstHours > f.MaxHours {
			continue
		}
		if f.MinRating > 0 && c.Rating < f.MinRating {
			continue
		}
		matches = append(matches, c)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Rating > matches[j].Rating
	})
	if topK > len(matches) {
		topK = len(matches)
	}
	return matches[:topK]
}

// TopRated returns the topK highest-rated courses in the catalog.
func (e *Engine) TopRated(topK int) []catalog.Course {
	return e.ByFilters(Filters{TopK: topK})
}

func cosine(a, b map[string]float64) float64 {
	// Vectors are unit length, so the dot product is the cosine.
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for term, wa := range a {
		dot += wa * b[term]
	}
	return dot
}

// tokenize splits text into fold-cased alphanumeric unigrams plus adjacent
// bigrams, dropping stop words.
func tokenize(text string) []string {
	words := strings.FieldsFunc(catalog.Fold(text), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})

	unigrams := make([]string, 0, len(words))
	for _, w := range words {
		if _, stop := stopWords[w]; stop {
			continue
		}
		unigrams = append(unigrams, w)
	}

	terms := make([]string, 0, len(unigrams)*2)
	terms = append(terms, unigrams...)
	for i := 1; i < len(unigrams); i++ {
		terms = append(terms, unigrams[i-1]+" "+unigrams[i])
	}
	return terms
}

func uniqueTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := terms[:0:0]
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
