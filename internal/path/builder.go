// Package path generates leveled prerequisite learning paths over the course
// catalog, with cycle detection and skill-gap analysis.
package path

import (
	"github.com/edupath-ai/edupath/internal/catalog"
)

// DefaultMaxDepth bounds the level-order expansion. Exceeding it is a quiet
// stop, not an error.
const DefaultMaxDepth = 20

// LearningPath is the leveled prerequisite expansion for one target course.
// Level 0 holds the target's direct prerequisites, level 1 their
// prerequisites not already placed, and so on. A course appears in at most
// one level, the earliest at which it is reachable.
type LearningPath struct {
	Target        catalog.Course     `json:"target"`
	Levels        [][]catalog.Course `json:"levels"`
	FlatPath      []catalog.Course   `json:"flat_path"`
	TotalHours    float64            `json:"total_hours"`
	CycleDetected bool               `json:"cycle_detected"`
}

// BuilderConfig holds Builder dependencies and tuning.
type BuilderConfig struct {
	Catalog  *catalog.Catalog
	MaxDepth int // levels before the traversal is cut off (default 20)
}

// Builder computes learning paths against an immutable catalog. Builds are
// pure and side-effect free, so a Builder is safe for concurrent use.
type Builder struct {
	catalog  *catalog.Catalog
	maxDepth int
}

// NewBuilder creates a path builder.
func NewBuilder(cfg BuilderConfig) *Builder {
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Builder{
		catalog:  cfg.Catalog,
		maxDepth: maxDepth,
	}
}

// Build expands the prerequisite relation of targetID level by level.
// It returns false when targetID is not in the catalog; a target with no
// prerequisites yields a path with empty levels and zero hours.
//
// Cycle semantics: cycle_detected is set only when some placed course (or the
// target) transitively requires itself. A course reachable via two
// independent chains (a diamond dependency) keeps its earliest placement and
// sets no flag. Prerequisite IDs absent from the catalog are dropped, and
// courses beyond the depth cap are neither placed nor examined.
func (b *Builder) Build(targetID int) (*LearningPath, bool) {
	target, ok := b.catalog.Lookup(targetID)
	if !ok {
		return nil, false
	}

	lp := &LearningPath{
		Target: target,
		Levels: [][]catalog.Course{},
	}

	// placed tracks IDs already assigned a level; the target is seeded so it
	// can never be placed as its own prerequisite.
	placed := map[int]struct{}{targetID: {}}
	queued := map[int]struct{}{}

	frontier := enqueuePrereqs(target, placed, queued, nil)

	for depth := 0; len(frontier) > 0 && depth < b.maxDepth; depth++ {
		var level []catalog.Course
		var next []int

		for _, id := range frontier {
			delete(queued, id)
			course, ok := b.catalog.Lookup(id)
			if !ok {
				// Unknown prerequisite ID: tolerated, treated as absent.
				continue
			}
			placed[id] = struct{}{}
			level = append(level, course)
		}

		for _, course := range level {
			next = enqueuePrereqs(course, placed, queued, next)
		}

		if len(level) > 0 {
			lp.Levels = append(lp.Levels, level)
		}
		frontier = next
	}

	for _, level := range lp.Levels {
		for _, course := range level {
			lp.FlatPath = append(lp.FlatPath, course)
			lp.TotalHours += course.EstHours
		}
	}
	if lp.FlatPath == nil {
		lp.FlatPath = []catalog.Course{}
	}

	lp.CycleDetected = b.detectCycle(placed)
	return lp, true
}

// enqueuePrereqs queues the prerequisites of course onto the next frontier,
// preserving first-discovery order. IDs already placed or queued are merged
// silently; placement semantics do not depend on how a course is reached.
func enqueuePrereqs(course catalog.Course, placed, queued map[int]struct{}, next []int) []int {
	for _, pid := range course.PrerequisiteIDs {
		if _, done := placed[pid]; done {
			continue
		}
		if _, pending := queued[pid]; pending {
			continue
		}
		queued[pid] = struct{}{}
		next = append(next, pid)
	}
	return next
}

// detectCycle reports whether the prerequisite subgraph induced on the placed
// set (target included) contains a cycle. Running it over the whole set,
// rather than flagging revisits during the level walk, keeps the verdict
// independent of discovery order: a back-edge into a course placed earlier
// through a shorter side branch is still a cycle. Edges leaving the set
// (unknown IDs, courses beyond the depth cap) are ignored.
func (b *Builder) detectCycle(placed map[int]struct{}) bool {
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[int]int, len(placed))

	var visit func(id int) bool
	visit = func(id int) bool {
		state[id] = visiting
		course, _ := b.catalog.Lookup(id)
		for _, pid := range course.PrerequisiteIDs {
			if _, in := placed[pid]; !in {
				continue
			}
			switch state[pid] {
			case visiting:
				return true
			case done:
				continue
			default:
				if visit(pid) {
					return true
				}
			}
		}
		state[id] = done
		return false
	}

	for id := range placed {
		if state[id] == 0 && visit(id) {
			return true
		}
	}
	return false
}
