package recommend

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/edupath-ai/edupath/internal/catalog"
)

// CareerTrack maps a career goal to the course categories that build toward
// it, in study order.
type CareerTrack struct {
	Goal       string   `yaml:"goal"`
	Keywords   []string `yaml:"keywords"`
	Categories []string `yaml:"categories"`
}

// defaultTracks mirror the career roadmaps shipped with the original dataset.
var defaultTracks = []CareerTrack{
	{
		Goal:       "Data Scientist",
		Keywords:   []string{"data scientist"},
		Categories: []string{"Data Science", "AI", "Programming", "Mathematics"},
	},
	{
		Goal:       "Full Stack Developer",
		Keywords:   []string{"full stack", "fullstack"},
		Categories: []string{"Web Dev", "Programming", "Database", "Cloud"},
	},
	{
		Goal:       "AI Engineer",
		Keywords:   []string{"ai engineer"},
		Categories: []string{"AI", "Programming", "Mathematics", "Computer Sci"},
	},
	{
		Goal:       "Cloud Engineer",
		Keywords:   []string{"cloud engineer"},
		Categories: []string{"Cloud", "DevOps", "Networking", "Programming"},
	},
	{
		Goal:       "Cybersecurity Analyst",
		Keywords:   []string{"cybersecurity", "security analyst"},
		Categories: []string{"Cybersecurity", "Networking", "Programming"},
	},
}

// LoadCareerTracks reads career-track definitions from a YAML file. An empty
// path returns the built-in defaults.
func LoadCareerTracks(path string) ([]CareerTrack, error) {
	if path == "" {
		return defaultTracks, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading career tracks: %w", err)
	}

	var file struct {
		Tracks []CareerTrack `yaml:"tracks"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing career tracks: %w", err)
	}
	if len(file.Tracks) == 0 {
		return nil, fmt.Errorf("career tracks file %s defines no tracks", path)
	}

	slog.Info("career tracks loaded", "path", path, "tracks", len(file.Tracks))
	return file.Tracks, nil
}

// Careers resolves career goals to per-category course roadmaps.
type Careers struct {
	engine *Engine
	tracks []CareerTrack
}

// NewCareers creates a career roadmap resolver.
func NewCareers(engine *Engine, tracks []CareerTrack) *Careers {
	if len(tracks) == 0 {
		tracks = defaultTracks
	}
	return &Careers{engine: engine, tracks: tracks}
}

// Goals returns the configured career goal names in stable order.
func (c *Careers) Goals() []string {
	goals := make([]string, len(c.tracks))
	for i, tr := range c.tracks {
		goals[i] = tr.Goal
	}
	sort.Strings(goals)
	return goals
}

// Track finds the track for a goal by exact name match.
func (c *Careers) Track(goal string) (CareerTrack, bool) {
	for _, tr := range c.tracks {
		if tr.Goal == goal {
			return tr, true
		}
	}
	return CareerTrack{}, false
}

// MatchGoal scans free text for a track's keyword and returns the matching
// track.
func (c *Careers) MatchGoal(text string) (CareerTrack, bool) {
	folded := catalog.Fold(text)
	for _, tr := range c.tracks {
		for _, kw := range tr.Keywords {
			if strings.Contains(folded, catalog.Fold(kw)) {
				return tr, true
			}
		}
	}
	return CareerTrack{}, false
}

// Roadmap returns the top-rated courses per category for the goal, in the
// track's category order. perCategory defaults to 5.
func (c *Careers) Roadmap(goal string, perCategory int) (map[string][]catalog.Course, bool) {
	track, ok := c.Track(goal)
	if !ok {
		return nil, false
	}
	if perCategory <= 0 {
		perCategory = 5
	}

	roadmap := make(map[string][]catalog.Course, len(track.Categories))
	for _, cat := range track.Categories {
		courses := c.engine.ByFilters(Filters{Category: cat, TopK: perCategory})
		if courses == nil {
			courses = []catalog.Course{}
		}
		roadmap[cat] = courses
	}
	return roadmap, true
}
