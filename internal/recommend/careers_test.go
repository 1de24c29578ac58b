package recommend_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/edupath-ai/edupath/internal/recommend"
)

func TestLoadCareerTracks_Defaults(t *testing.T) {
	tracks, err := recommend.LoadCareerTracks("")
	if err != nil {
		t.Fatalf("LoadCareerTracks() error = %v", err)
	}
	if len(tracks) == 0 {
		t.Fatal("expected built-in tracks")
	}
}

func TestLoadCareerTracks_FromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "careers.yaml")
	err := os.WriteFile(path, []byte(`
tracks:
  - goal: Game Developer
    keywords: ["game dev", "game developer"]
    categories: ["Programming", "Graphics"]
`), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	tracks, err := recommend.LoadCareerTracks(path)
	if err != nil {
		t.Fatalf("LoadCareerTracks() error = %v", err)
	}
	if len(tracks) != 1 || tracks[0].Goal != "Game Developer" {
		t.Errorf("tracks = %v, want one Game Developer track", tracks)
	}
}

func TestLoadCareerTracks_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "careers.yaml")
	if err := os.WriteFile(path, []byte("tracks: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := recommend.LoadCareerTracks(path); err == nil {
		t.Error("LoadCareerTracks() should reject a file with no tracks")
	}
}

func TestCareers_Roadmap(t *testing.T) {
	e := recommend.NewEngine(testCatalog())
	careers := recommend.NewCareers(e, nil)

	roadmap, ok := careers.Roadmap("AI Engineer", 2)
	if !ok {
		t.Fatal("Roadmap(AI Engineer) not found")
	}
	ai := roadmap["AI"]
	if len(ai) != 2 || ai[0].ID != 1004 {
		t.Errorf("AI roadmap = %v, want [1004 1003]", ai)
	}
	if _, present := roadmap["Mathematics"]; !present {
		t.Error("empty categories should still appear in the roadmap")
	}
}

func TestCareers_RoadmapUnknownGoal(t *testing.T) {
	careers := recommend.NewCareers(recommend.NewEngine(testCatalog()), nil)

	if _, ok := careers.Roadmap("Astronaut", 5); ok {
		t.Error("Roadmap(Astronaut) should not resolve")
	}
}

func TestCareers_MatchGoal(t *testing.T) {
	careers := recommend.NewCareers(recommend.NewEngine(testCatalog()), nil)

	track, ok := careers.MatchGoal("I want to become a Data Scientist someday")
	if !ok || track.Goal != "Data Scientist" {
		t.Errorf("MatchGoal() = (%v, %v), want Data Scientist", track.Goal, ok)
	}

	if _, ok := careers.MatchGoal("I like trains"); ok {
		t.Error("MatchGoal() matched unrelated text")
	}
}
