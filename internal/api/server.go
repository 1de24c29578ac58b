// Package api exposes the course catalog, roadmap, recommendation, analytics,
// chat and progress endpoints over HTTP.
package api

import (
	"net/http"

	"github.com/edupath-ai/edupath/internal/catalog"
	"github.com/edupath-ai/edupath/internal/chat"
	"github.com/edupath-ai/edupath/internal/path"
	"github.com/edupath-ai/edupath/internal/platform/cache"
	"github.com/edupath-ai/edupath/internal/progress"
	"github.com/edupath-ai/edupath/internal/recommend"
	"github.com/edupath-ai/edupath/internal/stats"
)

// ServerConfig holds the server's collaborators. Cache and Events are
// optional; Events defaults to a no-op logger.
type ServerConfig struct {
	Catalog     *catalog.Catalog
	Builder     *path.Builder
	Recommender *recommend.Engine
	Careers     *recommend.Careers
	Assistant   *chat.Assistant
	Stats       *stats.Summary
	Progress    progress.Store
	Events      progress.EventLogger
	Cache       *cache.Cache
	RoadmapTTL  int // seconds; roadmap memoization TTL when Cache is set
	Ready       func() error
}

// Server carries handler state. All fields are read-only after construction
// except the progress store, which owns its own synchronization.
type Server struct {
	catalog     *catalog.Catalog
	builder     *path.Builder
	recommender *recommend.Engine
	careers     *recommend.Careers
	assistant   *chat.Assistant
	stats       *stats.Summary
	progress    progress.Store
	events      progress.EventLogger
	cache       *cache.Cache
	roadmapTTL  int
	ready       func() error
}

// NewServer creates the API server.
func NewServer(cfg ServerConfig) *Server {
	events := cfg.Events
	if events == nil {
		events = progress.NopEventLogger{}
	}
	roadmapTTL := cfg.RoadmapTTL
	if roadmapTTL <= 0 {
		roadmapTTL = 300
	}
	return &Server{
		catalog:     cfg.Catalog,
		builder:     cfg.Builder,
		recommender: cfg.Recommender,
		careers:     cfg.Careers,
		assistant:   cfg.Assistant,
		stats:       cfg.Stats,
		progress:    cfg.Progress,
		events:      events,
		cache:       cfg.Cache,
		roadmapTTL:  roadmapTTL,
		ready:       cfg.Ready,
	}
}

// Routes builds the HTTP router.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)

	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/courses", s.handleListCourses)
	mux.HandleFunc("GET /api/roadmap/{id}", s.handleRoadmap)
	mux.HandleFunc("POST /api/skill-gap", s.handleSkillGap)

	mux.HandleFunc("GET /api/recommend/similar/{id}", s.handleSimilar)
	mux.HandleFunc("POST /api/recommend/smart", s.handleSmartRecommend)
	mux.HandleFunc("POST /api/recommend/career", s.handleCareerRecommend)

	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /ws/chat", s.handleChatSocket)

	mux.HandleFunc("GET /api/progress/{user}", s.handleGetProgress)
	mux.HandleFunc("POST /api/progress/{user}/complete", s.handleCompleteCourse)

	return mux
}
