package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/edupath-ai/edupath/internal/catalog"
	"github.com/edupath-ai/edupath/internal/progress"
	"github.com/edupath-ai/edupath/internal/recommend"
)

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"courses_loaded": s.catalog.Len(),
	})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleSearch serves GET /api/search?course_id=N or ?title=keyword.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("course_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "course_id must be an integer")
			return
		}
		course, found := s.catalog.BinarySearch(id)
		if !found {
			respondError(w, http.StatusNotFound, "course not found")
			return
		}
		respondData(w, course)
		return
	}

	if title := r.URL.Query().Get("title"); title != "" {
		respondData(w, s.catalog.SearchByTitle(title))
		return
	}

	respondError(w, http.StatusBadRequest, "provide course_id or title parameter")
}

// handleListCourses serves the full catalog in ID order.
func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	respondData(w, s.catalog.OrderedByID())
}

// handleRoadmap serves GET /api/roadmap/{id}: the full learning path for a
// course. Paths are pure functions of the immutable catalog, so responses
// are memoized in Redis when a cache is configured.
func (s *Server) handleRoadmap(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "course id must be an integer")
		return
	}

	cacheKey := fmt.Sprintf("roadmap:%d", id)
	if s.cache != nil {
		if payload, err := s.cache.GetJSON(r.Context(), cacheKey); err != nil {
			slog.Warn("roadmap cache lookup failed", "course_id", id, "error", err)
		} else if payload != nil {
			respondRaw(w, payload)
			return
		}
	}

	lp, found := s.builder.Build(id)
	if !found {
		respondError(w, http.StatusNotFound, "course not found")
		return
	}

	s.logEvent(r, "path_built", map[string]any{
		"course_id":      id,
		"levels":         len(lp.Levels),
		"cycle_detected": lp.CycleDetected,
	})

	payload, err := json.Marshal(envelope{Success: true, Data: lp})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if s.cache != nil {
		ttl := time.Duration(s.roadmapTTL) * time.Second
		if err := s.cache.SetJSON(r.Context(), cacheKey, payload, ttl); err != nil {
			slog.Warn("roadmap cache store failed", "course_id", id, "error", err)
		}
	}
	respondRaw(w, payload)
}

// handleSkillGap serves POST /api/skill-gap.
func (s *Server) handleSkillGap(w http.ResponseWriter, r *http.Request) {
	body, err := readValidated(r, skillGapSchema)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		TargetCourseID     int   `json:"target_course_id"`
		CompletedCourseIDs []int `json:"completed_course_ids"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	report, found := s.builder.AnalyzeGap(req.TargetCourseID, req.CompletedCourseIDs)
	if !found {
		respondError(w, http.StatusNotFound, "target course not found")
		return
	}

	s.logEvent(r, "gap_analyzed", map[string]any{
		"course_id":        req.TargetCourseID,
		"progress_percent": report.ProgressPercent,
	})
	respondData(w, report)
}

// handleSimilar serves GET /api/recommend/similar/{id}?top_k=N.
func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "course id must be an integer")
		return
	}

	topK := 5
	if raw := r.URL.Query().Get("top_k"); raw != "" {
		topK, err = strconv.Atoi(raw)
		if err != nil || topK <= 0 {
			respondError(w, http.StatusBadRequest, "top_k must be a positive integer")
			return
		}
	}

	courses := s.recommender.Similar(id, topK)
	if courses == nil {
		courses = []catalog.Course{}
	}
	respondData(w, courses)
}

// handleSmartRecommend serves POST /api/recommend/smart.
func (s *Server) handleSmartRecommend(w http.ResponseWriter, r *http.Request) {
	body, err := readValidated(r, smartRecommendSchema)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Category   string  `json:"category"`
		Difficulty string  `json:"difficulty"`
		MaxHours   float64 `json:"max_hours"`
		MinRating  float64 `json:"min_rating"`
		TopK       int     `json:"top_k"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	respondData(w, s.recommender.ByFilters(recommend.Filters{
		Category:   req.Category,
		Difficulty: req.Difficulty,
		MaxHours:   req.MaxHours,
		MinRating:  req.MinRating,
		TopK:       req.TopK,
	}))
}

// handleCareerRecommend serves POST /api/recommend/career.
func (s *Server) handleCareerRecommend(w http.ResponseWriter, r *http.Request) {
	body, err := readValidated(r, careerSchema)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		CareerGoal  string `json:"career_goal"`
		PerCategory int    `json:"per_category"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	roadmap, ok := s.careers.Roadmap(req.CareerGoal, req.PerCategory)
	if !ok {
		respondError(w, http.StatusBadRequest,
			fmt.Sprintf("unknown career goal, choose from: %v", s.careers.Goals()))
		return
	}
	respondData(w, map[string]any{
		"career_goal": req.CareerGoal,
		"roadmap":     roadmap,
	})
}

// handleStats serves the precomputed catalog analytics.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondData(w, s.stats)
}

// handleChat serves POST /api/chat.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	body, err := readValidated(r, chatSchema)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Message          string `json:"message"`
		CompletedCourses []int  `json:"completed_courses"`
		UserID           string `json:"user_id"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp := s.assistant.Reply(req.Message, req.CompletedCourses)
	s.logEvent(r, "chat_message", map[string]any{"intent": resp.Intent})
	respondData(w, resp)
}

// handleGetProgress serves GET /api/progress/{user}.
func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user")
	rec, err := s.progress.Get(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondData(w, progress.BuildProfile(rec))
}

// handleCompleteCourse serves POST /api/progress/{user}/complete. The course
// must exist; XP is awarded from its hours and difficulty.
func (s *Server) handleCompleteCourse(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user")

	body, err := readValidated(r, completeCourseSchema)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req struct {
		CourseID int `json:"course_id"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	course, found := s.catalog.Lookup(req.CourseID)
	if !found {
		respondError(w, http.StatusNotFound, "course not found")
		return
	}

	added, err := s.progress.MarkCompleted(r.Context(), userID, course.ID, progress.CourseXP(course))
	if err != nil {
		slog.Error("failed to mark course completed", "user_id", userID, "course_id", course.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if added {
		s.logEvent(r, "course_completed", map[string]any{"course_id": course.ID, "user_id": userID})
	}

	rec, err := s.progress.Get(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondData(w, map[string]any{
		"newly_completed": added,
		"profile":         progress.BuildProfile(rec),
	})
}

func (s *Server) logEvent(r *http.Request, eventType string, data map[string]any) {
	if err := s.events.LogEvent(progress.Event{
		UserID:    r.URL.Query().Get("user_id"),
		EventType: eventType,
		Data:      data,
	}); err != nil {
		slog.Warn("failed to log event", "event_type", eventType, "error", err)
	}
}
