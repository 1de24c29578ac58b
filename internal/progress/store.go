// Package progress tracks per-learner completed courses and the XP, level
// and badge bookkeeping derived from them.
package progress

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Record is one learner's progress snapshot.
type Record struct {
	UserID       string    `json:"user_id"`
	CompletedIDs []int     `json:"completed_courses"`
	XP           int       `json:"xp"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Store persists learner progress. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the learner's record; an unknown learner yields an empty
	// record, not an error.
	Get(ctx context.Context, userID string) (Record, error)
	// MarkCompleted records a completed course and adds the XP it awards.
	// Marking an already-completed course is a no-op returning false.
	MarkCompleted(ctx context.Context, userID string, courseID, xp int) (bool, error)
}

// MemoryStore is an in-memory Store implementation.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*memoryRecord
}

type memoryRecord struct {
	completed map[int]struct{}
	xp        int
	updatedAt time.Time
}

// NewMemoryStore creates an in-memory progress store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*memoryRecord),
	}
}

func (s *MemoryStore) Get(_ context.Context, userID string) (Record, error) {
	if userID == "" {
		return Record{}, fmt.Errorf("user_id is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[userID]
	if !ok {
		return Record{UserID: userID, CompletedIDs: []int{}}, nil
	}

	ids := make([]int, 0, len(rec.completed))
	for id := range rec.completed {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return Record{
		UserID:       userID,
		CompletedIDs: ids,
		XP:           rec.xp,
		UpdatedAt:    rec.updatedAt,
	}, nil
}

func (s *MemoryStore) MarkCompleted(_ context.Context, userID string, courseID, xp int) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("user_id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[userID]
	if !ok {
		rec = &memoryRecord{completed: make(map[int]struct{})}
		s.records[userID] = rec
	}
	if _, done := rec.completed[courseID]; done {
		return false, nil
	}
	rec.completed[courseID] = struct{}{}
	rec.xp += xp
	rec.updatedAt = time.Now()
	return true, nil
}
