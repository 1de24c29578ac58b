package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// PostgresStore is a PostgreSQL-backed Store implementation.
//
// Schema:
//
//	CREATE TABLE learner_progress (
//	    user_id    TEXT NOT NULL,
//	    course_id  INTEGER NOT NULL,
//	    xp         INTEGER NOT NULL DEFAULT 0,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    PRIMARY KEY (user_id, course_id)
//	);
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed progress store and ensures the
// schema exists.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS learner_progress (
		    user_id    TEXT NOT NULL,
		    course_id  INTEGER NOT NULL,
		    xp         INTEGER NOT NULL DEFAULT 0,
		    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		    PRIMARY KEY (user_id, course_id)
		)`)
	if err != nil {
		return nil, fmt.Errorf("ensuring progress schema: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Get(ctx context.Context, userID string) (Record, error) {
	if userID == "" {
		return Record{}, fmt.Errorf("user_id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT course_id, xp, created_at
		   FROM learner_progress
		  WHERE user_id = $1
		  ORDER BY course_id`,
		userID,
	)
	if err != nil {
		return Record{}, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	rec := Record{UserID: userID, CompletedIDs: []int{}}
	for rows.Next() {
		var (
			courseID  int
			xp        int
			createdAt time.Time
		)
		if err := rows.Scan(&courseID, &xp, &createdAt); err != nil {
			return Record{}, fmt.Errorf("scan progress row: %w", err)
		}
		rec.CompletedIDs = append(rec.CompletedIDs, courseID)
		rec.XP += xp
		if createdAt.After(rec.UpdatedAt) {
			rec.UpdatedAt = createdAt
		}
	}
	if err := rows.Err(); err != nil {
		return Record{}, fmt.Errorf("read progress rows: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) MarkCompleted(ctx context.Context, userID string, courseID, xp int) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("user_id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := s.pool.Exec(ctx,
		`INSERT INTO learner_progress (user_id, course_id, xp)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, course_id) DO NOTHING`,
		userID, courseID, xp,
	)
	if err != nil {
		return false, fmt.Errorf("mark completed: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
