// ABOUTME: Query history storage operations for SQLite
// ABOUTME: Best-effort append of answered questions plus recent-history reads
package sqlite

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mahiti-ai/mahiti/internal/models"
)

// QueryStore handles persistence of answered questions
type QueryStore struct {
	db *DB
}

// NewQueryStore creates a new QueryStore
func NewQueryStore(db *DB) *QueryStore {
	return &QueryStore{db: db}
}

// Record appends one question/answer pair. Callers treat failures as
// non-fatal: the computed answer is never discarded because the record
// could not be written.
func (s *QueryStore) Record(question, answer string) (*models.Query, error) {
	q := &models.Query{
		ID:        uuid.New().String(),
		Question:  question,
		Answer:    answer,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(`
		INSERT INTO queries (id, question, answer, created_at)
		VALUES (?, ?, ?, ?)
	`, q.ID, q.Question, q.Answer, q.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("recording query: %w", err)
	}
	return q, nil
}

// Recent returns up to limit answered questions, newest first.
func (s *QueryStore) Recent(limit int) ([]models.Query, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
		SELECT id, question, answer, created_at
		FROM queries
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing queries: %w", err)
	}
	defer rows.Close()

	var queries []models.Query
	for rows.Next() {
		var q models.Query
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning query row: %w", err)
		}
		queries = append(queries, q)
	}
	return queries, rows.Err()
}
