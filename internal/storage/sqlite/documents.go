// ABOUTME: Document storage operations for SQLite
// ABOUTME: Implements path deduplication and lookup by vector index positions
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mahiti-ai/mahiti/internal/models"
)

// ErrDuplicatePath reports an insert that would violate the unique
// source_path invariant. The normal ingestion flow checks FindByPath first,
// so hitting this means two ingestions raced; callers treat it as a skip.
var ErrDuplicatePath = errors.New("document with this source path already exists")

// DocumentStore handles document persistence
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// Insert persists a document, assigning its identifier and timestamp.
// SourcePath, Title, Content, and VectorPosition must already be set.
func (s *DocumentStore) Insert(doc *models.Document) error {
	doc.ID = uuid.New().String()
	doc.CreatedAt = time.Now().UTC()

	_, err := s.db.Exec(`
		INSERT INTO documents (id, source_path, title, content, vector_position, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.SourcePath, doc.Title, doc.Content, doc.VectorPosition, doc.CreatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: documents.source_path") {
			return fmt.Errorf("%w: %s", ErrDuplicatePath, doc.SourcePath)
		}
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

// FindByPath returns the document ingested from the given source path, or
// nil if no document matches.
func (s *DocumentStore) FindByPath(path string) (*models.Document, error) {
	var doc models.Document
	err := s.db.QueryRow(`
		SELECT id, source_path, title, content, vector_position, created_at
		FROM documents
		WHERE source_path = ?
	`, path).Scan(&doc.ID, &doc.SourcePath, &doc.Title, &doc.Content, &doc.VectorPosition, &doc.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding document by path: %w", err)
	}
	return &doc, nil
}

// FindByVectorPositions resolves vector index positions to documents.
// Positions with no matching row are silently omitted; row order is
// unspecified (the retriever re-ranks by distance afterwards).
func (s *DocumentStore) FindByVectorPositions(positions []int) ([]models.Document, error) {
	if len(positions) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(positions))
	args := make([]interface{}, len(positions))
	for i, pos := range positions {
		placeholders[i] = "?"
		args[i] = pos
	}

	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT id, source_path, title, content, vector_position, created_at
		FROM documents
		WHERE vector_position IN (%s)
	`, strings.Join(placeholders, ", ")), args...)
	if err != nil {
		return nil, fmt.Errorf("finding documents by vector positions: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(&doc.ID, &doc.SourcePath, &doc.Title, &doc.Content, &doc.VectorPosition, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// List returns all documents, newest first.
func (s *DocumentStore) List() ([]models.Document, error) {
	rows, err := s.db.Query(`
		SELECT id, source_path, title, content, vector_position, created_at
		FROM documents
		ORDER BY created_at DESC, vector_position DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(&doc.ID, &doc.SourcePath, &doc.Title, &doc.Content, &doc.VectorPosition, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// NextVectorPosition returns the first vector index position not assigned
// to any stored document: 0 for an empty store, MAX(vector_position)+1
// otherwise. A fresh process seeds its index here so positions stay unique
// across restarts.
func (s *DocumentStore) NextVectorPosition() (int, error) {
	var next int
	err := s.db.QueryRow(`SELECT COALESCE(MAX(vector_position) + 1, 0) FROM documents`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("finding next vector position: %w", err)
	}
	return next, nil
}

// Count returns the number of stored documents.
func (s *DocumentStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}
