// ABOUTME: Unified Storage layer that wraps the per-entity SQLite stores
// ABOUTME: One open database shared by the document and query stores
package sqlite

import "fmt"

// Storage bundles the per-entity stores over one database connection
type Storage struct {
	db        *DB
	documents *DocumentStore
	queries   *QueryStore
}

// OpenStorage opens (or creates) the database at path and wires the stores
func OpenStorage(path string) (*Storage, error) {
	db, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	return newStorage(db), nil
}

// OpenStorageInMemory creates storage over an in-memory database (for testing)
func OpenStorageInMemory() (*Storage, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("opening in-memory storage: %w", err)
	}
	return newStorage(db), nil
}

func newStorage(db *DB) *Storage {
	return &Storage{
		db:        db,
		documents: NewDocumentStore(db),
		queries:   NewQueryStore(db),
	}
}

// Documents returns the document store
func (s *Storage) Documents() *DocumentStore {
	return s.documents
}

// Queries returns the query history store
func (s *Storage) Queries() *QueryStore {
	return s.queries
}

// Path returns the database file path
func (s *Storage) Path() string {
	return s.db.Path()
}

// Close closes the underlying database
func (s *Storage) Close() error {
	return s.db.Close()
}
