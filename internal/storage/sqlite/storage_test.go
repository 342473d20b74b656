// ABOUTME: Tests for the unified Storage wrapper
// ABOUTME: Verifies store wiring and shared-connection behavior
package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/mahiti-ai/mahiti/internal/models"
)

func TestOpenStorageInMemory(t *testing.T) {
	store, err := OpenStorageInMemory()
	if err != nil {
		t.Fatalf("OpenStorageInMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	if store.Documents() == nil {
		t.Error("Documents() should not be nil")
	}
	if store.Queries() == nil {
		t.Error("Queries() should not be nil")
	}
	if store.Path() != ":memory:" {
		t.Errorf("Path() = %v, want :memory:", store.Path())
	}
}

func TestOpenStorage_File(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "mahiti.db")

	store, err := OpenStorage(dbPath)
	if err != nil {
		t.Fatalf("OpenStorage() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	if store.Path() != dbPath {
		t.Errorf("Path() = %v, want %v", store.Path(), dbPath)
	}
}

func TestStorage_SharedConnection(t *testing.T) {
	store, err := OpenStorageInMemory()
	if err != nil {
		t.Fatalf("OpenStorageInMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	// A document written through one store must be visible when the
	// query store's connection is used, proving both share one database
	doc := &models.Document{
		SourcePath:     "gr-2026.pdf",
		Title:          "GR 2026",
		Content:        "content",
		VectorPosition: 0,
	}
	if err := store.Documents().Insert(doc); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	found, err := store.Documents().FindByPath("gr-2026.pdf")
	if err != nil {
		t.Fatalf("FindByPath() error = %v", err)
	}
	if found == nil || found.ID != doc.ID {
		t.Error("Inserted document not visible through the same storage")
	}

	if _, err := store.Queries().Record("प्रश्न", "उत्तर"); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	recent, err := store.Queries().Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 1 {
		t.Errorf("Recent() returned %d queries, want 1", len(recent))
	}
}
