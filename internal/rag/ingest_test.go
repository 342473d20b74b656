// ABOUTME: Unit tests for the ingestion pipeline
// ABOUTME: Covers idempotence, position assignment, extraction failures, and insert rollback
package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/mahiti-ai/mahiti/internal/extract"
	"github.com/mahiti-ai/mahiti/internal/index"
	"github.com/mahiti-ai/mahiti/internal/storage/sqlite"
)

func newTestIngestor(store *memStore) (*Ingestor, *index.Index, *fakeEmbedder) {
	ix := index.New(4)
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"document text":       vec4(1, 0, 0, 0),
		"other document text": vec4(0, 1, 0, 0),
	}}
	return NewIngestor(identityExtract, embedder, ix, store), ix, embedder
}

func TestIngest_CreatesDocumentAtPositionZero(t *testing.T) {
	store := newMemStore()
	ingestor, ix, _ := newTestIngestor(store)

	result, err := ingestor.Ingest(context.Background(), "/docs/gr-2024.pdf", []byte("document text"))
	if err != nil {
		t.Fatal(err)
	}
	if result.Skipped {
		t.Fatal("first ingest reported as skipped")
	}
	if result.Document.VectorPosition != 0 {
		t.Errorf("vector position = %d, want 0", result.Document.VectorPosition)
	}
	if result.Document.Title != "gr-2024" {
		t.Errorf("title = %q, want %q", result.Document.Title, "gr-2024")
	}
	if ix.Len() != 1 {
		t.Errorf("index length = %d, want 1", ix.Len())
	}
}

func TestIngest_SamePathTwiceIsNoOp(t *testing.T) {
	store := newMemStore()
	ingestor, ix, embedder := newTestIngestor(store)

	first, err := ingestor.Ingest(context.Background(), "/docs/gr-2024.pdf", []byte("document text"))
	if err != nil {
		t.Fatal(err)
	}

	second, err := ingestor.Ingest(context.Background(), "/docs/gr-2024.pdf", []byte("document text"))
	if err != nil {
		t.Fatal(err)
	}
	if !second.Skipped {
		t.Error("second ingest not reported as skipped")
	}
	if second.Document == nil || second.Document.ID != first.Document.ID {
		t.Errorf("skip must return the existing document, got %+v", second.Document)
	}
	if ix.Len() != 1 {
		t.Errorf("index length = %d after duplicate ingest, want 1", ix.Len())
	}
	if embedder.calls != 1 {
		t.Errorf("embedder called %d times, want 1 (dedupe happens before embedding)", embedder.calls)
	}
}

func TestIngest_PositionsAreMonotonic(t *testing.T) {
	store := newMemStore()
	ingestor, _, _ := newTestIngestor(store)

	first, err := ingestor.Ingest(context.Background(), "/docs/a.pdf", []byte("document text"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := ingestor.Ingest(context.Background(), "/docs/b.pdf", []byte("other document text"))
	if err != nil {
		t.Fatal(err)
	}

	if first.Document.VectorPosition != 0 || second.Document.VectorPosition != 1 {
		t.Errorf("positions = %d, %d; want 0, 1",
			first.Document.VectorPosition, second.Document.VectorPosition)
	}
}

func TestIngest_ExtractionFailureAborts(t *testing.T) {
	store := newMemStore()
	ix := index.New(4)
	embedder := &fakeEmbedder{}
	failing := func(raw []byte) (string, error) {
		return "", extract.ErrExtractionFailed
	}
	ingestor := NewIngestor(failing, embedder, ix, store)

	_, err := ingestor.Ingest(context.Background(), "/docs/bad.pdf", []byte("garbage"))
	if !errors.Is(err, extract.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
	if embedder.calls != 0 {
		t.Error("embedder called for an unextractable document")
	}
	if ix.Len() != 0 {
		t.Error("index mutated for an unextractable document")
	}
}

func TestIngest_EmbeddingFailureLeavesNoPartialState(t *testing.T) {
	store := newMemStore()
	ix := index.New(4)
	embedder := &fakeEmbedder{err: errors.New("embedding backend unavailable")}
	ingestor := NewIngestor(identityExtract, embedder, ix, store)

	_, err := ingestor.Ingest(context.Background(), "/docs/a.pdf", []byte("text"))
	if err == nil {
		t.Fatal("expected error")
	}
	if ix.Len() != 0 {
		t.Error("index mutated despite embedding failure")
	}
	if doc, _ := store.FindByPath("/docs/a.pdf"); doc != nil {
		t.Error("document persisted despite embedding failure")
	}
}

func TestIngest_StoreFailureTombstonesAppendedVector(t *testing.T) {
	store := newMemStore()
	store.insertFails = 1
	ingestor, ix, _ := newTestIngestor(store)

	_, err := ingestor.Ingest(context.Background(), "/docs/a.pdf", []byte("document text"))
	if err == nil {
		t.Fatal("expected error from failing insert")
	}

	// The appended vector must not be served by searches
	hits, searchErr := ix.Search(vec4(1, 0, 0, 0), 5)
	if searchErr != nil {
		t.Fatal(searchErr)
	}
	if len(hits) != 0 {
		t.Errorf("orphaned vector served by search: %v", hits)
	}

	// Position 0 stays consumed; a retry gets position 1 and succeeds
	retry, err := ingestor.Ingest(context.Background(), "/docs/a.pdf", []byte("document text"))
	if err != nil {
		t.Fatal(err)
	}
	if retry.Skipped {
		t.Fatal("retry reported as skipped, document was never persisted")
	}
	if retry.Document.VectorPosition != 1 {
		t.Errorf("retry position = %d, want 1 (tombstoned position never reused)", retry.Document.VectorPosition)
	}
}

func TestIngest_PositionsStayUniqueAcrossRestarts(t *testing.T) {
	// Documents outlive the process but the index does not. A fresh
	// index seeded from the store's next free position must keep new
	// ingestions working instead of colliding with persisted positions.
	store, err := sqlite.OpenStorageInMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = store.Close() }()

	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"first document":  vec4(1, 0, 0, 0),
		"second document": vec4(0, 1, 0, 0),
	}}

	first := NewIngestor(identityExtract, embedder, index.New(4), store.Documents())
	res, err := first.Ingest(context.Background(), "/docs/a.pdf", []byte("first document"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Document.VectorPosition != 0 {
		t.Fatalf("first document position = %d, want 0", res.Document.VectorPosition)
	}

	// Simulate a new process: same store, brand-new index seeded past
	// the persisted positions
	next, err := store.Documents().NextVectorPosition()
	if err != nil {
		t.Fatal(err)
	}
	second := NewIngestor(identityExtract, embedder, index.NewAt(4, next), store.Documents())

	res, err = second.Ingest(context.Background(), "/docs/b.pdf", []byte("second document"))
	if err != nil {
		t.Fatalf("ingesting after restart: %v", err)
	}
	if res.Skipped {
		t.Fatal("new document reported as skipped")
	}
	if res.Document.VectorPosition != 1 {
		t.Errorf("second document position = %d, want 1", res.Document.VectorPosition)
	}

	count, err := store.Documents().Count()
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("stored documents = %d, want 2", count)
	}
}
