// ABOUTME: Ingestion pipeline turning source documents into indexed, persisted records
// ABOUTME: Deduplicates by path and compensates index appends when the store insert fails
package rag

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mahiti-ai/mahiti/internal/extract"
	"github.com/mahiti-ai/mahiti/internal/index"
	"github.com/mahiti-ai/mahiti/internal/models"
	"github.com/mahiti-ai/mahiti/internal/storage/sqlite"
)

// DocumentStore is the slice of the durable store the pipeline needs.
type DocumentStore interface {
	FindByPath(path string) (*models.Document, error)
	Insert(doc *models.Document) error
}

// IngestResult reports the outcome of ingesting one source document.
// Skipped means the path was already ingested and nothing changed.
type IngestResult struct {
	Document *models.Document
	Skipped  bool
}

// Ingestor converts source documents into indexed embeddings plus durable
// records. Failures are isolated per document.
type Ingestor struct {
	extract  extract.Func
	embedder Embedder
	index    *index.Index
	docs     DocumentStore
}

// NewIngestor creates an Ingestor. extractFn is the opaque bytes-to-text
// collaborator (extract.PDF in production).
func NewIngestor(extractFn extract.Func, embedder Embedder, ix *index.Index, docs DocumentStore) *Ingestor {
	return &Ingestor{
		extract:  extractFn,
		embedder: embedder,
		index:    ix,
		docs:     docs,
	}
}

// Ingest extracts, embeds, indexes, and persists one source document.
// Re-ingesting an already-known path is a no-op reported as Skipped.
func (in *Ingestor) Ingest(ctx context.Context, sourcePath string, raw []byte) (IngestResult, error) {
	existing, err := in.docs.FindByPath(sourcePath)
	if err != nil {
		return IngestResult{}, fmt.Errorf("checking for existing document: %w", err)
	}
	if existing != nil {
		return IngestResult{Document: existing, Skipped: true}, nil
	}

	text, err := in.extract(raw)
	if err != nil {
		return IngestResult{}, fmt.Errorf("extracting %s: %w", sourcePath, err)
	}

	// The embedding call (and its backoff sleeps) runs before any index
	// mutation; a failed embed leaves no partial state anywhere.
	vec, err := in.embedder.Embed(ctx, text)
	if err != nil {
		return IngestResult{}, fmt.Errorf("embedding %s: %w", sourcePath, err)
	}

	position, err := in.index.Append(vec)
	if err != nil {
		return IngestResult{}, fmt.Errorf("indexing %s: %w", sourcePath, err)
	}

	doc := &models.Document{
		SourcePath:     sourcePath,
		Title:          titleFromPath(sourcePath),
		Content:        text,
		VectorPosition: position,
	}
	if err := in.docs.Insert(doc); err != nil {
		// The append and the insert are not atomic. Tombstone the
		// appended vector so the index never serves a hit without a
		// backing record; the position stays consumed.
		in.index.Tombstone(position)

		if errors.Is(err, sqlite.ErrDuplicatePath) {
			// Lost a race with a concurrent ingestion of the same path.
			winner, findErr := in.docs.FindByPath(sourcePath)
			if findErr != nil {
				return IngestResult{}, fmt.Errorf("resolving concurrent ingest of %s: %w", sourcePath, findErr)
			}
			return IngestResult{Document: winner, Skipped: true}, nil
		}
		return IngestResult{}, fmt.Errorf("persisting %s: %w", sourcePath, err)
	}

	return IngestResult{Document: doc}, nil
}

// titleFromPath derives a display title from the source filename.
func titleFromPath(path string) string {
	base := filepath.Base(path)
	title := strings.TrimSuffix(base, filepath.Ext(base))
	if title == "" {
		return base
	}
	return title
}
