// ABOUTME: Retriever resolves a question to its most relevant documents
// ABOUTME: Embeds the query, searches the vector index, and re-ranks store rows by distance
package rag

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/mahiti-ai/mahiti/internal/index"
	"github.com/mahiti-ai/mahiti/internal/models"
)

// ErrSearchUnavailable reports that the question could not be embedded, so
// no semantic search was possible. It wraps the embedding provider's error.
var ErrSearchUnavailable = errors.New("semantic search unavailable")

// DefaultTopK is how many documents a question retrieves by default
const DefaultTopK = 3

// Embedder produces the fixed-dimension embedding for a text span.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// DocumentFinder is the slice of the durable store the retriever needs.
type DocumentFinder interface {
	FindByVectorPositions(positions []int) ([]models.Document, error)
}

// Retriever orchestrates embedding, index search, and record resolution.
type Retriever struct {
	embedder Embedder
	index    *index.Index
	docs     DocumentFinder
}

// NewRetriever creates a Retriever over the given embedder, index, and store.
func NewRetriever(embedder Embedder, ix *index.Index, docs DocumentFinder) *Retriever {
	return &Retriever{
		embedder: embedder,
		index:    ix,
		docs:     docs,
	}
}

// Retrieve returns up to k documents relevant to the question, ordered by
// ascending distance. An empty result is a valid outcome meaning no
// relevant documents exist; only infrastructure failures return an error.
func (r *Retriever) Retrieve(ctx context.Context, question string, k int) ([]models.Document, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	vec, err := r.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding question: %w", ErrSearchUnavailable, err)
	}

	hits, err := r.index.Search(vec, k)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	if len(hits) == 0 {
		return nil, nil
	}

	positions := make([]int, len(hits))
	rank := make(map[int]int, len(hits))
	for i, hit := range hits {
		positions[i] = hit.Position
		rank[hit.Position] = i
	}

	docs, err := r.docs.FindByVectorPositions(positions)
	if err != nil {
		return nil, fmt.Errorf("resolving documents: %w", err)
	}

	// The store returns rows in unspecified order; restore the index's
	// distance ranking so the best match leads the context window.
	sort.Slice(docs, func(i, j int) bool {
		return rank[docs[i].VectorPosition] < rank[docs[j].VectorPosition]
	})

	return docs, nil
}
