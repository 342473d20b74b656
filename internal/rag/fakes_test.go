// ABOUTME: Shared test fakes for the rag package
// ABOUTME: Scriptable embedder, completer, document store, and query recorder
package rag

import (
	"context"
	"fmt"
	"sync"

	"github.com/mahiti-ai/mahiti/internal/models"
)

// fakeEmbedder maps exact text to canned vectors and counts calls.
type fakeEmbedder struct {
	vectors map[string][]float64
	err     error
	calls   int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	vec, ok := f.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no canned vector for %q", text)
	}
	return vec, nil
}

// fakeCompleter echoes its prompts or fails.
type fakeCompleter struct {
	answer string
	echo   bool
	err    error
	calls  int

	lastSystem string
	lastUser   string
}

func (f *fakeCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32, maxTokens int) (string, error) {
	f.calls++
	f.lastSystem = systemPrompt
	f.lastUser = userPrompt
	if f.err != nil {
		return "", f.err
	}
	if f.echo {
		return userPrompt, nil
	}
	return f.answer, nil
}

// memStore is an in-memory DocumentStore/DocumentFinder with scriptable
// insert failures and optional result shuffling.
type memStore struct {
	mu          sync.Mutex
	byPath      map[string]*models.Document
	byPosition  map[int]*models.Document
	insertFails int // fail this many inserts before succeeding
	reverse     bool
}

func newMemStore() *memStore {
	return &memStore{
		byPath:     map[string]*models.Document{},
		byPosition: map[int]*models.Document{},
	}
}

func (m *memStore) FindByPath(path string) (*models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if doc, ok := m.byPath[path]; ok {
		copied := *doc
		return &copied, nil
	}
	return nil, nil
}

func (m *memStore) Insert(doc *models.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertFails > 0 {
		m.insertFails--
		return fmt.Errorf("simulated store failure")
	}
	doc.ID = fmt.Sprintf("doc-%d", len(m.byPath)+1)
	copied := *doc
	m.byPath[doc.SourcePath] = &copied
	m.byPosition[doc.VectorPosition] = &copied
	return nil
}

func (m *memStore) FindByVectorPositions(positions []int) ([]models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var docs []models.Document
	for _, pos := range positions {
		if doc, ok := m.byPosition[pos]; ok {
			docs = append(docs, *doc)
		}
	}
	if m.reverse {
		for i, j := 0, len(docs)-1; i < j; i, j = i+1, j-1 {
			docs[i], docs[j] = docs[j], docs[i]
		}
	}
	return docs, nil
}

// fakeRecorder captures recorded queries and can fail.
type fakeRecorder struct {
	recorded []models.Query
	err      error
}

func (f *fakeRecorder) Record(question, answer string) (*models.Query, error) {
	if f.err != nil {
		return nil, f.err
	}
	q := models.Query{ID: fmt.Sprintf("q-%d", len(f.recorded)+1), Question: question, Answer: answer}
	f.recorded = append(f.recorded, q)
	return &q, nil
}

// identityExtract treats the raw bytes as the extracted text.
func identityExtract(raw []byte) (string, error) {
	return string(raw), nil
}

// padVector builds a 4-dim vector; tests use small dimensions throughout.
func vec4(a, b, c, d float64) []float64 {
	return []float64{a, b, c, d}
}
