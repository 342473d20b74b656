// ABOUTME: Service is the orchestration facade for ingestion and question answering
// ABOUTME: Bounds the context window and records answered questions best-effort
package rag

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/mahiti-ai/mahiti/internal/models"
)

// ErrNoRelevantDocuments reports an empty retrieval result: the question
// was fine but nothing in the corpus matches. No Query record is written.
var ErrNoRelevantDocuments = errors.New("no relevant documents")

// defaultMaxContextChars bounds the context window handed to the answer
// generator (~4 chars per token, budgeted for roughly 2000 context tokens).
const defaultMaxContextChars = 8000

// QueryRecorder is the slice of the durable store used for query history.
type QueryRecorder interface {
	Record(question, answer string) (*models.Query, error)
}

// Answer is the caller-visible result of one question.
type Answer struct {
	Question string            `json:"question"`
	Text     string            `json:"answer"`
	Sources  []models.Document `json:"sources"`
}

// Service wires the ingestion pipeline, retriever, and generator together.
type Service struct {
	ingestor        *Ingestor
	retriever       *Retriever
	generator       *Generator
	queries         QueryRecorder
	topK            int
	maxContextChars int
}

// NewService creates the orchestration facade. topK <= 0 selects the default.
func NewService(ingestor *Ingestor, retriever *Retriever, generator *Generator, queries QueryRecorder, topK int) *Service {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Service{
		ingestor:        ingestor,
		retriever:       retriever,
		generator:       generator,
		queries:         queries,
		topK:            topK,
		maxContextChars: defaultMaxContextChars,
	}
}

// SetTopK overrides the retrieval depth. Values <= 0 are ignored.
func (s *Service) SetTopK(k int) {
	if k > 0 {
		s.topK = k
	}
}

// Ingest adds one source document to the corpus.
func (s *Service) Ingest(ctx context.Context, sourcePath string, raw []byte) (IngestResult, error) {
	return s.ingestor.Ingest(ctx, sourcePath, raw)
}

// Ask retrieves relevant documents for the question and generates a
// grounded Marathi answer. The answered question is recorded best-effort:
// a persistence failure is logged and the answer is still returned.
func (s *Service) Ask(ctx context.Context, question string) (*Answer, error) {
	docs, err := s.retriever.Retrieve(ctx, question, s.topK)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNoRelevantDocuments
	}

	contextText := s.buildContext(docs)
	answerText := s.generator.Generate(ctx, question, contextText)

	if s.queries != nil {
		if _, err := s.queries.Record(question, answerText); err != nil {
			log.Printf("[service] recording query failed: %v", err)
		}
	}

	return &Answer{
		Question: question,
		Text:     answerText,
		Sources:  docs,
	}, nil
}

// buildContext joins retrieved contents in rank order and trims the result
// to the context budget.
func (s *Service) buildContext(docs []models.Document) string {
	parts := make([]string, len(docs))
	for i, doc := range docs {
		parts[i] = doc.Content
	}
	joined := strings.Join(parts, " ")

	runes := []rune(joined)
	if len(runes) > s.maxContextChars {
		joined = string(runes[:s.maxContextChars])
	}
	return joined
}
