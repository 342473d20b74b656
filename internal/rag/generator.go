// ABOUTME: Answer generator composing a grounded Marathi prompt from retrieved context
// ABOUTME: Degrades to a fixed apology instead of failing when the backend stays down
package rag

import (
	"context"
	"fmt"
	"log"
)

const (
	answerTemperature = 0.7
	answerMaxTokens   = 500

	answerSystemPrompt = "You are a helpful assistant that answers questions about " +
		"Marathi government documents. Always respond in Marathi language. " +
		"Use the provided context to give accurate answers."

	// apologyAnswer is served when the completion backend exhausts its
	// retries. Retrieval already succeeded at that point, so the flow
	// completes with content instead of an error (unlike the embedding
	// provider, which fails hard).
	apologyAnswer = "माफ करा, सध्या तुमच्या प्रश्नाचे उत्तर देणे शक्य नाही. कृपया थोड्या वेळाने पुन्हा प्रयत्न करा."
)

// Completer is the slice of the completion backend the generator needs.
// Implementations own their retry budget; an error means it was exhausted.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32, maxTokens int) (string, error)
}

// Generator produces grounded answers from retrieved document context.
type Generator struct {
	completer Completer
}

// NewGenerator creates a Generator over the given completion backend.
func NewGenerator(completer Completer) *Generator {
	return &Generator{completer: completer}
}

// Generate answers the question using only the supplied context. It never
// fails: if the backend stays down across all retries the fixed Marathi
// apology is returned.
func (g *Generator) Generate(ctx context.Context, question, contextText string) string {
	userPrompt := fmt.Sprintf("Context: %s\n\nQuestion: %s", contextText, question)

	answer, err := g.completer.Complete(ctx, answerSystemPrompt, userPrompt, answerTemperature, answerMaxTokens)
	if err != nil {
		log.Printf("[generator] answer generation degraded, serving fallback: %v", err)
		return apologyAnswer
	}
	return answer
}
