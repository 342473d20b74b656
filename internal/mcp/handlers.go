// ABOUTME: MCP tool handler implementations for the mahiti server
// ABOUTME: Maps tool calls onto the rag service with per-tool error handling
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mahiti-ai/mahiti/internal/rag"
	"github.com/mahiti-ai/mahiti/internal/storage/sqlite"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	service *rag.Service
	store   *sqlite.Storage
}

// IngestDocument handles the ingest_document tool
func (h *Handlers) IngestDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.service == nil {
		return mcp.NewToolResultError("OPENAI_API_KEY is not set; ingestion is unavailable"), nil
	}

	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path argument is required and must be a string"), nil
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return mcp.NewToolResultError("only PDF files are allowed"), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading %s: %v", path, err)), nil
	}

	result, err := h.service.Ingest(ctx, path, raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingestion failed: %v", err)), nil
	}

	if result.Skipped {
		return mcp.NewToolResultText(fmt.Sprintf("Already ingested: %s", path)), nil
	}

	response := map[string]interface{}{
		"id":              result.Document.ID,
		"title":           result.Document.Title,
		"vector_position": result.Document.VectorPosition,
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// AskQuestion handles the ask_question tool
func (h *Handlers) AskQuestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.service == nil {
		return mcp.NewToolResultError("OPENAI_API_KEY is not set; question answering is unavailable"), nil
	}

	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	answer, err := h.service.Ask(ctx, question)
	if errors.Is(err, rag.ErrNoRelevantDocuments) {
		return mcp.NewToolResultText("No relevant documents found for this question."), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("question answering failed: %v", err)), nil
	}

	sources := make([]map[string]interface{}, len(answer.Sources))
	for i, doc := range answer.Sources {
		sources[i] = map[string]interface{}{
			"title":       doc.Title,
			"source_path": doc.SourcePath,
		}
	}
	response := map[string]interface{}{
		"answer":  answer.Text,
		"sources": sources,
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ListDocuments handles the list_documents tool
func (h *Handlers) ListDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs, err := h.store.Documents().List()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing documents failed: %v", err)), nil
	}

	entries := make([]map[string]interface{}, len(docs))
	for i, doc := range docs {
		entries[i] = map[string]interface{}{
			"id":              doc.ID,
			"title":           doc.Title,
			"source_path":     doc.SourcePath,
			"vector_position": doc.VectorPosition,
			"created_at":      doc.CreatedAt,
		}
	}
	responseJSON, err := json.Marshal(map[string]interface{}{
		"documents": entries,
		"count":     len(entries),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
