// ABOUTME: MCP tool definitions and registration for the mahiti server
// ABOUTME: Defines JSON schemas for the ingest, ask, and list tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mahiti-ai/mahiti/internal/rag"
	"github.com/mahiti-ai/mahiti/internal/storage/sqlite"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, service *rag.Service, store *sqlite.Storage) *Handlers {
	handlers := &Handlers{
		service: service,
		store:   store,
	}

	// 1. ingest_document - add a PDF to the corpus
	server.AddTool(mcp.Tool{
		Name:        "ingest_document",
		Description: "Ingest a Marathi government PDF document into the question-answering corpus. Re-ingesting the same path is a no-op.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Filesystem path to the PDF document",
				},
			},
			Required: []string{"path"},
		},
	}, handlers.IngestDocument)

	// 2. ask_question - retrieve context and answer in Marathi
	server.AddTool(mcp.Tool{
		Name:        "ask_question",
		Description: "Answer a question about the ingested Marathi government documents. The answer is grounded in retrieved document content and given in Marathi.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Natural-language question",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskQuestion)

	// 3. list_documents - show the ingested corpus
	server.AddTool(mcp.Tool{
		Name:        "list_documents",
		Description: "List all ingested documents with their titles and source paths.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListDocuments)

	return handlers
}
