// ABOUTME: Document model for ingested government documents
// ABOUTME: Ties durable records to their vector index position
package models

import "time"

// Document is one ingested source document. VectorPosition is the 0-based
// offset at which its embedding was appended to the vector index; it is
// unique, monotonically assigned, and never reused. SourcePath is unique:
// re-ingesting the same path is a no-op.
type Document struct {
	ID             string    `json:"id"`
	SourcePath     string    `json:"source_path"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	VectorPosition int       `json:"vector_position"`
	CreatedAt      time.Time `json:"created_at"`
}
