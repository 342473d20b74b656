// ABOUTME: Query model recording answered questions
// ABOUTME: Persisted best-effort after an answer is produced
package models

import "time"

// Query is one answered question. Recording a Query never blocks the
// answer: persistence failures are logged and the answer is still returned.
type Query struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}
