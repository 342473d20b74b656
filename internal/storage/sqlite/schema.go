// ABOUTME: SQLite database schema for document and query storage
// ABOUTME: Creates all tables and indexes for local storage
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Ingested documents, one row per source path
CREATE TABLE IF NOT EXISTS documents (
    id TEXT PRIMARY KEY,
    source_path TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    vector_position INTEGER NOT NULL UNIQUE,
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_vector_position ON documents(vector_position);

-- Answered questions, appended best-effort
CREATE TABLE IF NOT EXISTS queries (
    id TEXT PRIMARY KEY,
    question TEXT NOT NULL,
    answer TEXT NOT NULL,
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_queries_created_at ON queries(created_at);
`
