// ABOUTME: SQLite database schema for the statement graph
// ABOUTME: Statements, weighted response edges and the turn log
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Known statements keyed by their text
CREATE TABLE IF NOT EXISTS statements (
    text TEXT PRIMARY KEY,
    occurrence INTEGER NOT NULL DEFAULT 0,
    name TEXT NOT NULL DEFAULT '',
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- in_response_to edges: statement_text followed previous_text weight times
CREATE TABLE IF NOT EXISTS responses (
    statement_text TEXT NOT NULL REFERENCES statements(text) ON DELETE CASCADE,
    previous_text TEXT NOT NULL,
    weight INTEGER NOT NULL CHECK (weight >= 0),
    PRIMARY KEY (statement_text, previous_text)
);

-- Turn log (one row per response cycle)
CREATE TABLE IF NOT EXISTS turns (
    id TEXT PRIMARY KEY,
    speaker TEXT NOT NULL,
    input_text TEXT NOT NULL,
    reply_text TEXT NOT NULL,
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_responses_previous ON responses(previous_text);
CREATE INDEX IF NOT EXISTS idx_turns_created ON turns(created_at);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
