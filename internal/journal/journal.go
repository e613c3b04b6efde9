// Package journal records every handled paste in a local SQLite database so
// repeated runs can be inspected after the fact.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS captures (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	at      DATETIME NOT NULL,
	title   TEXT NOT NULL DEFAULT '',
	outcome TEXT NOT NULL,
	note_id TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_captures_at ON captures(at);
`

// Event is one handled paste.
type Event struct {
	At      time.Time `json:"at"`
	Title   string    `json:"title"`
	Outcome string    `json:"outcome"`
	NoteID  string    `json:"note_id,omitempty"`
}

// DB wraps a sql.DB with journal operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the journal database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("journal: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("journal: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("journal: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Record appends one event. A zero At is filled with the current time.
func (db *DB) Record(e Event) error {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	_, err := db.conn.Exec(
		`INSERT INTO captures (at, title, outcome, note_id) VALUES (?, ?, ?, ?)`,
		e.At, e.Title, e.Outcome, e.NoteID,
	)
	if err != nil {
		return fmt.Errorf("journal: record: %w", err)
	}
	return nil
}

// Recent returns the most recent events, newest first.
func (db *DB) Recent(limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(
		`SELECT at, title, outcome, note_id FROM captures ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: recent: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.At, &e.Title, &e.Outcome, &e.NoteID); err != nil {
			return nil, fmt.Errorf("journal: scan row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
