// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: search/index.go
// Summary: SQLite FTS5 full-text index over scrollback history.
// Usage: The host feeds evicted/pushed history lines keyed by their global
// line number; queries match any substring via the trigram tokenizer.

package search

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Result is a single search match.
type Result struct {
	Line      int64 // global line number
	Timestamp time.Time
	Content   string
}

// Index is a SQLite-backed full-text index over history lines. Lines are
// keyed by their global line number, which stays stable across scrollback
// eviction, so a match can always be resolved against the session log.
//
// Writes go through an internal batch flushed on size or on Flush/Close;
// all methods are safe for concurrent use.
type Index struct {
	db *sql.DB

	mu        sync.Mutex
	pending   []entry
	batchSize int
}

type entry struct {
	line int64
	ts   int64
	text string
}

const defaultBatchSize = 100

const schema = `
CREATE TABLE IF NOT EXISTS lines (
    id INTEGER PRIMARY KEY,           -- global line number
    timestamp INTEGER NOT NULL,       -- UnixNano
    content TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_lines_timestamp ON lines(timestamp);

-- Trigram tokenizer so any substring of 3+ bytes matches.
CREATE VIRTUAL TABLE IF NOT EXISTS lines_fts USING fts5(
    content,
    content='lines',
    content_rowid='id',
    tokenize='trigram'
);

CREATE TRIGGER IF NOT EXISTS lines_ai AFTER INSERT ON lines BEGIN
    INSERT INTO lines_fts(rowid, content) VALUES (new.id, new.content);
END;

CREATE TRIGGER IF NOT EXISTS lines_au AFTER UPDATE ON lines BEGIN
    INSERT INTO lines_fts(lines_fts, rowid, content) VALUES ('delete', old.id, old.content);
    INSERT INTO lines_fts(rowid, content) VALUES (new.id, new.content);
END;

CREATE TRIGGER IF NOT EXISTS lines_ad AFTER DELETE ON lines BEGIN
    INSERT INTO lines_fts(lines_fts, rowid, content) VALUES ('delete', old.id, old.content);
END;
`

// Open creates or opens the index database at path, creating parent
// directories as needed.
func Open(path string) (*Index, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=temp_store(MEMORY)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to index: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index schema: %w", err)
	}

	return &Index{db: db, batchSize: defaultBatchSize}, nil
}

// Add queues one line for indexing. Empty lines are skipped. The batch
// flushes automatically once it reaches the batch size.
func (ix *Index) Add(line int64, ts time.Time, text string) error {
	if text == "" {
		return nil
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.pending = append(ix.pending, entry{line: line, ts: ts.UnixNano(), text: text})
	if len(ix.pending) >= ix.batchSize {
		return ix.flushLocked()
	}
	return nil
}

// Remove deletes a line from the index, e.g. when history is cleared.
func (ix *Index) Remove(line int64) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if err := ix.flushLocked(); err != nil {
		return err
	}
	_, err := ix.db.Exec("DELETE FROM lines WHERE id = ?", line)
	return err
}

// Flush writes all queued lines to the database.
func (ix *Index) Flush() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.flushLocked()
}

func (ix *Index) flushLocked() error {
	if len(ix.pending) == 0 {
		return nil
	}
	tx, err := ix.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin index batch: %w", err)
	}
	stmt, err := tx.Prepare("INSERT OR REPLACE INTO lines (id, timestamp, content) VALUES (?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare index insert: %w", err)
	}
	defer stmt.Close()
	for _, e := range ix.pending {
		if _, err := stmt.Exec(e.line, e.ts, e.text); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to index line %d: %w", e.line, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit index batch: %w", err)
	}
	ix.pending = ix.pending[:0]
	return nil
}

// Search returns up to limit matches for query, newest first. Queries of
// three bytes or more use trigram matching; shorter ones fall back to LIKE
// since the trigram tokenizer cannot see them.
func (ix *Index) Search(query string, limit int) ([]Result, error) {
	if query == "" {
		return nil, nil
	}
	if err := ix.Flush(); err != nil {
		return nil, err
	}

	var rows *sql.Rows
	var err error
	if len(query) < 3 {
		pattern := "%" + strings.ReplaceAll(strings.ReplaceAll(query, "%", `\%`), "_", `\_`) + "%"
		rows, err = ix.db.Query(`
			SELECT id, timestamp, content
			FROM lines
			WHERE content LIKE ? ESCAPE '\'
			ORDER BY timestamp DESC
			LIMIT ?
		`, pattern, limit)
	} else {
		// Double-quote the query so FTS5 treats it as a literal string
		// rather than match syntax.
		quoted := `"` + strings.ReplaceAll(query, `"`, `""`) + `"`
		rows, err = ix.db.Query(`
			SELECT l.id, l.timestamp, l.content
			FROM lines_fts
			JOIN lines l ON l.id = lines_fts.rowid
			WHERE lines_fts MATCH ?
			ORDER BY l.timestamp DESC
			LIMIT ?
		`, quoted, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var tsNano int64
		if err := rows.Scan(&r.Line, &tsNano, &r.Content); err != nil {
			continue
		}
		r.Timestamp = time.Unix(0, tsNano)
		results = append(results, r)
	}
	return results, rows.Err()
}

// LineAt returns the global line number of the line at or just before t,
// or -1 when the index is empty.
func (ix *Index) LineAt(t time.Time) (int64, error) {
	if err := ix.Flush(); err != nil {
		return -1, err
	}
	var line int64
	err := ix.db.QueryRow(
		"SELECT id FROM lines WHERE timestamp <= ? ORDER BY timestamp DESC LIMIT 1",
		t.UnixNano(),
	).Scan(&line)
	if err == sql.ErrNoRows {
		err = ix.db.QueryRow("SELECT id FROM lines ORDER BY timestamp ASC LIMIT 1").Scan(&line)
	}
	if err == sql.ErrNoRows {
		return -1, nil
	}
	return line, err
}

// Close flushes pending writes and closes the database.
func (ix *Index) Close() error {
	flushErr := ix.Flush()
	if err := ix.db.Close(); err != nil {
		return err
	}
	return flushErr
}
