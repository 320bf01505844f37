package store

import "database/sql"

// Migration represents a single schema migration step.
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

// migrations is the ordered list of all schema migrations.
// Append new migrations to the end with incrementing Version numbers.
var migrations = []Migration{
	{
		Version:     1,
		Description: "initial schema",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    date_id TEXT UNIQUE NOT NULL,
    mode TEXT NOT NULL DEFAULT 'daily',
    headline TEXT,
    markdown TEXT NOT NULL,
    item_count INTEGER DEFAULT 0,
    reading_minutes INTEGER DEFAULT 1,
    generated_at TEXT DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS post_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    post_id INTEGER NOT NULL REFERENCES posts(id),
    title TEXT NOT NULL,
    url TEXT NOT NULL,
    source TEXT,
    published TEXT,
    summary TEXT,
    authors TEXT,
    score REAL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_posts_date ON posts(date_id);
CREATE INDEX IF NOT EXISTS idx_post_items_post ON post_items(post_id);
`)
			return err
		},
	},
}

// latestVersion returns the highest migration version number.
func latestVersion() int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].Version
}
