package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/timelinehq/aitimeline/internal/item"
)

// Post is an archived generated post.
type Post struct {
	ID             int64
	DateID         string
	Mode           string
	Headline       string
	Markdown       string
	ItemCount      int
	ReadingMinutes int
	GeneratedAt    string
}

// SavePost inserts or replaces the post for a date along with its
// source items. A rerun for the same date overwrites the previous post.
func (db *DB) SavePost(dateID, mode, headline, markdown string, readingMinutes int, items []item.Item) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
INSERT INTO posts (date_id, mode, headline, markdown, item_count, reading_minutes, generated_at)
VALUES (?, ?, ?, ?, ?, ?, datetime('now'))
ON CONFLICT(date_id) DO UPDATE SET
    mode = excluded.mode,
    headline = excluded.headline,
    markdown = excluded.markdown,
    item_count = excluded.item_count,
    reading_minutes = excluded.reading_minutes,
    generated_at = excluded.generated_at`,
		dateID, mode, headline, markdown, len(items), readingMinutes)
	if err != nil {
		return 0, fmt.Errorf("saving post: %w", err)
	}

	// The upsert's UPDATE branch does not set last_insert_rowid, so
	// resolve the id by date instead.
	var postID int64
	if err := tx.QueryRow("SELECT id FROM posts WHERE date_id = ?", dateID).Scan(&postID); err != nil {
		return 0, fmt.Errorf("resolving post id: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM post_items WHERE post_id = ?", postID); err != nil {
		return 0, fmt.Errorf("clearing old items: %w", err)
	}

	for _, it := range items {
		_, err := tx.Exec(`
INSERT INTO post_items (post_id, title, url, source, published, summary, authors, score)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			postID, it.Title, it.URL, it.Source,
			it.Published.UTC().Format(time.RFC3339),
			it.Summary, strings.Join(it.Authors, ", "), it.Score)
		if err != nil {
			return 0, fmt.Errorf("saving post item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit save: %w", err)
	}
	return postID, nil
}

const postColumns = "id, date_id, mode, headline, markdown, item_count, reading_minutes, generated_at"

func scanPost(row interface{ Scan(...any) error }) (*Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.DateID, &p.Mode, &p.Headline, &p.Markdown,
		&p.ItemCount, &p.ReadingMinutes, &p.GeneratedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPost returns the post for a date, or nil when none exists.
func (db *DB) GetPost(dateID string) (*Post, error) {
	row := db.conn.QueryRow(
		"SELECT "+postColumns+" FROM posts WHERE date_id = ?", dateID)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting post %s: %w", dateID, err)
	}
	return p, nil
}

// LatestPost returns the most recent post, or nil when the archive is
// empty.
func (db *DB) LatestPost() (*Post, error) {
	row := db.conn.QueryRow(
		"SELECT " + postColumns + " FROM posts ORDER BY date_id DESC LIMIT 1")
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting latest post: %w", err)
	}
	return p, nil
}

// ListPosts returns posts newest first, up to limit (0 means all).
func (db *DB) ListPosts(limit int) ([]Post, error) {
	query := "SELECT " + postColumns + " FROM posts ORDER BY date_id DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// PostItems returns the source items attached to a post, highest score
// first.
func (db *DB) PostItems(postID int64) ([]item.Item, error) {
	rows, err := db.conn.Query(`
SELECT title, url, source, published, summary, authors, score
FROM post_items WHERE post_id = ? ORDER BY score DESC`, postID)
	if err != nil {
		return nil, fmt.Errorf("listing post items: %w", err)
	}
	defer rows.Close()

	var items []item.Item
	for rows.Next() {
		var it item.Item
		var published, authors string
		if err := rows.Scan(&it.Title, &it.URL, &it.Source, &published,
			&it.Summary, &authors, &it.Score); err != nil {
			return nil, fmt.Errorf("scanning post item: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, published); err == nil {
			it.Published = t
		}
		if authors != "" {
			it.Authors = strings.Split(authors, ", ")
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// CountPosts returns the number of archived posts.
func (db *DB) CountPosts() (int, error) {
	var count int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting posts: %w", err)
	}
	return count, nil
}
