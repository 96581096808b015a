// Package library persists committed library items in SQLite via sqlx.
package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/habitloop/curator/internal/domain"
	"github.com/habitloop/curator/internal/policy"
)

// ErrItemNotFound means no library item exists with the given id.
var ErrItemNotFound = errors.New("library item not found")

const schema = `
CREATE TABLE IF NOT EXISTS library_items (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	video_id         TEXT NOT NULL UNIQUE,
	title            TEXT NOT NULL,
	url              TEXT NOT NULL,
	channel_name     TEXT NOT NULL DEFAULT '',
	duration_minutes INTEGER NOT NULL,
	prompt           TEXT NOT NULL DEFAULT '',
	category         TEXT NOT NULL DEFAULT '',
	view_count       INTEGER,
	like_count       INTEGER,
	published_at     TIMESTAMP,
	tags             TEXT NOT NULL DEFAULT '',
	position         INTEGER NOT NULL DEFAULT 0,
	created_at       TIMESTAMP NOT NULL,
	updated_at       TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_library_items_position ON library_items(position);
`

// Store is the SQLite-backed library repository. It re-checks the
// duration policy on every write so no over-limit item can enter the
// library regardless of which path produced it.
type Store struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at path and applies the schema.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open library database %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply library schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// libraryRow maps the tags column, which LibraryItem keeps out of its db
// mapping because it is stored as a JSON blob.
type libraryRow struct {
	domain.LibraryItem
	TagsJSON string `db:"tags"`
}

func (r *libraryRow) item() (domain.LibraryItem, error) {
	item := r.LibraryItem
	if r.TagsJSON != "" {
		var tags domain.TagSet
		if err := json.Unmarshal([]byte(r.TagsJSON), &tags); err != nil {
			return item, fmt.Errorf("decode tags for item %d: %w", item.ID, err)
		}
		item.Tags = &tags
	}
	return item, nil
}

func encodeTags(tags *domain.TagSet) (string, error) {
	if tags == nil {
		return "", nil
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(raw), nil
}

// Add inserts a new item at the end of the ordering. The duration policy
// is enforced here as the final gate before persistence.
func (s *Store) Add(ctx context.Context, item domain.LibraryItem) (domain.LibraryItem, error) {
	if err := policy.CheckMinutes(item.DurationMinutes).Violation(); err != nil {
		return domain.LibraryItem{}, err
	}
	tagsJSON, err := encodeTags(item.Tags)
	if err != nil {
		return domain.LibraryItem{}, err
	}

	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	var maxPos sql.NullInt64
	if err := s.db.GetContext(ctx, &maxPos,
		`SELECT MAX(position) FROM library_items`); err != nil {
		return domain.LibraryItem{}, fmt.Errorf("next position: %w", err)
	}
	item.Position = int(maxPos.Int64) + 1

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO library_items
			(video_id, title, url, channel_name, duration_minutes, prompt,
			 category, view_count, like_count, published_at, tags, position,
			 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.VideoID, item.Title, item.URL, item.ChannelName,
		item.DurationMinutes, item.Prompt, item.Category,
		item.ViewCount, item.LikeCount, item.PublishedAt,
		tagsJSON, item.Position, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return domain.LibraryItem{}, fmt.Errorf("insert library item: %w", err)
	}
	item.ID, err = res.LastInsertId()
	if err != nil {
		return domain.LibraryItem{}, fmt.Errorf("insert library item: %w", err)
	}
	return item, nil
}

// List returns all items in display order.
func (s *Store) List(ctx context.Context) ([]domain.LibraryItem, error) {
	var rows []libraryRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT * FROM library_items ORDER BY position, id`); err != nil {
		return nil, fmt.Errorf("list library items: %w", err)
	}
	items := make([]domain.LibraryItem, 0, len(rows))
	for i := range rows {
		item, err := rows[i].item()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Get returns one item by id.
func (s *Store) Get(ctx context.Context, id int64) (domain.LibraryItem, error) {
	var row libraryRow
	err := s.db.GetContext(ctx, &row,
		`SELECT * FROM library_items WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.LibraryItem{}, ErrItemNotFound
	}
	if err != nil {
		return domain.LibraryItem{}, fmt.Errorf("get library item %d: %w", id, err)
	}
	return row.item()
}

// Update rewrites a stored item's mutable fields. The duration policy is
// re-checked so an edit cannot push a committed item over the ceiling.
func (s *Store) Update(ctx context.Context, item domain.LibraryItem) (domain.LibraryItem, error) {
	if err := policy.CheckMinutes(item.DurationMinutes).Violation(); err != nil {
		return domain.LibraryItem{}, err
	}
	tagsJSON, err := encodeTags(item.Tags)
	if err != nil {
		return domain.LibraryItem{}, err
	}
	item.UpdatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		UPDATE library_items SET
			title = ?, url = ?, channel_name = ?, duration_minutes = ?,
			prompt = ?, category = ?, tags = ?, position = ?, updated_at = ?
		WHERE id = ?`,
		item.Title, item.URL, item.ChannelName, item.DurationMinutes,
		item.Prompt, item.Category, tagsJSON, item.Position,
		item.UpdatedAt, item.ID)
	if err != nil {
		return domain.LibraryItem{}, fmt.Errorf("update library item %d: %w", item.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.LibraryItem{}, fmt.Errorf("update library item %d: %w", item.ID, err)
	}
	if affected == 0 {
		return domain.LibraryItem{}, ErrItemNotFound
	}
	return s.Get(ctx, item.ID)
}

// Delete removes one item by id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM library_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete library item %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete library item %d: %w", id, err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}
