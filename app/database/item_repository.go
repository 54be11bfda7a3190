package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ ItemRepository = (*ItemRepo)(nil)

// ItemRepo handles database operations for saved items
type ItemRepo struct {
	db       *DB
	notifier *insertNotifier
}

func NewItemRepository(db *DB) *ItemRepo {
	return &ItemRepo{
		db:       db,
		notifier: newInsertNotifier(),
	}
}

func (r *ItemRepo) ListItems(collectionID string) ([]Item, error) {
	query := `
		SELECT id, url, platform, title, summary, extracted_content,
		       COALESCE(thumbnail, ''), category, tags, collection_id, created_at
		FROM items
	`
	var args []interface{}
	if collectionID != "" {
		query += ` WHERE collection_id = ?`
		args = append(args, collectionID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	return items, rows.Err()
}

func (r *ItemRepo) GetItem(id string) (*Item, error) {
	row := r.db.QueryRow(`
		SELECT id, url, platform, title, summary, extracted_content,
		       COALESCE(thumbnail, ''), category, tags, collection_id, created_at
		FROM items
		WHERE id = ?
	`, id)

	item, err := scanItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return item, nil
}

// CreateItem persists the item, assigning ID and creation timestamp.
// Insert subscribers are notified after the write succeeds.
func (r *ItemRepo) CreateItem(item Item) (*Item, error) {
	item.ID = uuid.NewString()
	item.CreatedAt = time.Now().UTC()
	item.Category = item.Category.Normalize()

	if item.Tags == nil {
		item.Tags = []string{}
	}
	tags, err := json.Marshal(item.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}

	var thumbnail sql.NullString
	if item.Thumbnail != "" {
		thumbnail = sql.NullString{String: item.Thumbnail, Valid: true}
	}

	_, err = r.db.Exec(`
		INSERT INTO items (
			id, url, platform, title, summary, extracted_content,
			thumbnail, category, tags, collection_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.ID, item.URL, item.Platform, item.Title, item.Summary,
		item.ExtractedContent, thumbnail, item.Category, string(tags),
		item.CollectionID, item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to store item: %w", err)
	}

	r.notifier.notify(item)

	return &item, nil
}

func (r *ItemRepo) GetItemCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

func (r *ItemRepo) SubscribeInserts(fn func(Item)) func() {
	return r.notifier.subscribe(fn)
}

func scanItem(scan func(dest ...interface{}) error) (*Item, error) {
	var item Item
	var tags string
	err := scan(&item.ID, &item.URL, &item.Platform, &item.Title,
		&item.Summary, &item.ExtractedContent, &item.Thumbnail,
		&item.Category, &tags, &item.CollectionID, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan item: %w", err)
	}

	if err := json.Unmarshal([]byte(tags), &item.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}

	return &item, nil
}
