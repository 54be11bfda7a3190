package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ CollectionRepository = (*CollectionRepo)(nil)

// CollectionRepo handles database operations for collections
type CollectionRepo struct {
	db *DB
}

func NewCollectionRepository(db *DB) *CollectionRepo {
	return &CollectionRepo{db: db}
}

func (r *CollectionRepo) ListCollections() ([]Collection, error) {
	rows, err := r.db.Query(`
		SELECT id, name, category, created_at
		FROM collections
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	var collections []Collection
	for rows.Next() {
		var c Collection
		if err := rows.Scan(&c.ID, &c.Name, &c.Category, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		collections = append(collections, c)
	}

	return collections, rows.Err()
}

func (r *CollectionRepo) GetCollection(id string) (*Collection, error) {
	var c Collection
	err := r.db.QueryRow(`
		SELECT id, name, category, created_at
		FROM collections
		WHERE id = ?
	`, id).Scan(&c.ID, &c.Name, &c.Category, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}

	return &c, nil
}

// FindCollectionByName looks up a collection by name. The name column
// carries the NOCASE collation, so matching is case-insensitive.
func (r *CollectionRepo) FindCollectionByName(name string) (*Collection, error) {
	var c Collection
	err := r.db.QueryRow(`
		SELECT id, name, category, created_at
		FROM collections
		WHERE name = ?
	`, name).Scan(&c.ID, &c.Name, &c.Category, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find collection by name: %w", err)
	}

	return &c, nil
}

// CreateCollection inserts a new collection, or returns the existing one
// when a concurrent ingestion already created a collection with the same
// name in any casing. The unique NOCASE constraint makes the read-check-
// create race converge on a single row; the stored category is never
// revised by later writers.
func (r *CollectionRepo) CreateCollection(name string, category Category) (*Collection, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO collections (id, name, category, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (name) DO NOTHING
	`, id, name, category.Normalize(), now)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	collection, err := r.FindCollectionByName(name)
	if err != nil {
		return nil, err
	}
	if collection == nil {
		return nil, fmt.Errorf("collection %q missing after insert", name)
	}

	return collection, nil
}

func (r *CollectionRepo) GetCollectionCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM collections`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count collections: %w", err)
	}
	return count, nil
}
