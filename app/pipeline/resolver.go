package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/linkhoard/linkhoard/app/database"
)

// CollectionResolver finds or creates the collection an item is filed into.
// Matching is case-insensitive on name. An existing collection is returned
// unchanged: its stored category wins over whatever the new item proposes.
type CollectionResolver struct {
	collectionRepo database.CollectionRepository
}

func NewCollectionResolver(collectionRepo database.CollectionRepository) *CollectionResolver {
	return &CollectionResolver{collectionRepo: collectionRepo}
}

func (r *CollectionResolver) Run(name string, category database.Category) (*database.Collection, error) {
	if name == "" {
		name = "General"
	}

	existing, err := r.collectionRepo.FindCollectionByName(name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up collection: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	// The store's unique constraint on the name makes this safe against
	// concurrent first-time saves: the losing writer fetches the row the
	// winner created.
	collection, err := r.collectionRepo.CreateCollection(name, category)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	slog.Info("Collection created", "name", collection.Name, "category", collection.Category)

	return collection, nil
}
