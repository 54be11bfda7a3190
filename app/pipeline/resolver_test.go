package pipeline

import (
	"testing"
	"time"

	"github.com/linkhoard/linkhoard/app/database"
)

func TestCollectionResolver_Run_CreatesNewCollection(t *testing.T) {
	repo := &memCollectionRepo{}
	resolver := NewCollectionResolver(repo)

	collection, err := resolver.Run("Japan Travel", database.CategoryTravel)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if collection.Name != "Japan Travel" {
		t.Errorf("Name = %q", collection.Name)
	}
	if collection.Category != database.CategoryTravel {
		t.Errorf("Category = %q", collection.Category)
	}
	if count, _ := repo.GetCollectionCount(); count != 1 {
		t.Errorf("Collection count = %d, expected 1", count)
	}
}

func TestCollectionResolver_Run_ReusesExistingCaseInsensitive(t *testing.T) {
	repo := &memCollectionRepo{collections: []database.Collection{{
		ID:        "col-existing",
		Name:      "Japan Travel",
		Category:  database.CategoryTravel,
		CreatedAt: time.Now().UTC(),
	}}}
	resolver := NewCollectionResolver(repo)

	collection, err := resolver.Run("japan travel", database.CategoryFinance)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if collection.ID != "col-existing" {
		t.Errorf("ID = %q, expected the existing collection", collection.ID)
	}
	// The stored category wins over the new item's proposal.
	if collection.Category != database.CategoryTravel {
		t.Errorf("Category = %q, expected the original %q", collection.Category, database.CategoryTravel)
	}
	if repo.createCalls != 0 {
		t.Errorf("CreateCollection called %d times, expected 0", repo.createCalls)
	}
}

func TestCollectionResolver_Run_EmptyNameDefaults(t *testing.T) {
	repo := &memCollectionRepo{}
	resolver := NewCollectionResolver(repo)

	collection, err := resolver.Run("", database.CategoryOther)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if collection.Name != "General" {
		t.Errorf("Name = %q, expected %q", collection.Name, "General")
	}
}
