package database

import (
	"time"
)

// Category is the closed set of topical buckets. AI output outside the set
// is coerced to CategoryOther, never rejected.
type Category string

const (
	CategoryTravel        Category = "travel"
	CategoryCooking       Category = "cooking"
	CategoryPhotography   Category = "photography"
	CategoryFitness       Category = "fitness"
	CategoryDev           Category = "dev"
	CategoryFinance       Category = "finance"
	CategoryMusic         Category = "music"
	CategoryEducation     Category = "education"
	CategoryEntertainment Category = "entertainment"
	CategoryNews          Category = "news"
	CategoryOther         Category = "other"
)

// Categories lists all valid categories in prompt order.
var Categories = []Category{
	CategoryTravel, CategoryCooking, CategoryPhotography, CategoryFitness,
	CategoryDev, CategoryFinance, CategoryMusic, CategoryEducation,
	CategoryEntertainment, CategoryNews, CategoryOther,
}

func (c Category) IsKnown() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Normalize coerces unknown categories to the catch-all.
func (c Category) Normalize() Category {
	if c.IsKnown() {
		return c
	}
	return CategoryOther
}

type Collection struct {
	ID        string
	Name      string // Unique under case-insensitive comparison
	Category  Category
	CreatedAt time.Time
}

type Item struct {
	ID               string
	URL              string
	Platform         string
	Title            string
	Summary          string
	ExtractedContent string // Possibly summarized raw content used as AI input
	Thumbnail        string // Optional, empty when none
	Category         Category
	Tags             []string // Capped at 5 elements
	CollectionID     string
	CreatedAt        time.Time
}
