package api

import (
	"context"
	"time"

	"github.com/linkhoard/linkhoard/app/bot"
	"github.com/linkhoard/linkhoard/app/database"
	"github.com/linkhoard/linkhoard/app/pipeline"
)

type URLProcessorInterface interface {
	Run(ctx context.Context, rawURL string) (*database.Item, error)
}

type FeedImporterInterface interface {
	Run(ctx context.Context, feedURL string) ([]pipeline.ImportResult, error)
}

var _ URLProcessorInterface = (*pipeline.Processor)(nil)
var _ FeedImporterInterface = (*pipeline.FeedImporter)(nil)

type Handler struct {
	collectionRepo database.CollectionRepository
	itemRepo       database.ItemRepository
	processor      URLProcessorInterface
	importer       FeedImporterInterface
	botHandler     *bot.Handler // nil when the bot is disabled
}

// ItemResponse is the JSON shape for saved items.
type ItemResponse struct {
	ID               string    `json:"id"`
	URL              string    `json:"url"`
	Platform         string    `json:"platform"`
	Title            string    `json:"title"`
	Summary          string    `json:"summary"`
	ExtractedContent string    `json:"extracted_content"`
	Thumbnail        string    `json:"thumbnail,omitempty"`
	Category         string    `json:"category"`
	Tags             []string  `json:"tags"`
	CollectionID     string    `json:"collection_id"`
	CreatedAt        time.Time `json:"created_at"`
}

type CollectionResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

func newItemResponse(item database.Item) ItemResponse {
	tags := item.Tags
	if tags == nil {
		tags = []string{}
	}
	return ItemResponse{
		ID:               item.ID,
		URL:              item.URL,
		Platform:         item.Platform,
		Title:            item.Title,
		Summary:          item.Summary,
		ExtractedContent: item.ExtractedContent,
		Thumbnail:        item.Thumbnail,
		Category:         string(item.Category),
		Tags:             tags,
		CollectionID:     item.CollectionID,
		CreatedAt:        item.CreatedAt,
	}
}

func newCollectionResponse(c database.Collection) CollectionResponse {
	return CollectionResponse{
		ID:        c.ID,
		Name:      c.Name,
		Category:  string(c.Category),
		CreatedAt: c.CreatedAt,
	}
}
