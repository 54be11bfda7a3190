package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/linkhoard/linkhoard/app/bot"
	"github.com/linkhoard/linkhoard/app/database"
	"github.com/linkhoard/linkhoard/app/pipeline"
)

func NewHandler(collectionRepo database.CollectionRepository, itemRepo database.ItemRepository,
	processor URLProcessorInterface, importer FeedImporterInterface, botHandler *bot.Handler) *Handler {
	return &Handler{
		collectionRepo: collectionRepo,
		itemRepo:       itemRepo,
		processor:      processor,
		importer:       importer,
		botHandler:     botHandler,
	}
}

type processRequest struct {
	URL string `json:"url" binding:"required"`
}

// CreateItem runs the ingestion pipeline for one URL.
func (h *Handler) CreateItem(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	item, err := h.processor.Run(c.Request.Context(), req.URL)
	if err != nil {
		if errors.Is(err, pipeline.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Error("URL processing failed", "url", req.URL, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, newItemResponse(*item))
}

func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.itemRepo.ListItems(c.Query("collection_id"))
	if err != nil {
		slog.Error("Database error", "operation", "list_items", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}

	responses := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, newItemResponse(item))
	}

	c.JSON(http.StatusOK, responses)
}

func (h *Handler) GetItem(c *gin.Context) {
	item, err := h.itemRepo.GetItem(c.Param("id"))
	if err != nil {
		slog.Error("Database error", "operation", "get_item", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch item"})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, newItemResponse(*item))
}

// StreamItems sends every item insert to the client as a server-sent event
// until the client disconnects.
func (h *Handler) StreamItems(c *gin.Context) {
	inserts := make(chan database.Item, 16)
	unsubscribe := h.itemRepo.SubscribeInserts(func(item database.Item) {
		select {
		case inserts <- item:
		default:
			// Slow consumer; drop rather than block the inserting pipeline.
		}
	})
	defer unsubscribe()

	c.Writer.Header().Set("Cache-Control", "no-cache")

	c.Stream(func(w io.Writer) bool {
		select {
		case item := <-inserts:
			c.SSEvent("item", newItemResponse(item))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func (h *Handler) ListCollections(c *gin.Context) {
	collections, err := h.collectionRepo.ListCollections()
	if err != nil {
		slog.Error("Database error", "operation", "list_collections", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch collections"})
		return
	}

	responses := make([]CollectionResponse, 0, len(collections))
	for _, collection := range collections {
		responses = append(responses, newCollectionResponse(collection))
	}

	c.JSON(http.StatusOK, responses)
}

// GetCollection returns a collection together with its items.
func (h *Handler) GetCollection(c *gin.Context) {
	collection, err := h.collectionRepo.GetCollection(c.Param("id"))
	if err != nil {
		slog.Error("Database error", "operation", "get_collection", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch collection"})
		return
	}
	if collection == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
		return
	}

	items, err := h.itemRepo.ListItems(collection.ID)
	if err != nil {
		slog.Error("Database error", "operation", "list_collection_items", "id", collection.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch collection items"})
		return
	}

	itemResponses := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		itemResponses = append(itemResponses, newItemResponse(item))
	}

	c.JSON(http.StatusOK, gin.H{
		"collection": newCollectionResponse(*collection),
		"items":      itemResponses,
	})
}

// ImportFeed batch-ingests the entries of an RSS/Atom feed.
func (h *Handler) ImportFeed(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	results, err := h.importer.Run(c.Request.Context(), req.URL)
	if err != nil {
		if errors.Is(err, pipeline.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Error("Feed import failed", "url", req.URL, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	imported := 0
	for _, result := range results {
		if result.Error == "" {
			imported++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"imported": imported,
		"total":    len(results),
		"results":  results,
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if itemCount, err := h.itemRepo.GetItemCount(); err == nil {
		health["items"] = itemCount
	}
	if collectionCount, err := h.collectionRepo.GetCollectionCount(); err == nil {
		health["collections"] = collectionCount
	}

	c.JSON(http.StatusOK, health)
}

// TelegramWebhook receives bot updates. It always answers 200 for decodable
// payloads: a non-200 makes Telegram redeliver the update, which would run
// the pipeline again for the same URL.
func (h *Handler) TelegramWebhook(c *gin.Context) {
	var update bot.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed update"})
		return
	}

	h.botHandler.HandleUpdate(c.Request.Context(), update)

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// RegisterTelegramWebhook points the bot at this deployment. Guarded by a
// shared secret derived from the bot token.
func (h *Handler) RegisterTelegramWebhook(baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		client := h.botHandler.Client()

		if c.Query("secret") != client.WebhookSecret() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		webhookURL := baseURL + "/webhook/telegram"
		if err := client.SetWebhook(c.Request.Context(), webhookURL); err != nil {
			slog.Error("Webhook registration failed", "url", webhookURL, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook registration failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "webhook": webhookURL})
	}
}
