package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/linkhoard/linkhoard/app/database"
	"github.com/linkhoard/linkhoard/app/platform"
)

// Update is the subset of a Telegram webhook update the bot consumes.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

type Message struct {
	Chat Chat   `json:"chat"`
	Text string `json:"text"`
}

type Chat struct {
	ID int64 `json:"id"`
}

type URLProcessor interface {
	Run(ctx context.Context, rawURL string) (*database.Item, error)
}

// Handler turns Telegram messages into pipeline runs and replies with the
// saved item. One update is processed per invocation, synchronously.
type Handler struct {
	client    *Client
	processor URLProcessor
	appURL    string
}

func NewHandler(client *Client, processor URLProcessor, appURL string) *Handler {
	return &Handler{
		client:    client,
		processor: processor,
		appURL:    appURL,
	}
}

func (h *Handler) Client() *Client {
	return h.client
}

// HandleUpdate dispatches one webhook update. Reply failures are logged,
// never returned: Telegram retries the whole update on non-200 responses,
// which would re-run the pipeline.
func (h *Handler) HandleUpdate(ctx context.Context, update Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	switch {
	case strings.HasPrefix(text, "/start"):
		h.reply(ctx, chatID, h.welcomeMessage(), true)
	case strings.HasPrefix(text, "/help"):
		h.reply(ctx, chatID, h.helpMessage(), true)
	default:
		h.handleURL(ctx, chatID, text)
	}
}

func (h *Handler) handleURL(ctx context.Context, chatID int64, text string) {
	if !platform.IsValidURL(text) {
		h.reply(ctx, chatID, "Please send me a valid URL to save! 🔗\n\nExample: https://www.youtube.com/watch?v=...", false)
		return
	}

	h.reply(ctx, chatID, fmt.Sprintf("⏳ Got it! Processing your link...\n\n%s", text), false)

	item, err := h.processor.Run(ctx, text)
	if err != nil {
		slog.Error("Bot URL processing failed", "chat_id", chatID, "url", text, "error", err)
		h.reply(ctx, chatID, fmt.Sprintf("❌ Sorry, I couldn't process that URL.\n\nError: %s", err), false)
		return
	}

	tags := "none"
	if len(item.Tags) > 0 {
		tags = strings.Join(item.Tags, ", ")
	}

	h.reply(ctx, chatID, fmt.Sprintf(
		"✅ *Saved!*\n\n📌 *%s*\n📂 Category: %s\n🏷️ Tags: %s\n\n📝 *Summary:*\n%s\n\nView all items: %s",
		item.Title, item.Category, tags, item.Summary, h.appURL), true)
}

func (h *Handler) welcomeMessage() string {
	return fmt.Sprintf("👋 Welcome to *Linkhoard*! 🗺️\n\n"+
		"I help you save and organize content from anywhere.\n\n"+
		"*How to use:*\n"+
		"• Send me any URL (YouTube, articles, etc.)\n"+
		"• I'll extract, summarize, and categorize it\n"+
		"• View your saved content at %s\n\n"+
		"Try sending a YouTube URL!", h.appURL)
}

func (h *Handler) helpMessage() string {
	return "*Linkhoard Bot Commands:*\n\n" +
		"• Send any URL → auto-save & categorize\n" +
		"/start — Welcome message\n" +
		"/help — This message\n\n" +
		"*Supported platforms:*\n" +
		"YouTube, Twitter/X, Instagram, Reddit, Articles & more"
}

func (h *Handler) reply(ctx context.Context, chatID int64, text string, markdown bool) {
	if err := h.client.SendMessage(ctx, chatID, text, markdown); err != nil {
		slog.Warn("Failed to send Telegram reply", "chat_id", chatID, "error", err)
	}
}
