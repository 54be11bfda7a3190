package bot

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to the Telegram bot API over plain HTTP.
type Client struct {
	token      string
	apiBase    string
	httpClient *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		token:      token,
		apiBase:    "https://api.telegram.org",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// WebhookSecret is the shared secret required to register the webhook:
// the first 10 characters of the bot token.
func (c *Client) WebhookSecret() string {
	if len(c.token) < 10 {
		return c.token
	}
	return c.token[:10]
}

// SendMessage posts a message to a chat. Markdown parse mode is optional
// because error replies may carry arbitrary upstream text.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, markdown bool) error {
	form := url.Values{}
	form.Set("chat_id", strconv.FormatInt(chatID, 10))
	form.Set("text", text)
	if markdown {
		form.Set("parse_mode", "Markdown")
	}

	return c.call(ctx, "sendMessage", form)
}

// SetWebhook registers the webhook URL with Telegram.
func (c *Client) SetWebhook(ctx context.Context, webhookURL string) error {
	form := url.Values{}
	form.Set("url", webhookURL)

	return c.call(ctx, "setWebhook", form)
}

func (c *Client) call(ctx context.Context, method string, form url.Values) error {
	if c.token == "" {
		return fmt.Errorf("telegram client misconfigured")
	}

	endpoint := fmt.Sprintf("%s/bot%s/%s", c.apiBase, c.token, method)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram error: %s", resp.Status)
	}

	return nil
}
