package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/linkhoard/linkhoard/app/database"
	"github.com/linkhoard/linkhoard/app/platform"
)

const (
	feedFetchTimeout = 30 * time.Second
	feedImportLimit  = 20
)

type urlProcessor interface {
	Run(ctx context.Context, rawURL string) (*database.Item, error)
}

// ImportResult reports the outcome for one feed entry.
type ImportResult struct {
	URL    string
	ItemID string
	Error  string
}

// FeedImporter batch-ingests the entries of an RSS/Atom feed through the
// URL pipeline. Per-entry failures are reported, not fatal; an unfetchable
// or unparseable feed is.
type FeedImporter struct {
	httpClient *http.Client
	userAgent  string
	parser     *gofeed.Parser
	processor  urlProcessor
}

func NewFeedImporter(httpClient *http.Client, userAgent string, processor urlProcessor) *FeedImporter {
	return &FeedImporter{
		httpClient: httpClient,
		userAgent:  userAgent,
		parser:     gofeed.NewParser(),
		processor:  processor,
	}
}

func (i *FeedImporter) Run(ctx context.Context, feedURL string) ([]ImportResult, error) {
	if !platform.IsValidURL(feedURL) {
		return nil, fmt.Errorf("%w: not a valid URL", ErrInvalidInput)
	}

	feed, err := i.fetchFeed(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	entries := feed.Items
	if len(entries) > feedImportLimit {
		entries = entries[:feedImportLimit]
	}

	results := make([]ImportResult, 0, len(entries))
	for _, entry := range entries {
		if entry.Link == "" {
			continue
		}

		result := ImportResult{URL: entry.Link}
		item, err := i.processor.Run(ctx, entry.Link)
		if err != nil {
			slog.Warn("Feed entry import failed", "feed", feedURL, "entry", entry.Link, "error", err)
			result.Error = err.Error()
		} else {
			result.ItemID = item.ID
		}
		results = append(results, result)
	}

	slog.Info("Feed imported", "feed", feedURL, "title", feed.Title, "entries", len(results))

	return results, nil
}

func (i *FeedImporter) fetchFeed(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, feedFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", i.userAgent)

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	feed, err := i.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	return feed, nil
}
