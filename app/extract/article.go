package extract

import (
	"bytes"
	"context"
	"log/slog"
	"net/url"
	"strings"

	readability "codeberg.org/readeck/go-readability"

	"github.com/linkhoard/linkhoard/app/platform"
)

// articleMetadata handles long-form platforms (Medium, Substack). On top of
// the Open Graph scan it runs readability over the page so the description
// carries the actual article text, which downstream summarization and
// analysis feed on. Extraction failures keep the Open Graph result.
func (e *Extractor) articleMetadata(ctx context.Context, rawURL string) Metadata {
	meta := Metadata{
		URL:      rawURL,
		Platform: platform.PlatformArticle,
		Title:    hostnameOf(rawURL),
	}

	body, err := e.fetchPage(ctx, rawURL)
	if err != nil {
		slog.Debug("Article fetch failed, keeping defaults", "url", rawURL, "error", err)
		return meta
	}

	applyOpenGraph(&meta, body)

	pageURL, _ := url.Parse(rawURL)
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		slog.Debug("Readability extraction failed, keeping Open Graph description", "url", rawURL, "error", err)
		return meta
	}

	if text := strings.TrimSpace(article.TextContent); text != "" {
		meta.Description = text
	}
	if meta.Title == hostnameOf(rawURL) && article.Title != "" {
		meta.Title = article.Title
	}

	return meta
}
