package extract

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/linkhoard/linkhoard/app/platform"
)

const fetchTimeout = 8 * time.Second

// Extractor resolves title, thumbnail, and description for a URL using
// per-platform strategies: oEmbed where a platform offers one, Open Graph
// scanning otherwise. Failures degrade to placeholders.
type Extractor struct {
	httpClient *http.Client
	userAgent  string

	// Endpoint bases, overridable in tests
	youtubeOEmbedURL   string
	tiktokOEmbedURL    string
	instagramOEmbedURL string
}

func NewExtractor(httpClient *http.Client, userAgent string) *Extractor {
	return &Extractor{
		httpClient:         httpClient,
		userAgent:          userAgent,
		youtubeOEmbedURL:   "https://www.youtube.com/oembed",
		tiktokOEmbedURL:    "https://www.tiktok.com/oembed",
		instagramOEmbedURL: "https://graph.facebook.com/v18.0/instagram_oembed",
	}
}

// Run extracts metadata for the URL. It never returns an error: every
// failure path keeps a best-effort default instead of aborting ingestion.
func (e *Extractor) Run(ctx context.Context, rawURL string, p platform.Platform) Metadata {
	switch p {
	case platform.PlatformYouTube:
		return e.youtubeMetadata(ctx, rawURL)
	case platform.PlatformTikTok:
		return e.oembedMetadata(ctx, rawURL, p, e.tiktokOEmbedURL, "TikTok Video")
	case platform.PlatformInstagram:
		return e.oembedMetadata(ctx, rawURL, p, e.instagramOEmbedURL, "Instagram Post")
	case platform.PlatformXiaohongshu:
		return xiaohongshuMetadata(rawURL)
	case platform.PlatformArticle:
		return e.articleMetadata(ctx, rawURL)
	default:
		return e.genericMetadata(ctx, rawURL, p)
	}
}

// oembedMetadata queries a platform's public oEmbed endpoint. Any failure
// keeps the placeholder title and a missing thumbnail; there are no retries.
func (e *Extractor) oembedMetadata(ctx context.Context, rawURL string, p platform.Platform, endpoint, placeholder string) Metadata {
	meta := Metadata{
		URL:      rawURL,
		Platform: p,
		Title:    placeholder,
	}

	title, thumbnail, err := e.fetchOEmbed(ctx, endpoint, rawURL)
	if err != nil {
		slog.Debug("oEmbed lookup failed, keeping defaults", "platform", p, "url", rawURL, "error", err)
		return meta
	}

	if title != "" {
		meta.Title = title
	}
	meta.Thumbnail = thumbnail

	return meta
}

var xiaohongshuNoteIDRe = regexp.MustCompile(`(?i)(?:/explore/|item/)([a-f0-9]+)`)

// xiaohongshuMetadata derives a placeholder title from the note identifier
// in the URL path. The platform has no public embed API, so no network I/O
// happens here.
func xiaohongshuMetadata(rawURL string) Metadata {
	title := "小紅書 內容"
	if m := xiaohongshuNoteIDRe.FindStringSubmatch(rawURL); m != nil {
		noteID := m[1]
		if len(noteID) > 8 {
			noteID = noteID[:8]
		}
		title = fmt.Sprintf("小紅書 筆記 #%s", noteID)
	}

	return Metadata{
		URL:      rawURL,
		Platform: platform.PlatformXiaohongshu,
		Title:    title,
	}
}

// genericMetadata fetches the page and scans it for Open Graph tags,
// falling back to the <title> tag, falling back to the URL's host name.
func (e *Extractor) genericMetadata(ctx context.Context, rawURL string, p platform.Platform) Metadata {
	meta := Metadata{
		URL:      rawURL,
		Platform: p,
		Title:    hostnameOf(rawURL),
	}

	body, err := e.fetchPage(ctx, rawURL)
	if err != nil {
		slog.Debug("Page fetch failed, keeping defaults", "url", rawURL, "error", err)
		return meta
	}

	applyOpenGraph(&meta, body)

	return meta
}

func (e *Extractor) fetchPage(ctx context.Context, rawURL string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	return fetchBody(timeoutCtx, e.httpClient, rawURL, e.userAgent)
}

func hostnameOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Hostname()
}

// decodeHTMLEntities covers the entities commonly seen in meta tag content.
func decodeHTMLEntities(s string) string {
	return strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&nbsp;", " ",
	).Replace(s)
}
