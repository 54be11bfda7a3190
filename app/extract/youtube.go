package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"

	"github.com/linkhoard/linkhoard/app/platform"
)

// Accepted URL shapes: canonical watch link, youtu.be short link, embed
// link, and shorts link.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/shorts/([^&\n?#]+)`),
}

// ExtractVideoID parses the YouTube video identifier out of a URL.
func ExtractVideoID(rawURL string) (string, bool) {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(rawURL); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// youtubeMetadata derives the canonical thumbnail from the video ID without
// any network call, then attempts an oEmbed lookup to refine title and
// thumbnail. oEmbed failures silently keep the derived defaults.
func (e *Extractor) youtubeMetadata(ctx context.Context, rawURL string) Metadata {
	meta := Metadata{
		URL:      rawURL,
		Platform: platform.PlatformYouTube,
		Title:    "YouTube Video",
	}

	videoID, ok := ExtractVideoID(rawURL)
	if !ok {
		return meta
	}

	meta.Thumbnail = fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", videoID)

	title, thumbnail, err := e.fetchOEmbed(ctx, e.youtubeOEmbedURL, rawURL)
	if err != nil {
		slog.Debug("YouTube oEmbed lookup failed, keeping derived thumbnail", "url", rawURL, "error", err)
		return meta
	}

	if title != "" {
		meta.Title = title
	}
	if thumbnail != "" {
		meta.Thumbnail = thumbnail
	}

	return meta
}

type oembedResponse struct {
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
}

func (e *Extractor) fetchOEmbed(ctx context.Context, endpoint, contentURL string) (string, string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	oembedURL := fmt.Sprintf("%s?url=%s&format=json", endpoint, url.QueryEscape(contentURL))

	body, err := fetchBody(timeoutCtx, e.httpClient, oembedURL, e.userAgent)
	if err != nil {
		return "", "", err
	}

	var resp oembedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", "", fmt.Errorf("failed to parse oEmbed response: %w", err)
	}

	return resp.Title, resp.ThumbnailURL, nil
}
