package extract

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrInvalidVideoURL marks a video-platform URL with no parseable video
// identifier. Callers gate on platform before invoking the fetcher, so this
// only fires on malformed video links.
var ErrInvalidVideoURL = errors.New("invalid video URL")

const transcriptFetchTimeout = 15 * time.Second

// TranscriptFetcher retrieves video captions from the public timedtext
// endpoint. Defined for the video platform only.
type TranscriptFetcher struct {
	httpClient *http.Client
	userAgent  string

	// Overridable in tests
	timedTextURL string
}

func NewTranscriptFetcher(httpClient *http.Client, userAgent string) *TranscriptFetcher {
	return &TranscriptFetcher{
		httpClient:   httpClient,
		userAgent:    userAgent,
		timedTextURL: "https://video.google.com/timedtext",
	}
}

type timedTextResponse struct {
	Segments []struct {
		Text string `xml:",chardata"`
	} `xml:"text"`
}

// Run fetches the caption track and concatenates its segments in original
// order with single-space separators. A URL without a video identifier is
// an error; a video without captions is not — fetch and parse failures
// yield an empty transcript so ingestion continues.
func (f *TranscriptFetcher) Run(ctx context.Context, rawURL string) (string, error) {
	videoID, ok := ExtractVideoID(rawURL)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidVideoURL, rawURL)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, transcriptFetchTimeout)
	defer cancel()

	captionsURL := fmt.Sprintf("%s?lang=en&v=%s", f.timedTextURL, url.QueryEscape(videoID))

	body, err := fetchBody(timeoutCtx, f.httpClient, captionsURL, f.userAgent)
	if err != nil {
		slog.Debug("Transcript fetch failed", "video_id", videoID, "error", err)
		return "", nil
	}

	var captions timedTextResponse
	if err := xml.Unmarshal(body, &captions); err != nil {
		slog.Debug("Transcript parse failed", "video_id", videoID, "error", err)
		return "", nil
	}

	parts := make([]string, 0, len(captions.Segments))
	for _, segment := range captions.Segments {
		text := strings.TrimSpace(decodeHTMLEntities(segment.Text))
		if text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, " "), nil
}
