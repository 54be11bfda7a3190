package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/linkhoard/linkhoard/app/database"
	"github.com/linkhoard/linkhoard/app/extract"
	"github.com/linkhoard/linkhoard/app/platform"
)

// Content longer than this is summarized before analysis.
const summarizeGate = 500

// Processor runs the ingestion pipeline for one URL: classify, extract
// metadata, fetch transcript (video only), summarize (size-gated), analyze,
// resolve collection, persist. Stages never re-enter earlier stages, and
// separate runs are independent.
type Processor struct {
	classifier  ClassifierInterface
	extractor   ExtractorInterface
	transcripts TranscriptFetcherInterface
	summarizer  SummarizerInterface
	analyzer    AnalyzerInterface
	resolver    *CollectionResolver
	itemRepo    database.ItemRepository
	timeout     time.Duration
}

func NewProcessor(classifier ClassifierInterface, extractor ExtractorInterface,
	transcripts TranscriptFetcherInterface, summarizer SummarizerInterface,
	analyzer AnalyzerInterface, resolver *CollectionResolver,
	itemRepo database.ItemRepository, timeout time.Duration) *Processor {
	return &Processor{
		classifier:  classifier,
		extractor:   extractor,
		transcripts: transcripts,
		summarizer:  summarizer,
		analyzer:    analyzer,
		resolver:    resolver,
		itemRepo:    itemRepo,
		timeout:     timeout,
	}
}

// Run ingests one URL and returns the persisted item. Enrichment failures
// degrade inside their components; only invalid input, AI transport
// failures, and store failures surface here.
func (p *Processor) Run(ctx context.Context, rawURL string) (*database.Item, error) {
	rawURL = strings.TrimSpace(rawURL)
	if !platform.IsValidURL(rawURL) {
		return nil, fmt.Errorf("%w: not a valid URL", ErrInvalidInput)
	}

	// Aggregate deadline: a slow upstream plus a slow model must not
	// compound into an unbounded run.
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	plat := p.classifier.Run(rawURL)

	meta := p.extractor.Run(ctx, rawURL, plat)

	var rawContent string
	if plat == platform.PlatformYouTube {
		transcript, err := p.transcripts.Run(ctx, rawURL)
		if err != nil {
			if errors.Is(err, extract.ErrInvalidVideoURL) {
				return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
			}
			return nil, err
		}
		rawContent = transcript
	}
	if rawContent == "" {
		rawContent = meta.Description
	}

	extractedContent := rawContent
	if len(rawContent) > summarizeGate {
		summary, err := p.summarizer.Run(ctx, rawContent)
		if err != nil {
			return nil, err
		}
		extractedContent = summary
	}

	analysis, err := p.analyzer.Run(ctx, rawURL, extractedContent, plat)
	if err != nil {
		return nil, err
	}

	collection, err := p.resolver.Run(analysis.CollectionName, analysis.Category)
	if err != nil {
		return nil, err
	}

	title := analysis.Title
	if title == "" {
		title = meta.Title
	}

	item, err := p.itemRepo.CreateItem(database.Item{
		URL:              rawURL,
		Platform:         string(plat),
		Title:            title,
		Summary:          analysis.Summary,
		ExtractedContent: extractedContent,
		Thumbnail:        meta.Thumbnail,
		Category:         analysis.Category,
		Tags:             analysis.Tags,
		CollectionID:     collection.ID,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("URL processed",
		"url", rawURL,
		"platform", plat,
		"category", item.Category,
		"collection", collection.Name,
		"duration", time.Since(start))

	return item, nil
}
