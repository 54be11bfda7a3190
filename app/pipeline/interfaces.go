package pipeline

import (
	"context"

	"github.com/linkhoard/linkhoard/app/ai"
	"github.com/linkhoard/linkhoard/app/extract"
	"github.com/linkhoard/linkhoard/app/platform"
)

type ClassifierInterface interface {
	Run(rawURL string) platform.Platform
}

type ExtractorInterface interface {
	Run(ctx context.Context, rawURL string, p platform.Platform) extract.Metadata
}

type TranscriptFetcherInterface interface {
	Run(ctx context.Context, rawURL string) (string, error)
}

type SummarizerInterface interface {
	Run(ctx context.Context, text string) (string, error)
}

type AnalyzerInterface interface {
	Run(ctx context.Context, url, content string, p platform.Platform) (ai.Analysis, error)
}

var _ ClassifierInterface = (*platform.Classifier)(nil)
var _ ExtractorInterface = (*extract.Extractor)(nil)
var _ TranscriptFetcherInterface = (*extract.TranscriptFetcher)(nil)
var _ SummarizerInterface = (*ai.Summarizer)(nil)
var _ AnalyzerInterface = (*ai.Analyzer)(nil)
