package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/linkhoard/linkhoard/app/database"
	"github.com/linkhoard/linkhoard/app/platform"
)

const (
	analyzeMaxTokens   = 1024
	analyzeContentSize = 8000
	maxTags            = 5

	// DefaultCollectionName files items whose analysis carried no usable
	// collection suggestion.
	DefaultCollectionName = "General"
)

// Analysis is the structured result of content analysis. All fields are
// valid after Run: categories are coerced into the closed set, tags are
// capped, and a malformed model reply produces the deterministic fallback.
type Analysis struct {
	Title          string
	Summary        string
	Category       database.Category
	Tags           []string
	CollectionName string
	KeyPoints      []string
}

// Analyzer turns extracted content into title, summary, category, tags, and
// a collection suggestion via a single constrained completion.
type Analyzer struct {
	completer Completer
}

func NewAnalyzer(completer Completer) *Analyzer {
	return &Analyzer{completer: completer}
}

// rawAnalysis mirrors the JSON object the model is instructed to return.
// Unmarshaling is strict: a reply with wrong field types fails the parse
// and falls back.
type rawAnalysis struct {
	Title          string   `json:"title"`
	Summary        string   `json:"summary"`
	Category       string   `json:"category"`
	Tags           []string `json:"tags"`
	CollectionName string   `json:"collectionName"`
	KeyPoints      []string `json:"keyPoints"`
}

// Run analyzes content for a URL. A transport failure from the completer
// propagates; a malformed reply never does.
func (a *Analyzer) Run(ctx context.Context, url, content string, p platform.Platform) (Analysis, error) {
	reply, err := a.completer.Complete(ctx, buildAnalyzePrompt(url, content, p), analyzeMaxTokens)
	if err != nil {
		return Analysis{}, fmt.Errorf("analyze content: %w", err)
	}

	var raw rawAnalysis
	if err := json.Unmarshal([]byte(reply), &raw); err != nil {
		slog.Debug("Analysis reply was not valid JSON, using fallback", "url", url, "error", err)
		return fallbackAnalysis(p), nil
	}

	return normalizeAnalysis(raw), nil
}

func buildAnalyzePrompt(url, content string, p platform.Platform) string {
	categories := make([]string, len(database.Categories))
	for i, c := range database.Categories {
		categories[i] = string(c)
	}

	contentSection := "No content available. Analyze based on URL."
	if content != "" {
		if len(content) > analyzeContentSize {
			content = content[:analyzeContentSize]
		}
		contentSection = "Content/Transcript:\n" + content
	}

	return fmt.Sprintf(`You are an AI content curator. Analyze the following content from %s (%s).

%s

Return a JSON object with these exact fields:
- title: string (concise title for this content, max 100 chars)
- summary: string (2-3 sentence summary of the main points)
- category: one of [%s]
- tags: array of 3-5 relevant tags (lowercase, no spaces, use hyphens)
- collectionName: string (suggested collection name, e.g. "Japan Travel", "Pasta Recipes", "React Tips")
- keyPoints: array of 3-5 short strings with the main takeaways

Respond ONLY with valid JSON, no markdown, no explanation.`,
		p, url, contentSection, strings.Join(categories, ", "))
}

func normalizeAnalysis(raw rawAnalysis) Analysis {
	analysis := Analysis{
		Title:          raw.Title,
		Summary:        raw.Summary,
		Category:       database.Category(raw.Category).Normalize(),
		Tags:           raw.Tags,
		CollectionName: raw.CollectionName,
		KeyPoints:      raw.KeyPoints,
	}

	if analysis.Title == "" {
		analysis.Title = "Untitled"
	}
	if analysis.Tags == nil {
		analysis.Tags = []string{}
	}
	if len(analysis.Tags) > maxTags {
		analysis.Tags = analysis.Tags[:maxTags]
	}
	if analysis.KeyPoints == nil {
		analysis.KeyPoints = []string{}
	}
	if analysis.CollectionName == "" {
		if raw.Category != "" {
			analysis.CollectionName = raw.Category
		} else {
			analysis.CollectionName = DefaultCollectionName
		}
	}

	return analysis
}

// fallbackAnalysis is the deterministic record used for any reply that
// fails strict JSON parsing.
func fallbackAnalysis(p platform.Platform) Analysis {
	return Analysis{
		Title:          "Untitled Content",
		Summary:        "Content saved from " + string(p),
		Category:       database.CategoryOther,
		Tags:           []string{},
		CollectionName: DefaultCollectionName,
		KeyPoints:      []string{},
	}
}
