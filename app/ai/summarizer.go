package ai

import (
	"context"
	"fmt"
)

const (
	summarizeMaxTokens = 2048
	summarizeInputSize = 10000
	summarizeThreshold = 100
)

// Summarizer compresses long transcripts into bullet-point key points.
type Summarizer struct {
	completer Completer
}

func NewSummarizer(completer Completer) *Summarizer {
	return &Summarizer{completer: completer}
}

// Run summarizes the text. Inputs under the threshold pass through without
// an AI call; input is truncated to a hard budget before sending. A
// degraded (non-text) reply returns the original text; a transport failure
// propagates. Never retried.
func (s *Summarizer) Run(ctx context.Context, text string) (string, error) {
	if len(text) < summarizeThreshold {
		return text, nil
	}

	input := text
	if len(input) > summarizeInputSize {
		input = input[:summarizeInputSize]
	}

	prompt := "Summarize the following video transcript into clear, structured key points. " +
		"Use bullet points. Be concise but comprehensive.\n\nTranscript:\n" + input

	reply, err := s.completer.Complete(ctx, prompt, summarizeMaxTokens)
	if err != nil {
		return "", fmt.Errorf("summarize transcript: %w", err)
	}
	if reply == "" {
		return text, nil
	}

	return reply, nil
}
