package summarizer

import (
	"context"
	"strings"
)

// Summarizer extracts key points and action items from a meeting transcript.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (SummaryPair, error)
}

// Provider sends one prompt to a language model and returns its text reply.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// SummaryPair holds the two bounded bullet lists produced for a meeting.
type SummaryPair struct {
	KeyPoints   []string
	ActionItems []string
}

// KeyPointsText renders the key points as newline-delimited "- " bullets.
func (s SummaryPair) KeyPointsText() string {
	return RenderBullets(s.KeyPoints)
}

// ActionItemsText renders the action items as newline-delimited "- " bullets.
func (s SummaryPair) ActionItemsText() string {
	return RenderBullets(s.ActionItems)
}

// Empty reports whether both lists are empty.
func (s SummaryPair) Empty() bool {
	return len(s.KeyPoints) == 0 && len(s.ActionItems) == 0
}

func RenderBullets(items []string) string {
	if len(items) == 0 {
		return ""
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}
