package summarizer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/generative-ai-on-aws/summarize-me/internal/errs"
)

const keyPointsPrompt = `Provide a bullet list of max %d key points discussed in the following meeting transcription. Don't include any action items. Start directly with the bullet list, don't add any introduction:

%s`

const actionItemsPrompt = `Provide a bullet list of max %d action items from the following meeting transcription. Start directly with the bullet list, don't add any introduction:

%s`

const repromptPrefix = `Your previous answer was not a plain bullet list. Answer ONLY with at most %d lines, each line starting with "- ". No introduction, no headings, no closing remarks.

`

// Summarize runs the key point and action item prompts. Either failing fails the call.
func (s *implSummarizer) Summarize(ctx context.Context, transcript string) (SummaryPair, error) {
	var pair SummaryPair

	keyPoints := func(ctx context.Context) error {
		items, err := s.extract(ctx, "key points", fmt.Sprintf(keyPointsPrompt, s.maxItems, transcript))
		if err != nil {
			return err
		}
		pair.KeyPoints = items
		return nil
	}
	actionItems := func(ctx context.Context) error {
		items, err := s.extract(ctx, "action items", fmt.Sprintf(actionItemsPrompt, s.maxItems, transcript))
		if err != nil {
			return err
		}
		pair.ActionItems = items
		return nil
	}

	if s.parallel {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return keyPoints(gctx) })
		g.Go(func() error { return actionItems(gctx) })
		if err := g.Wait(); err != nil {
			return SummaryPair{}, err
		}
		return pair, nil
	}

	if err := keyPoints(ctx); err != nil {
		return SummaryPair{}, err
	}
	if err := actionItems(ctx); err != nil {
		return SummaryPair{}, err
	}
	return pair, nil
}

// extract asks the provider for a bullet list, re-prompting on malformed output.
func (s *implSummarizer) extract(ctx context.Context, what, prompt string) ([]string, error) {
	var reply string
	for attempt := 0; attempt <= s.reprompts; attempt++ {
		p := prompt
		if attempt > 0 {
			p = fmt.Sprintf(repromptPrefix, s.maxItems) + prompt
		}

		s.logger.Debug(ctx, "Calling %s for %s (attempt %d)", s.provider.Name(), what, attempt+1)
		var err error
		reply, err = s.provider.Complete(ctx, p)
		if err != nil {
			return nil, errs.New(errs.KindSummarization, "summarize "+what, fmt.Errorf("failed to summarize meeting: %w", err))
		}

		if items, ok := parseStrict(reply, s.maxItems); ok {
			return items, nil
		}
		s.logger.Warn(ctx, "Malformed %s reply from %s, attempt %d", what, s.provider.Name(), attempt+1)
	}

	items := parseLenient(reply, s.maxItems)
	s.logger.Warn(ctx, "Using %d salvaged %s from malformed reply", len(items), what)
	return items, nil
}
