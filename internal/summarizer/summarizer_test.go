package summarizer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/generative-ai-on-aws/summarize-me/internal/config"
	"github.com/generative-ai-on-aws/summarize-me/internal/errs"
	"github.com/generative-ai-on-aws/summarize-me/internal/logger"
)

// scriptedProvider answers by prompt kind, consuming replies in order.
type scriptedProvider struct {
	mu      sync.Mutex
	key     []string
	action  []string
	err     error
	prompts []string
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Complete(ctx context.Context, prompt string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts = append(p.prompts, prompt)
	if p.err != nil {
		return "", p.err
	}
	queue := &p.key
	if strings.Contains(prompt, "action items from") {
		queue = &p.action
	}
	if len(*queue) == 0 {
		return "", nil
	}
	reply := (*queue)[0]
	*queue = (*queue)[1:]
	return reply, nil
}

func testConfig() config.SummarizerConfig {
	cfg := config.Default().Summarizer
	return cfg
}

func TestSummarize(t *testing.T) {
	provider := &scriptedProvider{
		key:    []string{"- Budget approved\n- Launch moved to May"},
		action: []string{"1. Alice to send deck\n2. Bob to book room"},
	}
	s := New(testConfig(), provider, logger.Nop())

	pair, err := s.Summarize(context.Background(), "hello team")

	require.NoError(t, err)
	assert.Equal(t, []string{"Budget approved", "Launch moved to May"}, pair.KeyPoints)
	assert.Equal(t, []string{"Alice to send deck", "Bob to book room"}, pair.ActionItems)
	assert.Equal(t, "- Budget approved\n- Launch moved to May", pair.KeyPointsText())
	require.Len(t, provider.prompts, 2)
	assert.Contains(t, provider.prompts[0], "max 5 key points")
	assert.Contains(t, provider.prompts[0], "Don't include any action items")
	assert.True(t, strings.HasSuffix(provider.prompts[0], "\n\nhello team"))
	assert.Contains(t, provider.prompts[1], "max 5 action items")
}

func TestSummarize_EmptyRepliesAreValid(t *testing.T) {
	s := New(testConfig(), &scriptedProvider{}, logger.Nop())

	pair, err := s.Summarize(context.Background(), "")

	require.NoError(t, err)
	assert.True(t, pair.Empty())
	assert.Equal(t, "", pair.KeyPointsText())
	assert.Equal(t, "", pair.ActionItemsText())
}

func TestSummarize_RepromptsMalformedOutput(t *testing.T) {
	provider := &scriptedProvider{
		key:    []string{"Sure! Here are the key points:\n- One", "- One\n- Two"},
		action: []string{"- Do it"},
	}
	s := New(testConfig(), provider, logger.Nop())

	pair, err := s.Summarize(context.Background(), "transcript")

	require.NoError(t, err)
	assert.Equal(t, []string{"One", "Two"}, pair.KeyPoints)
	require.Len(t, provider.prompts, 3)
	assert.Contains(t, provider.prompts[1], "not a plain bullet list")
}

func TestSummarize_LenientFallbackCapsItems(t *testing.T) {
	long := "Here you go:\n- a\n- b\n- c\n- d\n- e\n- f\n- g"
	provider := &scriptedProvider{
		key:    []string{long, long},
		action: []string{"- x"},
	}
	s := New(testConfig(), provider, logger.Nop())

	pair, err := s.Summarize(context.Background(), "transcript")

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, pair.KeyPoints)
}

func TestSummarize_NoReprompts(t *testing.T) {
	zero := 0
	cfg := testConfig()
	cfg.MaxReprompts = &zero
	provider := &scriptedProvider{
		key:    []string{"The team agreed on the budget."},
		action: []string{"- x"},
	}
	s := New(cfg, provider, logger.Nop())

	pair, err := s.Summarize(context.Background(), "transcript")

	require.NoError(t, err)
	assert.Equal(t, []string{"The team agreed on the budget."}, pair.KeyPoints)
	assert.Len(t, provider.prompts, 2)
}

func TestSummarize_FailureReturnsNoPartialResult(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		cfg := testConfig()
		cfg.Parallel = parallel
		s := New(cfg, &scriptedProvider{err: errors.New("ThrottlingException")}, logger.Nop())

		pair, err := s.Summarize(context.Background(), "transcript")

		require.Error(t, err)
		assert.Equal(t, errs.KindSummarization, errs.KindOf(err))
		assert.Contains(t, err.Error(), "ThrottlingException")
		assert.True(t, pair.Empty())
	}
}

func TestSummarize_Parallel(t *testing.T) {
	cfg := testConfig()
	cfg.Parallel = true
	provider := &scriptedProvider{
		key:    []string{"- k"},
		action: []string{"- a"},
	}
	s := New(cfg, provider, logger.Nop())

	pair, err := s.Summarize(context.Background(), "transcript")

	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, pair.KeyPoints)
	assert.Equal(t, []string{"a"}, pair.ActionItems)
}

func TestParseStrict(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		max    int
		want   []string
		wantOK bool
	}{
		{"empty", "", 5, nil, true},
		{"dashes", "- a\n\n- b\n", 5, []string{"a", "b"}, true},
		{"mixed markers", "* a\n• b\n3) c", 5, []string{"a", "b", "c"}, true},
		{"bold stripped", "- **Owner:** Alice", 5, []string{"Owner: Alice"}, true},
		{"preamble", "Here are the points:\n- a", 5, nil, false},
		{"too many", "- a\n- b\n- c", 2, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseStrict(tt.text, tt.max)
			if ok != tt.wantOK {
				t.Fatalf("parseStrict() ok = %v, want %v", ok, tt.wantOK)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
