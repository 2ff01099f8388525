package summarizer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/generative-ai-on-aws/summarize-me/internal/config"
	"github.com/generative-ai-on-aws/summarize-me/internal/logger"
)

type implSummarizer struct {
	provider  Provider
	maxItems  int
	reprompts int
	parallel  bool
	logger    logger.Logger
}

// New creates a Summarizer on top of the given provider.
func New(cfg config.SummarizerConfig, provider Provider, log logger.Logger) Summarizer {
	return &implSummarizer{
		provider:  provider,
		maxItems:  cfg.MaxItems,
		reprompts: cfg.Reprompts(),
		parallel:  cfg.Parallel,
		logger:    log,
	}
}

// NewProvider builds the provider selected by cfg.Provider.
func NewProvider(ctx context.Context, cfg config.SummarizerConfig, awsCfg aws.Config) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderBedrock, "":
		return NewBedrockProvider(bedrockruntime.NewFromConfig(awsCfg), cfg), nil
	case config.ProviderGemini:
		return NewGeminiProvider(ctx, cfg, "")
	case config.ProviderOpenAI:
		return NewOpenAIProvider(cfg, ""), nil
	default:
		return nil, fmt.Errorf("unsupported summarizer provider %q", cfg.Provider)
	}
}
