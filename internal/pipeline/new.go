package pipeline

import (
	"github.com/generative-ai-on-aws/summarize-me/internal/config"
	"github.com/generative-ai-on-aws/summarize-me/internal/index"
	"github.com/generative-ai-on-aws/summarize-me/internal/logger"
	"github.com/generative-ai-on-aws/summarize-me/internal/summarizer"
	"github.com/generative-ai-on-aws/summarize-me/internal/transcriber"
	"github.com/generative-ai-on-aws/summarize-me/internal/video"
)

type implPipeline struct {
	cfg         *config.Config
	transcriber transcriber.Transcriber
	summarizer  summarizer.Summarizer
	video       video.Generator
	index       index.Index
	logger      logger.Logger
	metrics     *metrics
}

// New creates a Pipeline from its stage clients.
func New(cfg *config.Config, tr transcriber.Transcriber, sum summarizer.Summarizer, gen video.Generator, idx index.Index, log logger.Logger) Pipeline {
	return &implPipeline{
		cfg:         cfg,
		transcriber: tr,
		summarizer:  sum,
		video:       gen,
		index:       idx,
		logger:      log,
		metrics:     newMetrics(),
	}
}
