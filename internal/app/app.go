package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/generative-ai-on-aws/summarize-me/internal/config"
	"github.com/generative-ai-on-aws/summarize-me/internal/index"
	"github.com/generative-ai-on-aws/summarize-me/internal/logger"
	"github.com/generative-ai-on-aws/summarize-me/internal/pipeline"
	"github.com/generative-ai-on-aws/summarize-me/internal/summarizer"
	"github.com/generative-ai-on-aws/summarize-me/internal/transcriber"
	"github.com/generative-ai-on-aws/summarize-me/internal/video"
)

// App holds the wired clients used by the commands.
type App struct {
	Config    *config.Config
	Logger    logger.Logger
	AWSConfig aws.Config
	Pipeline  pipeline.Pipeline
	Index     index.Index
}

// New wires every backend client from cfg. No network calls are made here.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.New(cfg.Logging.Level)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	provider, err := summarizer.NewProvider(ctx, cfg.Summarizer, awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create summarizer provider: %w", err)
	}

	backend, err := index.NewWeaviateBackend(cfg.Index.Host, cfg.Index.Scheme)
	if err != nil {
		return nil, err
	}
	idx := index.New(backend, cfg.Index, log)

	tr := transcriber.NewAWS(awsCfg, cfg, log)
	sum := summarizer.New(cfg.Summarizer, provider, log)
	gen := video.New(cfg.Video, &http.Client{Timeout: 5 * time.Minute}, log)

	return &App{
		Config:    cfg,
		Logger:    log,
		AWSConfig: awsCfg,
		Pipeline:  pipeline.New(cfg, tr, sum, gen, idx, log),
		Index:     idx,
	}, nil
}
