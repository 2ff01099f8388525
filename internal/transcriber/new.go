package transcriber

import (
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"

	"github.com/generative-ai-on-aws/summarize-me/internal/config"
	"github.com/generative-ai-on-aws/summarize-me/internal/logger"
)

type implTranscriber struct {
	bucket     string
	cfg        config.TranscriberConfig
	uploader   Uploader
	jobs       JobAPI
	httpClient *http.Client
	logger     logger.Logger
	newJobName func(base string) string
}

// New creates a Transcriber over the given storage and job backends.
func New(bucket string, cfg config.TranscriberConfig, uploader Uploader, jobs JobAPI, httpClient *http.Client, log logger.Logger) Transcriber {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &implTranscriber{
		bucket:     bucket,
		cfg:        cfg,
		uploader:   uploader,
		jobs:       jobs,
		httpClient: httpClient,
		logger:     log,
		newJobName: jobName,
	}
}

// NewAWS wires S3 and Amazon Transcribe clients from an AWS config.
func NewAWS(awsCfg aws.Config, cfg *config.Config, log logger.Logger) Transcriber {
	uploader := manager.NewUploader(s3.NewFromConfig(awsCfg))
	jobs := transcribe.NewFromConfig(awsCfg)
	return New(cfg.AWS.Bucket, cfg.Transcriber, uploader, jobs, nil, log)
}
