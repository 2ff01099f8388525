package index

import (
	"time"

	"github.com/generative-ai-on-aws/summarize-me/internal/config"
	"github.com/generative-ai-on-aws/summarize-me/internal/logger"
)

type implIndex struct {
	backend Backend
	cfg     config.IndexConfig
	logger  logger.Logger
	now     func() time.Time
}

// New creates an Index over backend.
func New(backend Backend, cfg config.IndexConfig, log logger.Logger) Index {
	return &implIndex{
		backend: backend,
		cfg:     cfg,
		logger:  log,
		now:     time.Now,
	}
}
