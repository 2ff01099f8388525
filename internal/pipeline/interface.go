package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/generative-ai-on-aws/summarize-me/internal/filestore"
	"github.com/generative-ai-on-aws/summarize-me/internal/index"
	"github.com/generative-ai-on-aws/summarize-me/internal/summarizer"
)

// Pipeline turns one meeting recording into transcript, summaries, video and index entry.
type Pipeline interface {
	Run(ctx context.Context, inputPath string) (*Result, error)
}

type Stage string

const (
	StageStart         Stage = "START"
	StageTranscribe    Stage = "TRANSCRIBE"
	StageSummarize     Stage = "SUMMARIZE"
	StageGenerateVideo Stage = "GENERATE_VIDEO"
	StageIndex         Stage = "INDEX_AND_SEARCH"
	StageDone          Stage = "DONE"
)

// StageError reports the stage a run stopped at.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Result lists everything a successful run produced.
type Result struct {
	Input           filestore.MeetingInput
	Transcript      string
	Summary         summarizer.SummaryPair
	TranscriptPath  string
	KeyPointsPath   string
	ActionItemsPath string
	ReportPath      string
	VideoPath       string
	SearchResults   []index.SearchResult
	// IndexErr is set when indexing or search failed; the run still counts as successful.
	IndexErr error
	Duration time.Duration
}
