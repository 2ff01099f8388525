package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/api/iterator"

	"github.com/generative-ai-on-aws/summarize-me/internal/filestore"
	"github.com/generative-ai-on-aws/summarize-me/internal/report"
	"github.com/generative-ai-on-aws/summarize-me/internal/video"
)

// Run executes every stage in order. Indexing failures are logged and kept in
// Result.IndexErr; any other failure stops the run with a *StageError.
func (p *implPipeline) Run(ctx context.Context, inputPath string) (*Result, error) {
	startTime := time.Now()

	input, err := filestore.ValidateInput(inputPath)
	if err != nil {
		return nil, &StageError{Stage: StageStart, Err: err}
	}
	res := &Result{
		Input:           input,
		TranscriptPath:  input.TranscriptPath(),
		KeyPointsPath:   input.KeyPointsPath(),
		ActionItemsPath: input.ActionItemsPath(),
		VideoPath:       input.VideoPath(p.cfg.Video.OutputDir),
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting meeting processing: %s", input.Path)
	p.logger.Info(ctx, "========================================")

	if err := p.stage(ctx, StageTranscribe, func(ctx context.Context) error {
		return p.transcribe(ctx, res)
	}); err != nil {
		return nil, err
	}

	if err := p.stage(ctx, StageSummarize, func(ctx context.Context) error {
		return p.summarize(ctx, res)
	}); err != nil {
		return nil, err
	}

	if err := p.stage(ctx, StageGenerateVideo, func(ctx context.Context) error {
		return p.generateVideo(ctx, res)
	}); err != nil {
		return nil, err
	}

	if err := p.stage(ctx, StageIndex, func(ctx context.Context) error {
		return p.indexAndSearch(ctx, res)
	}); err != nil {
		p.logger.Error(ctx, "Error during video save/retrieve: %v", err)
		res.IndexErr = err
	}

	res.Duration = time.Since(startTime)
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Transcript: %s", res.TranscriptPath)
	p.logger.Info(ctx, "Key points: %s", res.KeyPointsPath)
	p.logger.Info(ctx, "Action items: %s", res.ActionItemsPath)
	p.logger.Info(ctx, "Video: %s", res.VideoPath)
	p.logger.Info(ctx, "Processing time: %s", res.Duration)
	p.logger.Info(ctx, "========================================")

	return res, nil
}

// stage runs fn, records its metrics and tags a failure with the stage.
func (p *implPipeline) stage(ctx context.Context, stage Stage, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	p.metrics.record(ctx, stage, start, err)
	if err != nil {
		return &StageError{Stage: stage, Err: err}
	}
	return nil
}

func (p *implPipeline) transcribe(ctx context.Context, res *Result) error {
	p.logger.Info(ctx, "==== (1) Transcribing input file...")

	transcript, err := p.transcriber.Transcribe(ctx, res.Input.Path)
	if err != nil {
		return err
	}
	if transcript == "" {
		p.logger.Warn(ctx, "Transcription is empty")
	}
	res.Transcript = transcript

	if err := filestore.SaveText(res.TranscriptPath, transcript); err != nil {
		return fmt.Errorf("save transcript: %w", err)
	}
	p.logger.Info(ctx, "Transcription saved to %s", res.TranscriptPath)
	return nil
}

func (p *implPipeline) summarize(ctx context.Context, res *Result) error {
	p.logger.Info(ctx, "==== (2) Summarizing meeting...")

	pair, err := p.summarizer.Summarize(ctx, res.Transcript)
	if err != nil {
		return err
	}
	if pair.Empty() {
		p.logger.Warn(ctx, "Generated key points and action items are empty")
	}
	res.Summary = pair

	if err := filestore.SaveText(res.KeyPointsPath, pair.KeyPointsText()); err != nil {
		return fmt.Errorf("save key points: %w", err)
	}
	if err := filestore.SaveText(res.ActionItemsPath, pair.ActionItemsText()); err != nil {
		return fmt.Errorf("save action items: %w", err)
	}
	p.logger.Info(ctx, "Key points saved to %s", res.KeyPointsPath)
	p.logger.Info(ctx, "Action items saved to %s", res.ActionItemsPath)

	if p.cfg.Output.Docx {
		path := res.Input.ReportPath()
		err := report.WriteDocx(path, report.Report{
			Title:       res.Input.Name,
			KeyPoints:   pair.KeyPoints,
			ActionItems: pair.ActionItems,
			Transcript:  res.Transcript,
		})
		if err != nil {
			p.logger.Warn(ctx, "Failed to write report %s: %v", path, err)
		} else {
			res.ReportPath = path
			p.logger.Info(ctx, "Report saved to %s", path)
		}
	}
	return nil
}

func (p *implPipeline) generateVideo(ctx context.Context, res *Result) error {
	p.logger.Info(ctx, "==== (3) Creating video...")

	vars := video.BuildVariables(res.Input.Name, res.Summary, p.cfg.Video.ScriptLimit)
	return p.video.Generate(ctx, vars, res.VideoPath)
}

func (p *implPipeline) indexAndSearch(ctx context.Context, res *Result) error {
	if p.index == nil {
		return errors.New("no vector index configured")
	}

	p.logger.Info(ctx, "==== (4) Saving video to vector store: %s", res.VideoPath)
	coll, err := p.index.Ingest(ctx, res.VideoPath)
	if err != nil {
		return err
	}

	query := p.cfg.Index.Query
	p.logger.Info(ctx, "==== (5) Retrieving related videos for: %s ...", query)
	it, err := coll.Search(ctx, query, p.cfg.Index.Limit)
	if err != nil {
		return err
	}
	for {
		r, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return err
		}
		res.SearchResults = append(res.SearchResults, r)
		p.logger.Info(ctx, "Path: %s, Distance: %.4f, Similarity: %.4f", r.Path, r.Distance, r.Similarity())
	}
	return nil
}
