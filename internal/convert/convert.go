// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert assembles one conversion run: it reads the source into
// raw units, picks the row transformer for the mode, and drives the batch
// pipeline as a runner task.
package convert

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/locforge/internal/pipeline"
	"github.com/pdiddy/locforge/internal/runner"
	"github.com/pdiddy/locforge/internal/source"
	"github.com/pdiddy/locforge/internal/transform"
	"github.com/pdiddy/locforge/pkg/types"
)

// Request describes one conversion run. Line mode converts Text; table
// mode converts the file at Path.
type Request struct {
	// Mode selects the row transformer.
	Mode types.Mode

	// Text is the raw input in line mode.
	Text string

	// Path is the table file in table mode.
	Path string

	// Config carries batching, source, and retry settings.
	Config types.Config
}

// Stats is filled in as the task runs so the caller can summarize the run
// after the terminal event, whatever the outcome was.
type Stats struct {
	// Units is the number of raw units read from the source.
	Units int

	// Skipped counts units rejected by validation.
	Skipped int

	// Truncated reports that the source was cut to the row cap.
	Truncated bool
}

// NewTask builds the runner task for req. The task reads the source,
// emits one warning if the source was truncated, and then streams batch
// progress until the run completes, is cancelled, or fails.
func NewTask(ctx context.Context, req Request, stats *Stats) runner.Task {
	return func(token *types.CancelToken, emit func(runner.Event)) ([]types.Record, bool, error) {
		units, truncated, err := load(req)
		if err != nil {
			return nil, false, err
		}
		stats.Units = len(units)
		stats.Truncated = truncated

		if truncated {
			emit(runner.Event{
				Kind:    runner.EventWarning,
				Warning: fmt.Sprintf("source exceeded %d rows; converting the last %d", req.Config.Source.MaxRows, len(units)),
			})
		}

		tr, ok := transform.ForMode(req.Mode)
		if !ok {
			return nil, false, fmt.Errorf("unknown conversion mode %q", req.Mode)
		}

		res, err := pipeline.Process(ctx, units, tr, pipeline.Options{
			BatchSize:  req.Config.Batch.BatchSize,
			BatchDelay: req.Config.Batch.BatchDelay,
			Token:      token,
			Retry:      req.Config.Retry,
			OnProgress: func(p types.ProgressEvent) {
				emit(runner.Event{Kind: runner.EventProgress, Progress: p})
			},
		})
		stats.Skipped = res.Skipped
		if err != nil {
			return nil, false, err
		}
		return res.Records, res.Cancelled, nil
	}
}

// load reads the source for req into raw units.
func load(req Request) (units []types.RawUnit, truncated bool, err error) {
	switch req.Mode {
	case types.ModeLine:
		return source.FromText(req.Text), false, nil
	case types.ModeTable:
		t, err := source.ReadTable(req.Path, req.Config.Source)
		if err != nil {
			return nil, false, err
		}
		return t.Units, t.Truncated, nil
	default:
		return nil, false, fmt.Errorf("unknown conversion mode %q", req.Mode)
	}
}

// Summarize folds a finished run into the ledger row recorded in history.
func Summarize(req Request, stats Stats, records int, outcome types.RunOutcome, started time.Time, message string) types.RunSummary {
	return types.RunSummary{
		Mode:      req.Mode,
		Outcome:   outcome,
		Units:     stats.Units,
		Records:   records,
		Skipped:   stats.Skipped,
		Truncated: stats.Truncated,
		StartedAt: started,
		Duration:  time.Since(started),
		Message:   message,
	}
}
