// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline is the batch processor: it walks raw units in fixed
// batches, applies a row transformer to each unit, and reports progress at
// batch boundaries, where cancellation is also honored.
package pipeline

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/pdiddy/locforge/internal/retry"
	"github.com/pdiddy/locforge/internal/transform"
	"github.com/pdiddy/locforge/pkg/types"
)

// Options configures one Process call.
type Options struct {
	// BatchSize is the number of units per batch. Values below 1 fall back
	// to the default of 1000.
	BatchSize int

	// BatchDelay is the pause between batches. The pause is a scheduling
	// courtesy for a single-threaded observer, not a correctness rule; zero
	// disables it.
	BatchDelay time.Duration

	// OnProgress, when set, receives one event after each completed batch.
	OnProgress func(types.ProgressEvent)

	// Token, when set, is polled before each batch. Once cancelled, no
	// further units are transformed and the records accumulated so far are
	// returned.
	Token *types.CancelToken

	// Flush, when set, receives each batch's records after transformation.
	// Transient flush failures (marked with retry.Transient) are retried
	// per Retry; a final failure aborts the run.
	Flush func(batch []types.Record) error

	// Retry bounds Flush retries. Ignored when Flush is nil.
	Retry types.RetryConfig
}

// Result is the outcome of one Process call.
type Result struct {
	// Records holds the converted records in unit encounter order. On
	// cancellation it contains exactly the batches completed so far.
	Records []types.Record

	// Skipped counts units that failed validation.
	Skipped int

	// Cancelled reports that the run stopped at a batch boundary because
	// the token was set.
	Cancelled bool
}

const defaultBatchSize = 1000

// Process converts units through tr. Progress is reported only after a
// full batch completes, so a cancelled run never returns a torn batch.
// An empty unit slice returns immediately without progress events.
func Process(ctx context.Context, units []types.RawUnit, tr transform.Transformer, opts Options) (Result, error) {
	var res Result

	total := len(units)
	if total == 0 {
		return res, nil
	}

	size := opts.BatchSize
	if size < 1 {
		size = defaultBatchSize
	}

	for start := 0; start < total; start += size {
		if opts.Token != nil && opts.Token.Cancelled() {
			res.Cancelled = true
			return res, nil
		}

		end := start + size
		if end > total {
			end = total
		}

		batchStart := len(res.Records)
		for _, unit := range units[start:end] {
			rec, ok := tr.Transform(unit)
			if !ok {
				res.Skipped++
				continue
			}
			res.Records = append(res.Records, rec)
		}

		if opts.Flush != nil {
			batch := res.Records[batchStart:]
			err := retry.Do(ctx, opts.Retry.Attempts, opts.Retry.Delay, func() error {
				return opts.Flush(batch)
			})
			if err != nil {
				return res, fmt.Errorf("flushing rows %d-%d: %w", start+1, end, err)
			}
		}

		if opts.OnProgress != nil {
			opts.OnProgress(types.ProgressEvent{
				Percent: percent(end, total),
				Message: fmt.Sprintf("processing rows %d-%d/%d", start+1, end, total),
			})
		}

		if opts.BatchDelay > 0 && end < total {
			time.Sleep(opts.BatchDelay)
		}
	}

	return res, nil
}

// percent maps done/total onto 0-100, rounding to the nearest integer and
// clamping at 100.
func percent(done, total int) int {
	p := int(math.Round(float64(done) / float64(total) * 100))
	if p > 100 {
		p = 100
	}
	return p
}
