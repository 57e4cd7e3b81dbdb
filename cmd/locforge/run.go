// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/locforge/internal/convert"
	"github.com/pdiddy/locforge/internal/export"
	"github.com/pdiddy/locforge/internal/history"
	"github.com/pdiddy/locforge/internal/retry"
	"github.com/pdiddy/locforge/internal/runner"
	"github.com/pdiddy/locforge/pkg/types"
)

// runConvert drives one conversion end to end: it starts the task on a
// runner, relays progress to stderr, honors Ctrl-C as cooperative
// cancellation, writes the artifact, and records the run in the ledger.
// A cancelled run still writes the partial artifact.
func runConvert(cmd *cobra.Command, req convert.Request) error {
	outPath, _ := cmd.Flags().GetString("out")
	formatName, _ := cmd.Flags().GetString("format")
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	ctx := context.Background()
	started := time.Now()

	var stats convert.Stats
	r := runner.New()
	if err := r.Start(convert.NewTask(ctx, req, &stats)); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		if _, ok := <-sigCh; ok {
			fmt.Fprintln(os.Stderr, "interrupt received, cancelling at the next batch boundary")
			r.Cancel()
		}
	}()

	var terminal runner.Event
	for e := range r.Events() {
		switch e.Kind {
		case runner.EventProgress:
			fmt.Fprintf(os.Stderr, "%3d%% %s\n", e.Progress.Percent, e.Progress.Message)
		case runner.EventWarning:
			fmt.Fprintf(os.Stderr, "warning: %s\n", e.Warning)
		default:
			terminal = e
		}
	}

	outcome, message := classify(terminal)
	recordRun(ctx, req, stats, len(terminal.Records), outcome, started, message)

	if terminal.Kind == runner.EventFailed {
		return terminal.Err
	}

	if err := writeArtifact(outPath, terminal.Records, req.Mode, format); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%s: %d record(s) from %d unit(s), %d skipped, in %s\n",
		outcome, len(terminal.Records), stats.Units, stats.Skipped,
		time.Since(started).Round(time.Millisecond))

	if terminal.Kind == runner.EventCancelled {
		return fmt.Errorf("run cancelled after %d record(s)", len(terminal.Records))
	}
	return nil
}

func classify(terminal runner.Event) (types.RunOutcome, string) {
	switch terminal.Kind {
	case runner.EventCancelled:
		return types.OutcomeCancelled, ""
	case runner.EventFailed:
		return types.OutcomeFailed, terminal.Err.Error()
	default:
		return types.OutcomeCompleted, ""
	}
}

// writeArtifact renders records to the --out path, or stdout when the
// path is empty or "-".
func writeArtifact(path string, records []types.Record, mode types.Mode, format export.Format) error {
	if path == "" || path == "-" {
		return export.Write(os.Stdout, records, mode, format)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := export.Write(f, records, mode, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// recordRun appends the run to the history ledger. SQLite write
// contention is retried; a run that still cannot be recorded only warns,
// since the conversion itself already finished.
func recordRun(ctx context.Context, req convert.Request, stats convert.Stats, records int, outcome types.RunOutcome, started time.Time, message string) {
	store, err := history.Open(req.Config.HistoryDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	sum := convert.Summarize(req, stats, records, outcome, started, message)
	err = retry.Do(ctx, req.Config.Retry.Attempts, req.Config.Retry.Delay, func() error {
		return retry.Transient(store.Record(ctx, sum))
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: run not recorded: %v\n", err)
	}
}

// applyBatchFlags folds the shared --batch-size and --batch-delay flag
// overrides into cfg.
func applyBatchFlags(cmd *cobra.Command, cfg *types.Config) {
	if cmd.Flags().Changed("batch-size") {
		cfg.Batch.BatchSize, _ = cmd.Flags().GetInt("batch-size")
	}
	if cmd.Flags().Changed("batch-delay") {
		cfg.Batch.BatchDelay, _ = cmd.Flags().GetDuration("batch-delay")
	}
}

func addConvertFlags(cmd *cobra.Command, defaultFormat string) {
	cmd.Flags().String("out", "", "output file (default: stdout)")
	cmd.Flags().String("format", defaultFormat, "output format: lines, tsv, csv, or yaml")
	cmd.Flags().Int("batch-size", 0, "rows per batch (default from config)")
	cmd.Flags().Duration("batch-delay", 0, "pause between batches (default from config)")
}
