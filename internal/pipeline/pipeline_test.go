// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/pdiddy/locforge/internal/retry"
	"github.com/pdiddy/locforge/internal/source"
	"github.com/pdiddy/locforge/internal/transform"
	"github.com/pdiddy/locforge/pkg/types"
)

func lineUnits(lines ...string) []types.RawUnit {
	units := make([]types.RawUnit, len(lines))
	for i, l := range lines {
		units[i] = types.RawUnit{Text: l}
	}
	return units
}

func TestProcess_OrderingAndProgress(t *testing.T) {
	// Scenario: three valid lines, batch size 2 -> progress at 67 and 100.
	units := source.FromText("1=apple\n2=banana\n\n# 示例格式\n3=cherry")

	var events []types.ProgressEvent
	res, err := Process(context.Background(), units, transform.KeyValue{}, Options{
		BatchSize:  2,
		OnProgress: func(e types.ProgressEvent) { events = append(events, e) },
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []types.Record{
		{ID: "1", Value: "apple"},
		{ID: "2", Value: "banana"},
		{ID: "3", Value: "cherry"},
	}
	if len(res.Records) != len(want) {
		t.Fatalf("got %d records, want %d", len(res.Records), len(want))
	}
	for i, w := range want {
		if res.Records[i] != w {
			t.Errorf("record %d = %+v, want %+v", i, res.Records[i], w)
		}
	}

	if len(events) != 2 {
		t.Fatalf("got %d progress events, want 2", len(events))
	}
	if events[0].Percent != 67 || events[1].Percent != 100 {
		t.Errorf("percents = %d, %d, want 67, 100", events[0].Percent, events[1].Percent)
	}
	if events[0].Message != "processing rows 1-2/3" {
		t.Errorf("message = %q", events[0].Message)
	}
}

func TestProcess_ProgressMonotone(t *testing.T) {
	lines := make([]string, 0, 95)
	for i := 0; i < 95; i++ {
		lines = append(lines, fmt.Sprintf("%d=v%d", i, i))
	}

	var last int
	res, err := Process(context.Background(), lineUnits(lines...), transform.KeyValue{}, Options{
		BatchSize: 10,
		OnProgress: func(e types.ProgressEvent) {
			if e.Percent < last {
				t.Errorf("progress went backwards: %d after %d", e.Percent, last)
			}
			last = e.Percent
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if last != 100 {
		t.Errorf("final progress = %d, want 100", last)
	}
	if len(res.Records) != 95 {
		t.Errorf("records = %d, want 95", len(res.Records))
	}
}

func TestProcess_EmptyInput(t *testing.T) {
	called := false
	res, err := Process(context.Background(), nil, transform.KeyValue{}, Options{
		OnProgress: func(types.ProgressEvent) { called = true },
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Records) != 0 || res.Cancelled {
		t.Errorf("res = %+v, want empty", res)
	}
	if called {
		t.Error("no progress events expected for empty input")
	}
}

func TestProcess_SkipsInvalidUnits(t *testing.T) {
	units := lineUnits("1=a", "not-a-key-value-pair", "=orphan", "2=b")
	res, err := Process(context.Background(), units, transform.KeyValue{}, Options{BatchSize: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(res.Records))
	}
	if res.Skipped != 2 {
		t.Errorf("skipped = %d, want 2", res.Skipped)
	}
	if res.Records[0].ID != "1" || res.Records[1].ID != "2" {
		t.Errorf("records out of order: %+v", res.Records)
	}
}

func TestProcess_CancellationAtBatchBoundary(t *testing.T) {
	// Cancel after the second batch of a five-batch run: the result must
	// contain exactly the records of batches 1-2.
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = fmt.Sprintf("%d=v", i)
	}

	var token types.CancelToken
	batches := 0
	res, err := Process(context.Background(), lineUnits(lines...), transform.KeyValue{}, Options{
		BatchSize: 10,
		Token:     &token,
		OnProgress: func(types.ProgressEvent) {
			batches++
			if batches == 2 {
				token.Cancel()
			}
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Cancelled {
		t.Fatal("run should report cancellation")
	}
	if len(res.Records) != 20 {
		t.Errorf("partial records = %d, want exactly 20 (batches 1-2)", len(res.Records))
	}
	if batches != 2 {
		t.Errorf("progress events after cancel: got %d batches", batches)
	}
	for i, r := range res.Records {
		if r.ID != fmt.Sprintf("%d", i) {
			t.Fatalf("record %d has ID %s, partial result reordered", i, r.ID)
		}
	}
}

func TestProcess_CancelledBeforeStart(t *testing.T) {
	var token types.CancelToken
	token.Cancel()

	res, err := Process(context.Background(), lineUnits("1=a"), transform.KeyValue{}, Options{Token: &token})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Cancelled || len(res.Records) != 0 {
		t.Errorf("res = %+v, want cancelled with no records", res)
	}
}

func TestProcess_FlushPerBatch(t *testing.T) {
	units := lineUnits("1=a", "2=b", "3=c")

	var flushed [][]types.Record
	res, err := Process(context.Background(), units, transform.KeyValue{}, Options{
		BatchSize: 2,
		Flush: func(batch []types.Record) error {
			cp := make([]types.Record, len(batch))
			copy(cp, batch)
			flushed = append(flushed, cp)
			return nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Records) != 3 {
		t.Fatalf("records = %d", len(res.Records))
	}
	if len(flushed) != 2 || len(flushed[0]) != 2 || len(flushed[1]) != 1 {
		t.Errorf("flush batches = %v", flushed)
	}
}

func TestProcess_FlushTransientRetried(t *testing.T) {
	units := lineUnits("1=a", "2=b")

	attempts := 0
	_, err := Process(context.Background(), units, transform.KeyValue{}, Options{
		BatchSize: 10,
		Retry:     types.RetryConfig{Attempts: 3, Delay: 0},
		Flush: func([]types.Record) error {
			attempts++
			if attempts < 2 {
				return retry.Transient(errors.New("sink busy"))
			}
			return nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestProcess_FlushExhaustedFails(t *testing.T) {
	units := lineUnits("1=a")

	_, err := Process(context.Background(), units, transform.KeyValue{}, Options{
		Retry: types.RetryConfig{Attempts: 2, Delay: 0},
		Flush: func([]types.Record) error {
			return retry.Transient(errors.New("sink down"))
		},
	})
	var pe *retry.ProcessingError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want ProcessingError", err)
	}
	if pe.Attempts != 2 {
		t.Errorf("attempts = %d, want 2", pe.Attempts)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		done, total, want int
	}{
		{2, 3, 67},
		{3, 3, 100},
		{1, 3, 33},
		{1000, 100000, 1},
		{1, 100000, 0},
	}
	for _, tt := range tests {
		if got := percent(tt.done, tt.total); got != tt.want {
			t.Errorf("percent(%d, %d) = %d, want %d", tt.done, tt.total, got, tt.want)
		}
	}
}
