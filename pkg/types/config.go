// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Mode selects which row transformation a conversion run uses.
type Mode string

const (
	// ModeLine converts id=value lines into records.
	ModeLine Mode = "line"

	// ModeTable converts tabular rows (ID, source, target) into records.
	ModeTable Mode = "table"
)

// BatchConfig holds settings for the batch processor.
type BatchConfig struct {
	// BatchSize is the number of units processed per batch (default 1000).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// BatchDelay is the pause between batches so a single-threaded observer
	// is never starved (default 10ms). Zero disables the pause.
	BatchDelay time.Duration `json:"batch_delay" yaml:"batch_delay"`
}

// SourceConfig holds settings for the chunked source reader.
type SourceConfig struct {
	// MaxRows caps the total rows consumed from a tabular file (default
	// 100000). When the source is larger, only the most recent MaxRows
	// rows are kept.
	MaxRows int `json:"max_rows" yaml:"max_rows"`

	// ProbeRows is the size of the leading window used to validate the
	// column count before committing to a full read (default 1000).
	ProbeRows int `json:"probe_rows" yaml:"probe_rows"`

	// WindowRows is the number of rows read per window (default 5000).
	WindowRows int `json:"window_rows" yaml:"window_rows"`
}

// RetryConfig holds settings for retrying transient conversion failures.
type RetryConfig struct {
	// Attempts is the maximum number of tries per operation (default 3).
	Attempts int `json:"attempts" yaml:"attempts"`

	// Delay is the wait between consecutive attempts (default 100ms).
	Delay time.Duration `json:"delay" yaml:"delay"`
}

// Config groups all locforge settings.
type Config struct {
	Batch  BatchConfig  `json:"batch" yaml:"batch"`
	Source SourceConfig `json:"source" yaml:"source"`
	Retry  RetryConfig  `json:"retry" yaml:"retry"`

	// HistoryDir is the directory holding the run-history database
	// (default ".locforge").
	HistoryDir string `json:"history_dir" yaml:"history_dir"`
}

// DefaultConfig returns the configuration used when no file or flags
// override it.
func DefaultConfig() Config {
	return Config{
		Batch: BatchConfig{
			BatchSize:  1000,
			BatchDelay: 10 * time.Millisecond,
		},
		Source: SourceConfig{
			MaxRows:    100000,
			ProbeRows:  1000,
			WindowRows: 5000,
		},
		Retry: RetryConfig{
			Attempts: 3,
			Delay:    100 * time.Millisecond,
		},
		HistoryDir: ".locforge",
	}
}
