// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunOutcome classifies how a conversion run terminated.
type RunOutcome string

const (
	OutcomeCompleted RunOutcome = "completed"
	OutcomeCancelled RunOutcome = "cancelled"
	OutcomeFailed    RunOutcome = "failed"
)

// RunSummary describes one finished conversion run. It is what the run
// history persists and what the CLI prints as its closing status line.
type RunSummary struct {
	// Mode is the transformation mode the run used.
	Mode Mode `json:"mode" yaml:"mode"`

	// Outcome is the terminal state of the run.
	Outcome RunOutcome `json:"outcome" yaml:"outcome"`

	// Units is the number of raw units fed into the batch processor.
	Units int `json:"units" yaml:"units"`

	// Records is the number of records produced (partial on cancellation).
	Records int `json:"records" yaml:"records"`

	// Skipped is the number of units that failed validation.
	Skipped int `json:"skipped" yaml:"skipped"`

	// Truncated reports whether the source exceeded the row cap.
	Truncated bool `json:"truncated" yaml:"truncated"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// Duration is the wall-clock time of the run.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// Message holds the failure message for failed runs.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}
