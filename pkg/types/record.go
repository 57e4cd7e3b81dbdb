// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model for locforge: raw input units,
// converted records, progress events, and configuration structs.
package types

// RawUnit is one unvalidated input item handed from a source reader to a
// row transformer. Exactly one of Text or Cells is populated, depending on
// whether the source was line-oriented or tabular.
type RawUnit struct {
	// Text is the trimmed input line for line-oriented sources.
	Text string

	// Cells holds the raw cell values of one tabular row. Nil for line input.
	Cells []string
}

// Record is one successfully converted row. Which fields beyond ID are
// populated depends on the conversion mode: line mode fills Value, table
// mode fills Source and Target.
type Record struct {
	// ID is the string identifier, preserved verbatim (leading zeros intact).
	ID string `json:"id" yaml:"id"`

	// Value is the payload of an id=value line.
	Value string `json:"value,omitempty" yaml:"value,omitempty"`

	// Source is the source-language text from the second table column.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Target is the target-language text from the third table column.
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
}

// ProgressEvent reports pipeline progress after a completed batch.
// Percent is monotonically non-decreasing within one run.
type ProgressEvent struct {
	// Percent is the completion percentage, 0-100 inclusive.
	Percent int

	// Message names the processed row range, e.g. "processing rows 1-1000/4200".
	Message string
}
