// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders converted records into an output artifact:
// id=value lines, a delimited table, or YAML for downstream tooling.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/locforge/pkg/types"
)

// Format selects the output artifact shape.
type Format string

const (
	// FormatLines writes one id=value line per record.
	FormatLines Format = "lines"

	// FormatTSV writes a tab-separated table with a header row.
	FormatTSV Format = "tsv"

	// FormatCSV writes a comma-separated table with a header row.
	FormatCSV Format = "csv"

	// FormatYAML writes the record list as YAML.
	FormatYAML Format = "yaml"
)

// ParseFormat resolves a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatLines, FormatTSV, FormatCSV, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want lines, tsv, csv, or yaml)", s)
	}
}

// Write renders records to w. The mode decides which record fields are
// meaningful: line-mode records carry Value, table-mode records carry
// Source and Target. Records are never mutated.
func Write(w io.Writer, records []types.Record, mode types.Mode, format Format) error {
	switch format {
	case FormatLines:
		return writeLines(w, records, mode)
	case FormatTSV:
		return writeTable(w, records, mode, '\t')
	case FormatCSV:
		return writeTable(w, records, mode, ',')
	case FormatYAML:
		return writeYAML(w, records)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// writeLines emits id=value lines. Table-mode records pair the ID with the
// target text, which is the hand-off format translators expect back.
func writeLines(w io.Writer, records []types.Record, mode types.Mode) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		payload := r.Value
		if mode == types.ModeTable {
			payload = r.Target
		}
		if _, err := fmt.Fprintf(bw, "%s=%s\n", r.ID, payload); err != nil {
			return fmt.Errorf("writing line output: %w", err)
		}
	}
	return bw.Flush()
}

func writeTable(w io.Writer, records []types.Record, mode types.Mode, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	header := []string{"ID", "Value"}
	if mode == types.ModeTable {
		header = []string{"ID", "Source", "Target"}
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}

	for _, r := range records {
		row := []string{r.ID, r.Value}
		if mode == types.ModeTable {
			row = []string{r.ID, r.Source, r.Target}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeYAML(w io.Writer, records []types.Record) error {
	doc := struct {
		Count   int            `yaml:"count"`
		Records []types.Record `yaml:"records"`
	}{
		Count:   len(records),
		Records: records,
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling records: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing yaml output: %w", err)
	}
	return nil
}
