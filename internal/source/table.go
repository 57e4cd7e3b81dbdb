// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/locforge/pkg/types"
)

// TableResult is the outcome of reading a tabular source.
type TableResult struct {
	// Units holds one raw unit per surviving row, in file order.
	Units []types.RawUnit

	// Truncated reports that the source exceeded the row cap and only the
	// most recent MaxRows rows were kept.
	Truncated bool
}

// ReadTable reads a TSV or CSV file into raw units. The delimiter comes
// from the file extension (.csv is comma-separated, everything else is
// tab-separated).
//
// The first ProbeRows rows are buffered to validate the column count; a
// probe whose widest row has fewer than 3 cells fails with SchemaError
// before the remainder is touched. The rest of the file is read in
// WindowRows-sized windows. At most MaxRows rows are kept: when the source
// is larger, earlier rows are discarded so the result holds the last
// MaxRows rows, and Truncated is set.
//
// The file handle is owned by ReadTable and closed on every exit path.
func ReadTable(path string, cfg types.SourceConfig) (TableResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return TableResult{}, fmt.Errorf("opening table %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delimiterFor(path)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	probe, probeDone, err := readWindow(r, cfg.ProbeRows)
	if err != nil {
		return TableResult{}, fmt.Errorf("reading table %s: %w", path, err)
	}

	// A source with no data rows at all is empty, not malformed.
	if len(probe) == 0 {
		return TableResult{}, nil
	}

	widest := 0
	for _, u := range probe {
		if len(u.Cells) > widest {
			widest = len(u.Cells)
		}
	}
	if widest < minColumns {
		return TableResult{}, &SchemaError{Path: path, Columns: widest}
	}

	res := TableResult{Units: probe}
	res.enforceCap(cfg.MaxRows)

	for !probeDone {
		var window []types.RawUnit
		window, probeDone, err = readWindow(r, cfg.WindowRows)
		if err != nil {
			return TableResult{}, fmt.Errorf("reading table %s: %w", path, err)
		}
		res.Units = append(res.Units, window...)
		res.enforceCap(cfg.MaxRows)
	}

	return res, nil
}

// minColumns is the schema contract: id, source text, target text.
const minColumns = 3

// readWindow reads up to n rows, skipping non-data rows. done is true once
// the underlying reader is exhausted.
func readWindow(r *csv.Reader, n int) (units []types.RawUnit, done bool, err error) {
	for len(units) < n {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return units, true, nil
		}
		if err != nil {
			return nil, false, err
		}
		if skippable(row) {
			continue
		}
		cells := make([]string, len(row))
		copy(cells, row)
		units = append(units, types.RawUnit{Cells: cells})
	}
	return units, false, nil
}

// enforceCap drops rows from the front so at most limit remain. The copy
// stays within the existing backing array, so peak memory is bounded by
// the cap plus one window.
func (t *TableResult) enforceCap(limit int) {
	if limit <= 0 || len(t.Units) <= limit {
		return
	}
	t.Units = append(t.Units[:0], t.Units[len(t.Units)-limit:]...)
	t.Truncated = true
}

// delimiterFor picks the cell delimiter from the file extension.
func delimiterFor(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ','
	}
	return '\t'
}
