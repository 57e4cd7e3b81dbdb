// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transform implements the per-row conversion rules. Each rule is a
// pure function from one raw unit to at most one record; malformed units
// yield no record and no error.
package transform

import (
	"strings"

	"github.com/pdiddy/locforge/pkg/types"
)

// minTableCells is the minimum cell count for a tabular row: ID plus the
// source and target text columns.
const minTableCells = 3

// Transformer converts one raw unit into a record. Different input shapes
// (id=value lines, tabular rows) implement this interface; the batch
// processor is agnostic to which is plugged in.
type Transformer interface {
	// Transform converts unit into a record. ok is false when the unit
	// fails validation; the unit is then skipped, not treated as an error.
	Transform(unit types.RawUnit) (rec types.Record, ok bool)

	// Valid reports whether unit would produce a record.
	Valid(unit types.RawUnit) bool

	// Mode identifies the transformation rule.
	Mode() types.Mode
}

// ForMode returns the transformer for mode, or ok=false for an unknown mode.
func ForMode(mode types.Mode) (Transformer, bool) {
	switch mode {
	case types.ModeLine:
		return KeyValue{}, true
	case types.ModeTable:
		return TableRow{}, true
	default:
		return nil, false
	}
}

// KeyValue converts id=value lines. The line is split on the first '='
// only, so values may themselves contain '='. Lines without '=' or with an
// empty key are skipped.
type KeyValue struct{}

func (KeyValue) Mode() types.Mode { return types.ModeLine }

func (k KeyValue) Valid(unit types.RawUnit) bool {
	_, ok := k.Transform(unit)
	return ok
}

func (KeyValue) Transform(unit types.RawUnit) (types.Record, bool) {
	key, value, found := strings.Cut(unit.Text, "=")
	if !found {
		return types.Record{}, false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return types.Record{}, false
	}
	return types.Record{
		ID:    key,
		Value: strings.TrimSpace(value),
	}, true
}

// TableRow converts one tabular row of at least three cells: ID, source
// text, target text. The ID cell is kept as a string verbatim so leading
// zeros survive. Blank or missing source/target cells become empty strings;
// only a row with fewer than three cells is skipped.
type TableRow struct{}

func (TableRow) Mode() types.Mode { return types.ModeTable }

func (TableRow) Valid(unit types.RawUnit) bool {
	return len(unit.Cells) >= minTableCells
}

func (TableRow) Transform(unit types.RawUnit) (types.Record, bool) {
	if len(unit.Cells) < minTableCells {
		return types.Record{}, false
	}
	return types.Record{
		ID:     strings.TrimSpace(unit.Cells[0]),
		Source: strings.TrimSpace(unit.Cells[1]),
		Target: strings.TrimSpace(unit.Cells[2]),
	}, true
}
