// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source produces raw input units for the batch processor, from
// in-memory text or from a tabular file read in bounded windows.
package source

import (
	"fmt"
	"strings"

	"github.com/pdiddy/locforge/pkg/types"
)

// exampleMarker flags the sample-data header users paste along with real
// rows; lines starting with it are never data.
const exampleMarker = "示例格式"

// commentPrefix marks annotation lines in line-oriented input.
const commentPrefix = "#"

// SchemaError reports a tabular source whose probe window does not have
// the minimum column count. It is fatal for the run and detected before
// any full read begins.
type SchemaError struct {
	// Path is the offending file.
	Path string

	// Columns is the widest row seen in the probe window.
	Columns int
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: table needs at least 3 columns (id, source, target), widest probe row has %d", e.Path, e.Columns)
}

// FromText splits in-memory text into raw line units. Lines are trimmed;
// blank lines, example-marker lines, and comment lines are dropped. The
// input is already in memory, so no row cap applies.
func FromText(text string) []types.RawUnit {
	var units []types.RawUnit
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, exampleMarker) || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		units = append(units, types.RawUnit{Text: line})
	}
	return units
}

// skippable reports whether a tabular row is non-data: blank, or an
// example-marker row pasted along with real rows.
func skippable(cells []string) bool {
	if len(cells) == 0 {
		return true
	}
	first := strings.TrimSpace(cells[0])
	if len(cells) == 1 && first == "" {
		return true
	}
	return strings.HasPrefix(first, exampleMarker)
}
