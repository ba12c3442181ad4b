// Package score holds the score tables produced by the track evaluators
// and the writer that serializes them as delimited files.
package score

import (
	"fmt"
	"strconv"
)

// Precision is the fixed fractional precision applied to float columns.
const Precision = 4

// Table is an ordered sequence of rows sharing a fixed column schema.
// Row order is the insertion order and must be reproducible for identical
// inputs; the writer never reorders or mutates rows.
type Table struct {
	Columns []string
	rows    [][]string
}

// NewTable creates an empty table with the given column schema.
func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

// AddRow appends a row. Values are rendered immediately: strings verbatim,
// integers in base 10, floats with fixed fractional precision. The number
// of values must match the column schema.
func (t *Table) AddRow(values ...any) {
	if len(values) != len(t.Columns) {
		panic(fmt.Sprintf("score: row has %d values, table has %d columns", len(values), len(t.Columns)))
	}

	row := make([]string, len(values))
	for i, v := range values {
		row[i] = render(v)
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns the rendered rows in insertion order. The returned slice is
// shared with the table and must not be modified.
func (t *Table) Rows() [][]string {
	return t.rows
}

func render(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', Precision, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', Precision, 32)
	default:
		return fmt.Sprint(v)
	}
}

// Name builds the canonical output file name for a (track, split,
// stratification) combination: score_<track>_<split>_<stratification>.csv.
// Stratification may be empty for tracks with a single breakdown, giving
// score_<track>_<split>.csv.
func Name(track, split, stratification string) string {
	name := "score_" + track + "_" + split
	if stratification != "" {
		name += "_" + stratification
	}
	return name + ".csv"
}
