// Package models defines data structures shared by the audit pipeline.
package models

import (
	"encoding/json"
	"strconv"
)

// Cell is a tagged value: exactly one of a 64-bit float or a label string.
// Blank cells are the empty-string Label. Numbers carry no unit or locale
// metadata; normalization is a one-way transformation.
type Cell struct {
	numeric bool
	num     float64
	text    string
}

// NumberCell returns a Cell holding a numeric value.
func NumberCell(v float64) Cell {
	return Cell{numeric: true, num: v}
}

// LabelCell returns a Cell holding a label string.
func LabelCell(s string) Cell {
	return Cell{text: s}
}

// IsNumber reports whether the cell holds a numeric value.
func (c Cell) IsNumber() bool {
	return c.numeric
}

// Number returns the numeric value and whether the cell is numeric.
func (c Cell) Number() (float64, bool) {
	return c.num, c.numeric
}

// Label returns the label text. It is empty for numeric cells.
func (c Cell) Label() string {
	return c.text
}

// MarshalJSON encodes numeric cells as JSON numbers and labels as strings.
func (c Cell) MarshalJSON() ([]byte, error) {
	if c.numeric {
		return []byte(strconv.FormatFloat(c.num, 'f', -1, 64)), nil
	}
	return json.Marshal(c.text)
}

// UnmarshalJSON decodes a JSON number into a numeric cell and any other
// JSON string into a label.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*c = NumberCell(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = LabelCell(s)
	return nil
}

// Grid is one normalized table: an ordered sequence of rows of Cells.
// Row 0 and column 0 conventionally hold headers and labels, but the
// engine does not enforce that. Grids are immutable once produced.
type Grid struct {
	// Index is the table's 0-based position of appearance in the document.
	Index int `json:"table_index"`
	// Rows holds the cells in row-major order.
	Rows [][]Cell `json:"rows"`
}

// At returns the cell at (row, col) and whether the coordinate is in bounds.
func (g Grid) At(row, col int) (Cell, bool) {
	if row < 0 || row >= len(g.Rows) {
		return Cell{}, false
	}
	r := g.Rows[row]
	if col < 0 || col >= len(r) {
		return Cell{}, false
	}
	return r[col], true
}

// RowCount returns the number of rows in the grid.
func (g Grid) RowCount() int {
	return len(g.Rows)
}

// ColCount returns the width of the widest row.
func (g Grid) ColCount() int {
	max := 0
	for _, r := range g.Rows {
		if len(r) > max {
			max = len(r)
		}
	}
	return max
}

// GridMap builds the table-index keyed map the formula evaluator consumes.
func GridMap(grids []Grid) map[int]Grid {
	m := make(map[int]Grid, len(grids))
	for _, g := range grids {
		m[g.Index] = g
	}
	return m
}
