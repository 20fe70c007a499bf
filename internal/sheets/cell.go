package sheets

import (
	"fmt"
	"strconv"
	"strings"
)

// Cell provides typed access to a value read back from Google Sheets
type Cell struct {
	raw interface{}
}

// NewCell wraps a raw value returned by the Sheets API
func NewCell(raw interface{}) Cell {
	return Cell{raw: raw}
}

// CellAt returns the cell at row/col of a value grid, or an empty cell when
// the grid is too short. Sheets trims trailing empty rows and cells.
func CellAt(values [][]interface{}, row, col int) Cell {
	if row < 0 || row >= len(values) || col < 0 || col >= len(values[row]) {
		return Cell{}
	}
	return NewCell(values[row][col])
}

// String returns the cell value as a string
func (c Cell) String() string {
	if c.raw == nil {
		return ""
	}
	if s, ok := c.raw.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", c.raw)
}

// Int returns the cell value as an int, or 0 when it is not a number
func (c Cell) Int() int {
	switch v := c.raw.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	}
	return 0
}

// Float64 returns the cell value as a float64. The second result is false
// when the cell holds no number.
func (c Cell) Float64() (float64, bool) {
	switch v := c.raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// IsEmpty returns true if the cell contains nil or empty string
func (c Cell) IsEmpty() bool {
	return c.raw == nil || c.raw == ""
}
