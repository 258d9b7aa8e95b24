// Package dataset loads an uploaded survey table into memory.
//
// A Dataset is immutable after Load: it keeps the raw cell text so previews
// show exactly what was uploaded, and parses numbers on demand.
package dataset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrColumnNotFound is returned when a required column is absent.
	ErrColumnNotFound = errors.New("column not found")
	// ErrNotNumeric is returned when a column holds a non-numeric cell.
	ErrNotNumeric = errors.New("column is not numeric")
	// ErrMissingValue is returned when a paired row lacks one of its values.
	ErrMissingValue = errors.New("missing value")
	// ErrEmpty is returned for files without a header row.
	ErrEmpty = errors.New("dataset is empty")
)

// Dataset is an in-memory table of rows with named columns.
type Dataset struct {
	Name    string
	Columns []string
	Rows    [][]string

	opt Options
}

// NumRows returns the number of data rows (header excluded).
func (d *Dataset) NumRows() int { return len(d.Rows) }

// Index returns the position of the named column. Names must match exactly,
// apart from surrounding whitespace and a byte order mark; "y_total" is not
// "Y_TOTAL".
func (d *Dataset) Index(name string) (int, bool) {
	want := normalizeHeader(name)
	for i, c := range d.Columns {
		if normalizeHeader(c) == want {
			return i, true
		}
	}
	return -1, false
}

func normalizeHeader(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "\ufeff"))
}

// Has reports whether the named column exists.
func (d *Dataset) Has(name string) bool {
	_, ok := d.Index(name)
	return ok
}

// Head returns up to n rows; n <= 0 returns all rows.
func (d *Dataset) Head(n int) [][]string {
	if n <= 0 || n > len(d.Rows) {
		n = len(d.Rows)
	}
	return d.Rows[:n]
}

// Column returns the numeric values of a column, skipping empty cells.
func (d *Dataset) Column(name string) ([]float64, error) {
	idx, ok := d.Index(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	vals := make([]float64, 0, len(d.Rows))
	for i, row := range d.Rows {
		v := cell(row, idx)
		if v == "" {
			continue
		}
		x, ok := parseNumeric(v, d.opt)
		if !ok {
			return nil, fmt.Errorf("%w: %s row %d: %q", ErrNotNumeric, d.Columns[idx], i+1, v)
		}
		vals = append(vals, x)
	}
	return vals, nil
}

// Pairs returns the row-aligned values of two numeric columns. Every row must
// hold a value in both columns.
func (d *Dataset) Pairs(xName, yName string) (xs, ys []float64, err error) {
	xi, ok := d.Index(xName)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrColumnNotFound, xName)
	}
	yi, ok := d.Index(yName)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrColumnNotFound, yName)
	}
	xs = make([]float64, 0, len(d.Rows))
	ys = make([]float64, 0, len(d.Rows))
	for i, row := range d.Rows {
		xv, yv := cell(row, xi), cell(row, yi)
		if xv == "" || yv == "" {
			return nil, nil, fmt.Errorf("%w: row %d", ErrMissingValue, i+1)
		}
		x, ok := parseNumeric(xv, d.opt)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s row %d: %q", ErrNotNumeric, d.Columns[xi], i+1, xv)
		}
		y, ok := parseNumeric(yv, d.opt)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s row %d: %q", ErrNotNumeric, d.Columns[yi], i+1, yv)
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys, nil
}

// NumericColumns lists, in header order, the columns whose non-empty cells
// all parse as numbers. Columns with no values at all are not numeric.
func (d *Dataset) NumericColumns() []string {
	var out []string
	for j, name := range d.Columns {
		seen := 0
		numeric := true
		for _, row := range d.Rows {
			v := cell(row, j)
			if v == "" {
				continue
			}
			if _, ok := parseNumeric(v, d.opt); !ok {
				numeric = false
				break
			}
			seen++
		}
		if numeric && seen > 0 {
			out = append(out, name)
		}
	}
	return out
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	v := strings.TrimSpace(row[idx])
	if isMissing(v) {
		return ""
	}
	return v
}
