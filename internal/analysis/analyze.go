// Package analysis computes the survey report: descriptive statistics for the
// whole table and for the screen-time/productivity columns, their Pearson
// correlation and its interpretation.
package analysis

import (
	"fmt"

	"github.com/KaramelBytes/surveylens/internal/dataset"
	"github.com/KaramelBytes/surveylens/internal/locale"
	"github.com/KaramelBytes/surveylens/internal/narrative"
)

// Default column names of the composite scores.
const (
	DefaultXColumn = "X_TOTAL"
	DefaultYColumn = "Y_TOTAL"
)

// Options controls a single analysis run.
type Options struct {
	XColumn string
	YColumn string
	Lang    locale.Lang
	// PreviewRows limits the raw preview; 0 means all rows.
	PreviewRows int
}

// DefaultOptions returns the X_TOTAL/Y_TOTAL columns, English and a 20-row preview.
func DefaultOptions() Options {
	return Options{
		XColumn:     DefaultXColumn,
		YColumn:     DefaultYColumn,
		Lang:        locale.English,
		PreviewRows: 20,
	}
}

// Result is everything the dashboard and the CLI report display.
type Result struct {
	Name      string                   `json:"name"`
	Lang      locale.Lang              `json:"lang"`
	Rows      int                      `json:"rows"`
	Columns   []string                 `json:"columns"`
	Preview   [][]string               `json:"preview"`
	Describe  []Summary                `json:"describe"`
	X         Summary                  `json:"x"`
	Y         Summary                  `json:"y"`
	XValues   []float64                `json:"x_values"`
	YValues   []float64                `json:"y_values"`
	Corr      Correlation              `json:"correlation"`
	Narrative narrative.Interpretation `json:"interpretation"`
}

// Analyze runs the reporting, correlation and narrative stages over ds.
// It fails when either score column is missing rather than proceeding
// with partial output.
func Analyze(ds *dataset.Dataset, opt Options) (*Result, error) {
	if opt.XColumn == "" {
		opt.XColumn = DefaultXColumn
	}
	if opt.YColumn == "" {
		opt.YColumn = DefaultYColumn
	}
	for _, col := range []string{opt.XColumn, opt.YColumn} {
		if !ds.Has(col) {
			return nil, fmt.Errorf("analyze %s: %w: %s", ds.Name, dataset.ErrColumnNotFound, col)
		}
	}

	res := &Result{
		Name:    ds.Name,
		Lang:    opt.Lang,
		Rows:    ds.NumRows(),
		Columns: ds.Columns,
		Preview: ds.Head(opt.PreviewRows),
	}
	var err error
	if res.Describe, err = Describe(ds); err != nil {
		return nil, err
	}
	if res.X, err = DescribeColumn(ds, opt.XColumn); err != nil {
		return nil, err
	}
	if res.Y, err = DescribeColumn(ds, opt.YColumn); err != nil {
		return nil, err
	}
	if res.XValues, res.YValues, err = ds.Pairs(opt.XColumn, opt.YColumn); err != nil {
		return nil, fmt.Errorf("pair %s/%s: %w", opt.XColumn, opt.YColumn, err)
	}
	if res.Corr, err = Pearson(res.XValues, res.YValues); err != nil {
		return nil, fmt.Errorf("correlate %s/%s: %w", opt.XColumn, opt.YColumn, err)
	}
	res.Narrative = narrative.Interpret(res.Corr.R, res.Corr.P, opt.Lang)
	return res, nil
}
