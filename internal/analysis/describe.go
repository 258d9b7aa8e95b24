package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/KaramelBytes/surveylens/internal/dataset"
)

// Summary is the pandas-style describe() output for one numeric column.
type Summary struct {
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Values returns the statistics in describe() row order:
// count, mean, std, min, 25%, 50%, 75%, max.
func (s Summary) Values() [8]float64 {
	return [8]float64{float64(s.Count), s.Mean, s.Std, s.Min, s.Q1, s.Median, s.Q3, s.Max}
}

// Describe summarizes every numeric column of ds in header order.
func Describe(ds *dataset.Dataset) ([]Summary, error) {
	names := ds.NumericColumns()
	out := make([]Summary, 0, len(names))
	for _, name := range names {
		s, err := DescribeColumn(ds, name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// DescribeColumn summarizes one named column. It fails when the column is
// missing or holds non-numeric cells.
func DescribeColumn(ds *dataset.Dataset, name string) (Summary, error) {
	vals, err := ds.Column(name)
	if err != nil {
		return Summary{}, fmt.Errorf("describe %s: %w", name, err)
	}
	s := Summarize(vals)
	if idx, ok := ds.Index(name); ok {
		s.Name = ds.Columns[idx]
	}
	return s, nil
}

// Summarize computes describe() statistics over vals. Std uses n-1 and is
// NaN for fewer than two values; all statistics are NaN when vals is empty.
func Summarize(vals []float64) Summary {
	s := Summary{Count: len(vals)}
	if len(vals) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q1, s.Median, s.Q3, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}
	// Welford
	var n int
	var mean, m2 float64
	s.Min, s.Max = math.Inf(1), math.Inf(-1)
	for _, x := range vals {
		n++
		if x < s.Min {
			s.Min = x
		}
		if x > s.Max {
			s.Max = x
		}
		delta := x - mean
		mean += delta / float64(n)
		m2 += delta * (x - mean)
	}
	s.Mean = mean
	s.Std = math.NaN()
	if n > 1 {
		s.Std = math.Sqrt(m2 / float64(n-1))
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	s.Q1 = quantile(sorted, 0.25)
	s.Median = quantile(sorted, 0.5)
	s.Q3 = quantile(sorted, 0.75)
	return s
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// MarshalJSON writes undefined statistics (NaN) as null.
func (s Summary) MarshalJSON() ([]byte, error) {
	num := func(f float64) *float64 {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return &f
	}
	return json.Marshal(struct {
		Name   string   `json:"name"`
		Count  int      `json:"count"`
		Mean   *float64 `json:"mean"`
		Std    *float64 `json:"std"`
		Min    *float64 `json:"min"`
		Q1     *float64 `json:"q1"`
		Median *float64 `json:"median"`
		Q3     *float64 `json:"q3"`
		Max    *float64 `json:"max"`
	}{s.Name, s.Count, num(s.Mean), num(s.Std), num(s.Min), num(s.Q1), num(s.Median), num(s.Q3), num(s.Max)})
}
