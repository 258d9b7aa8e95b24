package analysis

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	// ErrLengthMismatch is returned when x and y differ in length.
	ErrLengthMismatch = errors.New("x and y must have the same length")
	// ErrTooFewPairs is returned for fewer than two observations.
	ErrTooFewPairs = errors.New("at least two pairs are required")
	// ErrConstantInput is returned when either variable has zero variance,
	// which leaves r undefined.
	ErrConstantInput = errors.New("input is constant; correlation is undefined")
)

// Correlation is a Pearson r with its two-sided p-value.
type Correlation struct {
	N int     `json:"n"`
	R float64 `json:"r"`
	P float64 `json:"p"`
}

// Pearson computes the linear correlation between x and y and the p-value of
// the test against r = 0, using Student's t with n-2 degrees of freedom.
func Pearson(x, y []float64) (Correlation, error) {
	if len(x) != len(y) {
		return Correlation{}, fmt.Errorf("%w (%d vs %d)", ErrLengthMismatch, len(x), len(y))
	}
	n := len(x)
	if n < 2 {
		return Correlation{}, ErrTooFewPairs
	}
	if constant(x) || constant(y) {
		return Correlation{}, ErrConstantInput
	}
	r := stat.Correlation(x, y, nil)
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return Correlation{N: n, R: r, P: pValue(r, n)}, nil
}

func pValue(r float64, n int) float64 {
	df := float64(n - 2)
	if df <= 0 {
		// Two points always lie on a line.
		return 1
	}
	if math.Abs(r) >= 1 {
		return 0
	}
	t := math.Abs(r) * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * (1 - dist.CDF(t))
	return math.Min(1, math.Max(0, p))
}

func constant(v []float64) bool {
	for _, x := range v[1:] {
		if x != v[0] {
			return false
		}
	}
	return true
}
