package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Observed returns the non-NaN values of x in a new slice.
func Observed(x []float64) []float64 {
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// CountNaN returns how many entries of x are NaN.
func CountNaN(x []float64) int {
	n := 0
	for _, v := range x {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}

// Mean computes the average of the non-NaN values. NaN if none.
func Mean(x []float64) float64 {
	obs := Observed(x)
	if len(obs) == 0 {
		return math.NaN()
	}
	return floats.Sum(obs) / float64(len(obs))
}

// Median returns the median of the non-NaN values (allocates a copy).
// For an even count it is the mean of the two middle values. NaN if none.
func Median(x []float64) float64 {
	cp := Observed(x)
	n := len(cp)
	if n == 0 {
		return math.NaN()
	}
	sort.Float64s(cp)
	mid := n >> 1
	if n&1 == 0 {
		return (cp[mid-1] + cp[mid]) * 0.5
	}
	return cp[mid]
}

// MinMax returns the minimum and maximum of the non-NaN values.
func MinMax(x []float64) (float64, float64) {
	obs := Observed(x)
	if len(obs) == 0 {
		return math.NaN(), math.NaN()
	}
	return floats.Min(obs), floats.Max(obs)
}

// Column extracts column j of a row-major matrix.
func Column(X [][]float64, j int) []float64 {
	col := make([]float64, len(X))
	for i := range X {
		col[i] = X[i][j]
	}
	return col
}
