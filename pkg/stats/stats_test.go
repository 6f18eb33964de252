package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedian(t *testing.T) {
	assert.Equal(t, 2.0, Median([]float64{3, 1, 2}))
	assert.Equal(t, 2.5, Median([]float64{4, 1, 3, 2}))
	assert.Equal(t, 2.0, Median([]float64{math.NaN(), 1, 3}), "NaNs are skipped")
	assert.True(t, math.IsNaN(Median([]float64{math.NaN()})))
	assert.True(t, math.IsNaN(Median(nil)))
}

func TestMedianDoesNotMutate(t *testing.T) {
	x := []float64{3, 1, 2}
	_ = Median(x)
	require.Equal(t, []float64{3, 1, 2}, x)
}

func TestMeanAndMinMax(t *testing.T) {
	x := []float64{1, math.NaN(), 5, 3}
	assert.Equal(t, 3.0, Mean(x))
	lo, hi := MinMax(x)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 5.0, hi)
	assert.Equal(t, 1, CountNaN(x))
	assert.Equal(t, []float64{1, 5, 3}, Observed(x))
}

func TestColumn(t *testing.T) {
	X := [][]float64{{1, 2}, {3, 4}, {5, 6}}
	assert.Equal(t, []float64{2, 4, 6}, Column(X, 1))
}
