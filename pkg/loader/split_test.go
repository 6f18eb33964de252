package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataset(n int) ([][]float64, []int) {
	X := make([][]float64, n)
	y := make([]int, n)
	for i := range n {
		X[i] = []float64{float64(i)}
		y[i] = i % 2
	}
	return X, y
}

func TestTrainTestSplitSizes(t *testing.T) {
	X, y := dataset(11)
	XTrain, XTest, yTrain, yTest := TrainTestSplit(X, y, 0.2, 42)

	require.Len(t, XTest, 3, "ceil(11*0.2)")
	require.Len(t, XTrain, 8)
	require.Len(t, yTest, 3)
	require.Len(t, yTrain, 8)

	seen := map[float64]bool{}
	for i, row := range append(append([][]float64{}, XTrain...), XTest...) {
		assert.False(t, seen[row[0]], "row %d appears twice", i)
		seen[row[0]] = true
	}
	assert.Len(t, seen, 11)

	// labels travel with their rows
	for i, row := range XTest {
		assert.Equal(t, int(row[0])%2, yTest[i])
	}
}

func TestTrainTestSplitDeterministic(t *testing.T) {
	X, y := dataset(50)
	a, b, c, d := TrainTestSplit(X, y, 0.2, 42)
	e, f, g, h := TrainTestSplit(X, y, 0.2, 42)
	assert.Equal(t, a, e)
	assert.Equal(t, b, f)
	assert.Equal(t, c, g)
	assert.Equal(t, d, h)

	_, other, _, _ := TrainTestSplit(X, y, 0.2, 7)
	assert.NotEqual(t, b, other)
}
