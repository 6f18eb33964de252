package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blobs draws two overlapping Gaussian classes in p dimensions.
func blobs(n, p int, seed int64) ([][]float64, []int) {
	r := rand.New(rand.NewSource(seed))
	X := make([][]float64, n)
	y := make([]int, n)
	for i := range n {
		y[i] = i % 2
		X[i] = make([]float64, p)
		for j := range p {
			X[i][j] = float64(y[i])*1.5 + r.NormFloat64()
		}
	}
	return X, y
}

func TestDecisionTreeSeparable(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}, {10}, {11}, {12}}
	y := []int{0, 0, 0, 1, 1, 1}

	tree := NewDecisionTreeClassifier()
	require.NoError(t, tree.Fit(X, y))
	assert.Equal(t, y, tree.Predict(X))
	assert.Equal(t, []int{0, 1}, tree.Classes())
	assert.Equal(t, [][]float64{{1, 0}, {0, 1}}, tree.PredictProba([][]float64{{0}, {20}}))
	assert.Equal(t, 6.5, tree.root.threshold)
}

func TestDecisionTreeMaxDepth(t *testing.T) {
	X, y := blobs(200, 3, 1)
	tree := NewDecisionTreeClassifier(WithMaxDepth(1))
	require.NoError(t, tree.Fit(X, y))
	require.False(t, tree.root.isLeaf)
	assert.True(t, tree.root.left.isLeaf)
	assert.True(t, tree.root.right.isLeaf)
}

func TestDecisionTreeEntropy(t *testing.T) {
	X, y := blobs(100, 2, 3)
	tree := NewDecisionTreeClassifier(WithCriterion("entropy"))
	require.NoError(t, tree.Fit(X, y))
	assert.Equal(t, 1.0, Accuracy(y, tree.Predict(X)), "fully grown tree memorises distinct points")
}

func TestDecisionTreeSkipsConstantFeatures(t *testing.T) {
	// Only the last of eight features varies. Drawing one feature per node
	// must still reach it, for every seed.
	X := make([][]float64, 20)
	y := make([]int, 20)
	for i := range X {
		X[i] = []float64{1, 1, 1, 1, 1, 1, 1, float64(i)}
		y[i] = i / 10
	}
	for seed := range int64(10) {
		tree := NewDecisionTreeClassifier(WithMaxFeatures(1), WithRandomState(seed))
		require.NoError(t, tree.Fit(X, y))
		require.False(t, tree.root.isLeaf, "seed %d", seed)
		assert.Equal(t, 7, tree.root.feature, "seed %d", seed)
		assert.Equal(t, y, tree.Predict(X), "seed %d", seed)
	}
}

func TestFitValidation(t *testing.T) {
	rf := NewRandomForest()
	require.Error(t, rf.Fit(nil, nil))
	require.Error(t, rf.Fit([][]float64{{1}}, []int{0, 1}))
	require.Error(t, rf.Fit([][]float64{{1, 2}, {1}}, []int{0, 1}))
	require.Error(t, NewRandomForest(WithNEstimators(0)).Fit([][]float64{{1}}, []int{0}))
}

func TestRandomForestDefaults(t *testing.T) {
	rf := NewRandomForest()
	assert.Equal(t, 100, rf.NEstimators)
	assert.True(t, rf.Bootstrap)
	assert.Equal(t, int64(42), rf.RandomState)
	assert.Equal(t, "gini", rf.Criterion)
}

func TestRandomForestLearns(t *testing.T) {
	X, y := blobs(400, 4, 7)
	XTest, yTest := blobs(200, 4, 8)

	rf := NewRandomForest(WithNEstimators(30))
	require.NoError(t, rf.Fit(X, y))
	assert.Len(t, rf.Trees, 30)
	assert.Equal(t, 4, rf.NFeatures())
	assert.Greater(t, Accuracy(yTest, rf.Predict(XTest)), 0.75)

	for _, p := range rf.PredictProba(XTest) {
		require.Len(t, p, 2)
		assert.InDelta(t, 1.0, p[0]+p[1], 1e-9)
	}
}

func TestRandomForestDeterministic(t *testing.T) {
	X, y := blobs(300, 5, 11)
	XTest, _ := blobs(50, 5, 12)

	a := NewRandomForest(WithNEstimators(20), WithSeed(42))
	b := NewRandomForest(WithNEstimators(20), WithSeed(42))
	require.NoError(t, a.Fit(X, y))
	require.NoError(t, b.Fit(X, y))
	assert.Equal(t, a.PredictProba(XTest), b.PredictProba(XTest))
}

func TestRandomForestPredictMatchesProba(t *testing.T) {
	X, y := blobs(200, 3, 5)
	rf := NewRandomForest(WithNEstimators(15))
	require.NoError(t, rf.Fit(X, y))

	pred := rf.Predict(X)
	for i, p := range rf.PredictProba(X) {
		assert.Equal(t, rf.Classes()[argmaxFloat(p)], pred[i])
	}
}

func TestMetrics(t *testing.T) {
	yTrue := []int{1, 0, 1, 1, 0}
	yPred := []int{1, 0, 0, 1, 1}
	assert.InDelta(t, 0.6, Accuracy(yTrue, yPred), 1e-12)
	assert.Equal(t, 0.0, Accuracy(nil, nil))

	prec, rec, f1 := PrecisionRecallF1(yTrue, yPred)
	assert.InDelta(t, 2.0/3, prec, 1e-12)
	assert.InDelta(t, 2.0/3, rec, 1e-12)
	assert.InDelta(t, 2.0/3, f1, 1e-12)
}
