package model

import (
	"errors"
	"math"
	"math/rand"
	"runtime"
	"sync"
)

// RandomForest is a bagged ensemble of CART classifiers.
type RandomForest struct {
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	MaxFeatures     int // 0 => floor(sqrt(p))
	Criterion       string
	Bootstrap       bool
	RandomState     int64

	Trees     []*DecisionTreeClassifier
	classes   []int
	nFeatures int
}

// RandomForestOption functional config for RandomForest
type RandomForestOption func(*RandomForest)

func WithNEstimators(n int) RandomForestOption { return func(rf *RandomForest) { rf.NEstimators = n } }
func WithBootstrap(b bool) RandomForestOption  { return func(rf *RandomForest) { rf.Bootstrap = b } }
func WithForestMaxDepth(d int) RandomForestOption {
	return func(rf *RandomForest) { rf.MaxDepth = d }
}
func WithForestMaxFeatures(k int) RandomForestOption {
	return func(rf *RandomForest) { rf.MaxFeatures = k }
}
func WithSeed(seed int64) RandomForestOption { return func(rf *RandomForest) { rf.RandomState = seed } }

// NewRandomForest returns a forest with the usual library defaults:
// 100 fully grown gini trees, bootstrap on, sqrt(p) features per split, seed 42.
func NewRandomForest(opts ...RandomForestOption) *RandomForest {
	rf := &RandomForest{
		NEstimators:     100,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Criterion:       "gini",
		Bootstrap:       true,
		RandomState:     42,
	}
	for _, o := range opts {
		o(rf)
	}
	return rf
}

// Fit trains the trees concurrently. Tree i draws its bootstrap sample and its
// feature subsets from seeds derived from RandomState+i, so the fitted forest
// does not depend on scheduling.
func (rf *RandomForest) Fit(X [][]float64, y []int) error {
	if err := checkXY(X, y); err != nil {
		return err
	}
	if rf.NEstimators <= 0 {
		return errors.New("randomforest: NEstimators must be positive")
	}
	n := len(X)
	rf.nFeatures = len(X[0])
	rf.classes = uniqueClasses(y)
	maxFeatures := rf.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = max(1, int(math.Sqrt(float64(rf.nFeatures))))
	}

	rf.Trees = make([]*DecisionTreeClassifier, rf.NEstimators)
	errCh := make(chan error, rf.NEstimators)
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup

	for i := range rf.NEstimators {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			seed := rf.RandomState + int64(idx)
			sampleIndices := make([]int, n)
			treeRand := rand.New(rand.NewSource(seed))
			for j := range n {
				if rf.Bootstrap {
					sampleIndices[j] = treeRand.Intn(n)
				} else {
					sampleIndices[j] = j
				}
			}

			tree := NewDecisionTreeClassifier(
				WithMaxDepth(rf.MaxDepth),
				WithMinSamplesSplit(rf.MinSamplesSplit),
				WithMinSamplesLeaf(rf.MinSamplesLeaf),
				WithCriterion(rf.Criterion),
				WithMaxFeatures(maxFeatures),
				WithRandomState(seed^0x5DEECE66D),
			)
			if err := tree.fitIndices(X, y, sampleIndices, rf.classes); err != nil {
				errCh <- err
				return
			}
			rf.Trees[idx] = tree
		}(i)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			rf.Trees = nil
			return err
		}
	}
	return nil
}

// Classes returns the sorted class labels seen in Fit.
func (rf *RandomForest) Classes() []int { return rf.classes }

// NFeatures returns the feature count the forest was fitted on.
func (rf *RandomForest) NFeatures() int { return rf.nFeatures }

// PredictProba averages the leaf distributions of all trees.
func (rf *RandomForest) PredictProba(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i := range out {
		out[i] = make([]float64, len(rf.classes))
	}
	if len(rf.Trees) == 0 {
		return out
	}

	var wg sync.WaitGroup
	perTree := make([][][]float64, len(rf.Trees))
	for k, tree := range rf.Trees {
		wg.Add(1)
		go func() {
			defer wg.Done()
			perTree[k] = tree.PredictProba(X)
		}()
	}
	wg.Wait()

	// sum in tree order so the floating point result is reproducible
	for _, probs := range perTree {
		for i := range X {
			for c, p := range probs[i] {
				out[i][c] += p
			}
		}
	}
	nt := float64(len(rf.Trees))
	for i := range out {
		for c := range out[i] {
			out[i][c] /= nt
		}
	}
	return out
}

// Predict returns the class with the highest averaged probability.
func (rf *RandomForest) Predict(X [][]float64) []int {
	proba := rf.PredictProba(X)
	out := make([]int, len(X))
	for i, p := range proba {
		out[i] = rf.classes[argmaxFloat(p)]
	}
	return out
}
