package model

import (
	"errors"
	"math"
	"math/rand"
	"slices"
	"sort"
	"sync"
)

// ---------------------------
// Types & options
// ---------------------------

// DecisionTreeClassifier is a CART-style classifier over numeric features.
type DecisionTreeClassifier struct {
	MaxDepth            int     // root depth = 0. 0 => no limit
	MinSamplesSplit     int     // minimum samples to attempt a split
	MinSamplesLeaf      int     // minimum samples required in each leaf
	Criterion           string  // "gini" (default) or "entropy"
	MaxFeatures         int     // 0 => all features, >0 => features sampled per node
	MinImpurityDecrease float64 // minimal impurity decrease to accept a split
	RandomState         int64   // seed for feature subsampling

	root      *dtNode
	classes   []int // sorted class labels; probas are aligned with it
	nFeatures int
}

type dtNode struct {
	isLeaf    bool
	feature   int
	threshold float64 // x <= threshold => left
	left      *dtNode
	right     *dtNode

	n      int
	probas []float64
}

// Option functional config
type Option func(*DecisionTreeClassifier)

func WithMaxDepth(d int) Option { return func(t *DecisionTreeClassifier) { t.MaxDepth = d } }
func WithMinSamplesSplit(n int) Option {
	return func(t *DecisionTreeClassifier) { t.MinSamplesSplit = n }
}
func WithMinSamplesLeaf(n int) Option {
	return func(t *DecisionTreeClassifier) { t.MinSamplesLeaf = n }
}
func WithCriterion(c string) Option { return func(t *DecisionTreeClassifier) { t.Criterion = c } }
func WithMaxFeatures(k int) Option  { return func(t *DecisionTreeClassifier) { t.MaxFeatures = k } }
func WithMinImpurityDecrease(v float64) Option {
	return func(t *DecisionTreeClassifier) { t.MinImpurityDecrease = v }
}
func WithRandomState(seed int64) Option {
	return func(t *DecisionTreeClassifier) { t.RandomState = seed }
}

// NewDecisionTreeClassifier returns a fully grown gini tree seeded with 42.
func NewDecisionTreeClassifier(opts ...Option) *DecisionTreeClassifier {
	d := &DecisionTreeClassifier{
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Criterion:       "gini",
		RandomState:     42,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// ---------------------------
// Public API
// ---------------------------

// Fit trains the tree on every row of X.
func (t *DecisionTreeClassifier) Fit(X [][]float64, y []int) error {
	if err := checkXY(X, y); err != nil {
		return err
	}
	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	return t.fitIndices(X, y, idx, uniqueClasses(y))
}

// fitIndices trains on the rows named by idx, which may repeat (bootstrap).
// classes fixes the label set so trees of one forest share proba layout.
func (t *DecisionTreeClassifier) fitIndices(X [][]float64, y []int, idx []int, classes []int) error {
	if len(idx) == 0 {
		return errors.New("dtree: no samples")
	}
	if len(classes) == 0 {
		return errors.New("dtree: no classes in y")
	}
	t.classes = classes
	t.nFeatures = len(X[0])

	yIdx := make([]int, len(y))
	for i, lab := range y {
		yIdx[i] = classIndex(lab, classes)
	}

	b := &builder{
		tree:     t,
		X:        X,
		y:        yIdx,
		nClasses: len(classes),
		rnd:      rand.New(rand.NewSource(t.RandomState)),
		impurity: giniFromCounts,
	}
	if t.Criterion == "entropy" {
		b.impurity = entropyFromCounts
	}
	t.root = b.build(idx, 0)
	return nil
}

// Classes returns the sorted class labels seen in Fit.
func (t *DecisionTreeClassifier) Classes() []int { return t.classes }

// Predict returns the most probable class label for every row.
func (t *DecisionTreeClassifier) Predict(X [][]float64) []int {
	out := make([]int, len(X))
	for i := range X {
		out[i] = t.classes[argmaxFloat(t.predictProbaSingle(X[i]))]
	}
	return out
}

// PredictProba returns the per-class probability vectors for rows in X.
func (t *DecisionTreeClassifier) PredictProba(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i := range X {
		out[i] = slices.Clone(t.predictProbaSingle(X[i]))
	}
	return out
}

// ---------------------------
// Internal builders & helpers
// ---------------------------

// Nodes with fewer samples than this search features sequentially.
const parallelSplitThreshold = 256

type builder struct {
	tree     *DecisionTreeClassifier
	X        [][]float64
	y        []int // class indices
	nClasses int
	rnd      *rand.Rand
	impurity func([]int) float64
}

type splitResult struct {
	gain      float64
	feature   int
	threshold float64
	leftIdx   []int
	rightIdx  []int
	constant  bool // feature takes a single value at the node
}

type pair struct {
	v float64
	i int
}

func (b *builder) build(idx []int, depth int) *dtNode {
	t := b.tree
	counts := b.counts(idx)
	node := &dtNode{n: len(idx), probas: countsToProbas(counts)}

	if isPure(counts) ||
		len(idx) < t.MinSamplesSplit ||
		len(idx) < 2*max(t.MinSamplesLeaf, 1) ||
		(t.MaxDepth > 0 && depth >= t.MaxDepth) {
		node.isLeaf = true
		return node
	}

	best := b.bestSplit(idx, b.impurity(counts))

	if best.feature < 0 || best.gain <= t.MinImpurityDecrease {
		node.isLeaf = true
		return node
	}

	node.feature = best.feature
	node.threshold = best.threshold
	node.left = b.build(best.leftIdx, depth+1)
	node.right = b.build(best.rightIdx, depth+1)
	node.probas = nil
	return node
}

// bestSplit searches features in a random order until MaxFeatures of them were
// non-constant at the node, or every feature was tried. Constant features do
// not count towards MaxFeatures.
func (b *builder) bestSplit(idx []int, parent float64) splitResult {
	order := b.featureOrder()
	k := b.tree.MaxFeatures
	if k <= 0 || k > len(order) {
		k = len(order)
	}

	best := splitResult{feature: -1}
	visited := 0
	for next := 0; visited < k && next < len(order); {
		batch := order[next:min(next+k-visited, len(order))]
		next += len(batch)

		for _, r := range b.searchFeatures(idx, batch, parent) {
			if r.constant {
				continue
			}
			visited++
			if r.feature < 0 {
				continue
			}
			if best.feature < 0 || r.gain > best.gain || (r.gain == best.gain && r.feature < best.feature) {
				best = r
			}
		}
	}
	return best
}

// searchFeatures evaluates each feature of feats, in parallel on large nodes.
// Results are stored by position so the outcome is independent of scheduling.
func (b *builder) searchFeatures(idx, feats []int, parent float64) []splitResult {
	results := make([]splitResult, len(feats))
	if len(idx) < parallelSplitThreshold {
		for k, f := range feats {
			results[k] = b.bestSplitForFeature(idx, f, parent)
		}
		return results
	}
	var wg sync.WaitGroup
	for k, f := range feats {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[k] = b.bestSplitForFeature(idx, f, parent)
		}()
	}
	wg.Wait()
	return results
}

// featureOrder is a random permutation of the features when MaxFeatures
// subsamples them, the natural order otherwise.
func (b *builder) featureOrder() []int {
	p := b.tree.nFeatures
	feats := make([]int, p)
	for j := range p {
		feats[j] = j
	}
	k := b.tree.MaxFeatures
	if k <= 0 || k >= p {
		return feats
	}
	b.rnd.Shuffle(p, func(i, j int) { feats[i], feats[j] = feats[j], feats[i] })
	return feats
}

// bestSplitForFeature scans sorted values of feature f once, keeping running
// class counts on each side of the candidate threshold.
func (b *builder) bestSplitForFeature(idx []int, f int, parent float64) splitResult {
	result := splitResult{feature: -1}
	minLeaf := max(b.tree.MinSamplesLeaf, 1)

	pairs := make([]pair, len(idx))
	for k, ii := range idx {
		pairs[k] = pair{b.X[ii][f], ii}
	}
	sort.SliceStable(pairs, func(a, c int) bool { return pairs[a].v < pairs[c].v })
	if pairs[0].v == pairs[len(pairs)-1].v {
		result.constant = true
		return result
	}

	n := len(pairs)
	left := make([]int, b.nClasses)
	right := b.counts(idx)
	bestS := -1

	for s := 1; s < n; s++ {
		c := b.y[pairs[s-1].i]
		left[c]++
		right[c]--
		if pairs[s].v == pairs[s-1].v {
			continue
		}
		if s < minLeaf || n-s < minLeaf {
			continue
		}
		weighted := (float64(s)*b.impurity(left) + float64(n-s)*b.impurity(right)) / float64(n)
		gain := parent - weighted
		if bestS < 0 || gain > result.gain {
			bestS = s
			result.gain = gain
			result.feature = f
			result.threshold = (pairs[s-1].v + pairs[s].v) / 2.0
		}
	}
	if bestS < 0 {
		return result
	}

	result.leftIdx = make([]int, 0, bestS)
	result.rightIdx = make([]int, 0, n-bestS)
	for k, p := range pairs {
		if k < bestS {
			result.leftIdx = append(result.leftIdx, p.i)
		} else {
			result.rightIdx = append(result.rightIdx, p.i)
		}
	}
	return result
}

func (b *builder) counts(idx []int) []int {
	counts := make([]int, b.nClasses)
	for _, ii := range idx {
		counts[b.y[ii]]++
	}
	return counts
}

func (t *DecisionTreeClassifier) predictProbaSingle(x []float64) []float64 {
	if t.root == nil {
		p := make([]float64, len(t.classes))
		for i := range p {
			p[i] = 1.0 / float64(len(p))
		}
		return p
	}
	node := t.root
	for !node.isLeaf {
		if x[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.probas
}

// ---------------------------
// Utilities: impurity & misc
// ---------------------------

func checkXY(X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("model: empty X")
	}
	if len(y) != len(X) {
		return errors.New("model: X and y length mismatch")
	}
	p := len(X[0])
	if p == 0 {
		return errors.New("model: X has no features")
	}
	for i := range X {
		if len(X[i]) != p {
			return errors.New("model: inconsistent number of features in X rows")
		}
		for _, v := range X[i] {
			if math.IsNaN(v) {
				return errors.New("model: X contains NaN, impute first")
			}
		}
	}
	return nil
}

func uniqueClasses(y []int) []int {
	out := slices.Clone(y)
	slices.Sort(out)
	return slices.Compact(out)
}

func giniFromCounts(counts []int) float64 {
	n := 0.0
	for _, c := range counts {
		n += float64(c)
	}
	if n == 0 {
		return 0
	}
	res := 1.0
	for _, c := range counts {
		p := float64(c) / n
		res -= p * p
	}
	return res
}

func entropyFromCounts(counts []int) float64 {
	n := 0.0
	for _, c := range counts {
		n += float64(c)
	}
	if n == 0 {
		return 0
	}
	res := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		res -= p * math.Log2(p)
	}
	return res
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func countsToProbas(counts []int) []float64 {
	n := 0
	for _, c := range counts {
		n += c
	}
	p := make([]float64, len(counts))
	if n == 0 {
		return p
	}
	for i := range counts {
		p[i] = float64(counts[i]) / float64(n)
	}
	return p
}

// argmaxFloat returns the first index of the largest value.
func argmaxFloat(arr []float64) int {
	best := 0
	for i := 1; i < len(arr); i++ {
		if arr[i] > arr[best] {
			best = i
		}
	}
	return best
}

// classIndex returns index of label in the sorted classes slice.
func classIndex(label int, classes []int) int {
	i, _ := slices.BinarySearch(classes, label)
	return i
}
