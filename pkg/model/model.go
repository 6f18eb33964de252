package model

// Classifier is a supervised classifier over dense float64 features and int labels.
type Classifier interface {
	Fit(X [][]float64, y []int) error
	Predict(X [][]float64) []int
	// PredictProba returns one distribution per row, aligned with Classes().
	PredictProba(X [][]float64) [][]float64
	Classes() []int
}

var (
	_ Classifier = (*DecisionTreeClassifier)(nil)
	_ Classifier = (*RandomForest)(nil)
)
