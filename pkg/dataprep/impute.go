package dataprep

import (
	"errors"
	"fmt"
	"math"

	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/stats"
)

// MedianImputer replaces NaNs with per-column medians learned in Fit.
type MedianImputer struct {
	Medians []float64
	fit     bool
}

// NewMedianImputer returns an unfitted imputer.
func NewMedianImputer() *MedianImputer { return &MedianImputer{} }

// Fit computes the median of the observed values of every column independently.
// A column without any observed value is an error; drop those before fitting.
func (m *MedianImputer) Fit(X [][]float64) error {
	if len(X) == 0 {
		return errors.New("impute: empty X")
	}
	p := len(X[0])
	m.Medians = make([]float64, p)
	for j := range p {
		med := stats.Median(stats.Column(X, j))
		if math.IsNaN(med) {
			return fmt.Errorf("impute: column %d has no observed values", j)
		}
		m.Medians[j] = med
	}
	m.fit = true
	return nil
}

// Transform returns a copy of X with NaNs replaced. Observed values are untouched,
// so applying it to already-imputed data is a no-op.
func (m *MedianImputer) Transform(X [][]float64) ([][]float64, error) {
	if !m.fit {
		return nil, errors.New("impute: not fitted")
	}
	out := make([][]float64, len(X))
	for i, row := range X {
		if len(row) != len(m.Medians) {
			return nil, fmt.Errorf("impute: row %d has %d features, fitted on %d", i, len(row), len(m.Medians))
		}
		cp := make([]float64, len(row))
		for j, v := range row {
			if math.IsNaN(v) {
				v = m.Medians[j]
			}
			cp[j] = v
		}
		out[i] = cp
	}
	return out, nil
}

// FitTransform fits on X and transforms it in one batch.
func (m *MedianImputer) FitTransform(X [][]float64) ([][]float64, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}
