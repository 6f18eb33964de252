package pipeline

import (
	"github.com/google/uuid"

	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/logger"
)

// Label is the risk label shown to the user.
type Label string

const (
	Benign    Label = "benign"
	Malignant Label = "malignant"
)

// MalignantClass is the encoded label of a malignant sample.
const MalignantClass = 1

// Prediction is the outcome of one form submission.
type Prediction struct {
	ID         uuid.UUID `json:"id"`
	Label      Label     `json:"label"`
	Class      int       `json:"class"`
	Confidence float64   `json:"confidence"` // percent, probability of Label
}

// Predictor runs single-record inference against a trained model.
type Predictor struct {
	trained *Trained
	lggr    logger.Logger
}

func NewPredictor(tr *Trained, lggr logger.Logger) *Predictor {
	return &Predictor{trained: tr, lggr: lggr}
}

// Predict conforms record to the trained schema and classifies it.
func (p *Predictor) Predict(record map[string]float64) (Prediction, error) {
	x, err := p.trained.Schema.Conform(record)
	if err != nil {
		return Prediction{}, err
	}

	m := p.trained.Model
	proba := m.PredictProba([][]float64{x})[0]
	classes := m.Classes()
	best := 0
	for i := 1; i < len(proba); i++ {
		if proba[i] > proba[best] {
			best = i
		}
	}

	out := Prediction{
		ID:         uuid.New(),
		Label:      Benign,
		Class:      classes[best],
		Confidence: proba[best] * 100,
	}
	if out.Class == MalignantClass {
		out.Label = Malignant
	}

	p.lggr.Debugw("Prediction",
		"id", out.ID,
		"label", out.Label,
		"confidence", out.Confidence,
		"features", x,
	)
	return out, nil
}
