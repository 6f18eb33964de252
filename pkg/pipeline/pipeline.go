package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/dataprep"
	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/loader"
	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/logger"
	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/model"
)

// TrainConfig holds the split and forest settings.
type TrainConfig struct {
	Seed        int64
	TestRatio   float64
	NEstimators int
}

// DefaultTrainConfig is an 80/20 split and a 100 tree forest, both seeded with 42.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{Seed: 42, TestRatio: 0.2, NEstimators: 100}
}

// Trained is the read-only result of the startup training phase.
type Trained struct {
	Model     model.Classifier
	Schema    Schema
	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64
	TrainSize int
	TestSize  int
}

// Train splits ds, fits a random forest on the training part and scores it on
// the held-out part. The scores are computed once here.
func Train(ds *dataprep.Dataset, cfg TrainConfig, lggr logger.Logger) (*Trained, error) {
	if cfg.TestRatio <= 0 || cfg.TestRatio >= 1 {
		return nil, fmt.Errorf("pipeline: test ratio %v outside (0,1)", cfg.TestRatio)
	}
	XTrain, XTest, yTrain, yTest := loader.TrainTestSplit(ds.X, ds.Y, cfg.TestRatio, cfg.Seed)
	if len(XTrain) == 0 || len(XTest) == 0 {
		return nil, errors.New("pipeline: not enough rows to split")
	}

	rf := model.NewRandomForest(
		model.WithNEstimators(cfg.NEstimators),
		model.WithSeed(cfg.Seed),
	)
	start := time.Now()
	if err := rf.Fit(XTrain, yTrain); err != nil {
		return nil, fmt.Errorf("pipeline: fit: %w", err)
	}

	pred := rf.Predict(XTest)
	tr := &Trained{
		Model:     rf,
		Schema:    NewSchema(ds),
		Accuracy:  model.Accuracy(yTest, pred),
		TrainSize: len(XTrain),
		TestSize:  len(XTest),
	}
	tr.Precision, tr.Recall, tr.F1 = model.PrecisionRecallF1(yTest, pred)

	lggr.Infow("Model trained",
		"trees", cfg.NEstimators,
		"features", len(ds.Features),
		"train", tr.TrainSize,
		"test", tr.TestSize,
		"accuracy", tr.Accuracy,
		"took", time.Since(start),
	)
	return tr, nil
}
