// Package app runs the one-time startup phase: load, preprocess, train.
package app

import (
	"errors"
	"fmt"

	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/data"
	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/dataprep"
	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/logger"
	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/pipeline"
)

// State is the process-wide, read-only result of startup.
//
// Exactly one of Trained and Halt is set. Halt carries the configuration error
// shown in place of every view; the model is never trained in that case.
type State struct {
	Dataset   *dataprep.Dataset
	Trained   *pipeline.Trained
	Predictor *pipeline.Predictor
	Halt      error
}

// Halted reports whether startup stopped on a configuration error.
func (s *State) Halted() bool { return s.Halt != nil }

// Bootstrap loads the table at path through cache, preprocesses it and trains.
// A load or fit failure is returned as an error and is fatal to the caller.
// A label problem is not an error: it yields a halted State.
func Bootstrap(cache *data.Cache, path string, cfg pipeline.TrainConfig, lggr logger.Logger) (*State, error) {
	tbl, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	lggr.Infow("Dataset loaded", "path", path, "rows", tbl.Len(), "columns", len(tbl.Header))

	ds, err := dataprep.Preprocess(tbl)
	if err != nil {
		var lve *dataprep.LabelValueError
		if errors.Is(err, dataprep.ErrLabelColumnNotFound) || errors.As(err, &lve) {
			lggr.Errorw("Configuration error, halting", "err", err)
			return &State{Halt: err}, nil
		}
		return nil, fmt.Errorf("preprocess: %w", err)
	}
	for _, d := range ds.Dropped {
		lggr.Debugw("Dropped column", "column", d.Name, "reason", d.Reason)
	}
	lggr.Infow("Preprocessed", "label", ds.Label.Kind, "features", len(ds.Features))

	tr, err := pipeline.Train(ds, cfg, lggr.Named("trainer"))
	if err != nil {
		return nil, err
	}
	return &State{
		Dataset:   ds,
		Trained:   tr,
		Predictor: pipeline.NewPredictor(tr, lggr.Named("predictor")),
	}, nil
}
