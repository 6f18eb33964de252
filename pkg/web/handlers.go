package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strconv"

	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/features"
	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/pipeline"
)

// Input is one numeric widget on the prediction form.
type Input struct {
	Name  string // display name, also the form field name
	Min   float64
	Max   float64
	Value float64
}

// Balloon is one rising balloon of the benign celebration.
type Balloon struct {
	Left  int
	Delay int
}

type predictionPage struct {
	Nav       []NavItem
	AgeGroups []AgeGroupRow
	AgeMin    int
	AgeMax    int
	Age       int
	Inputs    []Input
	Result    *pipeline.Prediction
	Balloons  []Balloon
	Accuracy  float64
	Error     string
}

func (s *Server) newPredictionPage() *predictionPage {
	tr := s.state.Trained
	inputs := make([]Input, len(tr.Schema.Columns))
	for i, c := range tr.Schema.Columns {
		inputs[i] = Input{Name: c.Display, Min: c.Min, Max: c.Max, Value: c.Mean}
	}
	return &predictionPage{
		Nav:       nav(ViewPrediction),
		AgeGroups: ageGroups,
		AgeMin:    ageMin,
		AgeMax:    ageMax,
		Age:       ageDefault,
		Inputs:    inputs,
		Accuracy:  tr.Accuracy * 100,
	}
}

func (s *Server) handlePredictionForm(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, s.pages[ViewPrediction], s.newPredictionPage())
}

func (s *Server) handlePredictionSubmit(w http.ResponseWriter, r *http.Request) {
	page := s.newPredictionPage()
	if err := r.ParseForm(); err != nil {
		page.Error = err.Error()
		s.render(w, http.StatusBadRequest, s.pages[ViewPrediction], page)
		return
	}

	record, err := parseRecord(r, page)
	if err != nil {
		page.Error = err.Error()
		s.render(w, http.StatusBadRequest, s.pages[ViewPrediction], page)
		return
	}

	pred, err := s.state.Predictor.Predict(record)
	if err != nil {
		s.lggr.Errorw("Prediction failed", "err", err)
		page.Error = err.Error()
		s.render(w, http.StatusInternalServerError, s.pages[ViewPrediction], page)
		return
	}
	page.Result = &pred
	if pred.Label == pipeline.Benign {
		for i := range 12 {
			page.Balloons = append(page.Balloons, Balloon{Left: 4 + i*8, Delay: (i % 4) * 250})
		}
	}
	s.render(w, http.StatusOK, s.pages[ViewPrediction], page)
}

// parseRecord reads the age slider and every feature input into a record keyed
// by display name. Submitted values are written back into page so the form
// keeps them.
func parseRecord(r *http.Request, page *predictionPage) (map[string]float64, error) {
	record := make(map[string]float64, len(page.Inputs)+1)

	if v := r.PostForm.Get(pipeline.AgeField); v != "" {
		age, err := strconv.Atoi(v)
		if err != nil || age < ageMin || age > ageMax {
			return nil, fmt.Errorf("age of patient must be a whole number between %d and %d", ageMin, ageMax)
		}
		page.Age = age
	}
	record[pipeline.AgeField] = float64(page.Age)

	for i := range page.Inputs {
		in := &page.Inputs[i]
		raw := r.PostForm.Get(in.Name)
		if raw == "" {
			continue // keep the column mean, as the form pre-fills it
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%s: %q is not a number", in.Name, raw)
		}
		if v < in.Min || v > in.Max {
			return nil, fmt.Errorf("%s must be between %g and %g", in.Name, in.Min, in.Max)
		}
		in.Value = v
	}
	for _, in := range page.Inputs {
		record[in.Name] = in.Value
	}
	return record, nil
}

func (s *Server) handleInsights(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, s.pages[ViewInsights], struct {
		Nav         []NavItem
		RegionChart template.HTML
		YearChart   template.HTML
		Fact        string
	}{nav(ViewInsights), s.regionChart, s.yearChart, s.Fact()})
}

func (s *Server) handleFeatureInfo(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, s.pages[ViewFeatureInfo], struct {
		Nav      []NavItem
		Features []features.Info
	}{nav(ViewFeatureInfo), features.Catalog})
}

type apiPredictRequest struct {
	Age      *int               `json:"age,omitempty"`
	Features map[string]float64 `json:"features"`
}

type apiPredictResponse struct {
	pipeline.Prediction
	Accuracy float64 `json:"model_accuracy"`
}

type apiError struct {
	Error string `json:"error"`
}

// handleAPIPredict accepts features keyed by raw or display name.
func (s *Server) handleAPIPredict(w http.ResponseWriter, r *http.Request) {
	var req apiPredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid request: " + err.Error()})
		return
	}
	record := make(map[string]float64, len(req.Features)+1)
	for k, v := range req.Features {
		record[k] = v
	}
	if req.Age != nil {
		record[pipeline.AgeField] = float64(*req.Age)
	}

	pred, err := s.state.Predictor.Predict(record)
	var mfe *pipeline.MissingFeatureError
	switch {
	case errors.As(err, &mfe):
		writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	case err != nil:
		s.lggr.Errorw("Prediction failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, apiError{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, apiPredictResponse{Prediction: pred, Accuracy: s.state.Trained.Accuracy})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
