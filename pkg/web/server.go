package web

import (
	"embed"
	"fmt"
	"html/template"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/app"
	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/charts"
	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// View is one of the three mutually exclusive pages.
type View int

const (
	ViewPrediction View = iota
	ViewInsights
	ViewFeatureInfo
)

var views = []struct {
	view  View
	path  string
	title string
	file  string
}{
	{ViewPrediction, "/prediction", "Prediction", "prediction.html"},
	{ViewInsights, "/insights", "Insights & Awareness", "insights.html"},
	{ViewFeatureInfo, "/features", "Feature Info & Medical Context", "features.html"},
}

// NavItem is one entry of the navigation control.
type NavItem struct {
	Path   string
	Title  string
	Active bool
}

// Server renders the views over a bootstrapped State.
type Server struct {
	state  *app.State
	lggr   logger.Logger
	pages  map[View]*template.Template
	halted *template.Template

	regionChart template.HTML
	yearChart   template.HTML

	// Fact picks the "Did you know" line on every Insights render.
	Fact func() string
}

// NewServer parses the templates and renders the static charts once.
func NewServer(state *app.State, lggr logger.Logger) (*Server, error) {
	s := &Server{
		state: state,
		lggr:  lggr,
		pages: make(map[View]*template.Template, len(views)),
		Fact:  func() string { return funFacts[rand.Intn(len(funFacts))] },
	}

	for _, v := range views {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+v.file)
		if err != nil {
			return nil, fmt.Errorf("web: parse %s: %w", v.file, err)
		}
		s.pages[v.view] = t
	}
	halted, err := template.ParseFS(templateFS, "templates/layout.html", "templates/halted.html")
	if err != nil {
		return nil, fmt.Errorf("web: parse halted.html: %w", err)
	}
	s.halted = halted

	region, err := charts.Bar("Breast Cancer Incidence by Region", "Cases (per 100k women)", regions, casesPer100k)
	if err != nil {
		return nil, fmt.Errorf("web: region chart: %w", err)
	}
	year, err := charts.Line("Global Breast Cancer Cases Over Time", "Year", "Global Cases (in millions)", years, globalCasesMM)
	if err != nil {
		return nil, fmt.Errorf("web: year chart: %w", err)
	}
	s.regionChart = inlineSVG(region)
	s.yearChart = inlineSVG(year)
	return s, nil
}

// Handler returns the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(s.haltGuard)
		r.Get("/", s.handlePredictionForm)
		r.Get("/prediction", s.handlePredictionForm)
		r.Post("/prediction", s.handlePredictionSubmit)
		r.Get("/insights", s.handleInsights)
		r.Get("/features", s.handleFeatureInfo)
		r.Post("/api/predict", s.handleAPIPredict)
	})
	return r
}

// haltGuard replaces every view with the configuration error once startup halted.
func (s *Server) haltGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.state.Halted() {
			next.ServeHTTP(w, r)
			return
		}
		if strings.HasPrefix(r.URL.Path, "/api/") {
			writeJSON(w, http.StatusServiceUnavailable, apiError{Error: s.state.Halt.Error()})
			return
		}
		s.render(w, http.StatusInternalServerError, s.halted, struct {
			Nav   []NavItem
			Error string
		}{nav(-1), s.state.Halt.Error()})
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.lggr.Infow("HTTP request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"took", time.Since(start),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if s.state.Halted() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "halted", "error": s.state.Halt.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "accuracy": s.state.Trained.Accuracy})
}

func (s *Server) render(w http.ResponseWriter, status int, t *template.Template, data any) {
	var buf strings.Builder
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.lggr.Errorw("Render failed", "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}

func nav(active View) []NavItem {
	items := make([]NavItem, len(views))
	for i, v := range views {
		items[i] = NavItem{Path: v.path, Title: v.title, Active: v.view == active}
	}
	return items
}

// inlineSVG drops the XML prolog so the chart can sit inside the HTML body.
func inlineSVG(svg []byte) template.HTML {
	s := string(svg)
	if i := strings.Index(s, "<svg"); i > 0 {
		s = s[i:]
	}
	return template.HTML(s)
}
