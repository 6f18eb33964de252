// Package charts renders small static charts to SVG with gonum/plot.
package charts

import (
	"bytes"
	"errors"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	width  = 6 * vg.Inch
	height = 3.5 * vg.Inch
	pink   = color.RGBA{R: 214, G: 51, B: 132, A: 255}
)

// Bar renders one bar per label.
func Bar(title, yLabel string, labels []string, values []float64) ([]byte, error) {
	if len(labels) != len(values) || len(values) == 0 {
		return nil, errors.New("charts: labels and values must be non-empty and aligned")
	}
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel
	p.Y.Min = 0

	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(36))
	if err != nil {
		return nil, err
	}
	bars.Color = pink
	bars.LineStyle.Width = 0
	p.Add(bars, plotter.NewGrid())
	p.NominalX(labels...)

	return render(p)
}

// Line renders ys against xs with point markers.
func Line(title, xLabel, yLabel string, xs, ys []float64) ([]byte, error) {
	if len(xs) != len(ys) || len(xs) == 0 {
		return nil, errors.New("charts: xs and ys must be non-empty and aligned")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	l, s, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, err
	}
	l.Color = pink
	l.LineStyle.Width = vg.Points(2)
	s.Color = pink
	s.Shape = draw.CircleGlyph{}
	p.Add(l, s, plotter.NewGrid())

	return render(p)
}

func render(p *plot.Plot) ([]byte, error) {
	wt, err := p.WriterTo(width, height, "svg")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
