// Package chart renders forecasting results with gonum/plot: the
// actual-vs-predicted comparison on a time axis and the training loss
// curve. The output format follows the file extension (.png, .svg,
// .pdf and the other writers gonum/plot knows).
package chart

import (
	"fmt"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// TimePoint is one value on the time axis.
type TimePoint struct {
	Time  time.Time
	Value float64
}

// Line is one labeled series on the comparison chart.
type Line struct {
	Name   string
	Points []TimePoint
}

const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 4 * vg.Inch
)

// Render draws labeled lines on a shared time axis and writes the
// chart to path.
func Render(path, title string, lines []Line) error {
	if len(lines) == 0 {
		return fmt.Errorf("nothing to chart")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "date"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Y.Label.Text = "value"
	p.Legend.Top = true

	for i, line := range lines {
		if len(line.Points) == 0 {
			return fmt.Errorf("line %q has no points", line.Name)
		}

		xys := make(plotter.XYs, len(line.Points))
		for j, pt := range line.Points {
			xys[j].X = float64(pt.Time.Unix())
			xys[j].Y = pt.Value
		}

		l, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("building line %q: %w", line.Name, err)
		}
		l.Color = plotutil.Color(i)
		l.Dashes = plotutil.Dashes(i)

		p.Add(l)
		p.Legend.Add(line.Name, l)
	}

	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return fmt.Errorf("saving chart to %s: %w", path, err)
	}
	return nil
}

// RenderLoss draws the per-epoch training loss curve.
func RenderLoss(path string, losses []float64) error {
	if len(losses) == 0 {
		return fmt.Errorf("no losses to chart")
	}

	p := plot.New()
	p.Title.Text = "Training loss"
	p.X.Label.Text = "epoch"
	p.Y.Label.Text = "MSE loss"

	xys := make(plotter.XYs, len(losses))
	for i, loss := range losses {
		xys[i].X = float64(i + 1)
		xys[i].Y = loss
	}

	l, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("building loss line: %w", err)
	}
	l.Color = plotutil.Color(0)
	p.Add(l)

	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return fmt.Errorf("saving chart to %s: %w", path, err)
	}
	return nil
}
