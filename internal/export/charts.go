package export

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/threeasure/fomodash/internal/model"
)

var (
	chartBarColor   = color.RGBA{R: 250, G: 128, B: 114, A: 255}
	chartDotColor   = color.RGBA{R: 107, G: 155, B: 209, A: 255}
	chartTrendColor = color.RGBA{R: 212, G: 85, B: 74, A: 255}
)

// SaveBarChart writes a vertical bar chart of group counts to a PNG file.
func SaveBarChart(path, title, yLabel string, groups []model.GroupCount) error {
	if len(groups) == 0 {
		return fmt.Errorf("no data to chart")
	}

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Text = yLabel

	values := make(plotter.Values, len(groups))
	labels := make([]string, len(groups))
	for i, g := range groups {
		values[i] = float64(g.Count)
		labels[i] = g.Label
	}

	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return fmt.Errorf("building bar chart: %w", err)
	}
	bars.Color = chartBarColor
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars, plotter.NewGrid())
	p.NominalX(labels...)

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving chart: %w", err)
	}
	return nil
}

// SaveScatterChart writes a scatter plot with a least-squares trendline to a
// PNG file. The trendline is omitted when the points cannot support a fit.
func SaveScatterChart(path, title, xLabel, yLabel string, points []model.ScatterPoint) error {
	if len(points) == 0 {
		return fmt.Errorf("no data to chart")
	}

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("building scatter: %w", err)
	}
	scatter.GlyphStyle.Color = chartDotColor
	scatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(scatter, plotter.NewGrid())

	if tr, ok := FitTrend(points); ok {
		line := plotter.NewFunction(tr.At)
		line.Color = chartTrendColor
		line.Width = vg.Points(2)
		line.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(line)
	}

	if err := p.Save(10*vg.Inch, 7*vg.Inch, path); err != nil {
		return fmt.Errorf("saving chart: %w", err)
	}
	return nil
}

// SaveDailyChart writes the daily response counts as a line chart to a PNG
// file, x axis in days since the first response.
func SaveDailyChart(path, title string, daily []model.DailyCount) error {
	if len(daily) == 0 {
		return fmt.Errorf("no data to chart")
	}

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Day"
	p.Y.Label.Text = "Responses"
	p.X.Tick.Marker = plot.TimeTicks{Format: "Jan 02"}

	xys := make(plotter.XYs, len(daily))
	for i, d := range daily {
		xys[i] = plotter.XY{X: float64(d.Date.Unix()), Y: float64(d.Count)}
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("building line: %w", err)
	}
	line.Color = chartBarColor
	line.Width = vg.Points(2)

	p.Add(line, plotter.NewGrid())

	if err := p.Save(12*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("saving chart: %w", err)
	}
	return nil
}
