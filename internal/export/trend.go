// Package export writes analysis results to Excel workbooks and PNG charts.
package export

import "github.com/threeasure/fomodash/internal/model"

// Trend holds an ordinary least squares fit over scatter points.
type Trend struct {
	Slope     float64
	Intercept float64
}

// FitTrend fits a least-squares line through the points. ok=false when fewer
// than two points exist or the x values carry no variance.
func FitTrend(points []model.ScatterPoint) (Trend, bool) {
	n := float64(len(points))
	if len(points) < 2 {
		return Trend{}, false
	}

	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	meanX := sumX / n
	meanY := sumY / n

	var sxx, sxy float64
	for _, p := range points {
		dx := p.X - meanX
		sxx += dx * dx
		sxy += dx * (p.Y - meanY)
	}
	if sxx == 0 {
		return Trend{}, false
	}

	slope := sxy / sxx
	return Trend{Slope: slope, Intercept: meanY - slope*meanX}, true
}

// At evaluates the fitted line at x.
func (t Trend) At(x float64) float64 {
	return t.Intercept + t.Slope*x
}
