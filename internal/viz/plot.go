package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/rkfall/rkfall/internal/dynamo"
	"github.com/rkfall/rkfall/internal/fixed"
	"github.com/rkfall/rkfall/internal/metrics"
)

const (
	plotWidth  = 80
	plotHeight = 10
)

// seriesColors cycles per body; asciigraph needs one color per legend.
var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Red,
	asciigraph.Green,
	asciigraph.Blue,
	asciigraph.Yellow,
	asciigraph.Cyan,
	asciigraph.Magenta,
}

// Orbit draws every body's path on a braille canvas.
func Orbit(trajectory []dynamo.System, width, height int) string {
	c := NewCanvas(width, height)
	c.DrawTrajectory(Fit(trajectory...), trajectory)
	return c.String()
}

// Series extracts one float value per recorded system.
func Series(trajectory []dynamo.System, f func(dynamo.System) float64) []float64 {
	out := make([]float64, len(trajectory))
	for i, sys := range trajectory {
		out[i] = f(sys)
	}
	return out
}

// Downsample keeps at most n evenly spaced points, always including the
// last one.
func Downsample(data []float64, n int) []float64 {
	if n <= 0 || len(data) <= n {
		return data
	}
	if n == 1 {
		return data[len(data)-1:]
	}
	out := make([]float64, n)
	step := float64(len(data)-1) / float64(n-1)
	for i := range out {
		out[i] = data[int(math.Round(float64(i)*step))]
	}
	return out
}

// EnergyPlot charts total mechanical energy over the trajectory.
func EnergyPlot(trajectory []dynamo.System) string {
	if len(trajectory) < 2 {
		return ""
	}
	data := Downsample(Series(trajectory, metrics.Energy), plotWidth)
	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption("energy"),
	)
}

// AxisPlots charts x and y of every body, one chart per axis.
func AxisPlots(trajectory []dynamo.System) []string {
	if len(trajectory) < 2 {
		return nil
	}
	n := len(trajectory[0])

	axes := []struct {
		name string
		get  func(dynamo.Body) int64
	}{
		{"x", func(b dynamo.Body) int64 { return b.X }},
		{"y", func(b dynamo.Body) int64 { return b.Y }},
	}

	charts := make([]string, 0, len(axes))
	for _, axis := range axes {
		series := make([][]float64, n)
		legends := make([]string, n)
		colors := make([]asciigraph.AnsiColor, n)
		for i := 0; i < n; i++ {
			series[i] = Downsample(Series(trajectory, func(sys dynamo.System) float64 {
				return fixed.ToFloat(axis.get(sys[i]))
			}), plotWidth)
			legends[i] = fmt.Sprintf("body %d", trajectory[0][i].ID)
			colors[i] = seriesColors[i%len(seriesColors)]
		}
		charts = append(charts, asciigraph.PlotMany(series,
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.SeriesColors(colors...),
			asciigraph.SeriesLegends(legends...),
			asciigraph.Caption(axis.name+" vs tick"),
		))
	}
	return charts
}
