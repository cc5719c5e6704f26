package analysis

import (
	"math"

	"github.com/rkfall/rkfall/internal/dynamo"
	"github.com/rkfall/rkfall/internal/fixed"
)

// DominantPeriod returns the period, in the units of dt, of the strongest
// non-constant frequency in samples spaced dt apart. It returns 0 when the
// series holds less than one full cycle of any frequency.
func DominantPeriod(samples []float64, dt float64) float64 {
	ps := PowerSpectrum(samples)
	if len(ps) < 2 {
		return 0
	}

	best := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > ps[best] || best == 0 {
			best = i
		}
	}
	if ps[best] == 0 {
		return 0
	}

	n := 2 * len(ps)
	return float64(n) * dt / float64(best)
}

// Separation returns the distance between two bodies at every recorded
// tick, in real units.
func Separation(trajectory []dynamo.System, a, b int) []float64 {
	out := make([]float64, len(trajectory))
	for i, sys := range trajectory {
		dx := fixed.ToFloat(sys[a].X) - fixed.ToFloat(sys[b].X)
		dy := fixed.ToFloat(sys[a].Y) - fixed.ToFloat(sys[b].Y)
		out[i] = math.Hypot(dx, dy)
	}
	return out
}

// BodyPeriods estimates each body's orbital period from its x coordinate.
func BodyPeriods(trajectory []dynamo.System, dt float64) []float64 {
	if len(trajectory) == 0 {
		return nil
	}
	periods := make([]float64, len(trajectory[0]))
	for i := range periods {
		xs := make([]float64, len(trajectory))
		for t, sys := range trajectory {
			xs[t] = fixed.ToFloat(sys[i].X)
		}
		periods[i] = DominantPeriod(xs, dt)
	}
	return periods
}
