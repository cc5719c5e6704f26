package metrics

import (
	"math"

	"github.com/rkfall/rkfall/internal/dynamo"
	"github.com/rkfall/rkfall/internal/fixed"
)

// Energy returns kinetic plus potential energy of sys in real units, G = 1.
// Coincident pairs contribute no potential.
func Energy(sys dynamo.System) float64 {
	ke := 0.0
	pe := 0.0

	for i, a := range sys {
		m := fixed.ToFloatUnsigned(a.Mass)
		vx, vy := fixed.ToFloat(a.VelX), fixed.ToFloat(a.VelY)
		ke += 0.5 * m * (vx*vx + vy*vy)

		for _, b := range sys[i+1:] {
			r := math.Hypot(fixed.ToFloat(b.X-a.X), fixed.ToFloat(b.Y-a.Y))
			if r > 0 {
				pe -= m * fixed.ToFloatUnsigned(b.Mass) / r
			}
		}
	}

	return ke + pe
}

func Momentum(sys dynamo.System) (px, py float64) {
	for _, b := range sys {
		m := fixed.ToFloatUnsigned(b.Mass)
		px += m * fixed.ToFloat(b.VelX)
		py += m * fixed.ToFloat(b.VelY)
	}
	return
}

func AngularMomentum(sys dynamo.System) float64 {
	L := 0.0
	for _, b := range sys {
		m := fixed.ToFloatUnsigned(b.Mass)
		x, y := fixed.ToFloat(b.X), fixed.ToFloat(b.Y)
		vx, vy := fixed.ToFloat(b.VelX), fixed.ToFloat(b.VelY)
		L += m * (x*vy - y*vx)
	}
	return L
}

// EnergyDrift reports the largest relative energy deviation from the first
// observed state.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(tick int, sys dynamo.System) {
	energy := Energy(sys)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// MomentumDrift reports the largest change in total linear momentum
// magnitude from the first observed state.
type MomentumDrift struct {
	px0, py0 float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{}
}

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(tick int, sys dynamo.System) {
	px, py := Momentum(sys)
	if m.samples == 0 {
		m.px0, m.py0 = px, py
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, math.Hypot(px-m.px0, py-m.py0))
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.px0, m.py0 = 0, 0
	m.maxDrift = 0
	m.samples = 0
}
