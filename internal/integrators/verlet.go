package integrators

import (
	"github.com/rkfall/rkfall/internal/dynamo"
	"github.com/rkfall/rkfall/internal/fixed"
)

// Verlet is velocity Verlet: a half kick, a drift at the half-step velocity,
// then a second half kick with the acceleration at the new position. The
// other bodies stay at their pre-tick positions.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(dt int64, b dynamo.Body, f dynamo.DeriveFunc) (dynamo.Body, error) {
	var a fixed.Arith

	d, err := f(b)
	if err != nil {
		return dynamo.Body{}, err
	}

	half := b
	half.VelX = a.Add(b.VelX, a.Div(a.Scale(d.VelX, dt), 2))
	half.VelY = a.Add(b.VelY, a.Div(a.Scale(d.VelY, dt), 2))
	half.X = a.Add(b.X, a.Scale(half.VelX, dt))
	half.Y = a.Add(b.Y, a.Scale(half.VelY, dt))
	if err := a.Err(); err != nil {
		return dynamo.Body{}, err
	}

	d, err = f(half)
	if err != nil {
		return dynamo.Body{}, err
	}

	next := half
	next.VelX = a.Add(half.VelX, a.Div(a.Scale(d.VelX, dt), 2))
	next.VelY = a.Add(half.VelY, a.Div(a.Scale(d.VelY, dt), 2))
	if err := a.Err(); err != nil {
		return dynamo.Body{}, err
	}
	return next, nil
}
