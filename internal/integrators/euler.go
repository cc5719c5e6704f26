package integrators

import (
	"github.com/rkfall/rkfall/internal/dynamo"
	"github.com/rkfall/rkfall/internal/fixed"
)

// Euler is the explicit first-order stepper: b + f(b)*dt.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dt int64, b dynamo.Body, f dynamo.DeriveFunc) (dynamo.Body, error) {
	d, err := f(b)
	if err != nil {
		return dynamo.Body{}, err
	}

	var a fixed.Arith
	next := b.Add(&a, d.Scale(&a, dt))
	if err := a.Err(); err != nil {
		return dynamo.Body{}, err
	}
	return next, nil
}
