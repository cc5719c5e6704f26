package physics

import (
	"fmt"

	"github.com/rkfall/rkfall/internal/dynamo"
	"github.com/rkfall/rkfall/internal/fixed"
)

// G is the gravitational constant in unscaled units.
const G int64 = 1

// Gravity is the pairwise Newtonian rate function.
type Gravity struct {
	Exclusion dynamo.Exclusion
}

func NewGravity(ex dynamo.Exclusion) *Gravity {
	return &Gravity{Exclusion: ex}
}

// Derive sums the pull of every other body in sys on b. The result carries
// velocity in X/Y and acceleration in VelX/VelY.
func (g *Gravity) Derive(b dynamo.Body, sys dynamo.System) (dynamo.Body, error) {
	var a fixed.Arith
	var accX, accY int64

	for _, o := range sys {
		if g.Exclusion.Skip(b, o) {
			continue
		}

		dx := a.Sub(b.X, o.X)
		dy := a.Sub(b.Y, o.Y)
		r := fixed.Sqrt(a.Add(a.Mul(dx, dx), a.Mul(dy, dy)))
		if err := a.Err(); err != nil {
			return dynamo.Body{}, err
		}
		if r == 0 {
			return dynamo.Body{}, fmt.Errorf("%w: bodies %d and %d", dynamo.ErrCoincidentBodies, b.ID, o.ID)
		}

		ax, err := fixed.GravitationalAcceleration(G, o.Mass, dx, r)
		if err != nil {
			return dynamo.Body{}, err
		}
		ay, err := fixed.GravitationalAcceleration(G, o.Mass, dy, r)
		if err != nil {
			return dynamo.Body{}, err
		}

		accX = a.Add(accX, ax)
		accY = a.Add(accY, ay)
	}

	if err := a.Err(); err != nil {
		return dynamo.Body{}, err
	}

	return dynamo.Body{
		ID:   b.ID,
		Mass: b.Mass,
		X:    b.VelX,
		Y:    b.VelY,
		VelX: accX,
		VelY: accY,
	}, nil
}
