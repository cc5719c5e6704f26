package dynamo

import (
	"fmt"
	"strings"

	"github.com/rkfall/rkfall/internal/fixed"
)

// Body is one simulated point mass. Mass is invariant across ticks; the
// other numeric fields change every tick. ID is opaque to the physics and
// only used to recognise a body within its own system.
type Body struct {
	ID   int    `json:"id"`
	Mass uint64 `json:"mass"`
	X    int64  `json:"x"`
	Y    int64  `json:"y"`
	VelX int64  `json:"vel_x"`
	VelY int64  `json:"vel_y"`
}

// Add returns b + o on the four motion components. Mass and ID are b's.
func (b Body) Add(a *fixed.Arith, o Body) Body {
	b.X = a.Add(b.X, o.X)
	b.Y = a.Add(b.Y, o.Y)
	b.VelX = a.Add(b.VelX, o.VelX)
	b.VelY = a.Add(b.VelY, o.VelY)
	return b
}

// Mul returns b with every motion component multiplied by n.
func (b Body) Mul(a *fixed.Arith, n int64) Body {
	b.X = a.Mul(b.X, n)
	b.Y = a.Mul(b.Y, n)
	b.VelX = a.Mul(b.VelX, n)
	b.VelY = a.Mul(b.VelY, n)
	return b
}

// Div returns b with every motion component divided by n, truncating.
func (b Body) Div(a *fixed.Arith, n int64) Body {
	b.X = a.Div(b.X, n)
	b.Y = a.Div(b.Y, n)
	b.VelX = a.Div(b.VelX, n)
	b.VelY = a.Div(b.VelY, n)
	return b
}

// Scale returns b with every motion component mapped to (v*dt)/Precision.
func (b Body) Scale(a *fixed.Arith, dt int64) Body {
	b.X = a.Scale(b.X, dt)
	b.Y = a.Scale(b.Y, dt)
	b.VelX = a.Scale(b.VelX, dt)
	b.VelY = a.Scale(b.VelY, dt)
	return b
}

func (b Body) String() string {
	return fmt.Sprintf("body#%d{m=%d pos=(%d,%d) vel=(%d,%d)}", b.ID, b.Mass, b.X, b.Y, b.VelX, b.VelY)
}

// System is an ordered set of bodies at one instant.
type System []Body

// NewSystem builds a system from parallel per-axis arrays. Body IDs are the
// array indices.
func NewSystem(masses []uint64, x, y, velX, velY []int64) (System, error) {
	n := len(masses)
	if len(x) != n || len(y) != n || len(velX) != n || len(velY) != n {
		return nil, fmt.Errorf("%w: mass=%d x=%d y=%d vel_x=%d vel_y=%d",
			ErrDimensionMismatch, n, len(x), len(y), len(velX), len(velY))
	}

	sys := make(System, n)
	for i := range sys {
		sys[i] = Body{ID: i, Mass: masses[i], X: x[i], Y: y[i], VelX: velX[i], VelY: velY[i]}
	}
	return sys, nil
}

func (s System) Clone() System {
	c := make(System, len(s))
	copy(c, s)
	return c
}

// Equal reports whether both systems hold bit-identical bodies in the same
// order.
func (s System) Equal(o System) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// DistinctMasses returns ErrDuplicateMass if two bodies share a mass.
func (s System) DistinctMasses() error {
	seen := make(map[uint64]int, len(s))
	for i, b := range s {
		if j, ok := seen[b.Mass]; ok {
			return fmt.Errorf("%w: bodies %d and %d have mass %d", ErrDuplicateMass, j, i, b.Mass)
		}
		seen[b.Mass] = i
	}
	return nil
}

func (s System) Masses() []uint64 {
	out := make([]uint64, len(s))
	for i, b := range s {
		out[i] = b.Mass
	}
	return out
}

func (s System) Xs() []int64    { return s.axis(func(b Body) int64 { return b.X }) }
func (s System) Ys() []int64    { return s.axis(func(b Body) int64 { return b.Y }) }
func (s System) VelXs() []int64 { return s.axis(func(b Body) int64 { return b.VelX }) }
func (s System) VelYs() []int64 { return s.axis(func(b Body) int64 { return b.VelY }) }

func (s System) axis(get func(Body) int64) []int64 {
	out := make([]int64, len(s))
	for i, b := range s {
		out[i] = get(b)
	}
	return out
}

func (s System) String() string {
	parts := make([]string, len(s))
	for i, b := range s {
		parts[i] = b.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
