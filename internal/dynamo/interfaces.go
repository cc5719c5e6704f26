package dynamo

import (
	"fmt"
	"strings"
)

// Exclusion decides which bodies are "self" when summing interactions.
type Exclusion int

const (
	// ByID skips only the body carrying the same ID.
	ByID Exclusion = iota
	// ByMass skips every body whose mass equals the evaluated body's mass.
	ByMass
)

// Skip reports whether other must be left out of self's force sum.
func (e Exclusion) Skip(self, other Body) bool {
	if e == ByMass {
		return self.Mass == other.Mass
	}
	return self.ID == other.ID
}

func (e Exclusion) String() string {
	switch e {
	case ByID:
		return "id"
	case ByMass:
		return "mass"
	}
	return fmt.Sprintf("exclusion(%d)", int(e))
}

// ParseExclusion accepts "id" or "mass". The empty string means ByID.
func ParseExclusion(s string) (Exclusion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "id":
		return ByID, nil
	case "mass":
		return ByMass, nil
	}
	return ByID, fmt.Errorf("unknown exclusion policy: %s", s)
}

// DeriveFunc returns the rate of change of a single body.
type DeriveFunc func(b Body) (Body, error)

// Deriver computes a body's rate of change within a system: position rate in
// X/Y, velocity rate in VelX/VelY.
type Deriver interface {
	Derive(b Body, sys System) (Body, error)
}

// Stepper advances one body by dt using the supplied rate function.
type Stepper interface {
	Step(dt int64, b Body, f DeriveFunc) (Body, error)
}

type Observer interface {
	OnTick(tick int, sys System)
}

type Metric interface {
	Name() string
	Observe(tick int, sys System)
	Value() float64
	Reset()
}
