package sim

import (
	"fmt"

	"github.com/rkfall/rkfall/internal/dynamo"
	"github.com/rkfall/rkfall/internal/fixed"
)

// DefaultDt is the time increment used for minting: 0.001 in real units.
const DefaultDt = fixed.Precision / 1000

type Config struct {
	Dt     int64
	Ticks  uint32
	Record bool
}

func DefaultConfig() Config {
	return Config{
		Dt:    DefaultDt,
		Ticks: 1000,
	}
}

// Limits bounds the cost of one request. Work is ticks × bodies². Zero
// fields are unlimited.
type Limits struct {
	MaxBodies int    `yaml:"max_bodies" json:"max_bodies"`
	MaxWork   uint64 `yaml:"max_work" json:"max_work"`
}

func DefaultLimits() Limits {
	return Limits{
		MaxBodies: 64,
		MaxWork:   200_000_000,
	}
}

// Check returns ErrTooExpensive when n bodies over the given ticks exceed
// the limits.
func (l Limits) Check(n int, ticks uint32) error {
	if l.MaxBodies > 0 && n > l.MaxBodies {
		return fmt.Errorf("%w: %d bodies (max %d)", dynamo.ErrTooExpensive, n, l.MaxBodies)
	}
	if l.MaxWork > 0 && n > 0 {
		nn := uint64(n) * uint64(n)
		if uint64(ticks) > l.MaxWork/nn {
			return fmt.Errorf("%w: %d ticks × %d bodies² (max work %d)", dynamo.ErrTooExpensive, ticks, n, l.MaxWork)
		}
	}
	return nil
}

type Result struct {
	Initial    dynamo.System
	Final      dynamo.System
	Trajectory []dynamo.System
	Ticks      uint32
	Metrics    map[string]float64
}
