package dynamo

import (
	"errors"
	"fmt"

	"github.com/rkfall/rkfall/internal/fixed"
)

// Domain errors for simulation operations. All of them abort the request.
var (
	// ErrCoincidentBodies indicates two interacting bodies at the same point.
	ErrCoincidentBodies = errors.New("rkfall: coincident bodies (zero separation)")

	// ErrOverflow indicates a fixed-point value left the 64-bit range.
	ErrOverflow = fixed.ErrOverflow

	// ErrDimensionMismatch indicates per-axis arrays of different lengths.
	ErrDimensionMismatch = errors.New("rkfall: dimension mismatch between body arrays")

	// ErrDuplicateMass indicates two bodies sharing a mass value.
	ErrDuplicateMass = errors.New("rkfall: bodies must have distinct masses")

	// ErrTooExpensive indicates a request above the configured work ceiling.
	ErrTooExpensive = errors.New("rkfall: request exceeds simulation limits")

	// ErrInvalidStep indicates a non-positive time increment.
	ErrInvalidStep = errors.New("rkfall: time increment must be positive")
)

// SimulationError wraps an error with the tick and body it happened on.
type SimulationError struct {
	Tick    int
	BodyID  int
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("tick %d, body %d: %v", e.Tick, e.BodyID, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
