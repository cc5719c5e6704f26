package sim

import (
	"context"
	"fmt"

	"github.com/rkfall/rkfall/internal/dynamo"
	"github.com/rkfall/rkfall/internal/integrators"
	"github.com/rkfall/rkfall/internal/physics"
)

type Simulator struct {
	deriver   dynamo.Deriver
	stepper   dynamo.Stepper
	limits    Limits
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func New(deriver dynamo.Deriver, stepper dynamo.Stepper) *Simulator {
	return &Simulator{
		deriver:   deriver,
		stepper:   stepper,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}
}

// NewGravity returns a simulator using Newtonian gravity and RK4.
func NewGravity(ex dynamo.Exclusion) *Simulator {
	return New(physics.NewGravity(ex), integrators.NewRK4())
}

func (s *Simulator) SetLimits(l Limits)            { s.limits = l }
func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) Limits() Limits                { return s.limits }

var std = NewGravity(dynamo.ByID)

// Tick advances every body of sys by dt with the default gravity simulator.
func Tick(dt int64, sys dynamo.System) (dynamo.System, error) {
	return std.Tick(dt, sys)
}

// TickMany applies Tick n times.
func TickMany(n uint32, dt int64, sys dynamo.System) (dynamo.System, error) {
	return std.TickMany(n, dt, sys)
}

// Tick advances every body by dt. Forces are always evaluated against the
// pre-tick sys, never against bodies already advanced in this tick.
func (s *Simulator) Tick(dt int64, sys dynamo.System) (dynamo.System, error) {
	return s.tick(0, dt, sys)
}

func (s *Simulator) tick(i int, dt int64, sys dynamo.System) (dynamo.System, error) {
	f := func(b dynamo.Body) (dynamo.Body, error) {
		return s.deriver.Derive(b, sys)
	}

	next := make(dynamo.System, len(sys))
	for j, b := range sys {
		nb, err := s.stepper.Step(dt, b, f)
		if err != nil {
			return nil, &dynamo.SimulationError{Tick: i, BodyID: b.ID, Wrapped: err}
		}
		next[j] = nb
	}
	return next, nil
}

// TickMany applies n ticks in sequence. n == 0 returns a copy of sys.
func (s *Simulator) TickMany(n uint32, dt int64, sys dynamo.System) (dynamo.System, error) {
	if err := s.limits.Check(len(sys), n); err != nil {
		return nil, err
	}

	cur := sys.Clone()
	for i := 0; i < int(n); i++ {
		next, err := s.tick(i, dt, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// Run is TickMany with cancellation, observers, metrics and optional
// trajectory capture. No partial result is returned on error.
func (s *Simulator) Run(ctx context.Context, sys dynamo.System, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if err := s.limits.Check(len(sys), cfg.Ticks); err != nil {
		return nil, err
	}

	result := &Result{
		Initial: sys.Clone(),
		Ticks:   cfg.Ticks,
		Metrics: make(map[string]float64),
	}
	if cfg.Record {
		result.Trajectory = make([]dynamo.System, 0, int(cfg.Ticks)+1)
		result.Trajectory = append(result.Trajectory, result.Initial)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	cur := result.Initial
	s.observe(0, cur)

	for i := 0; i < int(cfg.Ticks); i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		next, err := s.tick(i, cfg.Dt, cur)
		if err != nil {
			return nil, err
		}
		cur = next

		if cfg.Record {
			result.Trajectory = append(result.Trajectory, cur)
		}
		s.observe(i+1, cur)
	}

	result.Final = cur
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) observe(tick int, sys dynamo.System) {
	for _, m := range s.metrics {
		m.Observe(tick, sys)
	}
	for _, obs := range s.observers {
		obs.OnTick(tick, sys)
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w, got %d", dynamo.ErrInvalidStep, cfg.Dt)
	}
	return nil
}
