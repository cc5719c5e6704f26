package token

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rkfall/rkfall/internal/dynamo"
	"github.com/rkfall/rkfall/internal/sim"
)

// Request holds caller-supplied initial conditions, one entry per body.
type Request struct {
	Mass  []uint64 `json:"mass" yaml:"mass"`
	X     []int64  `json:"x" yaml:"x"`
	Y     []int64  `json:"y" yaml:"y"`
	VelX  []int64  `json:"vel_x" yaml:"vel_x"`
	VelY  []int64  `json:"vel_y" yaml:"vel_y"`
	Ticks uint32   `json:"ticks" yaml:"ticks"`
}

// RequestFromSystem flattens sys into per-axis arrays.
func RequestFromSystem(sys dynamo.System, ticks uint32) Request {
	return Request{
		Mass:  sys.Masses(),
		X:     sys.Xs(),
		Y:     sys.Ys(),
		VelX:  sys.VelXs(),
		VelY:  sys.VelYs(),
		Ticks: ticks,
	}
}

func (r Request) System() (dynamo.System, error) {
	return dynamo.NewSystem(r.Mass, r.X, r.Y, r.VelX, r.VelY)
}

// ID returns the token identifier the request mints.
func (r Request) ID() ID {
	return TokenID(Encode(r.Mass, r.X, r.Y, r.VelX, r.VelY, r.Ticks))
}

// Recorder persists mint events. trajectory is nil unless the minter keeps
// trajectories.
type Recorder interface {
	Record(ev *MintEvent, trajectory []dynamo.System) error
}

type Minter struct {
	ledger     *Ledger
	sim        *sim.Simulator
	limits     sim.Limits
	recorder   Recorder
	logger     *log.Logger
	now        func() time.Time
	trajectory bool
}

type Option func(*Minter)

func WithRecorder(r Recorder) Option        { return func(m *Minter) { m.recorder = r } }
func WithLogger(l *log.Logger) Option       { return func(m *Minter) { m.logger = l } }
func WithClock(now func() time.Time) Option { return func(m *Minter) { m.now = now } }

// WithLimits replaces the work ceiling checked before simulating. The zero
// Limits mints without a ceiling.
func WithLimits(l sim.Limits) Option { return func(m *Minter) { m.limits = l } }

// WithTrajectory makes the minter pass every intermediate system to the
// recorder.
func WithTrajectory() Option { return func(m *Minter) { m.trajectory = true } }

// NewMinter mints through s. Requests are checked against the limits of s,
// or against sim.DefaultLimits when s has none.
func NewMinter(ledger *Ledger, s *sim.Simulator, opts ...Option) *Minter {
	m := &Minter{
		ledger: ledger,
		sim:    s,
		limits: s.Limits(),
		logger: log.New(io.Discard),
		now:    time.Now,
	}
	if m.limits == (sim.Limits{}) {
		m.limits = sim.DefaultLimits()
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Mint simulates req, derives its identifier, assigns it to owner and
// records the event. On any error nothing is minted or recorded.
func (m *Minter) Mint(ctx context.Context, owner string, req Request) (*MintEvent, error) {
	if owner == "" {
		return nil, ErrInvalidReceiver
	}

	sys, err := req.System()
	if err != nil {
		return nil, err
	}
	if err := sys.DistinctMasses(); err != nil {
		return nil, err
	}
	if err := m.limits.Check(len(sys), req.Ticks); err != nil {
		return nil, err
	}

	id := req.ID()
	if prev, err := m.ledger.OwnerOf(id); err == nil {
		return nil, &AlreadyMintedError{TokenID: id, Owner: prev}
	}

	m.logger.Debug("simulating", "token", id, "bodies", len(sys), "ticks", req.Ticks)
	start := m.now()

	res, err := m.sim.Run(ctx, sys, sim.Config{Dt: sim.DefaultDt, Ticks: req.Ticks, Record: m.trajectory})
	if err != nil {
		return nil, fmt.Errorf("simulate %s: %w", id, err)
	}

	if err := m.ledger.Mint(owner, id); err != nil {
		return nil, err
	}

	ev := NewMintEvent(id, owner, req.Ticks, sim.DefaultDt, res.Initial, res.Final)
	ev.Timestamp = m.now()

	if m.recorder != nil {
		if err := m.recorder.Record(ev, res.Trajectory); err != nil {
			m.ledger.revoke(id)
			return nil, fmt.Errorf("record %s: %w", id, err)
		}
	}

	m.logger.Info("minted", "token", id, "owner", owner, "bodies", len(sys), "ticks", req.Ticks, "elapsed", ev.Timestamp.Sub(start))
	return ev, nil
}
