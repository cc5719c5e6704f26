package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rkfall/rkfall/internal/dynamo"
	"github.com/rkfall/rkfall/internal/fixed"
	"github.com/rkfall/rkfall/internal/integrators"
	"github.com/rkfall/rkfall/internal/physics"
	"github.com/rkfall/rkfall/internal/sim"
	"github.com/rkfall/rkfall/internal/token"
)

const (
	DefaultDt     = 0.001
	DefaultTicks  = 1000
	DefaultPreset = "single_orbit"
)

var ErrNoBodies = errors.New("config: no bodies")

// BodyConfig holds one body's initial conditions in real units.
type BodyConfig struct {
	Mass float64 `yaml:"mass"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	VX   float64 `yaml:"vx"`
	VY   float64 `yaml:"vy"`
}

type Config struct {
	Name       string       `yaml:"name"`
	Dt         float64      `yaml:"dt"`
	Ticks      uint32       `yaml:"ticks"`
	Owner      string       `yaml:"owner,omitempty"`
	Exclusion  string       `yaml:"exclusion,omitempty"`
	Integrator string       `yaml:"integrator,omitempty"`
	Bodies     []BodyConfig `yaml:"bodies"`
	Limits     sim.Limits   `yaml:"limits"`
}

func DefaultConfig() *Config {
	return GetPreset(DefaultPreset)
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// System converts the configured bodies to fixed point, assigning ids in
// order.
func (c *Config) System() (dynamo.System, error) {
	if len(c.Bodies) == 0 {
		return nil, ErrNoBodies
	}
	sys := make(dynamo.System, len(c.Bodies))
	for i, b := range c.Bodies {
		sys[i] = dynamo.Body{
			ID:   i,
			Mass: fixed.FromFloatUnsigned(b.Mass),
			X:    fixed.FromFloat(b.X),
			Y:    fixed.FromFloat(b.Y),
			VelX: fixed.FromFloat(b.VX),
			VelY: fixed.FromFloat(b.VY),
		}
	}
	return sys, nil
}

// Request is the mint request for the configured bodies and tick count.
func (c *Config) Request() (token.Request, error) {
	sys, err := c.System()
	if err != nil {
		return token.Request{}, err
	}
	return token.RequestFromSystem(sys, c.Ticks), nil
}

func (c *Config) FixedDt() int64 {
	return fixed.FromFloat(c.Dt)
}

func (c *Config) ExclusionPolicy() (dynamo.Exclusion, error) {
	return dynamo.ParseExclusion(c.Exclusion)
}

func (c *Config) Stepper() (dynamo.Stepper, error) {
	return integrators.Get(c.Integrator)
}

// Simulator builds a gravity simulator with the configured exclusion,
// integrator and limits.
func (c *Config) Simulator() (*sim.Simulator, error) {
	ex, err := c.ExclusionPolicy()
	if err != nil {
		return nil, err
	}
	stepper, err := c.Stepper()
	if err != nil {
		return nil, err
	}
	s := sim.New(physics.NewGravity(ex), stepper)
	s.SetLimits(c.Limits)
	return s, nil
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{Dt: c.FixedDt(), Ticks: c.Ticks}
}

func (c *Config) Validate() error {
	if len(c.Bodies) == 0 {
		return ErrNoBodies
	}
	if c.FixedDt() <= 0 {
		return fmt.Errorf("%w, got %g", dynamo.ErrInvalidStep, c.Dt)
	}
	for i, b := range c.Bodies {
		if b.Mass <= 0 {
			return fmt.Errorf("config: body %d: mass must be positive, got %g", i, b.Mass)
		}
	}
	if _, err := c.ExclusionPolicy(); err != nil {
		return err
	}
	if _, err := c.Stepper(); err != nil {
		return err
	}
	return nil
}
