package config

import (
	"sort"

	"github.com/rkfall/rkfall/internal/sim"
)

// Presets are the reference scenarios, in real units with dt = 0.001.
var Presets = map[string]*Config{
	"single_orbit": {
		Name: "single_orbit", Dt: DefaultDt, Ticks: 4000,
		Bodies: []BodyConfig{
			{Mass: 1.0},
			{Mass: 0.0001, Y: 1.0, VX: 1.0},
		},
	},
	"double_orbit": {
		Name: "double_orbit", Dt: DefaultDt, Ticks: 4000,
		Bodies: []BodyConfig{
			{Mass: 4.0001, Y: 1.0, VX: 1.0},
			{Mass: 4.0, Y: -1.0, VX: -1.0},
		},
	},
	"figure_eight": {
		Name: "figure_eight", Dt: DefaultDt, Ticks: 4000,
		Bodies: []BodyConfig{
			{Mass: 1.0, X: -0.97000436, Y: 0.24208753, VX: 0.4662036850, VY: 0.4323657300},
			{Mass: 1.0001, VX: -0.933249737, VY: -0.86473146},
			{Mass: 1.0002, X: 0.97000436, Y: -0.24208753, VX: 0.4662036850, VY: 0.4323657300},
		},
	},
	"separate_ways": {
		Name: "separate_ways", Dt: DefaultDt, Ticks: 4000,
		Bodies: []BodyConfig{
			{Mass: 1.0, Y: 1.0, VX: 0.3},
			{Mass: 1.0001, X: -1.0, Y: -1.0, VY: 0.3},
			{Mass: 1.0002, X: 1.0, Y: -1.0, VX: -0.3},
		},
	},
}

// GetPreset returns a copy of the named preset with default limits, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Bodies = append([]BodyConfig(nil), p.Bodies...)
	cfg.Limits = sim.DefaultLimits()
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
