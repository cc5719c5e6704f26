package integrators

import (
	"fmt"
	"sort"

	"github.com/rkfall/rkfall/internal/dynamo"
)

// Default is the stepper minted tokens are defined by.
const Default = "rk4"

var registry = map[string]func() dynamo.Stepper{
	"rk4":    func() dynamo.Stepper { return NewRK4() },
	"euler":  func() dynamo.Stepper { return NewEuler() },
	"verlet": func() dynamo.Stepper { return NewVerlet() },
}

// Get returns the named stepper. An empty name selects Default.
func Get(name string) (dynamo.Stepper, error) {
	if name == "" {
		name = Default
	}
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, Names())
	}
	return ctor(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
