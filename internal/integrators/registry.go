package integrators

import (
	"fmt"
	"sort"

	"github.com/datawolf04/physlab/internal/dynamo"
)

var builders = map[string]func() dynamo.Integrator{
	"euler": func() dynamo.Integrator { return NewEuler() },
	"rk4":   func() dynamo.Integrator { return NewRK4() },
	"rk45":  func() dynamo.Integrator { return NewRK45() },
}

// New looks up an integrator by name.
func New(name string) (dynamo.Integrator, error) {
	fn, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (have %v)", name, Names())
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
