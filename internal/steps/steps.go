// Package steps provides a registry of named, parameterized transition
// functions over uint64 state. The CLI and server resolve the -step flag or
// the step query parameter against this registry, so detection always runs
// over a concrete, reproducible transition.
//
// The cycle package itself is agnostic of this catalog: any StepFunc over a
// comparable state type works. The catalog exists so the application has
// well-understood sequences to demonstrate and verify detection with.
package steps

import (
	"sort"
	"sync"

	"github.com/agbru/cyclecalc/internal/cycle"
	apperrors "github.com/agbru/cyclecalc/internal/errors"
)

// Params carries the numeric parameters a step definition may consume.
// Definitions ignore the fields they do not use.
type Params struct {
	// Modulus bounds the state space for modular definitions (> 0).
	Modulus uint64
	// Multiplier is the 'a' coefficient of the lcg definition.
	Multiplier uint64
	// Increment is the 'c' coefficient of the lcg definition.
	Increment uint64
}

// Definition describes a registered step function.
type Definition struct {
	// Name is the registry key (e.g., "lcg").
	Name string
	// Description is a one-line human-readable summary shown by the CLI
	// and the /steps endpoint.
	Description string
	// Build constructs the transition function from the given parameters,
	// validating them first.
	Build func(p Params) (cycle.StepFunc[uint64], error)
}

// registry holds the step definitions, guarded for concurrent reads from
// server handlers.
var (
	registryMu sync.RWMutex
	registry   = make(map[string]Definition)
)

// Register adds a definition to the catalog. Registering a duplicate name
// replaces the previous definition; this only happens in tests.
func Register(def Definition) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[def.Name] = def
}

// Get returns the definition registered under name.
//
// Parameters:
//   - name: The registry key.
//
// Returns:
//   - Definition: The registered definition.
//   - bool: False if no definition is registered under name.
func Get(name string) (Definition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	def, ok := registry[name]
	return def, ok
}

// Names returns the sorted names of all registered definitions.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Descriptions returns all registered definitions sorted by name.
func Descriptions() []Definition {
	registryMu.RLock()
	defer registryMu.RUnlock()
	defs := make([]Definition, 0, len(registry))
	for _, def := range registry {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// requireModulus validates the shared modulus precondition.
func requireModulus(p Params) error {
	if p.Modulus == 0 {
		return apperrors.NewValidationError("modulus", "must be greater than zero", p.Modulus)
	}
	return nil
}

func init() {
	Register(Definition{
		Name:        "counter",
		Description: "x -> (x+1) mod m; a pure cycle of length m",
		Build: func(p Params) (cycle.StepFunc[uint64], error) {
			if err := requireModulus(p); err != nil {
				return nil, err
			}
			m := p.Modulus
			return func(x uint64) uint64 { return (x + 1) % m }, nil
		},
	})

	Register(Definition{
		Name:        "lcg",
		Description: "x -> (a*x+c) mod m; a linear congruential generator",
		Build: func(p Params) (cycle.StepFunc[uint64], error) {
			if err := requireModulus(p); err != nil {
				return nil, err
			}
			if p.Multiplier == 0 {
				return nil, apperrors.NewValidationError("mul", "must be greater than zero", p.Multiplier)
			}
			a, c, m := p.Multiplier, p.Increment, p.Modulus
			return func(x uint64) uint64 { return (a*x + c) % m }, nil
		},
	})

	Register(Definition{
		Name:        "square",
		Description: "x -> x^2 mod m; squaring map over the residues of m",
		Build: func(p Params) (cycle.StepFunc[uint64], error) {
			if err := requireModulus(p); err != nil {
				return nil, err
			}
			m := p.Modulus
			// Multiplication wraps for m >= 2^32; the map stays
			// deterministic, which is all detection needs.
			return func(x uint64) uint64 { return (x % m) * (x % m) % m }, nil
		},
	})

	Register(Definition{
		Name:        "collatz",
		Description: "x -> x/2 if even, 3x+1 if odd; falls into the 4,2,1 loop",
		Build: func(p Params) (cycle.StepFunc[uint64], error) {
			return func(x uint64) uint64 {
				if x == 0 {
					return 0
				}
				if x%2 == 0 {
					return x / 2
				}
				return 3*x + 1
			}, nil
		},
	})
}
