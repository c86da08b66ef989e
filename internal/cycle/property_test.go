package cycle

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// The properties below are exercised over randomly parameterized linear
// congruential sequences x -> (a*x+c) mod m. Any such sequence over a finite
// modulus revisits a state within m+1 iterations, so every generated case
// has a detectable cycle well inside the default budget.

func lcgGens() []gopter.Gen {
	return []gopter.Gen{
		gen.UInt64Range(1, 64),   // a
		gen.UInt64Range(0, 64),   // c
		gen.UInt64Range(2, 2048), // m
		gen.UInt64Range(0, 2047), // x0 (reduced mod m)
	}
}

func TestDetectionProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("Floyd and history detection agree", prop.ForAll(
		func(a, c, m, x0 uint64) bool {
			x0 %= m
			step := lcg(a, c, m)
			floyd, okFloyd := Find(x0, step, Options{})
			hist, okHist := FindWithHistory(x0, step, Options{})
			if !okFloyd || !okHist {
				return false
			}
			return floyd.Start == hist.Start && floyd.Length == hist.Length
		},
		lcgGens()...,
	))

	properties.Property("detected period divides the observed recurrence", prop.ForAll(
		func(a, c, m, x0 uint64) bool {
			x0 %= m
			step := lcg(a, c, m)
			hist, ok := FindWithHistory(x0, step, Options{})
			if !ok {
				return false
			}
			// For all i >= Start within a few periods, state(i) == state(i+Length).
			states := directStates(x0, step, hist.Start+2*hist.Length)
			for i := hist.Start; i+hist.Length < len(states); i++ {
				if states[i] != states[i+hist.Length] {
					return false
				}
			}
			return true
		},
		lcgGens()...,
	))

	properties.Property("resolver matches direct simulation", prop.ForAll(
		func(a, c, m, x0, target uint64) bool {
			x0 %= m
			step := lcg(a, c, m)
			states := directStates(x0, step, int(target))
			resolved := StateAt(x0, step, new(big.Int).SetUint64(target), Options{})
			return resolved == states[target]
		},
		gen.UInt64Range(1, 64),
		gen.UInt64Range(0, 64),
		gen.UInt64Range(2, 2048),
		gen.UInt64Range(0, 2047),
		gen.UInt64Range(0, 8192), // targets inside and outside the history window
	))

	properties.Property("repeat finder equals cycle start plus length", prop.ForAll(
		func(a, c, m, x0 uint64) bool {
			x0 %= m
			step := lcg(a, c, m)
			repeat, okRepeat := UntilRepeat(x0, step, Options{})
			hist, okHist := FindWithHistory(x0, step, Options{})
			if !okRepeat || !okHist {
				return false
			}
			return repeat.Iteration == hist.Start+hist.Length &&
				repeat.State == hist.States[hist.Start]
		},
		lcgGens()...,
	))

	properties.Property("sequence detection reproduces generative detection", prop.ForAll(
		func(a, c, m, x0 uint64) bool {
			x0 %= m
			step := lcg(a, c, m)
			hist, ok := FindWithHistory(x0, step, Options{})
			if !ok {
				return false
			}
			// One state past the window puts the first repeat in the list.
			states := directStates(x0, step, len(hist.States))
			scanned, ok := InSequence(states)
			if !ok {
				return false
			}
			return scanned.Start == hist.Start && scanned.Length == hist.Length
		},
		lcgGens()...,
	))

	properties.Property("insufficient budget is a not-found outcome", prop.ForAll(
		func(m uint64) bool {
			// A counter mod m needs m hare rounds (and m recorded
			// iterations) before any repeat; half that budget must fail
			// cleanly on every detector.
			step := func(x uint64) uint64 { return (x + 1) % m }
			opts := Options{MaxIterations: int(m / 2)}
			if _, ok := Find(0, step, opts); ok {
				return false
			}
			if _, ok := FindWithHistory(0, step, opts); ok {
				return false
			}
			if _, ok := UntilRepeat(0, step, opts); ok {
				return false
			}
			return true
		},
		gen.UInt64Range(8, 4096),
	))

	properties.TestingRun(t)
}
