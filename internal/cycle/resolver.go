package cycle

import "math/big"

var bigOne = big.NewInt(1)

// StateAt returns the state reached after target applications of step,
// starting from initial. Iteration 0 denotes the initial state.
//
// The target may be arbitrarily large; all index arithmetic is performed
// with math/big so no integer width can silently truncate it. Detection runs
// first (bounded by Options.MaxIterations); once the cycle is known, targets
// inside the observed window are answered from the history directly and
// anything beyond it reduces to
//
//	history[start + (target-start) mod length]
//
// If detection fails, StateAt falls back to direct simulation of target
// steps. This degradation is deliberate: the caller asked for a state, not
// for a cycle, and a sequence without a detectable cycle can still be
// simulated — at a cost proportional to target. Callers holding very large
// targets should size MaxIterations so that detection can succeed.
//
// Parameters:
//   - initial: The starting state.
//   - step: The transition function.
//   - target: The iteration to resolve (>= 0; 0 is the initial state).
//   - opts: Detection options (safety bound, observer).
//
// Returns:
//   - S: The state at the target iteration.
func StateAt[S comparable](initial S, step StepFunc[S], target *big.Int, opts Options) S {
	h, ok := FindWithHistory(initial, step, opts)
	if !ok {
		// No cycle within the budget: simulate directly. Only tractable for
		// small targets.
		state := initial
		for i := new(big.Int); i.Cmp(target) < 0; i.Add(i, bigOne) {
			state = step(state)
		}
		return state
	}

	// Inside the observed prefix+cycle window the state was recorded as-is.
	if target.IsInt64() {
		if idx := target.Int64(); idx < int64(len(h.States)) {
			return h.States[idx]
		}
	}

	remaining := new(big.Int).Sub(target, big.NewInt(int64(h.Start)))
	remaining.Mod(remaining, big.NewInt(int64(h.Length)))
	return h.States[h.Start+int(remaining.Int64())]
}

// StateAtIndex is a convenience wrapper around StateAt for targets that fit
// in a uint64, sparing callers the big.Int ceremony.
//
// Parameters:
//   - initial: The starting state.
//   - step: The transition function.
//   - target: The iteration to resolve.
//   - opts: Detection options.
//
// Returns:
//   - S: The state at the target iteration.
func StateAtIndex[S comparable](initial S, step StepFunc[S], target uint64, opts Options) S {
	return StateAt(initial, step, new(big.Int).SetUint64(target), opts)
}
