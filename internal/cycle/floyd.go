package cycle

// Find detects a cycle in the state sequence generated from initial by step,
// using Floyd's tortoise-and-hare algorithm. It stores only a handful of
// states at a time, making it the right choice when the history itself is
// not needed.
//
// The algorithm runs in three phases:
//
//  1. Meeting point: slow advances one step per round, fast advances two,
//     until they hold equal states. The number of rounds is bounded by
//     Options.MaxIterations; exceeding the bound is a "not found" outcome,
//     not an error — the reachable state space simply did not revisit a
//     state within the budget.
//  2. Cycle start: slow is reset to the initial state and both cursors
//     advance one step at a time; the number of advances until they meet
//     again is the cycle start index.
//  3. Cycle length: a second cursor walks from the cycle-start state until
//     it returns to it, counting steps.
//
// Cost: O(Start+Length) transition evaluations, O(1) additional state.
//
// Parameters:
//   - initial: The starting state.
//   - step: The transition function.
//   - opts: Detection options (safety bound, observer).
//
// Returns:
//   - Cycle[S]: The detected cycle (start, length, representative state).
//   - bool: False if no meeting point occurred within the safety bound.
func Find[S comparable](initial S, step StepFunc[S], opts Options) (Cycle[S], bool) {
	maxIterations := opts.maxIterations()
	obs := opts.observer()

	// Phase 1: locate a state inside the cycle.
	slow, fast := initial, initial
	met := false
	for i := 1; i <= maxIterations; i++ {
		slow = step(slow)
		fast = step(step(fast))
		if slow == fast {
			met = true
			break
		}
		if i%progressReportInterval == 0 {
			opts.reportProgress(obs, i, maxIterations)
		}
	}
	if !met {
		obs.Update(opts.DetectorIndex, 1.0)
		return Cycle[S]{}, false
	}

	// Phase 2: the meeting point and the initial state are equidistant from
	// the cycle start, so advancing both one step at a time meets exactly
	// there.
	slow = initial
	start := 0
	for slow != fast {
		slow = step(slow)
		fast = step(fast)
		start++
	}

	// Phase 3: walk the cycle once to measure its length.
	length := 1
	fast = step(slow)
	for slow != fast {
		fast = step(fast)
		length++
	}

	obs.Update(opts.DetectorIndex, 1.0)
	return Cycle[S]{Start: start, Length: length, State: slow}, true
}
