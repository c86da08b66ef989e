package cycle

// FindWithHistory detects a cycle while recording the full ordered state
// history. It trades O(n) memory for direct access to every state observed
// before the repeat, which is what StateAt needs for its jump-ahead lookup.
//
// A mapping from state to first-seen iteration is seeded with the initial
// state at iteration 0. Each subsequent state either reveals the cycle (it
// was seen before, at the iteration that becomes the cycle start) or is
// recorded and appended to the history.
//
// For the same inputs this agrees with Find on (Start, Length) whenever both
// detect a cycle: both locate the first iteration at which a state recurs,
// by different means.
//
// Parameters:
//   - initial: The starting state.
//   - step: The transition function.
//   - opts: Detection options (safety bound, observer).
//
// Returns:
//   - History[S]: The detected cycle plus the first-occurrence state list.
//   - bool: False if no state repeated within the safety bound.
func FindWithHistory[S comparable](initial S, step StepFunc[S], opts Options) (History[S], bool) {
	maxIterations := opts.maxIterations()
	obs := opts.observer()

	history := make([]S, 1, 64)
	history[0] = initial
	seen := map[S]int{initial: 0}
	state := initial

	for i := 1; i < maxIterations; i++ {
		state = step(state)

		if start, ok := seen[state]; ok {
			obs.Update(opts.DetectorIndex, 1.0)
			return History[S]{
				Cycle:  Cycle[S]{Start: start, Length: i - start, State: history[start]},
				States: history,
			}, true
		}

		seen[state] = i
		history = append(history, state)

		if i%progressReportInterval == 0 {
			opts.reportProgress(obs, i, maxIterations)
		}
	}

	obs.Update(opts.DetectorIndex, 1.0)
	return History[S]{}, false
}
