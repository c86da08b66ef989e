package cycle

// UntilRepeat simulates the sequence until any state recurs and reports the
// iteration of the repeat together with the recurring state. It performs the
// same seen-map bookkeeping as FindWithHistory but returns as soon as the
// repeat is found, without materializing a descriptor.
//
// By construction the reported iteration equals Start+Length and the state
// equals States[Start] of the History produced from the same inputs.
//
// Parameters:
//   - initial: The starting state.
//   - step: The transition function.
//   - opts: Detection options (safety bound, observer).
//
// Returns:
//   - Repeat[S]: The iteration and value of the first recurring state.
//   - bool: False if no state repeated within the safety bound.
func UntilRepeat[S comparable](initial S, step StepFunc[S], opts Options) (Repeat[S], bool) {
	maxIterations := opts.maxIterations()
	obs := opts.observer()

	seen := map[S]struct{}{initial: {}}
	state := initial

	for i := 1; i < maxIterations; i++ {
		state = step(state)

		if _, ok := seen[state]; ok {
			obs.Update(opts.DetectorIndex, 1.0)
			return Repeat[S]{Iteration: i, State: state}, true
		}

		seen[state] = struct{}{}

		if i%progressReportInterval == 0 {
			opts.reportProgress(obs, i, maxIterations)
		}
	}

	obs.Update(opts.DetectorIndex, 1.0)
	return Repeat[S]{}, false
}
