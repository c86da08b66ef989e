package cycle

// InSequence detects a cycle in an already-materialized sequence of states,
// for example one produced by an external simulation loop. Unlike the other
// detectors it performs no transition-function calls: it operates purely on
// the data it is given, in a single linear pass.
//
// Start and Length are expressed over list indices: on the first index i
// whose value already appeared at index j, the cycle is (j, i-j).
//
// Parameters:
//   - seq: The ordered sequence of states to scan.
//
// Returns:
//   - Cycle[S]: The detected cycle; State is the recurring value at Start.
//   - bool: False if all elements are distinct.
func InSequence[S comparable](seq []S) (Cycle[S], bool) {
	seen := make(map[S]int, len(seq))

	for i, state := range seq {
		if j, ok := seen[state]; ok {
			return Cycle[S]{Start: j, Length: i - j, State: state}, true
		}
		seen[state] = i
	}

	return Cycle[S]{}, false
}
