package cycle

// Shared step functions for the detection tests. All of them are pure and
// cheap, with known cycle structure.

// modCounter returns x -> (x+1) mod m: a pure cycle of length m, no prefix.
func modCounter(m int) StepFunc[int] {
	return func(x int) int { return (x + 1) % m }
}

// loopAfterPrefix returns the transition 0 -> 1 -> ... -> last -> reentry,
// giving a prefix of length reentry and a cycle of length last-reentry+1.
func loopAfterPrefix(last, reentry int) StepFunc[int] {
	return func(x int) int {
		if x == last {
			return reentry
		}
		return x + 1
	}
}

// lcg returns a linear congruential step x -> (a*x+c) mod m.
// Every lcg sequence over a finite modulus eventually cycles.
func lcg(a, c, m uint64) StepFunc[uint64] {
	return func(x uint64) uint64 { return (a*x + c) % m }
}

// directStates simulates n+1 states of the sequence directly, returning
// states at iterations 0..n. Used as the ground truth in comparisons.
func directStates[S comparable](initial S, step StepFunc[S], n int) []S {
	states := make([]S, n+1)
	states[0] = initial
	for i := 1; i <= n; i++ {
		states[i] = step(states[i-1])
	}
	return states
}
