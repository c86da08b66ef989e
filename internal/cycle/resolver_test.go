package cycle

import (
	"math/big"
	"testing"
)

func TestStateAt_PrefixAndCycleTargets(t *testing.T) {
	t.Parallel()

	// 0,1,2,3,1,2,3,... cycle (1, 3).
	step := loopAfterPrefix(3, 1)
	targets := map[int64]int{0: 0, 1: 1, 2: 2, 3: 3, 4: 1, 7: 1, 8: 2, 100: 1}

	for target, want := range targets {
		got := StateAt(0, step, big.NewInt(target), Options{})
		if got != want {
			t.Errorf("StateAt(%d) = %d, want %d", target, got, want)
		}
	}
}

func TestStateAt_HugeTarget(t *testing.T) {
	t.Parallel()

	// One billion steps of (x+1) mod 7 land on 1_000_000_000 mod 7 = 6.
	got := StateAt(0, modCounter(7), big.NewInt(1_000_000_000), Options{})
	if got != 6 {
		t.Errorf("StateAt(1e9) = %d, want 6", got)
	}
}

func TestStateAt_BeyondInt64(t *testing.T) {
	t.Parallel()

	// 10^30 does not fit in any machine integer; the modular jump must still
	// be exact. 10 ≡ 3 mod 7 and 3^6 ≡ 1, so 10^30 ≡ 3^30 ≡ 1 mod 7.
	target := new(big.Int).Exp(big.NewInt(10), big.NewInt(30), nil)

	got := StateAt(0, modCounter(7), target, Options{})
	if got != 1 {
		t.Errorf("StateAt(10^30) = %d, want 1", got)
	}
}

func TestStateAt_TargetZero(t *testing.T) {
	t.Parallel()

	got := StateAt(9, modCounter(20), big.NewInt(0), Options{})
	if got != 9 {
		t.Errorf("StateAt(0) = %d, want the initial state 9", got)
	}
}

func TestStateAt_TargetAtCycleStart(t *testing.T) {
	t.Parallel()

	step := loopAfterPrefix(9, 4)
	h, ok := FindWithHistory(0, step, Options{})
	if !ok {
		t.Fatal("FindWithHistory() reported no cycle")
	}

	// target == cycle start resolves to the representative state, and so
	// does target == start + k*length for any k.
	for _, k := range []int{0, 1, 5} {
		target := int64(h.Start + k*h.Length)
		got := StateAt(0, step, big.NewInt(target), Options{})
		if got != h.State {
			t.Errorf("StateAt(%d) = %d, want representative %d", target, got, h.State)
		}
	}
}

func TestStateAt_FallbackSimulation(t *testing.T) {
	t.Parallel()

	// With a budget too small for detection, StateAt silently degrades to
	// direct simulation and must still return the exact state.
	step := modCounter(1000)
	states := directStates(0, step, 123)

	got := StateAt(0, step, big.NewInt(123), Options{MaxIterations: 10})
	if got != states[123] {
		t.Errorf("StateAt(123) with fallback = %d, want %d", got, states[123])
	}
}

func TestStateAt_MatchesDirectSimulation(t *testing.T) {
	t.Parallel()

	step := loopAfterPrefix(17, 6)
	states := directStates(0, step, 100)

	// Targets inside the observed window, on its edge, and beyond it.
	for _, target := range []int{0, 1, 5, 6, 17, 18, 19, 50, 100} {
		got := StateAt(0, step, big.NewInt(int64(target)), Options{})
		if got != states[target] {
			t.Errorf("StateAt(%d) = %d, want %d", target, got, states[target])
		}
	}
}

func TestStateAtIndex(t *testing.T) {
	t.Parallel()

	got := StateAtIndex(0, modCounter(5), 1_000_000_000_000, Options{})
	if got != 0 {
		t.Errorf("StateAtIndex(10^12) = %d, want 0 (10^12 mod 5 = 0)", got)
	}
}
