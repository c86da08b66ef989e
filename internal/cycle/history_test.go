package cycle

import "testing"

func TestFindWithHistory_PureCycle(t *testing.T) {
	t.Parallel()

	h, ok := FindWithHistory(0, modCounter(5), Options{})
	if !ok {
		t.Fatal("FindWithHistory() reported no cycle for a modular counter")
	}
	if h.Start != 0 || h.Length != 5 {
		t.Errorf("FindWithHistory() = (%d, %d), want (0, 5)", h.Start, h.Length)
	}

	want := []int{0, 1, 2, 3, 4}
	if len(h.States) != len(want) {
		t.Fatalf("len(States) = %d, want %d", len(h.States), len(want))
	}
	for i, s := range want {
		if h.States[i] != s {
			t.Errorf("States[%d] = %d, want %d", i, h.States[i], s)
		}
	}
}

func TestFindWithHistory_WithPrefix(t *testing.T) {
	t.Parallel()

	// 0,1,2,3,1,2,3,... the repeat of state 1 at iteration 4 reveals the cycle.
	h, ok := FindWithHistory(0, loopAfterPrefix(3, 1), Options{})
	if !ok {
		t.Fatal("FindWithHistory() reported no cycle")
	}
	if h.Start != 1 || h.Length != 3 {
		t.Errorf("FindWithHistory() = (%d, %d), want (1, 3)", h.Start, h.Length)
	}

	want := []int{0, 1, 2, 3}
	if len(h.States) != len(want) {
		t.Fatalf("len(States) = %d, want %d", len(h.States), len(want))
	}
	for i, s := range want {
		if h.States[i] != s {
			t.Errorf("States[%d] = %d, want %d", i, h.States[i], s)
		}
	}
	if h.State != 1 {
		t.Errorf("representative state = %d, want 1", h.State)
	}
}

func TestFindWithHistory_Invariants(t *testing.T) {
	t.Parallel()

	h, ok := FindWithHistory(0, loopAfterPrefix(11, 5), Options{})
	if !ok {
		t.Fatal("FindWithHistory() reported no cycle")
	}

	if len(h.States) != h.Start+h.Length {
		t.Errorf("len(States) = %d, want Start+Length = %d", len(h.States), h.Start+h.Length)
	}
	if h.State != h.States[h.Start] {
		t.Errorf("representative state = %d, want States[Start] = %d", h.State, h.States[h.Start])
	}

	// First-occurrence list: no two entries are equal.
	seen := make(map[int]int, len(h.States))
	for i, s := range h.States {
		if j, dup := seen[s]; dup {
			t.Errorf("States[%d] == States[%d] == %d, history must hold each state once", i, j, s)
		}
		seen[s] = i
	}
}

func TestFindWithHistory_AgreesWithFind(t *testing.T) {
	t.Parallel()

	steps := map[string]StepFunc[int]{
		"pure cycle":   modCounter(12),
		"short prefix": loopAfterPrefix(7, 3),
		"long prefix":  loopAfterPrefix(200, 190),
		"constant":     func(x int) int { return 42 },
	}

	for name, step := range steps {
		c, okFloyd := Find(0, step, Options{})
		h, okHistory := FindWithHistory(0, step, Options{})
		if !okFloyd || !okHistory {
			t.Fatalf("%s: detection failed (floyd=%v, history=%v)", name, okFloyd, okHistory)
		}
		if c.Start != h.Start || c.Length != h.Length {
			t.Errorf("%s: Find = (%d, %d), FindWithHistory = (%d, %d)",
				name, c.Start, c.Length, h.Start, h.Length)
		}
	}
}

func TestFindWithHistory_Periodicity(t *testing.T) {
	t.Parallel()

	step := loopAfterPrefix(9, 4)
	h, ok := FindWithHistory(0, step, Options{})
	if !ok {
		t.Fatal("FindWithHistory() reported no cycle")
	}

	// For all i >= Start, state(i) == state(i+Length).
	states := directStates(0, step, h.Start+3*h.Length)
	for i := h.Start; i+h.Length < len(states); i++ {
		if states[i] != states[i+h.Length] {
			t.Errorf("state(%d) = %d, state(%d) = %d, want equal",
				i, states[i], i+h.Length, states[i+h.Length])
		}
	}
}

func TestFindWithHistory_StateAtIteration(t *testing.T) {
	t.Parallel()

	step := loopAfterPrefix(3, 1)
	h, ok := FindWithHistory(0, step, Options{})
	if !ok {
		t.Fatal("FindWithHistory() reported no cycle")
	}

	states := directStates(0, step, 20)
	for i := 0; i <= 20; i++ {
		if got := h.StateAtIteration(i); got != states[i] {
			t.Errorf("StateAtIteration(%d) = %d, want %d", i, got, states[i])
		}
	}
}

func TestFindWithHistory_BoundedFailure(t *testing.T) {
	t.Parallel()

	// A budget below the true cycle length must yield "not found".
	_, ok := FindWithHistory(0, modCounter(100), Options{MaxIterations: 50})
	if ok {
		t.Error("FindWithHistory() found a cycle despite an insufficient budget")
	}
}
