package cycle

import "testing"

func TestInSequence_WithPrefix(t *testing.T) {
	t.Parallel()

	c, ok := InSequence([]int{0, 1, 2, 3, 1, 2, 3, 1})
	if !ok {
		t.Fatal("InSequence() reported no cycle")
	}
	if c.Start != 1 || c.Length != 3 {
		t.Errorf("InSequence() = (%d, %d), want (1, 3)", c.Start, c.Length)
	}
	if c.State != 1 {
		t.Errorf("InSequence() recurring state = %d, want 1", c.State)
	}
}

func TestInSequence_AllDistinct(t *testing.T) {
	t.Parallel()

	_, ok := InSequence([]int{4, 8, 15, 16, 23, 42})
	if ok {
		t.Error("InSequence() found a cycle in a sequence of distinct values")
	}
}

func TestInSequence_Empty(t *testing.T) {
	t.Parallel()

	_, ok := InSequence([]int(nil))
	if ok {
		t.Error("InSequence() found a cycle in an empty sequence")
	}
}

func TestInSequence_ImmediateRepeat(t *testing.T) {
	t.Parallel()

	c, ok := InSequence([]string{"a", "a"})
	if !ok {
		t.Fatal("InSequence() reported no cycle")
	}
	if c.Start != 0 || c.Length != 1 || c.State != "a" {
		t.Errorf("InSequence() = (%d, %d, %q), want (0, 1, \"a\")", c.Start, c.Length, c.State)
	}
}

func TestInSequence_MatchesGenerativeDetection(t *testing.T) {
	t.Parallel()

	// Materializing the sequence and scanning it must reproduce the result
	// of generative detection over the same transition.
	step := loopAfterPrefix(13, 5)
	h, ok := FindWithHistory(0, step, Options{})
	if !ok {
		t.Fatal("FindWithHistory() reported no cycle")
	}

	// Simulate one state past the observed window so the repeat is present
	// in the materialized list.
	states := directStates(0, step, len(h.States))
	c, ok := InSequence(states)
	if !ok {
		t.Fatal("InSequence() reported no cycle on a materialized history")
	}
	if c.Start != h.Start || c.Length != h.Length {
		t.Errorf("InSequence() = (%d, %d), generative detection = (%d, %d)",
			c.Start, c.Length, h.Start, h.Length)
	}
}
