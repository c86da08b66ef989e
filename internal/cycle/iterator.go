package cycle

import (
	"context"
	"errors"
)

// ErrBudgetExhausted is returned by Iterator.Next under the Stop policy once
// the bookkeeping budget is spent without a detected repeat.
var ErrBudgetExhausted = errors.New("iteration budget exhausted before a repeat was found")

// Iterator produces a lazy, pull-based, unbounded sequence of
// (iteration, state) pairs starting at (0, initial), performing the same
// seen-state bookkeeping as FindWithHistory while values are consumed.
//
// Once a cycle is discovered the Iterator does not stop or signal
// termination: it keeps applying the transition and yielding pairs
// indefinitely, and the detected cycle becomes available via Detected.
// Noticing a second pass through the cycle is entirely the consumer's
// business. Cancellation is implicit — the consumer stops pulling — though
// Next also honors context cancellation as a cooperative checkpoint.
//
// If the bookkeeping budget (Options.MaxIterations) is exhausted before any
// repeat, behavior follows Options.OnBudgetExhausted: ContinueUntracked
// drops the seen-state map and keeps yielding forever, Stop makes Next
// return ErrBudgetExhausted.
//
// An Iterator is not safe for concurrent use.
type Iterator[S comparable] struct {
	step          StepFunc[S]
	current       S
	iteration     int
	started       bool
	stopped       bool
	seen          map[S]int
	maxIterations int
	policy        ExhaustionPolicy
	detected      Cycle[S]
	found         bool
}

// NewIterator creates an Iterator over the sequence generated from initial
// by step. The first call to Next yields (0, initial).
//
// Parameters:
//   - initial: The starting state.
//   - step: The transition function.
//   - opts: Iteration options (bookkeeping budget, exhaustion policy).
//
// Returns:
//   - *Iterator[S]: A new iterator positioned before the initial state.
func NewIterator[S comparable](initial S, step StepFunc[S], opts Options) *Iterator[S] {
	return &Iterator[S]{
		step:          step,
		current:       initial,
		seen:          map[S]int{initial: 0},
		maxIterations: opts.maxIterations(),
		policy:        opts.OnBudgetExhausted,
	}
}

// Next advances the iterator and returns the next (iteration, state) pair.
// The context is checked once per pull; nothing runs between pulls.
//
// Parameters:
//   - ctx: The context for cooperative cancellation between pulls.
//
// Returns:
//   - Pair[S]: The next pair in the sequence.
//   - error: The context error if cancelled, or ErrBudgetExhausted under
//     the Stop policy once the bookkeeping budget is spent.
func (it *Iterator[S]) Next(ctx context.Context) (Pair[S], error) {
	if err := ctx.Err(); err != nil {
		return Pair[S]{}, err
	}
	if it.stopped {
		return Pair[S]{}, ErrBudgetExhausted
	}
	if !it.started {
		it.started = true
		return Pair[S]{Iteration: 0, State: it.current}, nil
	}

	it.current = it.step(it.current)
	it.iteration++

	if it.seen != nil {
		if start, ok := it.seen[it.current]; ok {
			it.detected = Cycle[S]{Start: start, Length: it.iteration - start, State: it.current}
			it.found = true
			// Bookkeeping is done; from here on the sequence is inside the
			// cycle and the map would only grow stale.
			it.seen = nil
		} else if it.iteration >= it.maxIterations {
			it.seen = nil
			if it.policy == Stop {
				it.stopped = true
				return Pair[S]{}, ErrBudgetExhausted
			}
		} else {
			it.seen[it.current] = it.iteration
		}
	}

	return Pair[S]{Iteration: it.iteration, State: it.current}, nil
}

// Detected returns the cycle discovered during iteration, if any.
//
// Returns:
//   - Cycle[S]: The detected cycle.
//   - bool: False if no repeat has been observed yet.
func (it *Iterator[S]) Detected() (Cycle[S], bool) {
	return it.detected, it.found
}

// Index returns the iteration index of the most recently yielded pair.
// Before the first Next it returns 0.
func (it *Iterator[S]) Index() int {
	return it.iteration
}

// Current returns the state of the most recently yielded pair.
// Before the first Next it returns the initial state.
func (it *Iterator[S]) Current() S {
	return it.current
}
