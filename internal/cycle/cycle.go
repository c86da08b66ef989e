// Package cycle provides cycle detection for deterministic, discrete-state
// sequences produced by repeatedly applying a transition function.
//
// The typical use case is answering "what is the state after N steps" for N
// far too large to simulate directly (N >= 10^12): once the sequence's
// periodicity is known, the target state is a single modular-arithmetic
// lookup away.
//
// The package offers several entry points over the same underlying technique:
//
//   - Find: Floyd's tortoise-and-hare detection, O(1) extra memory.
//   - FindWithHistory: first-seen-map detection keeping the full ordered
//     history, O(n) memory.
//   - StateAt: resolves the state at an arbitrary iteration using the
//     detected cycle to jump ahead.
//   - UntilRepeat: first iteration at which any state recurs.
//   - InSequence: detection over an already-materialized slice of states.
//   - Iterator: a pull-based generator performing the same bookkeeping while
//     values are consumed incrementally.
//
// All entry points are pure: the seen-state map and history are created on
// entry and discarded at return, and no state is shared across calls.
package cycle

// StepFunc is the transition function of a discrete-state sequence.
// It is assumed to be total and deterministic; purity is not enforced,
// only assumed.
type StepFunc[S comparable] func(S) S

// DefaultMaxIterations is the safety bound applied when Options.MaxIterations
// is zero. It converts an unbounded search over a non-repeating sequence into
// a defined "not found" outcome.
const DefaultMaxIterations = 10_000_000

// progressReportInterval controls how often detectors notify their observer.
// Reporting every iteration would dominate the cost of cheap step functions.
const progressReportInterval = 1 << 16

// Cycle describes the periodicity of a state sequence.
//
// Invariant: applying the transition Length times to State (the state at
// iteration Start) returns State, and for all i >= Start the state at
// iteration i equals the state at iteration i+Length.
type Cycle[S comparable] struct {
	// Start is the smallest iteration index at which the cycle begins.
	Start int
	// Length is the smallest period of the cycle (> 0).
	Length int
	// State is the representative state, i.e. the state at iteration Start.
	State S
}

// History extends Cycle with the full ordered state history.
//
// States holds the first occurrence of every state observed before the
// repeat: States[j] is the state at iteration j, len(States) == Start+Length,
// and no two entries are equal (a cycle is stored exactly once).
type History[S comparable] struct {
	Cycle[S]
	// States is the first-occurrence list of observed states.
	States []S
}

// StateAtIteration returns the state at iteration i using the recorded
// history: directly for iterations inside the observed window, via the cycle
// for anything beyond it.
//
// Parameters:
//   - i: The iteration index (>= 0).
//
// Returns:
//   - S: The state the sequence holds at iteration i.
func (h History[S]) StateAtIteration(i int) S {
	if i < len(h.States) {
		return h.States[i]
	}
	remaining := (i - h.Start) % h.Length
	return h.States[h.Start+remaining]
}

// Repeat reports the first recurrence of any state in a sequence.
//
// Derived invariant: Iteration equals Start+Length and State equals
// States[Start] of the History produced from the same inputs.
type Repeat[S comparable] struct {
	// Iteration is the first index at which a previously seen state recurs.
	Iteration int
	// State is the recurring state value.
	State S
}

// Pair is a single (iteration, state) emission from an Iterator.
type Pair[S comparable] struct {
	// Iteration is the index of the state in the sequence (0 = initial).
	Iteration int
	// State is the state at that iteration.
	State S
}

// ExhaustionPolicy selects the Iterator's behavior once its bookkeeping
// budget (MaxIterations) is exhausted without a detected repeat.
type ExhaustionPolicy int

const (
	// ContinueUntracked keeps yielding states indefinitely but drops the
	// seen-state map, so no repeat can be detected afterwards. This mirrors
	// the behavior of the original analysis tooling and is the default.
	ContinueUntracked ExhaustionPolicy = iota
	// Stop makes the Iterator return ErrBudgetExhausted from Next once the
	// budget is spent, instead of degrading to an unbounded loop.
	Stop
)

// Options configures a detection run.
// The zero value is valid and applies the defaults documented per field.
type Options struct {
	// MaxIterations is the safety bound on transition evaluations: hare
	// advances for Find, recorded iterations for the map-based detectors.
	// Zero applies DefaultMaxIterations.
	MaxIterations int
	// Observer receives throttled progress notifications during detection.
	// Nil disables reporting.
	Observer ProgressObserver
	// DetectorIndex identifies this detection run in observer updates when
	// several detectors share an observer.
	DetectorIndex int
	// OnBudgetExhausted selects the Iterator's post-budget behavior.
	// Ignored by the bounded detectors, which simply report "not found".
	OnBudgetExhausted ExhaustionPolicy
}

// maxIterations returns the effective safety bound.
func (o Options) maxIterations() int {
	if o.MaxIterations > 0 {
		return o.MaxIterations
	}
	return DefaultMaxIterations
}

// observer returns the effective observer, substituting a no-op when unset.
func (o Options) observer() ProgressObserver {
	if o.Observer != nil {
		return o.Observer
	}
	return noOpObserver
}

// reportProgress notifies the observer of iterations consumed, normalized
// against the safety bound.
func (o Options) reportProgress(obs ProgressObserver, iterations, maxIterations int) {
	obs.Update(o.DetectorIndex, float64(iterations)/float64(maxIterations))
}
