package server

// DetectResponse is the JSON payload returned by the /detect endpoint.
type DetectResponse struct {
	// Step is the transition function that was iterated.
	Step string `json:"step"`
	// Initial is the starting state of the sequence.
	Initial uint64 `json:"initial"`
	// Found reports whether a cycle was detected within the budget.
	Found bool `json:"found"`
	// Start is the iteration index where the cycle begins.
	Start int `json:"start,omitempty"`
	// Length is the cycle length.
	Length int `json:"length,omitempty"`
	// State is the state at the cycle start.
	State uint64 `json:"state,omitempty"`
	// Duration is the detection wall time.
	Duration string `json:"duration"`
}

// ResolveResponse is the JSON payload returned by the /resolve endpoint.
type ResolveResponse struct {
	Step    string `json:"step"`
	Initial uint64 `json:"initial"`
	// Target is the resolved iteration, echoed back in decimal.
	Target string `json:"target"`
	// State is the state at the target iteration.
	State uint64 `json:"state"`
	// Found reports whether resolution went through a detected cycle
	// (false means bounded direct simulation answered the query).
	Found    bool   `json:"cycle_found"`
	Start    int    `json:"start,omitempty"`
	Length   int    `json:"length,omitempty"`
	Duration string `json:"duration"`
}

// RepeatResponse is the JSON payload returned by the /repeat endpoint.
type RepeatResponse struct {
	Step    string `json:"step"`
	Initial uint64 `json:"initial"`
	Found   bool   `json:"found"`
	// Iteration is the first index at which a previously seen state recurs.
	Iteration int `json:"iteration,omitempty"`
	// State is the recurring state.
	State    uint64 `json:"state,omitempty"`
	Duration string `json:"duration"`
}

// StepInfo describes one registered transition function.
type StepInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse is the standardized error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
