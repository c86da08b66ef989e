package server

import (
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/agbru/cyclecalc/internal/cycle"
	"github.com/agbru/cyclecalc/internal/steps"
)

// paramError carries an HTTP status alongside a parse failure message.
type paramError struct {
	Message    string
	StatusCode int
}

func (e paramError) Error() string { return e.Message }

// sequenceParams is the decoded, validated sequence description shared by
// the detection endpoints.
type sequenceParams struct {
	stepName string
	step     cycle.StepFunc[uint64]
	initial  uint64
	opts     cycle.Options
}

// parseSequenceParams extracts the sequence description from the query
// string. Absent parameters fall back to the server's configured defaults,
// and the iteration budget is clamped to the server cap.
//
// Parameters:
//   - r: The HTTP request containing query parameters.
//
// Returns:
//   - sequenceParams: The decoded parameters with a built step function.
//   - error: A paramError if validation fails, nil otherwise.
func (s *Server) parseSequenceParams(r *http.Request) (sequenceParams, error) {
	q := r.URL.Query()

	stepName := q.Get("step")
	if stepName == "" {
		stepName = s.cfg.Step
	}
	def, ok := steps.Get(stepName)
	if !ok {
		return sequenceParams{}, paramError{
			Message:    fmt.Sprintf("Unknown step function '%s'; see /steps for the catalog", stepName),
			StatusCode: http.StatusBadRequest,
		}
	}

	p := steps.Params{
		Modulus:    s.cfg.Modulus,
		Multiplier: s.cfg.Multiplier,
		Increment:  s.cfg.Increment,
	}
	initial := s.cfg.Initial
	var parseErr error
	parseUint := func(key string, dst *uint64) {
		if v := q.Get(key); v != "" && parseErr == nil {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				parseErr = paramError{
					Message:    fmt.Sprintf("Invalid '%s' parameter: must be a non-negative integer", key),
					StatusCode: http.StatusBadRequest,
				}
				return
			}
			*dst = n
		}
	}
	parseUint("initial", &initial)
	parseUint("modulus", &p.Modulus)
	parseUint("mul", &p.Multiplier)
	parseUint("add", &p.Increment)
	if parseErr != nil {
		return sequenceParams{}, parseErr
	}

	maxIterations := s.maxIterationsCap
	if v := q.Get("max-iterations"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return sequenceParams{}, paramError{
				Message:    "Invalid 'max-iterations' parameter: must be a positive integer",
				StatusCode: http.StatusBadRequest,
			}
		}
		if n < maxIterations {
			maxIterations = n
		}
	}

	step, err := def.Build(p)
	if err != nil {
		return sequenceParams{}, paramError{Message: err.Error(), StatusCode: http.StatusBadRequest}
	}

	return sequenceParams{
		stepName: stepName,
		step:     step,
		initial:  initial,
		opts:     cycle.Options{MaxIterations: maxIterations},
	}, nil
}

// handleDetect processes cycle detection requests.
// It parses the sequence description from the query parameters, runs
// constant-memory detection, and returns the cycle start, length and state
// in JSON format.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	params, err := s.parseSequenceParams(r)
	if err != nil {
		s.writeParamError(w, err)
		return
	}

	start := time.Now()
	c, found := cycle.Find(params.initial, params.step, params.opts)
	duration := time.Since(start)

	s.metrics.RecordOutcome("detect", found)

	resp := DetectResponse{
		Step:     params.stepName,
		Initial:  params.initial,
		Found:    found,
		Duration: duration.String(),
	}
	if found {
		resp.Start = c.Start
		resp.Length = c.Length
		resp.State = c.State
	}
	s.writeJSONResponse(w, http.StatusOK, resp)
}

// handleResolve processes iteration resolution requests.
// The 'target' parameter is parsed as an arbitrary-precision decimal, so
// iterations far beyond uint64 resolve exactly. When no cycle exists within
// the budget, targets inside the budget are answered by bounded simulation
// and anything larger is rejected.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	params, err := s.parseSequenceParams(r)
	if err != nil {
		s.writeParamError(w, err)
		return
	}

	targetStr := r.URL.Query().Get("target")
	if targetStr == "" {
		s.writeErrorResponse(w, http.StatusBadRequest, "Missing 'target' parameter")
		return
	}
	target, ok := new(big.Int).SetString(targetStr, 10)
	if !ok || target.Sign() < 0 {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid 'target' parameter: must be a non-negative decimal integer")
		return
	}

	start := time.Now()
	h, found := cycle.FindWithHistory(params.initial, params.step, params.opts)

	resp := ResolveResponse{
		Step:    params.stepName,
		Initial: params.initial,
		Target:  target.String(),
		Found:   found,
	}

	switch {
	case found:
		resp.Start = h.Start
		resp.Length = h.Length
		resp.State = resolveThroughCycle(h, target)
	case target.IsInt64() && target.Int64() <= int64(params.opts.MaxIterations):
		// No cycle within the budget, but the target itself is within it:
		// bounded simulation still answers the query.
		state := params.initial
		for i := int64(0); i < target.Int64(); i++ {
			state = params.step(state)
		}
		resp.State = state
	default:
		s.writeErrorResponse(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("No cycle found within %d iterations; target is too large to simulate", params.opts.MaxIterations))
		return
	}

	resp.Duration = time.Since(start).String()
	s.metrics.RecordOutcome("resolve", found)
	s.writeJSONResponse(w, http.StatusOK, resp)
}

// resolveThroughCycle reduces the target iteration into the recorded history.
func resolveThroughCycle(h cycle.History[uint64], target *big.Int) uint64 {
	if target.IsInt64() {
		if idx := target.Int64(); idx < int64(len(h.States)) {
			return h.States[idx]
		}
	}
	remaining := new(big.Int).Sub(target, big.NewInt(int64(h.Start)))
	remaining.Mod(remaining, big.NewInt(int64(h.Length)))
	return h.States[h.Start+int(remaining.Int64())]
}

// handleRepeat processes first-repeat requests, returning the first
// iteration at which any previously seen state recurs.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleRepeat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	params, err := s.parseSequenceParams(r)
	if err != nil {
		s.writeParamError(w, err)
		return
	}

	start := time.Now()
	rep, found := cycle.UntilRepeat(params.initial, params.step, params.opts)
	duration := time.Since(start)

	s.metrics.RecordOutcome("repeat", found)

	resp := RepeatResponse{
		Step:     params.stepName,
		Initial:  params.initial,
		Found:    found,
		Duration: duration.String(),
	}
	if found {
		resp.Iteration = rep.Iteration
		resp.State = rep.State
	}
	s.writeJSONResponse(w, http.StatusOK, resp)
}

// handleSteps returns the catalog of registered transition functions.
// It queries the internal registry and returns the definitions as a JSON array.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleSteps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	defs := steps.Descriptions()
	infos := make([]StepInfo, len(defs))
	for i, def := range defs {
		infos[i] = StepInfo{Name: def.Name, Description: def.Description}
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]any{"steps": infos})
}

// handleHealth responds to health check requests.
// It returns a 200 OK status with a JSON payload indicating the service is healthy.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// writeParamError writes a parse failure, honoring its carried status code.
func (s *Server) writeParamError(w http.ResponseWriter, err error) {
	if perr, ok := err.(paramError); ok {
		s.writeErrorResponse(w, perr.StatusCode, perr.Message)
		return
	}
	s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
}

// writeJSONResponse helper function to write a JSON response with the correct content type.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - data: The data to be encoded as JSON.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("error encoding JSON response")
	}
}

// writeErrorResponse helper function to write a standardized error response.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - message: The error message to be included in the response body.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errResp := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	s.writeJSONResponse(w, statusCode, errResp)
}
