package server

import (
	"time"

	"github.com/rs/zerolog"
)

// DefaultMaxIterationsCap bounds the per-request iteration budget. Requests
// asking for a larger budget are clamped rather than rejected, preventing a
// single query from exhausting server memory or CPU.
const DefaultMaxIterationsCap = 10_000_000

// Option defines a functional option for configuring a Server.
type Option func(*Server)

// WithLogger sets a custom structured logger for the server.
// This is useful for testing or integrating with existing logging
// infrastructure.
//
// Parameters:
//   - logger: The zerolog logger to use.
//
// Returns:
//   - Option: A functional option that configures the server's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithTimeouts sets custom timeout configuration for the server.
// This allows fine-tuning server behavior for different deployment scenarios.
//
// Parameters:
//   - timeouts: The timeout configuration.
//
// Returns:
//   - Option: A functional option that configures the server's timeouts.
func WithTimeouts(timeouts Timeouts) Option {
	return func(s *Server) {
		s.timeouts = timeouts
	}
}

// WithMaxIterationsCap sets the upper bound on per-request iteration budgets.
//
// Parameters:
//   - cap: The maximum budget a request may use (> 0).
//
// Returns:
//   - Option: A functional option that configures the cap.
func WithMaxIterationsCap(cap int) Option {
	return func(s *Server) {
		if cap > 0 {
			s.maxIterationsCap = cap
		}
	}
}

// Timeouts holds timeout configuration for the HTTP server.
// These can be customized via functional options for testing or deployment needs.
type Timeouts struct {
	// RequestTimeout is the maximum duration for a single request.
	RequestTimeout time.Duration
	// ShutdownTimeout is the maximum duration allowed for graceful shutdown.
	ShutdownTimeout time.Duration
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
}

func DefaultServerTimeouts() Timeouts {
	return Timeouts{
		RequestTimeout:  time.Minute,
		ShutdownTimeout: 30 * time.Second,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    time.Minute,
		IdleTimeout:     2 * time.Minute,
	}
}
