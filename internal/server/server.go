package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/cyclecalc/internal/config"
	apperrors "github.com/agbru/cyclecalc/internal/errors"
)

// Server represents the HTTP server for the cycle detection API.
// It wraps the standard http.Server and adds application-specific
// configuration and graceful shutdown capabilities.
type Server struct {
	cfg              config.AppConfig
	httpServer       *http.Server
	logger           zerolog.Logger
	shutdownSignal   chan os.Signal
	metrics          *Metrics
	timeouts         Timeouts
	maxIterationsCap int
}

// NewServer creates a new Server instance with the given configuration.
// It initializes the HTTP server with timeouts and a request multiplexer.
//
// Parameters:
//   - cfg: The application configuration (port, step defaults, etc.).
//   - opts: Optional functional options for customizing the server (e.g., WithLogger).
//
// Returns:
//   - *Server: A pointer to the initialized Server.
func NewServer(cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		cfg:              cfg,
		logger:           zerolog.New(os.Stdout).With().Timestamp().Str("component", "server").Logger(),
		shutdownSignal:   make(chan os.Signal, 1),
		metrics:          NewMetrics(),
		timeouts:         DefaultServerTimeouts(),
		maxIterationsCap: DefaultMaxIterationsCap,
	}

	// Apply any provided options
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()

	// Apply middleware chain: Logging -> Metrics -> Handler
	mux.HandleFunc("/detect", s.wrapWithMiddleware(s.handleDetect))
	mux.HandleFunc("/resolve", s.wrapWithMiddleware(s.handleResolve))
	mux.HandleFunc("/repeat", s.wrapWithMiddleware(s.handleRepeat))
	mux.HandleFunc("/steps", s.wrapWithMiddleware(s.handleSteps))
	mux.HandleFunc("/health", s.wrapWithMiddleware(s.handleHealth))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware(s.handleMetrics))

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}

	return s
}

// wrapWithMiddleware applies the full middleware chain to a handler.
func (s *Server) wrapWithMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	// Apply in reverse order: Logging -> Metrics -> Handler
	wrapped := s.metricsMiddleware(handler)
	wrapped = s.loggingMiddleware(wrapped)
	return wrapped
}

// statusRecorder captures the response status for the logging middleware.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware emits one structured log line per request.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next(rec, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

// Start initializes and starts the HTTP server.
// It listens for incoming requests on the configured port and handles system
// signals (SIGINT, SIGTERM) to ensure a graceful shutdown.
//
// Returns:
//   - error: An error if the server fails to start or shuts down unexpectedly.
func (s *Server) Start() error {
	// Setup signal handling for graceful shutdown
	signal.Notify(s.shutdownSignal, os.Interrupt, syscall.SIGTERM)

	// Channel for server startup errors
	errCh := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		s.logger.Info().
			Str("addr", s.httpServer.Addr).
			Int("max_iterations_cap", s.maxIterationsCap).
			Msg("starting server")
		s.logger.Info().Msg("available endpoints:")
		s.logger.Info().Msg("  GET /detect?step=<name>&initial=<state>&modulus=<m>")
		s.logger.Info().Msg("  GET /resolve?step=<name>&initial=<state>&modulus=<m>&target=<iteration>")
		s.logger.Info().Msg("  GET /repeat?step=<name>&initial=<state>&modulus=<m>")
		s.logger.Info().Msg("  GET /steps")
		s.logger.Info().Msg("  GET /health")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case <-s.shutdownSignal:
		s.logger.Info().Msg("shutdown signal received, initiating graceful shutdown")
	case err := <-errCh:
		return apperrors.NewServerError("server failed to start", err)
	}

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}

	s.logger.Info().Msg("server stopped gracefully")
	return nil
}
