package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"
)

// SetupLifecycle derives a context that is canceled either when the timeout
// expires or when the process receives SIGINT or SIGTERM, whichever happens
// first. Runs dispatched by the application use it as their root context so
// Ctrl+C and the -timeout flag behave identically.
//
// Parameters:
//   - ctx: The parent context.
//   - timeout: The maximum duration for the run.
//
// Returns:
//   - context.Context: The derived context.
//   - *CancelFuncs: Cleanup handles; call Cleanup (typically via defer).
func SetupLifecycle(ctx context.Context, timeout time.Duration) (context.Context, *CancelFuncs) {
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)

	return ctx, &CancelFuncs{
		CancelTimeout: cancelTimeout,
		StopSignals:   stopSignals,
	}
}

// CancelFuncs holds the cancel functions for lifecycle management.
// Both functions should be called (typically via defer) to release the
// timeout timer and the signal registration.
type CancelFuncs struct {
	// CancelTimeout cancels the timeout context.
	CancelTimeout context.CancelFunc
	// StopSignals stops listening for OS signals.
	StopSignals context.CancelFunc
}

// Cleanup calls both cancel functions to release resources.
func (c *CancelFuncs) Cleanup() {
	if c.StopSignals != nil {
		c.StopSignals()
	}
	if c.CancelTimeout != nil {
		c.CancelTimeout()
	}
}
