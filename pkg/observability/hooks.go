// Package observability provides hooks for metrics and tracing.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends to the solving code.
// Consumers register hooks at startup to receive events about solves,
// stackfile reloads and graph rendering.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// [PrometheusHooks] is the bundled backend used by the HTTP server.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSolverHooks(observability.NewPrometheusHooks(prometheus.DefaultRegisterer))
//	    // ... run application
//	}
//
// Callers emit events around the work they do:
//
//	observability.Solver().OnSolveStart(ctx, source, layerCount)
//	// ... solve ...
//	observability.Solver().OnSolveComplete(ctx, source, layerCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Solver Hooks
// =============================================================================

// SolverHooks receives events from the solve pipeline.
type SolverHooks interface {
	// Solve events. source names where the constraints came from
	// ("file", "api", "watch").
	OnSolveStart(ctx context.Context, source string, layerCount int)
	OnSolveComplete(ctx context.Context, source string, layerCount int, duration time.Duration, err error)

	// OnReload records a stackfile reload attempt.
	OnReload(ctx context.Context, path string, err error)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from constraint graph rendering.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSolverHooks is a no-op implementation of SolverHooks.
type NoopSolverHooks struct{}

func (NoopSolverHooks) OnSolveStart(context.Context, string, int)                          {}
func (NoopSolverHooks) OnSolveComplete(context.Context, string, int, time.Duration, error) {}
func (NoopSolverHooks) OnReload(context.Context, string, error)                            {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string)                             {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	solverHooks SolverHooks = NoopSolverHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	hooksMu     sync.RWMutex
)

// SetSolverHooks registers custom solver hooks.
// This should be called once at application startup before any solve.
func SetSolverHooks(h SolverHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		solverHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Solver returns the registered solver hooks.
func Solver() SolverHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return solverHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	solverHooks = NoopSolverHooks{}
	renderHooks = NoopRenderHooks{}
}
