// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation is optional and backend-agnostic. Consumers register hook
// implementations at startup and receive events about heuristic phases,
// pipeline runs, and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetHeuristicHooks(&myHeuristicHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Heuristic().OnPhaseStart(observability.PhaseSlide)
//	// ... settle separators ...
//	observability.Heuristic().OnPhaseComplete(observability.PhaseSlide, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// Heuristic phases reported to HeuristicHooks.
const (
	PhaseSlide      = "slide"
	PhaseIterate    = "iterate"
	PhaseFillHoles  = "fill-holes"
	PhaseFillAlleys = "fill-alleys"
	PhasePolish     = "polish"
)

// =============================================================================
// Heuristic Hooks
// =============================================================================

// HeuristicHooks receives events from the local search. The search is
// synchronous, so hooks are called on the searching goroutine and should
// return quickly.
type HeuristicHooks interface {
	// Phase events
	OnPhaseStart(phase string)
	OnPhaseComplete(phase string, duration time.Duration)

	// OnIteration is called after every take/release sweep with the exact
	// and relaxed quality of the current grid.
	OnIteration(iteration int, exact, relaxed float64, improved bool)

	// OnRepair records the outcome of a hole or alley repair pass.
	OnRepair(phase string, filled, unresolved int)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from pipeline runs.
type PipelineHooks interface {
	OnRunStart(ctx context.Context, runID string, regions int)
	OnRunComplete(ctx context.Context, runID string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopHeuristicHooks is a no-op implementation of HeuristicHooks.
type NoopHeuristicHooks struct{}

func (NoopHeuristicHooks) OnPhaseStart(string)                     {}
func (NoopHeuristicHooks) OnPhaseComplete(string, time.Duration)   {}
func (NoopHeuristicHooks) OnIteration(int, float64, float64, bool) {}
func (NoopHeuristicHooks) OnRepair(string, int, int)               {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnRunStart(context.Context, string, int)                     {}
func (NoopPipelineHooks) OnRunComplete(context.Context, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	heuristicHooks HeuristicHooks = NoopHeuristicHooks{}
	pipelineHooks  PipelineHooks  = NoopPipelineHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	hooksMu        sync.RWMutex
)

// SetHeuristicHooks registers custom heuristic hooks.
// This should be called once at application startup before any run.
func SetHeuristicHooks(h HeuristicHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		heuristicHooks = h
	}
}

// SetPipelineHooks registers custom pipeline hooks.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Heuristic returns the registered heuristic hooks.
func Heuristic() HeuristicHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return heuristicHooks
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	heuristicHooks = NoopHeuristicHooks{}
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
