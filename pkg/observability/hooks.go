// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about pipeline execution and paper
// database lookups.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnStageStart(ctx, runID, stage)
//	// ... run the stage ...
//	observability.Pipeline().OnStageComplete(ctx, runID, stage, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the booklet pipeline.
type PipelineHooks interface {
	// Run events
	OnRunStart(ctx context.Context, runID, input string, stageCount int)
	OnRunComplete(ctx context.Context, runID, output string, duration time.Duration, err error)

	// Stage events
	OnStageStart(ctx context.Context, runID, stage string)
	OnStageComplete(ctx context.Context, runID, stage string, duration time.Duration, err error)
}

// =============================================================================
// Paper Hooks
// =============================================================================

// PaperHooks receives events from paper database lookups.
type PaperHooks interface {
	// OnLookup records a paper size lookup. An empty name is the default size.
	OnLookup(ctx context.Context, name string)

	// OnLookupComplete records the raw description returned by the database.
	OnLookupComplete(ctx context.Context, name, raw string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnRunStart(context.Context, string, string, int) {}
func (NoopPipelineHooks) OnRunComplete(context.Context, string, string, time.Duration, error) {
}
func (NoopPipelineHooks) OnStageStart(context.Context, string, string) {}
func (NoopPipelineHooks) OnStageComplete(context.Context, string, string, time.Duration, error) {
}

// NoopPaperHooks is a no-op implementation of PaperHooks.
type NoopPaperHooks struct{}

func (NoopPaperHooks) OnLookup(context.Context, string)                        {}
func (NoopPaperHooks) OnLookupComplete(context.Context, string, string, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	paperHooks    PaperHooks    = NoopPaperHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline runs.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetPaperHooks registers custom paper lookup hooks.
// This should be called once at application startup before any lookups.
func SetPaperHooks(h PaperHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		paperHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Paper returns the registered paper lookup hooks.
func Paper() PaperHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return paperHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	paperHooks = NoopPaperHooks{}
}
