// Package observability provides hooks for instrumenting the layout engine
// without adding a hard dependency on any specific metrics or tracing
// backend.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define a hook interface for the phases of the layout pipeline
//   - Provide a no-op default implementation
//   - Allow registration of a custom implementation at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by the caller, not by
//     the layout package itself)
//   - Keeps the core engine dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, a logger) to
//     be wired in without touching the engine
//
// # Usage
//
// Register hooks at application startup:
//
//	observability.SetLayoutHooks(&myHooks{})
//
// The layout package calls hooks internally as it moves through the
// pipeline phases:
//
//	observability.Layout().OnLayeringStart(ctx, nodeCount, linkCount)
//	// ... assign layers ...
//	observability.Layout().OnLayeringComplete(ctx, layerCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// LayoutHooks receives events from the layered-DAG layout pipeline. Each
// phase reports a Start and a Complete event; Complete carries the
// phase's outcome and elapsed duration.
type LayoutHooks interface {
	// OnLayeringStart fires before layer assignment begins.
	OnLayeringStart(ctx context.Context, nodeCount, linkCount int)
	// OnLayeringComplete fires after layer assignment, successful or not.
	OnLayeringComplete(ctx context.Context, layerCount int, duration time.Duration, err error)

	// OnDecrossStart fires before crossing minimization begins.
	OnDecrossStart(ctx context.Context, layerCount int)
	// OnDecrossComplete fires after crossing minimization, successful or not.
	OnDecrossComplete(ctx context.Context, crossings int, duration time.Duration, err error)

	// OnCoordStart fires before coordinate assignment begins.
	OnCoordStart(ctx context.Context, nodeCount int)
	// OnCoordComplete fires after coordinate assignment, successful or not.
	OnCoordComplete(ctx context.Context, width, height float64, duration time.Duration, err error)
}

// NoopLayoutHooks is a no-op implementation of LayoutHooks. It is the
// default registered hook set.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayeringStart(context.Context, int, int)                      {}
func (NoopLayoutHooks) OnLayeringComplete(context.Context, int, time.Duration, error)   {}
func (NoopLayoutHooks) OnDecrossStart(context.Context, int)                            {}
func (NoopLayoutHooks) OnDecrossComplete(context.Context, int, time.Duration, error)    {}
func (NoopLayoutHooks) OnCoordStart(context.Context, int)                              {}
func (NoopLayoutHooks) OnCoordComplete(context.Context, float64, float64, time.Duration, error) {}

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks. This should be called
// once at application startup before any layout operations; it is safe
// to call concurrently with [Layout] but a registration mid-run may
// apply only to phases that have not yet started.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// Layout returns the currently registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Reset restores the hooks to their no-op default. Primarily useful for
// testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
}
