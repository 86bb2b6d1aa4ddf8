// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation is optional and backend-neutral. The CLI registers hooks
// at startup; library packages only call them.
//
//	func main() {
//	    observability.SetLiberateHooks(&myLiberateHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries emit events around each step:
//
//	observability.Liberate().OnShrinkStart(ctx, len(directives))
//	// ... run ProGuard ...
//	observability.Liberate().OnShrinkComplete(ctx, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Liberate Hooks
// =============================================================================

// LiberateHooks receives events from a liberate run.
type LiberateHooks interface {
	// OnClassify reports the bucket sizes after dependency classification.
	OnClassify(ctx context.Context, liberate, support, ignored int)

	// Shrink events
	OnShrinkStart(ctx context.Context, directives int)
	OnShrinkComplete(ctx context.Context, duration time.Duration, err error)

	// OnExtractComplete reports materialization of the staging jar.
	OnExtractComplete(ctx context.Context, files int, bytes int64, duration time.Duration, err error)
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

// NoopLiberateHooks is a no-op implementation of LiberateHooks.
type NoopLiberateHooks struct{}

func (NoopLiberateHooks) OnClassify(context.Context, int, int, int)              {}
func (NoopLiberateHooks) OnShrinkStart(context.Context, int)                     {}
func (NoopLiberateHooks) OnShrinkComplete(context.Context, time.Duration, error) {}
func (NoopLiberateHooks) OnExtractComplete(context.Context, int, int64, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	liberateHooks LiberateHooks = NoopLiberateHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetLiberateHooks registers custom liberate hooks.
// This should be called once at application startup before any run.
func SetLiberateHooks(h LiberateHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		liberateHooks = h
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

// Liberate returns the registered liberate hooks.
func Liberate() LiberateHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return liberateHooks
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
	liberateHooks = NoopLiberateHooks{}
	cacheHooks = NoopCacheHooks{}
}
