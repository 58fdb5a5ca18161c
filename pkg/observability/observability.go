// Package observability defines hook points for instrumenting layout runs.
//
// The engine itself stays metrics-free: it invokes these hooks at well
// defined points and embedders decide what to record. The default hooks do
// nothing, so instrumentation is strictly opt-in.
package observability

import (
	"sync"
	"time"
)

// LayoutHooks observes layout computation.
type LayoutHooks interface {
	// LayoutStarted fires when a run begins.
	LayoutStarted(algorithm string, nodes, edges int)

	// LayoutFinished fires when a run completes, successfully or not.
	LayoutFinished(algorithm string, duration time.Duration, err error)
}

// CacheHooks observes cache traffic.
type CacheHooks interface {
	// CacheLookup fires on every Get with the hit outcome.
	CacheLookup(class string, hit bool)
}

// Hooks bundles all hook interfaces.
type Hooks struct {
	Layout LayoutHooks
	Cache  CacheHooks
}

// NopLayoutHooks discards all layout events.
type NopLayoutHooks struct{}

func (NopLayoutHooks) LayoutStarted(string, int, int)              {}
func (NopLayoutHooks) LayoutFinished(string, time.Duration, error) {}

// NopCacheHooks discards all cache events.
type NopCacheHooks struct{}

func (NopCacheHooks) CacheLookup(string, bool) {}

// Nop returns hooks that discard everything.
func Nop() Hooks {
	return Hooks{Layout: NopLayoutHooks{}, Cache: NopCacheHooks{}}
}

var (
	mu     sync.RWMutex
	global = Nop()
)

// SetGlobal installs process-wide hooks. Nil fields are replaced with
// no-ops.
func SetGlobal(h Hooks) {
	if h.Layout == nil {
		h.Layout = NopLayoutHooks{}
	}
	if h.Cache == nil {
		h.Cache = NopCacheHooks{}
	}
	mu.Lock()
	global = h
	mu.Unlock()
}

// Global returns the currently installed hooks.
func Global() Hooks {
	mu.RLock()
	defer mu.RUnlock()
	return global
}
