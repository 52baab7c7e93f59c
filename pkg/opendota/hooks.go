package opendota

import (
	"context"
	"time"
)

// Hooks receives client events for metrics or tracing backends. Hooks are
// called synchronously on the request path and should return quickly.
// Implementations must be safe for concurrent use.
//
// Embed NoopHooks to implement only the events you care about.
type Hooks interface {
	// OnRequest records an outgoing network call.
	OnRequest(ctx context.Context, method, endpoint string)

	// OnResponse records a completed network call.
	OnResponse(ctx context.Context, method, endpoint string, statusCode int, duration time.Duration)

	// OnError records a network call that produced no response
	// (connection failure, timeout).
	OnError(ctx context.Context, method, endpoint string, err error)

	// OnCacheHit records a fetch served from the response cache.
	OnCacheHit(ctx context.Context, family string)

	// OnCacheMiss records a cache-eligible fetch that went to the network.
	OnCacheMiss(ctx context.Context, family string)

	// OnCacheWrite records a response written to the cache.
	OnCacheWrite(ctx context.Context, family string, size int)

	// OnRateLimitWait records time spent in the rate-limit gate.
	OnRateLimitWait(ctx context.Context, d time.Duration)
}

// NoopHooks is a no-op implementation of Hooks.
type NoopHooks struct{}

func (NoopHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHooks) OnError(context.Context, string, string, error)                 {}
func (NoopHooks) OnCacheHit(context.Context, string)                             {}
func (NoopHooks) OnCacheMiss(context.Context, string)                            {}
func (NoopHooks) OnCacheWrite(context.Context, string, int)                      {}
func (NoopHooks) OnRateLimitWait(context.Context, time.Duration)                 {}

// Ensure NoopHooks implements Hooks.
var _ Hooks = NoopHooks{}
