// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about entrypoint dispatches, upstream API calls, and
// payment gating.
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
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetDispatchHooks(&myDispatchHooks{})
//	    observability.SetUpstreamHooks(&myUpstreamHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Dispatch().OnDispatchStart(ctx, key)
//	// ... run handler ...
//	observability.Dispatch().OnDispatchComplete(ctx, key, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// DispatchHooks receives events from the request dispatcher.
type DispatchHooks interface {
	// OnDispatchStart records the beginning of an entrypoint dispatch.
	OnDispatchStart(ctx context.Context, key string)

	// OnDispatchComplete records a finished dispatch, successful or not.
	OnDispatchComplete(ctx context.Context, key string, duration time.Duration, err error)

	// OnValidationFailure records an input rejected by schema validation.
	OnValidationFailure(ctx context.Context, key string, fields int)
}

// UpstreamHooks receives events from upstream API calls.
type UpstreamHooks interface {
	// OnFetchStart records an outgoing upstream request.
	OnFetchStart(ctx context.Context, path string)

	// OnFetchComplete records an upstream response or failure.
	OnFetchComplete(ctx context.Context, path string, statusCode int, duration time.Duration, err error)
}

// PaymentHooks receives events from the payment gate.
type PaymentHooks interface {
	// OnPaymentRequired records a priced entrypoint passing through the gate.
	OnPaymentRequired(ctx context.Context, key string, price int64)

	// OnPaymentSkipped records a free entrypoint bypassing the gate entirely.
	OnPaymentSkipped(ctx context.Context, key string)
}

// NoopDispatchHooks is a no-op implementation of DispatchHooks.
type NoopDispatchHooks struct{}

func (NoopDispatchHooks) OnDispatchStart(context.Context, string)                          {}
func (NoopDispatchHooks) OnDispatchComplete(context.Context, string, time.Duration, error) {}
func (NoopDispatchHooks) OnValidationFailure(context.Context, string, int)                 {}

// NoopUpstreamHooks is a no-op implementation of UpstreamHooks.
type NoopUpstreamHooks struct{}

func (NoopUpstreamHooks) OnFetchStart(context.Context, string)                               {}
func (NoopUpstreamHooks) OnFetchComplete(context.Context, string, int, time.Duration, error) {}

// NoopPaymentHooks is a no-op implementation of PaymentHooks.
type NoopPaymentHooks struct{}

func (NoopPaymentHooks) OnPaymentRequired(context.Context, string, int64) {}
func (NoopPaymentHooks) OnPaymentSkipped(context.Context, string)         {}

var (
	dispatchHooks DispatchHooks = NoopDispatchHooks{}
	upstreamHooks UpstreamHooks = NoopUpstreamHooks{}
	paymentHooks  PaymentHooks  = NoopPaymentHooks{}
	hooksMu       sync.RWMutex
)

// SetDispatchHooks registers custom dispatch hooks.
// This should be called once at application startup before serving requests.
func SetDispatchHooks(h DispatchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		dispatchHooks = h
	}
}

// SetUpstreamHooks registers custom upstream hooks.
// This should be called once at application startup before serving requests.
func SetUpstreamHooks(h UpstreamHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		upstreamHooks = h
	}
}

// SetPaymentHooks registers custom payment hooks.
// This should be called once at application startup before serving requests.
func SetPaymentHooks(h PaymentHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		paymentHooks = h
	}
}

// Dispatch returns the registered dispatch hooks.
func Dispatch() DispatchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return dispatchHooks
}

// Upstream returns the registered upstream hooks.
func Upstream() UpstreamHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return upstreamHooks
}

// Payment returns the registered payment hooks.
func Payment() PaymentHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return paymentHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	dispatchHooks = NoopDispatchHooks{}
	upstreamHooks = NoopUpstreamHooks{}
	paymentHooks = NoopPaymentHooks{}
}
