package agent

import (
	"context"
	"time"

	gerrors "github.com/gridfare/gridfare/pkg/errors"
	"github.com/gridfare/gridfare/pkg/observability"
)

// Envelope is the standard response wrapper for every successful dispatch.
// Soft not-found payloads travel inside Output like any other result.
type Envelope struct {
	Output any `json:"output"`
}

// Dispatcher resolves entrypoints, validates input, and runs handlers.
// Dispatch is read-only and side-effect-free with respect to any state the
// agent owns; the only side effects are the upstream calls a handler makes.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher creates a dispatcher over an initialized registry.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Dispatch looks up the entrypoint for key, validates rawInput against its
// schema (applying declared defaults), runs the handler, and wraps the
// result.
//
// Failure modes, all fatal to the call and never retried:
//   - unknown key → NOT_REGISTERED
//   - shape mismatch → [gerrors.ValidationError] enumerating offending fields
//   - handler failure (upstream status, network) → propagated unchanged
//
// Payment for priced entrypoints is assumed to be confirmed by an external
// collaborator before this call; the core does not re-check balances.
func (d *Dispatcher) Dispatch(ctx context.Context, key string, rawInput map[string]any) (*Envelope, error) {
	ep, err := d.registry.Get(key)
	if err != nil {
		return nil, err
	}

	if rawInput == nil {
		rawInput = map[string]any{}
	}
	input, err := ep.Schema.Validate(rawInput)
	if err != nil {
		var verr *gerrors.ValidationError
		if e, ok := err.(*gerrors.ValidationError); ok {
			verr = e
		}
		if verr != nil {
			observability.Dispatch().OnValidationFailure(ctx, key, len(verr.Fields))
		}
		return nil, err
	}

	start := time.Now()
	observability.Dispatch().OnDispatchStart(ctx, key)

	result, err := ep.Handler(ctx, input)
	observability.Dispatch().OnDispatchComplete(ctx, key, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	return &Envelope{Output: result}, nil
}
