package observability

import (
	"context"
	"testing"
	"time"
)

type countingDispatchHooks struct {
	starts, completes, validations int
}

func (h *countingDispatchHooks) OnDispatchStart(context.Context, string) { h.starts++ }
func (h *countingDispatchHooks) OnDispatchComplete(context.Context, string, time.Duration, error) {
	h.completes++
}
func (h *countingDispatchHooks) OnValidationFailure(context.Context, string, int) { h.validations++ }

func TestSetDispatchHooks(t *testing.T) {
	t.Cleanup(Reset)

	counter := &countingDispatchHooks{}
	SetDispatchHooks(counter)

	ctx := context.Background()
	Dispatch().OnDispatchStart(ctx, "overview")
	Dispatch().OnDispatchComplete(ctx, "overview", time.Millisecond, nil)
	Dispatch().OnValidationFailure(ctx, "driver", 2)

	if counter.starts != 1 || counter.completes != 1 || counter.validations != 1 {
		t.Errorf("hooks not routed: %+v", counter)
	}
}

func TestSetHooks_NilIgnored(t *testing.T) {
	t.Cleanup(Reset)

	SetDispatchHooks(nil)
	SetUpstreamHooks(nil)
	SetPaymentHooks(nil)

	// The no-op defaults must survive nil registration.
	if Dispatch() == nil || Upstream() == nil || Payment() == nil {
		t.Fatal("nil registration must not clear the defaults")
	}
	Dispatch().OnDispatchStart(context.Background(), "overview")
}

func TestReset(t *testing.T) {
	counter := &countingDispatchHooks{}
	SetDispatchHooks(counter)
	Reset()

	Dispatch().OnDispatchStart(context.Background(), "overview")
	if counter.starts != 0 {
		t.Error("Reset should restore the no-op hooks")
	}
}
