package agent

import (
	"context"
	"errors"
	"testing"

	gerrors "github.com/gridfare/gridfare/pkg/errors"
)

func testRegistry(t *testing.T, upstream Upstream) *Registry {
	t.Helper()
	registry, err := initialize(upstream, DefaultPricing(), fixedNow)
	if err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	return registry
}

func TestInitialize_RegistersAll(t *testing.T) {
	registry := testRegistry(t, &stubUpstream{})

	keys := []string{KeyOverview, KeyStandings, KeySchedule, KeyNextRace, KeyDriver, KeyResults, KeyReport}
	if registry.Len() != len(keys) {
		t.Fatalf("expected %d entrypoints, got %d", len(keys), registry.Len())
	}
	for _, key := range keys {
		if _, err := registry.Get(key); err != nil {
			t.Errorf("entrypoint %q not registered: %v", key, err)
		}
	}

	ov, _ := registry.Get(KeyOverview)
	if ov.Price != 0 {
		t.Errorf("overview must be free, got %d", ov.Price)
	}
	rep, _ := registry.Get(KeyReport)
	if rep.Price != PriceComposite {
		t.Errorf("unexpected report price: %d", rep.Price)
	}
}

func TestDispatch_Envelope(t *testing.T) {
	d := NewDispatcher(testRegistry(t, &stubUpstream{schedule: testSchedule2025()}))

	env, err := d.Dispatch(context.Background(), KeyNextRace, nil)
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if env == nil || env.Output == nil {
		t.Fatal("every successful dispatch wraps its result in an envelope")
	}
	if _, ok := env.Output.(NextRace); !ok {
		t.Errorf("unexpected output type %T", env.Output)
	}
}

func TestDispatch_UnknownKey(t *testing.T) {
	d := NewDispatcher(testRegistry(t, &stubUpstream{}))

	_, err := d.Dispatch(context.Background(), "telemetry", nil)
	if !gerrors.Is(err, gerrors.ErrCodeNotRegistered) {
		t.Errorf("unknown key should return %s, got %v", gerrors.ErrCodeNotRegistered, err)
	}
}

func TestDispatch_ValidationFailure(t *testing.T) {
	d := NewDispatcher(testRegistry(t, &stubUpstream{}))

	_, err := d.Dispatch(context.Background(), KeyDriver, map[string]any{
		"driverId": "NOT-AN-ID",
		"bogus":    true,
	})

	var verr *gerrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 2 {
		t.Errorf("both failures must be enumerated, got %+v", verr.Fields)
	}
}

func TestDispatch_DefaultsApplied(t *testing.T) {
	stub := &stubUpstream{driverStandings: testDriverStandings()}
	d := NewDispatcher(testRegistry(t, stub))

	// No input at all: season defaults to "current", type to "drivers".
	env, err := d.Dispatch(context.Background(), KeyStandings, nil)
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	st, ok := env.Output.(Standings)
	if !ok {
		t.Fatalf("unexpected output type %T", env.Output)
	}
	if len(st.DriverStandings) == 0 {
		t.Error("defaulted dispatch should return the drivers table")
	}
}

func TestDispatch_HandlerErrorPropagates(t *testing.T) {
	upstreamErr := &gerrors.UpstreamError{StatusCode: 503}
	d := NewDispatcher(testRegistry(t, &stubUpstream{scheduleErr: upstreamErr}))

	_, err := d.Dispatch(context.Background(), KeySchedule, nil)
	var uerr *gerrors.UpstreamError
	if !errors.As(err, &uerr) || uerr.StatusCode != 503 {
		t.Errorf("handler errors must propagate unchanged, got %v", err)
	}
}

func TestDispatch_SoftNotFoundInsideEnvelope(t *testing.T) {
	d := NewDispatcher(testRegistry(t, &stubUpstream{}))

	env, err := d.Dispatch(context.Background(), KeyDriver, map[string]any{"driverId": "unknown_id"})
	if err != nil {
		t.Fatalf("soft not-found must be a successful dispatch: %v", err)
	}
	nf, ok := env.Output.(NotFound)
	if !ok {
		t.Fatalf("unexpected output type %T", env.Output)
	}
	if nf.Error != "Driver not found" || nf.DriverID != "unknown_id" {
		t.Errorf("unexpected soft payload: %+v", nf)
	}
}
