package server

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/gridfare/gridfare/pkg/observability"
)

// Verifier confirms that payment for a priced entrypoint has been settled
// before the dispatch runs. Settlement itself (wallet, on-chain identity,
// balances) lives outside this process; implementations typically call out
// to that collaborator.
//
// The transport layer never consults the verifier for free entrypoints: a
// price of exactly zero bypasses the gate entirely.
type Verifier interface {
	Confirm(ctx context.Context, key string, price int64, requestID string) error
}

// AllowAll is the default verifier. It confirms every request and logs the
// fee that the external settlement collaborator would collect.
type AllowAll struct {
	Logger *log.Logger
}

// Confirm implements [Verifier].
func (v AllowAll) Confirm(ctx context.Context, key string, price int64, requestID string) error {
	if v.Logger != nil {
		v.Logger.Debug("payment confirmed", "entrypoint", key, "price", price, "request_id", requestID)
	}
	return nil
}

// confirmPayment runs the payment gate for one request. Free entrypoints
// skip the verifier unconditionally.
func confirmPayment(ctx context.Context, v Verifier, key string, price int64, requestID string) error {
	if price == 0 {
		observability.Payment().OnPaymentSkipped(ctx, key)
		return nil
	}
	observability.Payment().OnPaymentRequired(ctx, key, price)
	return v.Confirm(ctx, key, price, requestID)
}
