package agent

// PricingPolicy is a static mapping of entrypoint key to access fee in the
// smallest currency unit. Price is metadata only for the dispatch core:
// payment collection and verification happen in an external collaborator
// keyed off this value. A price of exactly zero denotes a genuinely free
// capability and must never trigger a payment check.
type PricingPolicy map[string]int64

// Default prices per entrypoint. The overview entrypoint is the agent's one
// free capability.
const (
	PriceFree      int64 = 0
	PriceStandard  int64 = 5_000
	PriceComposite int64 = 12_000
)

// DefaultPricing returns the built-in price table.
func DefaultPricing() PricingPolicy {
	return PricingPolicy{
		KeyOverview:  PriceFree,
		KeyStandings: PriceStandard,
		KeySchedule:  PriceStandard,
		KeyNextRace:  PriceStandard,
		KeyDriver:    PriceStandard,
		KeyResults:   PriceStandard,
		KeyReport:    PriceComposite,
	}
}

// Price returns the fee for key, or zero when the key has no entry.
func (p PricingPolicy) Price(key string) int64 {
	return p[key]
}

// IsFree reports whether key carries no access fee.
func (p PricingPolicy) IsFree(key string) bool {
	return p[key] == 0
}

// Merge overlays non-negative overrides onto a copy of the policy and
// returns it. The overview entrypoint stays free regardless of overrides.
func (p PricingPolicy) Merge(overrides map[string]int64) PricingPolicy {
	out := make(PricingPolicy, len(p))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range overrides {
		if v >= 0 {
			out[k] = v
		}
	}
	out[KeyOverview] = PriceFree
	return out
}
