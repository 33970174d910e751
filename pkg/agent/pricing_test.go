package agent

import "testing"

func TestDefaultPricing(t *testing.T) {
	p := DefaultPricing()

	if !p.IsFree(KeyOverview) {
		t.Error("overview must be free")
	}
	for _, key := range []string{KeyStandings, KeySchedule, KeyNextRace, KeyDriver, KeyResults} {
		if p.Price(key) != PriceStandard {
			t.Errorf("unexpected price for %s: %d", key, p.Price(key))
		}
	}
	if p.Price(KeyReport) != PriceComposite {
		t.Errorf("unexpected report price: %d", p.Price(KeyReport))
	}
	if p.Price("unknown") != 0 {
		t.Error("unknown keys should price at zero")
	}
}

func TestPricingPolicy_Merge(t *testing.T) {
	p := DefaultPricing().Merge(map[string]int64{
		KeyStandings: 7_500,
		KeyOverview:  9_999, // must be ignored
		KeyResults:   -5,    // negative overrides are dropped
	})

	if p.Price(KeyStandings) != 7_500 {
		t.Errorf("override should apply, got %d", p.Price(KeyStandings))
	}
	if !p.IsFree(KeyOverview) {
		t.Error("overview must stay free regardless of overrides")
	}
	if p.Price(KeyResults) != PriceStandard {
		t.Errorf("negative override should be dropped, got %d", p.Price(KeyResults))
	}

	// Merge returns a copy.
	if DefaultPricing().Price(KeyStandings) != PriceStandard {
		t.Error("Merge must not mutate the receiver")
	}
}
