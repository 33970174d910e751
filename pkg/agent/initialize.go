package agent

import (
	"time"

	gerrors "github.com/gridfare/gridfare/pkg/errors"
)

// Initialize builds the agent's entrypoint registry from a single
// data-driven descriptor table. It is invoked once by the process entry
// point; the returned registry is immutable and safe for concurrent reads.
func Initialize(upstream Upstream, pricing PricingPolicy) (*Registry, error) {
	return initialize(upstream, pricing, time.Now)
}

func initialize(upstream Upstream, pricing PricingPolicy, now func() time.Time) (*Registry, error) {
	h := newHandlers(upstream, now)

	seasonField := Field{
		Name:        "season",
		Type:        FieldString,
		Description: "4-digit championship year or \"current\"",
		Default:     gerrors.SeasonCurrent,
		Check:       gerrors.ValidateSeason,
	}

	table := []Entrypoint{
		{
			Key:         KeyOverview,
			Description: "Free snapshot of the current season: next race and the top of both championship tables",
			Price:       pricing.Price(KeyOverview),
			Handler:     h.Overview,
		},
		{
			Key:         KeyStandings,
			Description: "Full drivers' or constructors' championship table for a season",
			Schema: InputSchema{Fields: []Field{
				seasonField,
				{
					Name:        "type",
					Type:        FieldString,
					Description: "standings table to return: \"drivers\" or \"constructors\"",
					Default:     "drivers",
					Check:       checkStandingsType,
				},
			}},
			Price:   pricing.Price(KeyStandings),
			Handler: h.Standings,
		},
		{
			Key:         KeySchedule,
			Description: "Race calendar for a season, optionally filtered to upcoming races",
			Schema: InputSchema{Fields: []Field{
				seasonField,
				{
					Name:        "upcoming",
					Type:        FieldBool,
					Description: "return only races that have not started yet",
					Default:     false,
				},
			}},
			Price:   pricing.Price(KeySchedule),
			Handler: h.Schedule,
		},
		{
			Key:         KeyNextRace,
			Description: "The next race of the current season",
			Price:       pricing.Price(KeyNextRace),
			Handler:     h.NextRace,
		},
		{
			Key:         KeyDriver,
			Description: "Driver profile with their most recent race results",
			Schema: InputSchema{Fields: []Field{
				{
					Name:        "driverId",
					Type:        FieldString,
					Description: "driver identifier (e.g. \"alonso\", \"max_verstappen\")",
					Required:    true,
					Check:       gerrors.ValidateDriverID,
				},
				seasonField,
			}},
			Price:   pricing.Price(KeyDriver),
			Handler: h.Driver,
		},
		{
			Key:         KeyResults,
			Description: "Classified results of one race",
			Schema: InputSchema{Fields: []Field{
				seasonField,
				{
					Name:        "round",
					Type:        FieldString,
					Description: "round number or \"last\"",
					Default:     gerrors.RoundLast,
					Check:       gerrors.ValidateRound,
				},
			}},
			Price:   pricing.Price(KeyResults),
			Handler: h.Results,
		},
		{
			Key:         KeyReport,
			Description: "Composite season report: schedule, both standings tables, and the latest race results",
			Schema:      InputSchema{Fields: []Field{seasonField}},
			Price:       pricing.Price(KeyReport),
			Handler:     h.Report,
		},
	}

	registry := NewRegistry()
	for _, ep := range table {
		if err := registry.Register(ep); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func checkStandingsType(s string) error {
	switch s {
	case "drivers", "constructors":
		return nil
	}
	return gerrors.New(gerrors.ErrCodeInvalidInput, "type must be \"drivers\" or \"constructors\": %q", s)
}
