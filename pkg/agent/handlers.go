package agent

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gridfare/gridfare/pkg/ergast"
	gerrors "github.com/gridfare/gridfare/pkg/errors"
	"github.com/gridfare/gridfare/pkg/racing"
)

// Entrypoint keys.
const (
	KeyOverview  = "overview"
	KeyStandings = "standings"
	KeySchedule  = "schedule"
	KeyNextRace  = "next_race"
	KeyDriver    = "driver"
	KeyResults   = "results"
	KeyReport    = "report"
)

// overviewTopN is how many rows of each championship table the free overview
// shows.
const overviewTopN = 5

// recentResultsN is how many of a driver's latest races the driver
// entrypoint returns.
const recentResultsN = 5

// Upstream is the read-only data source handlers fetch from. *ergast.Client
// satisfies it; tests substitute fixtures.
type Upstream interface {
	DriverStandings(ctx context.Context, season string) ([]ergast.DriverStanding, error)
	ConstructorStandings(ctx context.Context, season string) ([]ergast.ConstructorStanding, error)
	Schedule(ctx context.Context, season string) ([]ergast.Race, error)
	Driver(ctx context.Context, driverID string) (*ergast.Driver, error)
	DriverResults(ctx context.Context, season, driverID string) ([]ergast.Race, error)
	RaceResults(ctx context.Context, season, round string) (*ergast.Race, error)
}

// Overview is the free season snapshot: the next race plus the head of both
// championship tables. NextRace is null once the season is over.
type Overview struct {
	Season               string                 `json:"season"`
	NextRace             *racing.Race           `json:"nextRace"`
	DriverStandings      []racing.StandingEntry `json:"driverStandings"`
	ConstructorStandings []racing.StandingEntry `json:"constructorStandings"`
}

// Standings carries exactly one championship table; the key for the other
// table is omitted entirely.
type Standings struct {
	Season               string                 `json:"season"`
	DriverStandings      []racing.StandingEntry `json:"driverStandings,omitempty"`
	ConstructorStandings []racing.StandingEntry `json:"constructorStandings,omitempty"`
}

// Schedule is a season's race list, optionally filtered to upcoming races.
type Schedule struct {
	Season   string        `json:"season"`
	Upcoming bool          `json:"upcoming"`
	Races    []racing.Race `json:"races"`
}

// NextRace is the first race of the current season starting after now.
type NextRace struct {
	Season string      `json:"season"`
	Race   racing.Race `json:"race"`
}

// DriverProfile is a driver's profile with their most recent results.
type DriverProfile struct {
	Season        string               `json:"season"`
	Driver        racing.Driver        `json:"driver"`
	Team          string               `json:"team,omitempty"`
	RecentResults []racing.RaceResults `json:"recentResults"`
}

// Report is the composite season report assembled from four independent
// upstream fetches. LastRace is null when no race has finished yet; that is
// not a failure.
type Report struct {
	Season               string                 `json:"season"`
	Schedule             []racing.Race          `json:"schedule"`
	DriverStandings      []racing.StandingEntry `json:"driverStandings"`
	ConstructorStandings []racing.StandingEntry `json:"constructorStandings"`
	LastRace             *racing.RaceResults    `json:"lastRace"`
}

// NotFound is the soft error payload: a valid, successful response shape
// signaling that the requested resource does not exist upstream. It is
// returned as a normal output, never raised as a failure.
type NotFound struct {
	Error    string `json:"error"`
	DriverID string `json:"driverId,omitempty"`
	Season   string `json:"season,omitempty"`
	Round    string `json:"round,omitempty"`
}

// handlers binds entrypoint handler bodies to their upstream source. The
// clock is injectable so time-dependent selection is testable.
type handlers struct {
	upstream Upstream
	now      func() time.Time
}

func newHandlers(upstream Upstream, now func() time.Time) *handlers {
	if now == nil {
		now = time.Now
	}
	return &handlers{upstream: upstream, now: now}
}

// Overview issues three concurrent fetches (schedule, driver standings,
// constructor standings) and fails as a whole if any one fails.
func (h *handlers) Overview(ctx context.Context, _ Input) (any, error) {
	var (
		races        []ergast.Race
		drivers      []ergast.DriverStanding
		constructors []ergast.ConstructorStanding
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		races, err = h.upstream.Schedule(gctx, gerrors.SeasonCurrent)
		return err
	})
	g.Go(func() (err error) {
		drivers, err = h.upstream.DriverStandings(gctx, gerrors.SeasonCurrent)
		return err
	})
	g.Go(func() (err error) {
		constructors, err = h.upstream.ConstructorStandings(gctx, gerrors.SeasonCurrent)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := Overview{
		Season:               seasonOf(races, gerrors.SeasonCurrent),
		DriverStandings:      racing.TopN(racing.NormalizeDriverStandings(drivers), overviewTopN),
		ConstructorStandings: racing.TopN(racing.NormalizeConstructorStandings(constructors), overviewTopN),
	}
	if next := racing.NextRace(races, h.now()); next != nil {
		r := racing.NormalizeRace(*next)
		out.NextRace = &r
	}
	return out, nil
}

// Standings returns one championship table, selected by the type input.
func (h *handlers) Standings(ctx context.Context, in Input) (any, error) {
	season := in.String("season")

	if in.String("type") == "constructors" {
		rows, err := h.upstream.ConstructorStandings(ctx, season)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return NotFound{Error: "No standings available", Season: season}, nil
		}
		return Standings{Season: season, ConstructorStandings: racing.NormalizeConstructorStandings(rows)}, nil
	}

	rows, err := h.upstream.DriverStandings(ctx, season)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return NotFound{Error: "No standings available", Season: season}, nil
	}
	return Standings{Season: season, DriverStandings: racing.NormalizeDriverStandings(rows)}, nil
}

// Schedule returns a season's race list in upstream order, filtered to
// upcoming races when requested.
func (h *handlers) Schedule(ctx context.Context, in Input) (any, error) {
	season := in.String("season")

	races, err := h.upstream.Schedule(ctx, season)
	if err != nil {
		return nil, err
	}
	if len(races) == 0 {
		return NotFound{Error: "No races found", Season: season}, nil
	}

	upcoming := in.Bool("upcoming")
	if upcoming {
		races = racing.Upcoming(races, h.now())
	}

	out := Schedule{
		Season:   seasonOf(races, season),
		Upcoming: upcoming,
		Races:    make([]racing.Race, 0, len(races)),
	}
	for _, r := range races {
		out.Races = append(out.Races, racing.NormalizeRace(r))
	}
	return out, nil
}

// NextRace returns the first current-season race strictly after now, or a
// soft payload once the season is over.
func (h *handlers) NextRace(ctx context.Context, _ Input) (any, error) {
	races, err := h.upstream.Schedule(ctx, gerrors.SeasonCurrent)
	if err != nil {
		return nil, err
	}

	season := seasonOf(races, gerrors.SeasonCurrent)
	next := racing.NextRace(races, h.now())
	if next == nil {
		return NotFound{Error: "No upcoming race", Season: season}, nil
	}
	return NextRace{Season: season, Race: racing.NormalizeRace(*next)}, nil
}

// Driver fetches a driver's profile and season results concurrently and
// merges them. An unknown driver id yields a soft not-found payload.
func (h *handlers) Driver(ctx context.Context, in Input) (any, error) {
	driverID := in.String("driverId")
	season := in.String("season")

	var (
		profile *ergast.Driver
		results []ergast.Race
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		profile, err = h.upstream.Driver(gctx, driverID)
		return err
	})
	g.Go(func() (err error) {
		results, err = h.upstream.DriverResults(gctx, season, driverID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if profile == nil {
		return NotFound{Error: "Driver not found", DriverID: driverID}, nil
	}

	recent := racing.LastN(results, recentResultsN)
	out := DriverProfile{
		Season:        season,
		Driver:        racing.NormalizeDriver(*profile),
		RecentResults: make([]racing.RaceResults, 0, len(recent)),
	}
	for _, r := range recent {
		out.RecentResults = append(out.RecentResults, racing.NormalizeRaceResults(r))
	}
	if n := len(recent); n > 0 {
		last := recent[n-1]
		if len(last.Results) > 0 {
			out.Team = last.Results[len(last.Results)-1].Constructor.Name
		}
	}
	return out, nil
}

// Results returns the classified results of one race, or a soft payload when
// the race has no results yet.
func (h *handlers) Results(ctx context.Context, in Input) (any, error) {
	season := in.String("season")
	round := in.String("round")

	race, err := h.upstream.RaceResults(ctx, season, round)
	if err != nil {
		return nil, err
	}
	if race == nil {
		return NotFound{Error: "No results found", Season: season, Round: round}, nil
	}
	return racing.NormalizeRaceResults(*race), nil
}

// Report merges four independent concurrent fetches into the season report.
// A missing last race yields a null subsection; any fetch failure fails the
// whole dispatch.
func (h *handlers) Report(ctx context.Context, in Input) (any, error) {
	season := in.String("season")

	var (
		races        []ergast.Race
		drivers      []ergast.DriverStanding
		constructors []ergast.ConstructorStanding
		lastRace     *ergast.Race
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		races, err = h.upstream.Schedule(gctx, season)
		return err
	})
	g.Go(func() (err error) {
		drivers, err = h.upstream.DriverStandings(gctx, season)
		return err
	})
	g.Go(func() (err error) {
		constructors, err = h.upstream.ConstructorStandings(gctx, season)
		return err
	})
	g.Go(func() (err error) {
		lastRace, err = h.upstream.RaceResults(gctx, season, gerrors.RoundLast)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := Report{
		Season:               seasonOf(races, season),
		Schedule:             make([]racing.Race, 0, len(races)),
		DriverStandings:      racing.NormalizeDriverStandings(drivers),
		ConstructorStandings: racing.NormalizeConstructorStandings(constructors),
	}
	for _, r := range races {
		out.Schedule = append(out.Schedule, racing.NormalizeRace(r))
	}
	if lastRace != nil {
		rr := racing.NormalizeRaceResults(*lastRace)
		out.LastRace = &rr
	}
	return out, nil
}

// seasonOf resolves the literal "current" to the concrete season of the
// fetched race list when one is available.
func seasonOf(races []ergast.Race, requested string) string {
	if len(races) > 0 && races[0].Season != "" {
		return races[0].Season
	}
	return requested
}
