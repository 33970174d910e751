// Package racing defines the stable, versioned output records served by the
// agent, and the pure normalization functions that build them from raw Ergast
// payloads.
//
// Every type here is transient: constructed per-request, serialized once, and
// discarded. Nothing is persisted or shared across dispatches.
//
// Numeric fields use pointers where the upstream value may legitimately be
// absent: a missing value is surfaced as null, never coerced to zero.
package racing

// Driver is a normalized driver profile.
type Driver struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code,omitempty"`
	Number      *int   `json:"number,omitempty"`
	Nationality string `json:"nationality"`
	DateOfBirth string `json:"dateOfBirth"`
	ProfileURL  string `json:"profileUrl,omitempty"`
}

// Constructor is a normalized team.
type Constructor struct {
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
}

// Race is one championship round. Sessions maps session names
// (e.g. "qualifying", "sprint") to their scheduled datetimes and is omitted
// for result payloads, which do not carry session data.
type Race struct {
	Season   string            `json:"season"`
	Round    *int              `json:"round"`
	Name     string            `json:"name"`
	Circuit  string            `json:"circuit"`
	Location string            `json:"location"`
	Date     string            `json:"date"`
	Time     string            `json:"time,omitempty"`
	Sessions map[string]string `json:"sessions,omitempty"`
}

// Result is one classified finisher of a race.
type Result struct {
	Position   *int        `json:"position"`
	Driver     string      `json:"driver"`
	Team       string      `json:"team"`
	Laps       *int        `json:"laps"`
	Time       string      `json:"time,omitempty"`
	Status     string      `json:"status"`
	Points     *float64    `json:"points"`
	Grid       *int        `json:"grid,omitempty"`
	FastestLap *FastestLap `json:"fastestLap,omitempty"`
}

// FastestLap describes a driver's fastest lap within a race.
type FastestLap struct {
	Rank     *int   `json:"rank"`
	Lap      *int   `json:"lap"`
	Time     string `json:"time"`
	AvgSpeed string `json:"avgSpeed,omitempty"`
}

// StandingEntry is one row of a championship table. Exactly one of Driver or
// Team is the subject; Team additionally names a driver's current
// constructor in the drivers' table.
type StandingEntry struct {
	Position *int     `json:"position"`
	Driver   string   `json:"driver,omitempty"`
	Team     string   `json:"team,omitempty"`
	Points   *float64 `json:"points"`
	Wins     *int     `json:"wins"`
}

// RaceResults pairs a normalized race header with its classified results.
type RaceResults struct {
	Race    Race     `json:"race"`
	Results []Result `json:"results"`
}
