package racing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gridfare/gridfare/pkg/ergast"
)

// ParseInt coerces an upstream integer-as-text field. Absent or malformed
// values yield nil, never zero.
func ParseInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// ParseFloat coerces an upstream decimal-as-text field. Absent or malformed
// values yield nil, never zero.
func ParseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// NormalizeDriver converts a raw Ergast driver into the stable profile shape.
func NormalizeDriver(d ergast.Driver) Driver {
	return Driver{
		ID:          d.DriverID,
		Name:        strings.TrimSpace(d.GivenName + " " + d.FamilyName),
		Code:        d.Code,
		Number:      ParseInt(d.PermanentNumber),
		Nationality: d.Nationality,
		DateOfBirth: d.DateOfBirth,
		ProfileURL:  d.URL,
	}
}

// NormalizeConstructor converts a raw Ergast constructor into the stable
// team shape.
func NormalizeConstructor(c ergast.Constructor) Constructor {
	return Constructor{Name: c.Name, Nationality: c.Nationality}
}

// NormalizeRace converts a raw Ergast race into the stable race shape.
// Support sessions with an upstream date are collected into the Sessions map;
// races without any session data (results payloads) get no map at all.
func NormalizeRace(r ergast.Race) Race {
	out := Race{
		Season:   r.Season,
		Round:    ParseInt(r.Round),
		Name:     r.RaceName,
		Circuit:  r.Circuit.CircuitName,
		Location: strings.TrimSpace(strings.Trim(r.Circuit.Location.Locality+", "+r.Circuit.Location.Country, ", ")),
		Date:     r.Date,
		Time:     r.Time,
	}

	sessions := map[string]string{}
	addSession(sessions, "firstPractice", r.FirstPractice)
	addSession(sessions, "secondPractice", r.SecondPractice)
	addSession(sessions, "thirdPractice", r.ThirdPractice)
	addSession(sessions, "qualifying", r.Qualifying)
	addSession(sessions, "sprint", r.Sprint)
	if len(sessions) > 0 {
		out.Sessions = sessions
	}
	return out
}

func addSession(m map[string]string, name string, s ergast.Session) {
	if s.Date == "" {
		return
	}
	m[name] = joinDateTime(s.Date, s.Time)
}

// NormalizeResult converts one raw classified result.
func NormalizeResult(r ergast.Result) Result {
	out := Result{
		Position: ParseInt(r.Position),
		Driver:   strings.TrimSpace(r.Driver.GivenName + " " + r.Driver.FamilyName),
		Team:     r.Constructor.Name,
		Laps:     ParseInt(r.Laps),
		Time:     r.Time.Time,
		Status:   r.Status,
		Points:   ParseFloat(r.Points),
		Grid:     ParseInt(r.Grid),
	}
	if r.FastestLap.Lap != "" || r.FastestLap.Time.Time != "" {
		out.FastestLap = &FastestLap{
			Rank:     ParseInt(r.FastestLap.Rank),
			Lap:      ParseInt(r.FastestLap.Lap),
			Time:     r.FastestLap.Time.Time,
			AvgSpeed: r.FastestLap.AverageSpeed.Speed,
		}
	}
	return out
}

// NormalizeRaceResults normalizes a race header together with every
// classified result, preserving upstream classification order.
func NormalizeRaceResults(r ergast.Race) RaceResults {
	out := RaceResults{
		Race:    NormalizeRace(r),
		Results: make([]Result, 0, len(r.Results)),
	}
	for _, res := range r.Results {
		out.Results = append(out.Results, NormalizeResult(res))
	}
	return out
}

// NormalizeDriverStandings converts the drivers' championship table,
// preserving upstream rank order exactly. No re-sorting is applied.
func NormalizeDriverStandings(rows []ergast.DriverStanding) []StandingEntry {
	out := make([]StandingEntry, 0, len(rows))
	for _, row := range rows {
		entry := StandingEntry{
			Position: ParseInt(row.Position),
			Driver:   strings.TrimSpace(row.Driver.GivenName + " " + row.Driver.FamilyName),
			Points:   ParseFloat(row.Points),
			Wins:     ParseInt(row.Wins),
		}
		if len(row.Constructors) > 0 {
			// Drivers who switched teams mid-season list every constructor;
			// the final entry is the current one.
			entry.Team = row.Constructors[len(row.Constructors)-1].Name
		}
		out = append(out, entry)
	}
	return out
}

// NormalizeConstructorStandings converts the constructors' championship
// table, preserving upstream rank order exactly.
func NormalizeConstructorStandings(rows []ergast.ConstructorStanding) []StandingEntry {
	out := make([]StandingEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, StandingEntry{
			Position: ParseInt(row.Position),
			Team:     row.Constructor.Name,
			Points:   ParseFloat(row.Points),
			Wins:     ParseInt(row.Wins),
		})
	}
	return out
}

// TopN returns the first n entries of an already-rank-ordered table. The
// upstream order is trusted; shorter tables are returned whole.
func TopN(entries []StandingEntry, n int) []StandingEntry {
	if n < 0 {
		n = 0
	}
	if len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// LastN returns the final n races of a season list in upstream
// (oldest-to-newest) order. Shorter lists are returned whole.
func LastN(races []ergast.Race, n int) []ergast.Race {
	if n < 0 {
		n = 0
	}
	if len(races) <= n {
		return races
	}
	return races[len(races)-n:]
}

// NextRace scans races in upstream (chronological) order and returns the
// first one starting strictly after now. Returns nil when the season has no
// remaining races; that is not an error.
func NextRace(races []ergast.Race, now time.Time) *ergast.Race {
	for i := range races {
		start, ok := RaceStart(races[i])
		if ok && start.After(now) {
			return &races[i]
		}
	}
	return nil
}

// Upcoming filters races to those starting strictly after now, preserving
// the original order.
func Upcoming(races []ergast.Race, now time.Time) []ergast.Race {
	out := make([]ergast.Race, 0, len(races))
	for _, r := range races {
		if start, ok := RaceStart(r); ok && start.After(now) {
			out = append(out, r)
		}
	}
	return out
}

// RaceStart parses a race's scheduled start instant from its upstream date
// and time fields. Races without a start time are taken to begin at midnight
// UTC on their date. Returns ok=false when the date is missing or malformed.
func RaceStart(r ergast.Race) (time.Time, bool) {
	if r.Date == "" {
		return time.Time{}, false
	}
	if r.Time == "" {
		t, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	t, err := time.Parse(time.RFC3339, joinDateTime(r.Date, r.Time))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// joinDateTime combines Ergast's split date and time fields ("2025-03-14",
// "01:30:00Z") into a single RFC 3339 datetime. A missing time yields the
// bare date.
func joinDateTime(date, clock string) string {
	if clock == "" {
		return date
	}
	return fmt.Sprintf("%sT%s", date, clock)
}
