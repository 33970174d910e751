package racing

import (
	"testing"
	"time"

	"github.com/gridfare/gridfare/pkg/ergast"
)

func TestParseInt(t *testing.T) {
	if got := ParseInt("18"); got == nil || *got != 18 {
		t.Errorf("ParseInt(\"18\") = %v, want 18", got)
	}
	if got := ParseInt(" 7 "); got == nil || *got != 7 {
		t.Errorf("ParseInt should tolerate surrounding whitespace, got %v", got)
	}
	for _, s := range []string{"", "DNF", "1.5", "-"} {
		if got := ParseInt(s); got != nil {
			t.Errorf("ParseInt(%q) = %d, want nil", s, *got)
		}
	}
}

func TestParseFloat(t *testing.T) {
	if got := ParseFloat("18"); got == nil || *got != 18.0 {
		t.Errorf("ParseFloat(\"18\") = %v, want 18.0", got)
	}
	if got := ParseFloat("25.5"); got == nil || *got != 25.5 {
		t.Errorf("ParseFloat(\"25.5\") = %v, want 25.5", got)
	}
	// Absent means null downstream, never zero.
	if got := ParseFloat(""); got != nil {
		t.Errorf("ParseFloat(\"\") = %v, want nil", *got)
	}
	if got := ParseFloat("n/a"); got != nil {
		t.Errorf("ParseFloat(\"n/a\") = %v, want nil", *got)
	}
}

func TestNormalizeDriver(t *testing.T) {
	d := NormalizeDriver(ergast.Driver{
		DriverID:        "max_verstappen",
		PermanentNumber: "33",
		Code:            "VER",
		GivenName:       "Max",
		FamilyName:      "Verstappen",
		DateOfBirth:     "1997-09-30",
		Nationality:     "Dutch",
	})

	if d.ID != "max_verstappen" {
		t.Errorf("unexpected id: %s", d.ID)
	}
	if d.Name != "Max Verstappen" {
		t.Errorf("unexpected name: %s", d.Name)
	}
	if d.Number == nil || *d.Number != 33 {
		t.Errorf("unexpected number: %v", d.Number)
	}

	// Historic drivers have no permanent number.
	old := NormalizeDriver(ergast.Driver{DriverID: "fangio", GivenName: "Juan", FamilyName: "Fangio"})
	if old.Number != nil {
		t.Errorf("missing number should be nil, got %d", *old.Number)
	}
}

func TestNormalizeRace(t *testing.T) {
	r := NormalizeRace(ergast.Race{
		Season:   "2025",
		Round:    "3",
		RaceName: "Japanese Grand Prix",
		Circuit: ergast.Circuit{
			CircuitName: "Suzuka Circuit",
			Location:    ergast.Location{Locality: "Suzuka", Country: "Japan"},
		},
		Date:       "2025-04-06",
		Time:       "05:00:00Z",
		Qualifying: ergast.Session{Date: "2025-04-05", Time: "06:00:00Z"},
		Sprint:     ergast.Session{},
	})

	if r.Round == nil || *r.Round != 3 {
		t.Errorf("unexpected round: %v", r.Round)
	}
	if r.Location != "Suzuka, Japan" {
		t.Errorf("unexpected location: %s", r.Location)
	}
	if got := r.Sessions["qualifying"]; got != "2025-04-05T06:00:00Z" {
		t.Errorf("unexpected qualifying session: %s", got)
	}
	if _, ok := r.Sessions["sprint"]; ok {
		t.Error("sessions without a date should be omitted")
	}

	// Results payloads carry no session blocks at all.
	bare := NormalizeRace(ergast.Race{Season: "2025", Round: "1", RaceName: "X"})
	if bare.Sessions != nil {
		t.Errorf("expected nil sessions map, got %v", bare.Sessions)
	}
}

func TestNormalizeResult(t *testing.T) {
	res := NormalizeResult(ergast.Result{
		Position: "1",
		Points:   "26",
		Grid:     "2",
		Laps:     "53",
		Status:   "Finished",
		Driver:   ergast.Driver{GivenName: "Charles", FamilyName: "Leclerc"},
		Constructor: ergast.Constructor{
			Name: "Ferrari",
		},
		Time: ergast.RaceTime{Time: "1:30:12.345"},
		FastestLap: ergast.FastestLap{
			Rank: "1",
			Lap:  "40",
			Time: ergast.LapTime{Time: "1:31.002"},
		},
	})

	if res.Driver != "Charles Leclerc" {
		t.Errorf("unexpected driver: %s", res.Driver)
	}
	if res.Points == nil || *res.Points != 26.0 {
		t.Errorf("unexpected points: %v", res.Points)
	}
	if res.FastestLap == nil || res.FastestLap.Time != "1:31.002" {
		t.Errorf("unexpected fastest lap: %+v", res.FastestLap)
	}

	// Retirements: no time, no fastest lap block.
	dnf := NormalizeResult(ergast.Result{
		Position: "18",
		Points:   "0",
		Status:   "Collision",
		Driver:   ergast.Driver{GivenName: "A", FamilyName: "B"},
	})
	if dnf.Points == nil || *dnf.Points != 0.0 {
		t.Errorf("explicit zero points must stay zero, got %v", dnf.Points)
	}
	if dnf.Laps != nil {
		t.Errorf("absent laps must be nil, got %d", *dnf.Laps)
	}
	if dnf.FastestLap != nil {
		t.Errorf("expected no fastest lap, got %+v", dnf.FastestLap)
	}
}

func TestNormalizeDriverStandings_TeamSwitch(t *testing.T) {
	rows := []ergast.DriverStanding{
		{
			Position: "7",
			Points:   "42",
			Wins:     "0",
			Driver:   ergast.Driver{GivenName: "Carlos", FamilyName: "Sainz"},
			Constructors: []ergast.Constructor{
				{Name: "Ferrari"},
				{Name: "Williams"},
			},
		},
	}

	entries := NormalizeDriverStandings(rows)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Team != "Williams" {
		t.Errorf("team should be the last listed constructor, got %s", entries[0].Team)
	}
}

func TestNormalizeConstructorStandings(t *testing.T) {
	entries := NormalizeConstructorStandings([]ergast.ConstructorStanding{
		{Position: "1", Points: "559", Wins: "9", Constructor: ergast.Constructor{Name: "McLaren"}},
		{Position: "2", Points: "260", Wins: "2", Constructor: ergast.Constructor{Name: "Ferrari"}},
	})

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Team != "McLaren" || entries[1].Team != "Ferrari" {
		t.Error("upstream rank order must be preserved")
	}
	if entries[0].Points == nil || *entries[0].Points != 559.0 {
		t.Errorf("unexpected points: %v", entries[0].Points)
	}
	if entries[0].Driver != "" {
		t.Errorf("constructor rows must not name a driver, got %q", entries[0].Driver)
	}
}

func TestTopN(t *testing.T) {
	entries := make([]StandingEntry, 10)
	if got := TopN(entries, 5); len(got) != 5 {
		t.Errorf("TopN(10, 5) = %d entries", len(got))
	}
	if got := TopN(entries, 20); len(got) != 10 {
		t.Errorf("shorter tables should be returned whole, got %d", len(got))
	}
	if got := TopN(entries, 0); len(got) != 0 {
		t.Errorf("TopN(_, 0) = %d entries", len(got))
	}
	if got := TopN(nil, 5); len(got) != 0 {
		t.Errorf("TopN(nil, 5) = %d entries", len(got))
	}
}

func TestLastN(t *testing.T) {
	races := []ergast.Race{{Round: "1"}, {Round: "2"}, {Round: "3"}, {Round: "4"}}

	got := LastN(races, 2)
	if len(got) != 2 || got[0].Round != "3" || got[1].Round != "4" {
		t.Errorf("LastN should keep the tail in original order, got %+v", got)
	}
	if got := LastN(races, 10); len(got) != 4 {
		t.Errorf("shorter lists should be returned whole, got %d", len(got))
	}
}

func TestNextRace(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	races := []ergast.Race{
		{Round: "1", Date: "2025-03-16", Time: "04:00:00Z"},
		{Round: "9", Date: "2025-06-01", Time: "13:00:00Z"},
		{Round: "10", Date: "2025-06-15", Time: "14:00:00Z"},
	}

	next := NextRace(races, now)
	if next == nil || next.Round != "9" {
		t.Fatalf("expected round 9, got %+v", next)
	}

	// Strictly after: a race starting exactly now is not upcoming.
	atStart := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)
	next = NextRace(races, atStart)
	if next == nil || next.Round != "10" {
		t.Errorf("race starting exactly now should be skipped, got %+v", next)
	}

	// Season over: nil, not an error.
	if next := NextRace(races, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)); next != nil {
		t.Errorf("expected nil after the season ends, got %+v", next)
	}
}

func TestUpcoming(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	races := []ergast.Race{
		{Round: "1", Date: "2025-03-16", Time: "04:00:00Z"},
		{Round: "9", Date: "2025-06-08"}, // date only, starts midnight UTC
		{Round: "10", Date: "2025-06-15", Time: "14:00:00Z"},
		{Round: "11", Date: ""}, // malformed, dropped
	}

	got := Upcoming(races, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 upcoming races, got %d", len(got))
	}
	if got[0].Round != "9" || got[1].Round != "10" {
		t.Errorf("upcoming races out of order: %+v", got)
	}
}

func TestRaceStart(t *testing.T) {
	start, ok := RaceStart(ergast.Race{Date: "2025-03-16", Time: "04:00:00Z"})
	if !ok || !start.Equal(time.Date(2025, 3, 16, 4, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start: %v (ok=%v)", start, ok)
	}

	// Date-only races start at midnight UTC.
	start, ok = RaceStart(ergast.Race{Date: "2025-03-16"})
	if !ok || !start.Equal(time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected date-only start: %v (ok=%v)", start, ok)
	}

	if _, ok := RaceStart(ergast.Race{}); ok {
		t.Error("missing date should not parse")
	}
	if _, ok := RaceStart(ergast.Race{Date: "soon"}); ok {
		t.Error("malformed date should not parse")
	}
}
