package ergast

// Boundary record types for every Ergast payload shape the agent consumes.
// Ergast serializes every scalar as a string; numeric coercion happens later
// in the racing package, never here.

// Envelope is the top-level MRData wrapper present on every Ergast response.
type Envelope struct {
	MRData MRData `json:"MRData"`
}

// MRData holds the response tables. Only the table matching the requested
// resource is populated; the rest stay zero-valued.
type MRData struct {
	Series         string         `json:"series"`
	Total          string         `json:"total"`
	StandingsTable StandingsTable `json:"StandingsTable"`
	RaceTable      RaceTable      `json:"RaceTable"`
	DriverTable    DriverTable    `json:"DriverTable"`
}

// StandingsTable wraps championship standings for a season.
type StandingsTable struct {
	Season         string          `json:"season"`
	StandingsLists []StandingsList `json:"StandingsLists"`
}

// StandingsList holds one snapshot of the championship tables. Ergast returns
// entries already rank-ordered; order is preserved as-is.
type StandingsList struct {
	Season               string                `json:"season"`
	Round                string                `json:"round"`
	DriverStandings      []DriverStanding      `json:"DriverStandings"`
	ConstructorStandings []ConstructorStanding `json:"ConstructorStandings"`
}

// DriverStanding is one row of the drivers' championship table.
type DriverStanding struct {
	Position     string        `json:"position"`
	Points       string        `json:"points"`
	Wins         string        `json:"wins"`
	Driver       Driver        `json:"Driver"`
	Constructors []Constructor `json:"Constructors"`
}

// ConstructorStanding is one row of the constructors' championship table.
type ConstructorStanding struct {
	Position    string      `json:"position"`
	Points      string      `json:"points"`
	Wins        string      `json:"wins"`
	Constructor Constructor `json:"Constructor"`
}

// RaceTable wraps the race list for a season (schedule or results queries).
type RaceTable struct {
	Season string `json:"season"`
	Round  string `json:"round"`
	Races  []Race `json:"Races"`
}

// Race describes one championship round. Results is populated only for
// results queries; the session fields only for schedule queries.
type Race struct {
	Season   string  `json:"season"`
	Round    string  `json:"round"`
	URL      string  `json:"url"`
	RaceName string  `json:"raceName"`
	Circuit  Circuit `json:"Circuit"`
	Date     string  `json:"date"`
	Time     string  `json:"time"`

	FirstPractice  Session `json:"FirstPractice"`
	SecondPractice Session `json:"SecondPractice"`
	ThirdPractice  Session `json:"ThirdPractice"`
	Qualifying     Session `json:"Qualifying"`
	Sprint         Session `json:"Sprint"`

	Results []Result `json:"Results"`
}

// Session is a dated support session within a race weekend.
type Session struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Circuit identifies the venue of a race.
type Circuit struct {
	CircuitID   string   `json:"circuitId"`
	URL         string   `json:"url"`
	CircuitName string   `json:"circuitName"`
	Location    Location `json:"Location"`
}

// Location is the locality and country of a circuit.
type Location struct {
	Lat      string `json:"lat"`
	Long     string `json:"long"`
	Locality string `json:"locality"`
	Country  string `json:"country"`
}

// Result is one classified finisher of a race.
type Result struct {
	Number       string      `json:"number"`
	Position     string      `json:"position"`
	PositionText string      `json:"positionText"`
	Points       string      `json:"points"`
	Driver       Driver      `json:"Driver"`
	Constructor  Constructor `json:"Constructor"`
	Grid         string      `json:"grid"`
	Laps         string      `json:"laps"`
	Status       string      `json:"status"`
	Time         RaceTime    `json:"Time"`
	FastestLap   FastestLap  `json:"FastestLap"`
}

// RaceTime is the finishing time of a classified result.
type RaceTime struct {
	Millis string `json:"millis"`
	Time   string `json:"time"`
}

// FastestLap describes a driver's fastest lap in a race.
type FastestLap struct {
	Rank         string       `json:"rank"`
	Lap          string       `json:"lap"`
	Time         LapTime      `json:"Time"`
	AverageSpeed AverageSpeed `json:"AverageSpeed"`
}

// LapTime is a single lap time in "M:SS.mmm" form.
type LapTime struct {
	Time string `json:"time"`
}

// AverageSpeed is the mean speed over the fastest lap.
type AverageSpeed struct {
	Units string `json:"units"`
	Speed string `json:"speed"`
}

// DriverTable wraps driver lookup responses.
type DriverTable struct {
	DriverID string   `json:"driverId"`
	Drivers  []Driver `json:"Drivers"`
}

// Driver is a driver profile as served by Ergast.
type Driver struct {
	DriverID        string `json:"driverId"`
	PermanentNumber string `json:"permanentNumber"`
	Code            string `json:"code"`
	URL             string `json:"url"`
	GivenName       string `json:"givenName"`
	FamilyName      string `json:"familyName"`
	DateOfBirth     string `json:"dateOfBirth"`
	Nationality     string `json:"nationality"`
}

// Constructor is a team as served by Ergast.
type Constructor struct {
	ConstructorID string `json:"constructorId"`
	URL           string `json:"url"`
	Name          string `json:"name"`
	Nationality   string `json:"nationality"`
}
