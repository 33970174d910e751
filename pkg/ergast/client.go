// Package ergast provides a read-only client for the Ergast motorsport
// statistics API.
//
// The client issues plain GET requests against the configured base URL and
// decodes responses into the typed boundary records declared in this package.
// Failures are classified into the agent's error taxonomy:
//
//   - non-2xx status → [gerrors.UpstreamError] with the status code
//   - transport failure (DNS, refused connection, timeout) → NETWORK_ERROR
//
// There are no retries, no backoff, and no response caching: every dispatch
// is an independent, stateless computation over freshly fetched data. An
// empty upstream table is not an error; callers decide whether it means
// "resource not found".
//
// All methods are safe for concurrent use by multiple goroutines.
package ergast

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	gerrors "github.com/gridfare/gridfare/pkg/errors"
	"github.com/gridfare/gridfare/pkg/observability"
)

// DefaultBaseURL is the public Ergast-compatible API mirror.
const DefaultBaseURL = "https://api.jolpi.ca/ergast/f1"

const httpTimeout = 10 * time.Second

// Client provides access to the Ergast API.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates an Ergast client for the given base URL. An empty baseURL
// selects [DefaultBaseURL]. Pass nil for hc to use a client with a standard
// request timeout.
func NewClient(baseURL string, hc *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if hc == nil {
		hc = &http.Client{Timeout: httpTimeout}
	}
	return &Client{http: hc, baseURL: baseURL}
}

// BaseURL returns the configured upstream base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// DriverStandings fetches the drivers' championship table for a season.
// The season may be a 4-digit year or "current". The returned slice preserves
// upstream rank order and is nil when the season has no standings yet.
func (c *Client) DriverStandings(ctx context.Context, season string) ([]DriverStanding, error) {
	var env Envelope
	if err := c.FetchJSON(ctx, fmt.Sprintf("/%s/driverStandings.json", season), &env); err != nil {
		return nil, fmt.Errorf("driver standings: %w", err)
	}
	lists := env.MRData.StandingsTable.StandingsLists
	if len(lists) == 0 {
		return nil, nil
	}
	return lists[0].DriverStandings, nil
}

// ConstructorStandings fetches the constructors' championship table for a
// season. The returned slice preserves upstream rank order and is nil when
// the season has no standings yet.
func (c *Client) ConstructorStandings(ctx context.Context, season string) ([]ConstructorStanding, error) {
	var env Envelope
	if err := c.FetchJSON(ctx, fmt.Sprintf("/%s/constructorStandings.json", season), &env); err != nil {
		return nil, fmt.Errorf("constructor standings: %w", err)
	}
	lists := env.MRData.StandingsTable.StandingsLists
	if len(lists) == 0 {
		return nil, nil
	}
	return lists[0].ConstructorStandings, nil
}

// Schedule fetches the race calendar for a season in upstream (chronological)
// order. The returned slice is nil when the season has no races.
func (c *Client) Schedule(ctx context.Context, season string) ([]Race, error) {
	var env Envelope
	if err := c.FetchJSON(ctx, fmt.Sprintf("/%s.json", season), &env); err != nil {
		return nil, fmt.Errorf("schedule: %w", err)
	}
	return env.MRData.RaceTable.Races, nil
}

// Driver looks up a driver profile by Ergast driver id. Returns nil (and no
// error) when the id is unknown upstream.
func (c *Client) Driver(ctx context.Context, driverID string) (*Driver, error) {
	var env Envelope
	if err := c.FetchJSON(ctx, fmt.Sprintf("/drivers/%s.json", driverID), &env); err != nil {
		return nil, fmt.Errorf("driver %s: %w", driverID, err)
	}
	drivers := env.MRData.DriverTable.Drivers
	if len(drivers) == 0 {
		return nil, nil
	}
	return &drivers[0], nil
}

// DriverResults fetches a driver's race results for a season, one Race per
// entered round in upstream (oldest-to-newest) order. The slice is nil when
// the driver has no results in the season.
func (c *Client) DriverResults(ctx context.Context, season, driverID string) ([]Race, error) {
	var env Envelope
	if err := c.FetchJSON(ctx, fmt.Sprintf("/%s/drivers/%s/results.json", season, driverID), &env); err != nil {
		return nil, fmt.Errorf("driver results %s: %w", driverID, err)
	}
	return env.MRData.RaceTable.Races, nil
}

// RaceResults fetches the classified results of one race. The round may be a
// round number or "last". Returns nil (and no error) when the race has no
// results yet.
func (c *Client) RaceResults(ctx context.Context, season, round string) (*Race, error) {
	var env Envelope
	if err := c.FetchJSON(ctx, fmt.Sprintf("/%s/%s/results.json", season, round), &env); err != nil {
		return nil, fmt.Errorf("race results %s/%s: %w", season, round, err)
	}
	races := env.MRData.RaceTable.Races
	if len(races) == 0 {
		return nil, nil
	}
	return &races[0], nil
}

// FetchJSON performs a GET against base+path and decodes the response body
// into v. A single failed attempt fails the entire call.
func (c *Client) FetchJSON(ctx context.Context, path string, v any) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return gerrors.Wrap(gerrors.ErrCodeInternal, err, "build request for %s", url)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	observability.Upstream().OnFetchStart(ctx, path)

	resp, err := c.http.Do(req)
	if err != nil {
		werr := gerrors.Wrap(gerrors.ErrCodeNetwork, err, "fetch %s", url)
		observability.Upstream().OnFetchComplete(ctx, path, 0, time.Since(start), werr)
		return werr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		uerr := &gerrors.UpstreamError{StatusCode: resp.StatusCode, URL: url}
		observability.Upstream().OnFetchComplete(ctx, path, resp.StatusCode, time.Since(start), uerr)
		return uerr
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		derr := gerrors.Wrap(gerrors.ErrCodeNetwork, err, "decode response from %s", url)
		observability.Upstream().OnFetchComplete(ctx, path, resp.StatusCode, time.Since(start), derr)
		return derr
	}

	observability.Upstream().OnFetchComplete(ctx, path, resp.StatusCode, time.Since(start), nil)
	return nil
}
