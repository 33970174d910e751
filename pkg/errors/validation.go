package errors

import (
	"regexp"
	"strconv"
	"unicode"
)

// SeasonCurrent is the literal accepted in place of a 4-digit season year.
const SeasonCurrent = "current"

// RoundLast is the literal accepted in place of a positive round number.
const RoundLast = "last"

// seasonRegex matches a 4-digit championship year.
var seasonRegex = regexp.MustCompile(`^\d{4}$`)

// ValidateSeason validates a season identifier: either a 4-digit year or the
// literal "current".
func ValidateSeason(season string) error {
	if season == "" {
		return New(ErrCodeInvalidSeason, "season cannot be empty")
	}
	if season == SeasonCurrent {
		return nil
	}
	if !seasonRegex.MatchString(season) {
		return New(ErrCodeInvalidSeason, "season must be a 4-digit year or %q: %q", SeasonCurrent, season)
	}
	return nil
}

// ValidateRound validates a round identifier: either a positive integer in
// text form or the literal "last".
func ValidateRound(round string) error {
	if round == "" {
		return New(ErrCodeInvalidRound, "round cannot be empty")
	}
	if round == RoundLast {
		return nil
	}
	n, err := strconv.Atoi(round)
	if err != nil || n <= 0 {
		return New(ErrCodeInvalidRound, "round must be a positive integer or %q: %q", RoundLast, round)
	}
	return nil
}

// driverIDRegex matches Ergast driver identifiers (e.g. "alonso",
// "max_verstappen").
var driverIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateDriverID validates a driver identifier for safety and correctness.
// It rejects identifiers that could be used for path traversal when
// interpolated into upstream request paths.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - Lowercase letters, digits, and underscores only
//   - Maximum length of 64 characters
func ValidateDriverID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDriver, "driver id cannot be empty")
	}

	if len(id) > 64 {
		return New(ErrCodeInvalidDriver, "driver id too long (max 64 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDriver, "driver id contains invalid control characters")
		}
	}

	if !driverIDRegex.MatchString(id) {
		return New(ErrCodeInvalidDriver, "invalid driver id: %q", id)
	}

	return nil
}

// ValidateBaseURL validates an upstream base URL. It ensures the URL has a
// safe scheme (http or https).
func ValidateBaseURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "base URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !hasHTTPScheme(rawURL) {
		return New(ErrCodeInvalidInput, "base URL must use http or https scheme")
	}

	return nil
}

func hasHTTPScheme(s string) bool {
	const http, https = "http://", "https://"
	return (len(s) > len(http) && s[:len(http)] == http) ||
		(len(s) > len(https) && s[:len(https)] == https)
}
