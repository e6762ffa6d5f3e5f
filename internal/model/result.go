// Package model defines the check result types shared by the poller, the
// output writers and the status store.
package model

import "strings"

// Status represents the reachability of a URL at the time it was checked.
type Status string

const (
	// StatusOnline indicates the URL answered with a status code in [200,400).
	StatusOnline Status = "Online"

	// StatusOffline indicates the URL answered with any other status code,
	// or could not be reached at all.
	StatusOffline Status = "Offline"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// CheckResult holds the outcome of checking a single URL during one tick.
//
// CheckResult is immutable after creation. The field order matches the
// column order of the CSV output.
type CheckResult struct {
	// URL is the checked URL, exactly as configured.
	URL string `json:"url"`

	// Status is the classified reachability.
	Status Status `json:"status"`

	// HTTPStatusCode is the literal status code received.
	// Zero if the request failed before receiving a response.
	HTTPStatusCode uint16 `json:"http_status_code"`

	// LastPingTime is the check time in seconds since the Unix epoch.
	LastPingTime uint64 `json:"last_ping_time"`
}

// Classify maps an HTTP status code to a [Status].
// Codes in [200,400) are online, everything else is offline.
func Classify(code int) Status {
	if code >= 200 && code < 400 {
		return StatusOnline
	}
	return StatusOffline
}

// OutputFormat selects the on-disk representation of check results.
type OutputFormat string

const (
	FormatCSV  OutputFormat = "csv"
	FormatJSON OutputFormat = "json"
)

// ParseOutputFormat parses a case-insensitive format name.
// The second return value is false for unknown formats.
func ParseOutputFormat(s string) (OutputFormat, bool) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, true
	case FormatJSON:
		return FormatJSON, true
	default:
		return "", false
	}
}
