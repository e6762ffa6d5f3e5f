package uptimechecker

import (
	"github.com/benorrin/uptime-checker/internal/model"
	"github.com/benorrin/uptime-checker/internal/poller"
)

// Status represents the reachability of a URL: [StatusOnline] or
// [StatusOffline].
type Status = model.Status

const (
	// StatusOnline indicates the URL answered with a status code in [200,400).
	StatusOnline = model.StatusOnline

	// StatusOffline indicates any other status code or a transport failure.
	StatusOffline = model.StatusOffline
)

// CheckResult holds the outcome of checking a single URL during one tick.
//
// HTTPStatusCode is zero when the request failed before receiving a
// response. LastPingTime is in seconds since the Unix epoch.
type CheckResult = model.CheckResult

// OutputFormat selects the on-disk representation of results.
type OutputFormat = model.OutputFormat

const (
	// FormatCSV appends one CSV row per result.
	FormatCSV = model.FormatCSV

	// FormatJSON appends one JSON object per line per result.
	FormatJSON = model.FormatJSON
)

// ParseOutputFormat parses a case-insensitive format name ("csv" or "json").
func ParseOutputFormat(s string) (OutputFormat, bool) {
	return model.ParseOutputFormat(s)
}

// Batch is the ordered set of results produced by a single tick, together
// with the tick's ID and completion time.
type Batch = poller.Batch

// BatchWriter persists a batch of results. Implementations are called from a
// single goroutine, once per tick.
type BatchWriter interface {
	WriteBatch(batch []CheckResult) error
}
