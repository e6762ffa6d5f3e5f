// Package uptimechecker periodically checks the reachability of a set of URLs
// and appends every result to a CSV or newline-delimited JSON log.
//
// Checks run on wall-clock aligned ticks: with a 60 second interval every
// tick starts on a whole minute, so latency of one tick never shifts the
// next. Each tick issues one GET per URL and classifies the response:
// status codes in [200,400) are [StatusOnline], anything else, including a
// transport failure (recorded with status code 0), is [StatusOffline].
//
// # Quick Start
//
//	c, err := uptimechecker.New(
//	    uptimechecker.WithURLs("https://example.com", "https://api.example.com/health"),
//	    uptimechecker.WithInterval(30*time.Second),
//	    uptimechecker.WithOutput(uptimechecker.FormatCSV, "status.csv"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	c.Start(ctx) // blocks until ctx is cancelled
//
// # Output
//
// CSV files get a header row when created and one row per result after
// that, with the columns url, status, http_status_code and last_ping_time.
// JSON files hold one object per line with the same field names, which keeps
// them valid however many ticks have been appended.
//
// # Architecture
//
// The internal packages (under internal/) are:
//
//   - internal/poller: interval alignment, probing and the tick loop
//   - internal/output: CSV and JSON batch writers
//   - internal/store: latest tick held in memory
//   - internal/server: optional read-only status API
//   - internal/logging: slog logger with optional rotating file
//
// The config package loads the YAML file used by the uptime-checker binary
// and turns it into [Option] values.
package uptimechecker
