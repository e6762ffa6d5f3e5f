package uptimechecker

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// checkerConfig holds mutable state during Checker construction.
type checkerConfig struct {
	urls           []string
	interval       time.Duration
	format         OutputFormat
	outputPath     string
	writer         BatchWriter
	logger         *slog.Logger
	maxConcurrency int
	requestTimeout time.Duration
	transport      http.RoundTripper
	statusAddr     string
	allowedOrigins []string
	batchCallbacks []func(Batch)
}

// Option is a function that configures a [Checker] during construction.
//
// Options return an error if validation fails.
type Option func(*checkerConfig) error

// WithURLs adds URLs to check, in order.
//
// Can be called multiple times. At least one URL must be configured for
// [New] to succeed. Each URL must be absolute with an http or https scheme.
func WithURLs(urls ...string) Option {
	return func(cfg *checkerConfig) error {
		for _, raw := range urls {
			u, err := url.Parse(raw)
			if err != nil {
				return fmt.Errorf("invalid url %q: %w", raw, err)
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return fmt.Errorf("url %q: scheme must be http or https", raw)
			}
			if u.Host == "" {
				return fmt.Errorf("url %q: host is required", raw)
			}
			cfg.urls = append(cfg.urls, raw)
		}
		return nil
	}
}

// WithInterval sets the time between ticks.
//
// Ticks are aligned to multiples of the interval since the Unix epoch, so
// the interval must be a whole number of seconds. Defaults to 60 seconds.
func WithInterval(d time.Duration) Option {
	return func(cfg *checkerConfig) error {
		if d < time.Second {
			return fmt.Errorf("interval must be at least 1s, got %s", d)
		}
		if d%time.Second != 0 {
			return fmt.Errorf("interval must be a whole number of seconds, got %s", d)
		}
		cfg.interval = d
		return nil
	}
}

// WithOutput selects the output format and the file results are appended to.
//
// Example:
//
//	c, err := uptimechecker.New(
//	    uptimechecker.WithURLs("https://example.com"),
//	    uptimechecker.WithOutput(uptimechecker.FormatJSON, "status.json"),
//	)
func WithOutput(format OutputFormat, path string) Option {
	return func(cfg *checkerConfig) error {
		if format != FormatCSV && format != FormatJSON {
			return fmt.Errorf("unknown output format %q", format)
		}
		if path == "" {
			return errors.New("output path cannot be empty")
		}
		cfg.format = format
		cfg.outputPath = path
		return nil
	}
}

// WithWriter sets a custom [BatchWriter], replacing [WithOutput].
func WithWriter(w BatchWriter) Option {
	return func(cfg *checkerConfig) error {
		if w == nil {
			return errors.New("writer cannot be nil")
		}
		cfg.writer = w
		return nil
	}
}

// WithLogger sets a custom [slog.Logger]. If not specified, [slog.Default]
// is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *checkerConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithMaxConcurrency sets how many URLs are probed in parallel within a tick.
//
// Defaults to 1, which probes URLs one after another. Results are always
// recorded in configuration order.
//
// Returns an error if the value is zero or negative.
func WithMaxConcurrency(n int) Option {
	return func(cfg *checkerConfig) error {
		if n <= 0 {
			return errors.New("max concurrency must be positive")
		}
		cfg.maxConcurrency = n
		return nil
	}
}

// WithRequestTimeout bounds each probe. Defaults to 30 seconds.
// Zero disables the bound, leaving a hung request to block its tick.
func WithRequestTimeout(d time.Duration) Option {
	return func(cfg *checkerConfig) error {
		if d < 0 {
			return fmt.Errorf("request timeout cannot be negative, got %s", d)
		}
		cfg.requestTimeout = d
		return nil
	}
}

// WithHTTPTransport sets the [http.RoundTripper] used for probes.
func WithHTTPTransport(rt http.RoundTripper) Option {
	return func(cfg *checkerConfig) error {
		if rt == nil {
			return errors.New("transport cannot be nil")
		}
		cfg.transport = rt
		return nil
	}
}

// WithStatusServer enables the read-only status API on addr.
//
// allowedOrigins configures CORS; leave it empty to disallow cross-origin
// requests.
func WithStatusServer(addr string, allowedOrigins ...string) Option {
	return func(cfg *checkerConfig) error {
		if addr == "" {
			return errors.New("status server address cannot be empty")
		}
		cfg.statusAddr = addr
		cfg.allowedOrigins = append(cfg.allowedOrigins, allowedOrigins...)
		return nil
	}
}

// WithBatchCallback registers a function to be called after every tick.
//
// The callback receives the tick's [Batch] after it has been handed to the
// writer, whether or not the write succeeded. Callbacks run synchronously on
// the tick goroutine and must not block. Panics are recovered and logged.
//
// Nil callbacks are silently ignored.
func WithBatchCallback(cb func(Batch)) Option {
	return func(cfg *checkerConfig) error {
		if cb == nil {
			return nil
		}
		cfg.batchCallbacks = append(cfg.batchCallbacks, cb)
		return nil
	}
}
