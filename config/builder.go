package config

import (
	"log/slog"

	uptimechecker "github.com/benorrin/uptime-checker"
)

// BuildOptions converts parsed configuration into checker options.
//
// The logger is passed through so the CLI can own its lifecycle.
func BuildOptions(cfg *Config, logger *slog.Logger) []uptimechecker.Option {
	opts := []uptimechecker.Option{
		uptimechecker.WithURLs(cfg.URLs...),
		uptimechecker.WithInterval(cfg.Interval()),
		uptimechecker.WithOutput(cfg.Format(), cfg.OutputPath()),
		uptimechecker.WithRequestTimeout(cfg.RequestTimeout.Duration()),
	}

	if cfg.MaxConcurrency > 0 {
		opts = append(opts, uptimechecker.WithMaxConcurrency(cfg.MaxConcurrency))
	}

	if cfg.StatusAddr != "" {
		opts = append(opts, uptimechecker.WithStatusServer(cfg.StatusAddr, cfg.AllowedOrigins...))
	}

	if logger != nil {
		opts = append(opts, uptimechecker.WithLogger(logger))
	}

	return opts
}
