// Package config provides YAML configuration parsing for the uptime checker.
//
// This package enables running the checker as a standalone binary with a
// configuration file, as an alternative to the programmatic API.
//
// Example configuration:
//
//	urls:
//	  - https://example.com
//	  - ${STATUS_URL:-https://status.example.com}
//	csv_file_path: status.csv
//	json_file_path: status.json
//	ping_interval_seconds: 60
//	output_format: csv
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/benorrin/uptime-checker/internal/logging"
	"github.com/benorrin/uptime-checker/internal/model"
)

const defaultRequestTimeout = 30 * time.Second

// Config is the root configuration structure.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// URLs are checked in order on every tick.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	URLs []string `yaml:"urls"`

	// URLsToCheck is an alias for URLs. Entries are appended after URLs.
	URLsToCheck []string `yaml:"urls_to_check"`

	// CSVFilePath is the file CSV results are appended to.
	CSVFilePath string `yaml:"csv_file_path"`

	// JSONFilePath is the file NDJSON results are appended to.
	JSONFilePath string `yaml:"json_file_path"`

	// PingIntervalSeconds is the tick interval. Ticks are aligned to
	// multiples of it since the Unix epoch.
	PingIntervalSeconds int `yaml:"ping_interval_seconds"`

	// OutputFormat is "csv" or "json", case-insensitive.
	OutputFormat string `yaml:"output_format"`

	// RequestTimeout bounds each probe. Defaults to 30s.
	RequestTimeout Duration `yaml:"request_timeout"`

	// MaxConcurrency is the number of URLs probed in parallel per tick.
	// Zero or one probes sequentially.
	MaxConcurrency int `yaml:"max_concurrency"`

	// LogDir enables a rotating log file in this directory.
	LogDir string `yaml:"log_dir"`

	// LogLevel is debug, info, warn or error. Defaults to info.
	LogLevel string `yaml:"log_level"`

	// StatusAddr enables the status API on this address, e.g. ":8080".
	StatusAddr string `yaml:"status_addr"`

	// AllowedOrigins configures CORS for the status API.
	AllowedOrigins []string `yaml:"allowed_origins"`

	format model.OutputFormat
}

// Format returns the parsed output format. Only valid after [Parse].
func (c *Config) Format() model.OutputFormat {
	return c.format
}

// OutputPath returns the file path for the selected output format.
func (c *Config) OutputPath() string {
	if c.format == model.FormatJSON {
		return c.JSONFilePath
	}
	return c.CSVFilePath
}

// Interval returns the ping interval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.PingIntervalSeconds) * time.Second
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Returns an error if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in URLs and file paths.
// Defaults are applied for RequestTimeout (30s) and LogLevel (info).
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = Duration(defaultRequestTimeout)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	c.URLs = append(c.URLs, c.URLsToCheck...)
	c.URLsToCheck = nil

	if len(c.URLs) == 0 {
		return errors.New("at least one url must be defined")
	}

	for i, raw := range c.URLs {
		expanded, err := expandEnvVars(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("urls[%d]: %w", i, err)
		}
		if expanded == "" {
			return fmt.Errorf("urls[%d]: url is empty", i)
		}

		parsedURL, err := url.Parse(expanded)
		if err != nil {
			return fmt.Errorf("urls[%d]: invalid url: %w", i, err)
		}
		if parsedURL.Scheme == "" {
			return fmt.Errorf("urls[%d] (%s): url must have a scheme (http:// or https://)", i, expanded)
		}
		if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			return fmt.Errorf("urls[%d] (%s): url scheme must be http or https, got %q", i, expanded, parsedURL.Scheme)
		}
		if parsedURL.Host == "" {
			return fmt.Errorf("urls[%d] (%s): url must have a host", i, expanded)
		}
		c.URLs[i] = expanded
	}

	if c.PingIntervalSeconds <= 0 {
		return fmt.Errorf("ping_interval_seconds must be positive, got %d", c.PingIntervalSeconds)
	}

	format, ok := model.ParseOutputFormat(c.OutputFormat)
	if !ok {
		return fmt.Errorf("output_format must be csv or json, got %q", c.OutputFormat)
	}
	c.format = format

	for _, p := range []*string{&c.CSVFilePath, &c.JSONFilePath, &c.LogDir} {
		expanded, err := expandEnvVars(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}

	switch format {
	case model.FormatCSV:
		if c.CSVFilePath == "" {
			return errors.New("csv_file_path is required when output_format is csv")
		}
	case model.FormatJSON:
		if c.JSONFilePath == "" {
			return errors.New("json_file_path is required when output_format is json")
		}
	}

	if c.RequestTimeout.Duration() < 0 {
		return fmt.Errorf("request_timeout cannot be negative, got %s", c.RequestTimeout.Duration())
	}

	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency cannot be negative, got %d", c.MaxConcurrency)
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	return nil
}
