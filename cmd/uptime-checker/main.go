// Package main is the entry point for the uptime-checker CLI.
//
// Usage:
//
//	uptime-checker run -c config.yaml      # Start checking URLs
//	uptime-checker validate -c config.yaml # Validate configuration
//	uptime-checker version                 # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information, set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const defaultConfigPath = "config.yaml"

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "uptime-checker",
	Short: "Periodically check URLs and log their availability",
	Long: `uptime-checker polls a list of URLs on a fixed, clock-aligned interval
and appends one record per URL per tick to a CSV or JSON log file.

Quick start:
  1. Create a config file (config.yaml)
  2. Run: uptime-checker run -c config.yaml

Example config:
  urls:
    - https://example.com
  csv_file_path: status.csv
  json_file_path: status.json
  ping_interval_seconds: 60
  output_format: csv`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}

func main() {
	Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this uptime-checker binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "uptime-checker %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
