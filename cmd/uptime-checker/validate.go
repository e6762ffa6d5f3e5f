package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benorrin/uptime-checker/config"
)

// validateCmd validates a config file without starting the checker.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate an uptime-checker configuration file without starting the checker.

This command parses the YAML, expands environment variables, and validates
all fields. It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  uptime-checker validate -c config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", defaultConfigPath, "path to config file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  URLs:          %d\n", len(cfg.URLs))
	fmt.Fprintf(out, "  Ping interval: %s\n", cfg.Interval())
	fmt.Fprintf(out, "  Output:        %s -> %s\n", cfg.Format(), cfg.OutputPath())
	if cfg.StatusAddr != "" {
		fmt.Fprintf(out, "  Status API:    %s\n", cfg.StatusAddr)
	}

	return nil
}
