package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	uptimechecker "github.com/benorrin/uptime-checker"
	"github.com/benorrin/uptime-checker/config"
	"github.com/benorrin/uptime-checker/internal/logging"
)

const shutdownTimeout = 10 * time.Second

// runCmd starts the check loop.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start checking the configured URLs",
	Long: `Start the uptime checker.

The checker will:
  - Load configuration from the specified YAML file
  - Sleep until the next multiple of ping_interval_seconds
  - Check every URL and append the results to the output file
  - Serve the latest results on status_addr, if configured

It runs until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  uptime-checker run
  uptime-checker run -c /etc/uptime-checker/config.yaml`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("config", "c", defaultConfigPath, "path to config file")
}

func runRun(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := logging.New(logging.Options{
		Dir:     cfg.LogDir,
		Level:   cfg.LogLevel,
		Console: os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer closer.Close()

	logger.Info("config loaded",
		"path", configFile,
		"urls", len(cfg.URLs),
		"output_format", string(cfg.Format()),
		"output_path", cfg.OutputPath(),
		"ping_interval", cfg.Interval().String(),
	)

	checker, err := uptimechecker.New(config.BuildOptions(cfg, logger)...)
	if err != nil {
		return fmt.Errorf("failed to create checker: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return startAndWait(ctx, checker.Start, func() {
		logger.Warn("shutdown timed out",
			"timeout", shutdownTimeout.String(),
			"action", "forcing exit",
		)
	})
}

// startAndWait runs start until it returns, or until ctx is cancelled and the
// shutdown timeout elapses, whichever comes first.
func startAndWait(ctx context.Context, start func(context.Context) error, onTimeout func()) error {
	errChan := make(chan error, 1)
	go func() {
		errChan <- start(ctx)
	}()

	select {
	case err := <-errChan:
		return wrapRunErr(err)
	case <-ctx.Done():
		select {
		case err := <-errChan:
			return wrapRunErr(err)
		case <-time.After(shutdownTimeout):
			onTimeout()
			return nil
		}
	}
}

func wrapRunErr(err error) error {
	if err != nil {
		return fmt.Errorf("checker error: %w", err)
	}
	return nil
}
