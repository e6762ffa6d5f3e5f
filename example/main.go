package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	uptimechecker "github.com/benorrin/uptime-checker"
)

func main() {
	// start mock server (see mock_server.go)
	go StartMockServer(":9999")
	time.Sleep(100 * time.Millisecond)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	c, err := uptimechecker.New(
		uptimechecker.WithURLs(
			"http://localhost:9999/users",
			"http://localhost:9999/orders",
			"http://localhost:9998/unreachable",
		),
		uptimechecker.WithInterval(5*time.Second),
		uptimechecker.WithOutput(uptimechecker.FormatCSV, "example-status.csv"),
		uptimechecker.WithMaxConcurrency(3),
		uptimechecker.WithRequestTimeout(2*time.Second),
		uptimechecker.WithStatusServer(":8080"),
		uptimechecker.WithLogger(logger),
		uptimechecker.WithBatchCallback(func(b uptimechecker.Batch) {
			fmt.Printf("%s\n", b.CheckedAt.Format(time.TimeOnly))
			for _, r := range b.Results {
				fmt.Printf("  %-36s %-7s %d\n", r.URL, r.Status, r.HTTPStatusCode)
			}
		}),
	)
	if err != nil {
		slog.Error("failed to create checker", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  uptime-checker demo")
	fmt.Println()
	fmt.Println("  Results are appended to example-status.csv every 5s.")
	fmt.Println("  Latest tick: http://localhost:8080/api/status")
	fmt.Println("  Press Ctrl+C to stop.")
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := c.Start(ctx); err != nil {
		slog.Error("checker error", "error", err)
		os.Exit(1)
	}
}
