package uptimechecker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/benorrin/uptime-checker/internal/model"
	"github.com/benorrin/uptime-checker/internal/output"
	"github.com/benorrin/uptime-checker/internal/poller"
	"github.com/benorrin/uptime-checker/internal/server"
	"github.com/benorrin/uptime-checker/internal/store"
)

const (
	defaultInterval       = 60 * time.Second
	defaultRequestTimeout = 30 * time.Second
	defaultMaxConcurrency = 1
)

// Checker is the main orchestrator for the check loop.
//
// Checker is created using [New] with functional options and started with
// [Checker.Start]. Its configuration is immutable once created.
type Checker struct {
	urls           []string
	interval       time.Duration
	writer         BatchWriter
	logger         *slog.Logger
	maxConcurrency int
	requestTimeout time.Duration
	client         *poller.Client
	statusAddr     string
	allowedOrigins []string
	batchCallbacks []func(Batch)
	store          *store.MemoryStore
}

// New creates a new [Checker] with the given options.
//
// At least one URL and an output ([WithOutput] or [WithWriter]) are required.
// Other options have defaults:
//   - Interval: 60 seconds
//   - Request timeout: 30 seconds
//   - Max concurrency: 1 (sequential probes)
func New(opts ...Option) (*Checker, error) {
	cfg := &checkerConfig{
		interval:       defaultInterval,
		requestTimeout: defaultRequestTimeout,
		maxConcurrency: defaultMaxConcurrency,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if len(cfg.urls) == 0 {
		return nil, errors.New("at least one url is required")
	}

	writer := cfg.writer
	if writer == nil {
		if cfg.format == "" {
			return nil, errors.New("an output is required: use WithOutput or WithWriter")
		}
		w, err := output.New(cfg.format, cfg.outputPath, cfg.outputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create writer: %w", err)
		}
		writer = w
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Checker{
		urls:           cfg.urls,
		interval:       cfg.interval,
		writer:         writer,
		logger:         logger,
		maxConcurrency: cfg.maxConcurrency,
		requestTimeout: cfg.requestTimeout,
		client:         poller.NewClient(cfg.transport),
		statusAddr:     cfg.statusAddr,
		allowedOrigins: cfg.allowedOrigins,
		batchCallbacks: cfg.batchCallbacks,
		store:          store.NewMemoryStore(),
	}, nil
}

// URLs returns a copy of the configured URLs in check order.
func (c *Checker) URLs() []string {
	return append([]string(nil), c.urls...)
}

// Interval returns the tick interval.
func (c *Checker) Interval() time.Duration {
	return c.interval
}

// Latest returns the most recent completed batch. The second return value is
// false until the first tick has completed.
func (c *Checker) Latest() (Batch, bool) {
	snap, ok := c.store.Latest()
	if !ok {
		return Batch{}, false
	}
	return Batch{TickID: snap.TickID, CheckedAt: snap.CheckedAt, Results: snap.Results}, true
}

// Start runs the check loop until ctx is cancelled.
//
// Start is a blocking call. The first tick runs at the next aligned wake
// time, not immediately. If a status server is configured it is started
// first and shut down when ctx is cancelled.
//
// Returns nil on graceful shutdown. Returns an error if the status server
// fails to start.
func (c *Checker) Start(ctx context.Context) error {
	c.logger.Info("uptime checker starting",
		"url_count", len(c.urls),
		"interval", c.interval.String(),
		"request_timeout", c.requestTimeout.String(),
	)

	if ctx.Err() != nil {
		return nil
	}

	if c.statusAddr != "" {
		srv := server.NewServer(c.store, c.statusAddr, c.allowedOrigins, c.logger)
		if err := srv.Start(ctx); err != nil {
			return err
		}
	}

	scheduler := poller.NewScheduler(c.urls, c.interval, c.writer, c.logger,
		poller.WithClient(c.client),
		poller.WithMaxConcurrency(c.maxConcurrency),
		poller.WithRequestTimeout(c.requestTimeout),
		poller.WithBatchHandler(c.handleBatch),
	)
	return scheduler.Run(ctx)
}

// handleBatch publishes a completed tick to the store, then to callbacks.
func (c *Checker) handleBatch(b poller.Batch) {
	c.store.Update(store.Snapshot{
		TickID:    b.TickID,
		CheckedAt: b.CheckedAt,
		Results:   b.Results,
	})

	online := 0
	for _, r := range b.Results {
		if r.Status == model.StatusOnline {
			online++
		}
	}
	c.logger.Info("tick completed",
		"tick_id", b.TickID,
		"online", online,
		"offline", len(b.Results)-online,
	)

	for _, cb := range c.batchCallbacks {
		invokeCallbackSafe(cb, copyBatch(b), c.logger)
	}
}

// copyBatch gives each callback its own results slice.
func copyBatch(b Batch) Batch {
	b.Results = append([]CheckResult(nil), b.Results...)
	return b
}

// invokeCallbackSafe calls a batch callback with panic recovery.
// Panics are logged but do not propagate.
func invokeCallbackSafe(cb func(Batch), b Batch, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("batch callback panicked",
				"panic", r,
				"tick_id", b.TickID,
			)
		}
	}()
	cb(b)
}
