package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/benorrin/uptime-checker/internal/model"
)

const defaultRequestTimeout = 30 * time.Second

// BatchWriter persists the batch produced by one tick.
type BatchWriter interface {
	WriteBatch(batch []model.CheckResult) error
}

// Batch is the ordered set of results produced by a single tick.
type Batch struct {
	// TickID uniquely identifies the tick in logs and in the status API.
	TickID string

	// CheckedAt is the time the tick finished probing.
	CheckedAt time.Time

	// Results holds one result per configured URL, in configuration order.
	Results []model.CheckResult
}

// Sleeper blocks for d or until ctx is done, returning ctx.Err() in the
// latter case.
type Sleeper func(ctx context.Context, d time.Duration) error

// Option configures a [Scheduler].
type Option func(*Scheduler)

// WithClient sets the HTTP client used for probes.
func WithClient(c *Client) Option {
	return func(s *Scheduler) { s.client = c }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithSleeper replaces the context-aware timer sleep, for tests.
func WithSleeper(sleep Sleeper) Option {
	return func(s *Scheduler) { s.sleep = sleep }
}

// WithMaxConcurrency sets how many URLs are probed in parallel within a tick.
// Values below 2 probe sequentially.
func WithMaxConcurrency(n int) Option {
	return func(s *Scheduler) { s.maxConcurrency = n }
}

// WithRequestTimeout bounds every probe. Zero or less leaves probes unbounded.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Scheduler) { s.requestTimeout = d }
}

// WithBatchHandler registers a function called with every completed batch,
// after the batch has been handed to the writer.
func WithBatchHandler(fn func(Batch)) Option {
	return func(s *Scheduler) { s.onBatch = fn }
}

// Scheduler runs the aligned tick loop.
//
// Scheduler is single-threaded: each tick's sleep, probe and write sequence
// completes before the next wake time is computed.
type Scheduler struct {
	urls           []string
	interval       time.Duration
	writer         BatchWriter
	logger         *slog.Logger
	client         *Client
	prober         *Prober
	now            func() time.Time
	sleep          Sleeper
	maxConcurrency int
	requestTimeout time.Duration
	onBatch        func(Batch)
}

// NewScheduler creates a [Scheduler] probing urls every interval and handing
// each batch to w.
//
// interval is expected to be a positive whole number of seconds; validation
// happens at configuration time.
func NewScheduler(urls []string, interval time.Duration, w BatchWriter, logger *slog.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		urls:           urls,
		interval:       interval,
		writer:         w,
		logger:         logger,
		now:            time.Now,
		sleep:          sleepContext,
		maxConcurrency: 1,
		requestTimeout: defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = NewClient(nil)
	}
	s.prober = NewProber(s.client, s.requestTimeout, logger, s.now)
	return s
}

// Run blocks, executing one tick at every aligned wake time, until ctx is
// cancelled. It returns nil on cancellation.
//
// A wake time that is already in the past when the sleep is computed is
// logged and the tick is skipped.
func (s *Scheduler) Run(ctx context.Context) error {
	defer s.client.Close()

	s.logger.Info("poller started",
		"url_count", len(s.urls),
		"interval", s.interval.String(),
		"max_concurrency", s.maxConcurrency,
	)

	for {
		if ctx.Err() != nil {
			s.logger.Info("poller stopped")
			return nil
		}

		wake := NextWakeTime(s.now(), s.interval)
		d, err := SleepDuration(s.now(), wake)
		if err != nil {
			var rewind *ClockRewindError
			if errors.As(err, &rewind) {
				s.logger.Warn("tick skipped", "reason", "clock rewind", "error", err.Error())
				continue
			}
			return err
		}

		if err := s.sleep(ctx, d); err != nil {
			s.logger.Info("poller stopped")
			return nil
		}

		s.RunTick(ctx)
	}
}

// RunTick probes every URL once and hands the batch to the writer.
//
// A write failure is logged and the batch is lost. If ctx is cancelled while
// probing, the in-flight batch is dropped without being written.
func (s *Scheduler) RunTick(ctx context.Context) Batch {
	tickID := uuid.NewString()
	logger := s.logger.With("tick_id", tickID)

	results := s.probeAll(ctx)
	batch := Batch{
		TickID:    tickID,
		CheckedAt: s.now(),
		Results:   results,
	}

	if ctx.Err() != nil {
		logger.Info("tick interrupted, batch dropped", "results", len(results))
		return batch
	}

	if err := s.writer.WriteBatch(results); err != nil {
		logger.Error("batch write failed", "results", len(results), "error", err.Error())
	} else {
		logger.Debug("batch written", "results", len(results))
	}

	if s.onBatch != nil {
		s.onBatch(batch)
	}
	return batch
}

// probeAll returns one result per URL in configuration order.
func (s *Scheduler) probeAll(ctx context.Context) []model.CheckResult {
	results := make([]model.CheckResult, len(s.urls))

	if s.maxConcurrency < 2 {
		for i, url := range s.urls {
			results[i] = s.prober.Probe(ctx, url)
		}
		return results
	}

	jobs := make(chan int, len(s.urls))
	for i := range s.urls {
		jobs <- i
	}
	close(jobs)

	workers := s.maxConcurrency
	if workers > len(s.urls) {
		workers = len(s.urls)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				// each worker owns distinct indices, no locking needed
				results[i] = s.prober.Probe(ctx, s.urls[i])
			}
		}()
	}
	wg.Wait()

	return results
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
