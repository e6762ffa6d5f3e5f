package poller

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/benorrin/uptime-checker/internal/model"
)

// Prober checks a single URL with one GET request and classifies the outcome.
//
// There is no retry: a transport failure is recorded as offline with status
// code 0 so every URL gets exactly one result per tick.
type Prober struct {
	client  *Client
	timeout time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// NewProber creates a [Prober]. A nil now uses [time.Now].
func NewProber(client *Client, timeout time.Duration, logger *slog.Logger, now func() time.Time) *Prober {
	if now == nil {
		now = time.Now
	}
	return &Prober{
		client:  client,
		timeout: timeout,
		logger:  logger,
		now:     now,
	}
}

// Probe checks url and returns its [model.CheckResult].
//
// Probe never fails. A panic raised while probing is recovered, logged with a
// correlation ID and reported as offline.
func (p *Prober) Probe(ctx context.Context, url string) (result model.CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			p.logger.Error("probe panic",
				"correlation_id", correlationID,
				"url", url,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			result = model.CheckResult{
				URL:          url,
				Status:       model.StatusOffline,
				LastPingTime: unixSeconds(p.now()),
			}
		}
	}()

	resp := p.client.Get(ctx, url, p.timeout)
	checkedAt := p.now()

	if resp.Error != nil {
		p.logger.Warn("url not accessible",
			"url", url,
			"status", model.StatusOffline,
			"http_status_code", 0,
			"last_ping_time", unixSeconds(checkedAt),
			"latency_ms", resp.Latency.Milliseconds(),
			"error", resp.Error.Error(),
		)
		return model.CheckResult{
			URL:          url,
			Status:       model.StatusOffline,
			LastPingTime: unixSeconds(checkedAt),
		}
	}

	result = model.CheckResult{
		URL:            url,
		Status:         model.Classify(resp.StatusCode),
		HTTPStatusCode: uint16(resp.StatusCode),
		LastPingTime:   unixSeconds(checkedAt),
	}

	logAttrs := []any{
		"url", url,
		"status", result.Status,
		"http_status_code", result.HTTPStatusCode,
		"last_ping_time", result.LastPingTime,
		"latency_ms", resp.Latency.Milliseconds(),
	}
	if result.Status == model.StatusOnline {
		p.logger.Info("url checked", logAttrs...)
	} else {
		p.logger.Warn("url checked", logAttrs...)
	}
	return result
}

// unixSeconds clamps pre-epoch times to zero.
func unixSeconds(t time.Time) uint64 {
	secs := t.Unix()
	if secs < 0 {
		return 0
	}
	return uint64(secs)
}
