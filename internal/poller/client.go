package poller

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxDrainBodySize caps how much of a response body is read before closing.
// Draining lets the transport reuse the connection on the next tick.
const maxDrainBodySize = 1 << 20 // 1MB

// connection pooling limits for polling a small set of URLs every tick
const (
	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultMaxConnsPerHost     = 10
	defaultIdleConnTimeout     = 60 * time.Second
)

// Response holds the result of an HTTP request made by [Client].
type Response struct {
	// StatusCode is the HTTP status code (e.g., 200, 404, 500).
	// Zero if the request failed before receiving a response.
	StatusCode int

	// Latency is the total time taken for the request.
	Latency time.Duration

	// Error contains any transport-level error (DNS, connect, timeout).
	// nil indicates a response was received, whatever its status code.
	Error error
}

// Client is an HTTP client wrapper for probing URLs.
//
// Client uses per-request timeouts via context rather than a global timeout.
// Redirects are followed, so the recorded status code is the one of the final
// response.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new probing [Client].
//
// A nil transport selects a pooled [http.Transport]. Tests pass their own
// [http.RoundTripper] to simulate responses and transport failures.
func NewClient(transport http.RoundTripper) *Client {
	if transport == nil {
		transport = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        defaultMaxIdleConns,
			MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
			MaxConnsPerHost:     defaultMaxConnsPerHost,
			IdleConnTimeout:     defaultIdleConnTimeout,
		}
	}
	return &Client{
		// no default timeout - we use per-request timeouts via context
		httpClient: &http.Client{Transport: transport},
	}
}

// Get performs a single GET request and returns a structured [Response].
//
// A timeout of zero or less leaves the request bounded only by ctx.
// Get always returns a Response; transport errors are captured in the Error
// field rather than returned separately.
func (c *Client) Get(ctx context.Context, url string, timeout time.Duration) Response {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Error:   fmt.Errorf("failed to create request: %w", err),
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Error:   fmt.Errorf("request failed: %w", err),
		}
	}
	defer func() { _ = resp.Body.Close() }()

	// the body is not inspected; a short read error does not change the outcome
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBodySize))

	return Response{
		StatusCode: resp.StatusCode,
		Latency:    time.Since(start),
	}
}

// Close closes all idle connections in the client's connection pool.
//
// Safe to call multiple times and on a nil Client. After Close, the client
// remains usable but new connections will be established as needed.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	c.httpClient.CloseIdleConnections()
}
