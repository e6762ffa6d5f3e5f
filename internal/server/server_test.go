package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/benorrin/uptime-checker/internal/model"
	"github.com/benorrin/uptime-checker/internal/store"
)

// testLogger returns a logger that discards all output for clean test output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeStatus(t *testing.T, body io.Reader) statusResponse {
	t.Helper()
	var resp statusResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestHealthz(t *testing.T) {
	srv := NewServer(store.NewMemoryStore(), ":0", nil, testLogger())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("body = %q, want ok", rec.Body.String())
	}
}

func TestStatus_BeforeFirstTick(t *testing.T) {
	srv := NewServer(store.NewMemoryStore(), ":0", nil, testLogger())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeStatus(t, rec.Body)
	if resp.TickID != "" || resp.CheckedAt != nil || len(resp.Results) != 0 {
		t.Errorf("response = %+v, want empty", resp)
	}
}

func TestStatus_LatestTick(t *testing.T) {
	st := store.NewMemoryStore()
	checkedAt := time.Unix(1700000000, 0).UTC()
	st.Update(store.Snapshot{
		TickID:    "tick-42",
		CheckedAt: checkedAt,
		Results: []model.CheckResult{
			{URL: "https://a.example.com", Status: model.StatusOnline, HTTPStatusCode: 200, LastPingTime: 1700000000},
			{URL: "https://b.example.com", Status: model.StatusOffline, HTTPStatusCode: 0, LastPingTime: 1700000000},
		},
	})

	srv := NewServer(st, ":0", nil, testLogger())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	resp := decodeStatus(t, rec.Body)
	if resp.TickID != "tick-42" {
		t.Errorf("TickID = %q, want tick-42", resp.TickID)
	}
	if resp.CheckedAt == nil || !resp.CheckedAt.Equal(checkedAt) {
		t.Errorf("CheckedAt = %v, want %v", resp.CheckedAt, checkedAt)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(resp.Results))
	}
	if resp.Results[1].Status != model.StatusOffline {
		t.Errorf("Results[1].Status = %q, want Offline", resp.Results[1].Status)
	}
}

func TestStatus_MethodNotAllowed(t *testing.T) {
	srv := NewServer(store.NewMemoryStore(), ":0", nil, testLogger())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/status", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	srv := NewServer(store.NewMemoryStore(), ":0", []string{"https://dash.example.com"}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("Origin", "https://dash.example.com")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://dash.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q, want https://dash.example.com", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q for disallowed origin, want empty", got)
	}
}

func TestServer_StartAndShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := NewServer(store.NewMemoryStore(), "127.0.0.1:0", nil, testLogger())

	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	resp, err := http.Get("http://" + srv.Addr() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	cancel()

	// the listener closes shortly after cancellation
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get("http://" + srv.Addr() + "/healthz")
		if err != nil {
			return
		}
		_ = resp.Body.Close()
		time.Sleep(20 * time.Millisecond)
	}
	t.Error("server still accepting connections after shutdown")
}

func TestServer_StartBindError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := NewServer(store.NewMemoryStore(), "127.0.0.1:0", nil, testLogger())
	if err := first.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	second := NewServer(store.NewMemoryStore(), first.Addr(), nil, testLogger())
	if err := second.Start(ctx); err == nil {
		t.Fatal("Start() expected bind error on used address, got nil")
	}
}
