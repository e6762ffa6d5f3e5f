package main

import (
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"
)

// mockState tracks the current status code and next change time for a path.
type mockState struct {
	codeIdx      int
	nextChangeAt time.Time
}

// StartMockServer runs a server whose paths cycle through status codes.
// Each path changes code every 10-30 seconds.
// Call this in a goroutine before starting the checker.
func StartMockServer(addr string) {
	var (
		states = make(map[string]*mockState)
		mu     sync.Mutex
	)
	codes := []int{http.StatusOK, http.StatusMovedPermanently, http.StatusNotFound, http.StatusServiceUnavailable}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		key := strings.Trim(r.URL.Path, "/")

		// simulate small latency variance
		time.Sleep(time.Duration(50+rand.Intn(150)) * time.Millisecond)

		mu.Lock()
		state, exists := states[key]
		if !exists {
			state = &mockState{
				nextChangeAt: time.Now().Add(time.Duration(10+rand.Intn(21)) * time.Second),
			}
			states[key] = state
		}

		if time.Now().After(state.nextChangeAt) {
			old := codes[state.codeIdx]
			state.codeIdx = (state.codeIdx + 1) % len(codes)
			state.nextChangeAt = time.Now().Add(time.Duration(10+rand.Intn(21)) * time.Second)
			slog.Info("status change", "path", key, "from", old, "to", codes[state.codeIdx])
		}
		code := codes[state.codeIdx]
		mu.Unlock()

		if code == http.StatusMovedPermanently {
			w.Header().Set("Location", "/moved")
		}
		w.WriteHeader(code)
	})

	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("mock server error", "error", err)
	}
}
