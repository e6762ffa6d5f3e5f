// Package poller runs the wall-clock aligned check loop.
//
// Each tick the poller wakes on an exact multiple of the configured interval
// since the Unix epoch, issues one GET per configured URL, classifies every
// response and hands the resulting batch to a [BatchWriter].
//
// The main components are:
//
//   - [NextWakeTime] and [SleepDuration]: interval alignment
//   - [Client]: HTTP client wrapper with per-request timeouts
//   - [Prober]: probes and classifies a single URL
//   - [Scheduler]: the tick loop
//
// Ticks never overlap. A failing URL, a failed write or a clock jump only
// affects the current tick; the loop keeps running until its context is
// cancelled.
package poller
