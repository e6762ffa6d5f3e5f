// Package store keeps the most recent tick's results in memory.
//
// The store holds exactly one [Snapshot]: each completed tick replaces the
// previous one. Nothing older is retained; the output files are the record.
// The store is read by the status server and written by the poller, so
// implementations must be safe for concurrent access.
package store
