package store

import (
	"time"

	"github.com/benorrin/uptime-checker/internal/model"
)

// Snapshot is the storage representation of the latest completed tick.
type Snapshot struct {
	// TickID identifies the tick that produced the results.
	TickID string `json:"tick_id"`

	// CheckedAt is when the tick finished probing.
	CheckedAt time.Time `json:"checked_at"`

	// Results holds one result per configured URL, in configuration order.
	Results []model.CheckResult `json:"results"`
}

// Store defines the interface for publishing and reading the latest tick.
type Store interface {
	// Update replaces the stored snapshot.
	Update(snap Snapshot)

	// Latest returns a copy of the stored snapshot. The second return value
	// is false until the first Update.
	Latest() (Snapshot, bool)
}
