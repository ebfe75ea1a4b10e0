package ports

import (
	"context"

	"dispatch-strategy-service/internal/domain"
)

// Port: a boundary for obtaining road-network snapshots.
//
// Snapshots are immutable; Reload produces a fresh snapshot (e.g. after a
// traffic-simulation event) and swaps it atomically, so computations started
// against an older snapshot are never affected.
type GraphProvider interface {
	// Return the current graph snapshot.
	Snapshot(ctx context.Context) (*domain.Graph, error)

	// Rebuild the graph from its source and make the new snapshot current.
	Reload(ctx context.Context) (*domain.Graph, error)
}
