package ports

import (
	"context"

	"dispatch-strategy-service/internal/domain"
)

// Contract for caching shortest-path results between graph reloads.
//
// Shortest paths are pure functions of a snapshot, so cached entries are
// valid until the graph is rebuilt; implementations expire or flush entries
// on their own schedule. A miss is (nil, nil).
type PathCache interface {
	// Return the cached path between two nodes, or nil on a miss.
	Get(ctx context.Context, from, to string) (*domain.Path, error)

	// Store a computed path between two nodes.
	Put(ctx context.Context, from, to string, p domain.Path) error

	// Drop every cached entry (called after a graph reload).
	Flush(ctx context.Context) error
}
