package services

import (
	"fmt"

	"dispatch-strategy-service/internal/domain"
	"dispatch-strategy-service/internal/routing"
)

// A customer stop to incorporate into a tour.
type Stop struct {
	Address string
	Window  domain.TimeWindow
}

// BuildTour constructs one continuous multi-phase route using a greedy
// nearest-neighbor heuristic over a precomputed distance oracle.
//
// The algorithm minimizes immediate travel distance at each step. It does
// not attempt global route optimization (e.g., exact TSP); determinism and
// simplicity are preferred over optimality.
//
// Phases: visit every required warehouse (pickup), then morning customers,
// then the merged afternoon/any pool, then return to the starting point.
// Between chosen stops the full shortest-path segment is spliced in, so the
// returned path is a valid walk through the graph, pass-through nodes
// included. Stops that cannot be reached are skipped and reported in
// Tour.Unreachable instead of aborting the tour.
func BuildTour(g *domain.Graph, depotID string, warehouseIDs []string, customers []Stop) (domain.Tour, error) {
	if !g.HasNode(depotID) {
		return domain.Tour{}, fmt.Errorf("build tour: depot %q: %w", depotID, routing.ErrUnknownNode)
	}
	for _, id := range warehouseIDs {
		if !g.HasNode(id) {
			return domain.Tour{}, fmt.Errorf("build tour: warehouse %q: %w", id, routing.ErrUnknownNode)
		}
	}
	for _, c := range customers {
		if !g.HasNode(c.Address) {
			return domain.Tour{}, fmt.Errorf("build tour: customer %q: %w", c.Address, routing.ErrUnknownNode)
		}
	}

	if len(warehouseIDs) == 0 && len(customers) == 0 {
		return domain.Tour{Path: []string{depotID, depotID}, Distance: 0}, nil
	}

	relevant := make([]string, 0, 1+len(warehouseIDs)+len(customers))
	relevant = append(relevant, depotID)
	relevant = append(relevant, warehouseIDs...)
	for _, c := range customers {
		relevant = append(relevant, c.Address)
	}
	oracle, err := buildOracle(g, relevant)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("build tour: %w", err)
	}

	w := walk{
		oracle:  oracle,
		current: depotID,
		path:    []string{depotID},
		visited: map[string]bool{},
	}

	// Phase 1: pickups.
	w.visitNearest(dedupe(warehouseIDs))

	// Phase 2: morning stops strictly first, then the rest as one pool.
	var morning, later []string
	for _, c := range customers {
		if c.Window == domain.WindowMorning {
			morning = append(morning, c.Address)
		} else {
			later = append(later, c.Address)
		}
	}
	w.visitNearest(dedupe(morning))
	w.visitNearest(dedupe(later))

	// Phase 3: return leg.
	if w.current != depotID {
		if p, ok := oracle.lookup(w.current, depotID); ok {
			w.splice(p)
		}
	}

	return domain.Tour{Path: w.path, Distance: w.distance, Unreachable: w.unreachable}, nil
}

// walk accumulates the tour under construction.
type walk struct {
	oracle      *distanceOracle
	current     string
	path        []string
	distance    float64
	visited     map[string]bool
	unreachable []string
}

// visitNearest repeatedly moves to the closest pending stop until the pool
// is drained. Ties keep the first candidate in iteration order. When no
// pending stop is reachable from the current location the remainder is
// recorded as unreachable and the phase ends.
func (w *walk) visitNearest(pool []string) {
	pending := make([]string, 0, len(pool))
	for _, id := range pool {
		if !w.visited[id] && id != w.current {
			pending = append(pending, id)
		}
		w.visited[id] = true
	}

	for len(pending) > 0 {
		best := -1
		var bestPath domain.Path
		for i, id := range pending {
			p, ok := w.oracle.lookup(w.current, id)
			if !ok {
				continue
			}
			if best == -1 || p.Distance < bestPath.Distance {
				best = i
				bestPath = p
			}
		}
		if best == -1 {
			w.unreachable = append(w.unreachable, pending...)
			return
		}

		w.splice(bestPath)
		pending = append(pending[:best], pending[best+1:]...)
	}
}

// splice appends a shortest-path segment, dropping its first node (the
// current location, already on the path).
func (w *walk) splice(p domain.Path) {
	w.path = append(w.path, p.Nodes[1:]...)
	w.distance += p.Distance
	w.current = p.Nodes[len(p.Nodes)-1]
}
