package services

import (
	"errors"
	"fmt"

	"dispatch-strategy-service/internal/domain"
	"dispatch-strategy-service/internal/routing"
)

// distanceOracle is the all-pairs shortest-path table over the node set
// relevant to one tour invocation. It is built once per invocation and then
// answers every greedy comparison, so tour construction never re-runs
// Dijkstra inside its selection loops.
type distanceOracle struct {
	paths map[string]map[string]domain.Path
}

// buildOracle computes shortest paths between every ordered pair of the
// given nodes. Edges are undirected, so each unordered pair is solved once
// and mirrored. Pairs in disjoint components simply have no entry.
func buildOracle(g *domain.Graph, nodeIDs []string) (*distanceOracle, error) {
	uniq := dedupe(nodeIDs)

	o := &distanceOracle{paths: make(map[string]map[string]domain.Path, len(uniq))}
	for _, id := range uniq {
		o.paths[id] = make(map[string]domain.Path, len(uniq)-1)
	}

	for i := 0; i < len(uniq); i++ {
		for j := i + 1; j < len(uniq); j++ {
			from, to := uniq[i], uniq[j]
			p, err := routing.ShortestPath(g, from, to)
			if errors.Is(err, routing.ErrNoPath) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("build oracle: %w", err)
			}
			o.paths[from][to] = p
			o.paths[to][from] = reversePath(p)
		}
	}
	return o, nil
}

// lookup returns the precomputed path between two relevant nodes; ok is
// false when the pair is disconnected (or not part of this oracle).
func (o *distanceOracle) lookup(from, to string) (domain.Path, bool) {
	if from == to {
		return domain.Path{Nodes: []string{from}, Distance: 0}, true
	}
	p, ok := o.paths[from][to]
	return p, ok
}

func reversePath(p domain.Path) domain.Path {
	nodes := make([]string, len(p.Nodes))
	for i, n := range p.Nodes {
		nodes[len(p.Nodes)-1-i] = n
	}
	return domain.Path{Nodes: nodes, Distance: p.Distance}
}

// dedupe drops repeated IDs while preserving first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
