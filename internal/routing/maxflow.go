package routing

import (
	"fmt"

	"dispatch-strategy-service/internal/domain"
)

// MaxFlow computes the maximum feasible flow between source and sink with
// the Edmonds–Karp algorithm (BFS for shortest augmenting paths).
//
// Each undirected edge's capacity is usable in both directions
// independently: cap[u][v] and cap[v][u] both start at the edge capacity and
// are not coupled. Returns 0 when sink is unreachable.
//
// Complexity: O(V·E²), fine for the tens-of-nodes graphs this serves.
func MaxFlow(g *domain.Graph, sourceID, sinkID string) (int, error) {
	if !g.HasNode(sourceID) {
		return 0, fmt.Errorf("max flow: source %q: %w", sourceID, ErrUnknownNode)
	}
	if !g.HasNode(sinkID) {
		return 0, fmt.Errorf("max flow: sink %q: %w", sinkID, ErrUnknownNode)
	}
	if sourceID == sinkID {
		return 0, fmt.Errorf("max flow: source and sink are both %q", sourceID)
	}

	residual := make(map[string]map[string]int, g.NodeCount())
	for _, id := range g.NodeIDs() {
		arcs := g.Neighbors(id)
		row := make(map[string]int, len(arcs))
		for _, a := range arcs {
			row[a.To] = a.Capacity
		}
		residual[id] = row
	}

	total := 0
	for {
		path, bottleneck := augmentingPath(g, residual, sourceID, sinkID)
		if len(path) == 0 {
			break
		}
		total += bottleneck
		for i := 0; i < len(path)-1; i++ {
			u, v := path[i], path[i+1]
			residual[u][v] -= bottleneck
			residual[v][u] += bottleneck
		}
	}

	return total, nil
}

// augmentingPath finds the fewest-edges source→sink path with strictly
// positive residual capacity and its bottleneck. Neighbor expansion follows
// adjacency insertion order plus any reverse-flow arcs, keeping the search
// deterministic.
func augmentingPath(g *domain.Graph, residual map[string]map[string]int, sourceID, sinkID string) ([]string, int) {
	parent := map[string]string{sourceID: sourceID}
	queue := []string{sourceID}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		for _, v := range residualNeighbors(g, residual, u) {
			if _, seen := parent[v]; seen {
				continue
			}
			parent[v] = u
			if v == sinkID {
				return tracePath(parent, residual, sourceID, sinkID)
			}
			queue = append(queue, v)
		}
	}
	return nil, 0
}

// residualNeighbors lists nodes reachable from u through positive residual
// capacity: graph-adjacent nodes first (insertion order), then nodes that
// only gained reverse capacity from earlier augmentations (node order).
func residualNeighbors(g *domain.Graph, residual map[string]map[string]int, u string) []string {
	row := residual[u]
	out := make([]string, 0, len(row))
	listed := make(map[string]bool, len(row))
	for _, a := range g.Neighbors(u) {
		if row[a.To] > 0 {
			out = append(out, a.To)
			listed[a.To] = true
		}
	}
	for _, id := range g.NodeIDs() {
		if !listed[id] && row[id] > 0 {
			out = append(out, id)
		}
	}
	return out
}

func tracePath(parent map[string]string, residual map[string]map[string]int, sourceID, sinkID string) ([]string, int) {
	path := []string{sinkID}
	for cur := sinkID; cur != sourceID; {
		cur = parent[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	bottleneck := 0
	for i := 0; i < len(path)-1; i++ {
		c := residual[path[i]][path[i+1]]
		if bottleneck == 0 || c < bottleneck {
			bottleneck = c
		}
	}
	return path, bottleneck
}
