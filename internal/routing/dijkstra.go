package routing

import (
	"container/heap"
	"fmt"

	"dispatch-strategy-service/internal/domain"
)

// ShortestPath computes the minimum-weight walk between two nodes with
// Dijkstra's algorithm. The result is a pure function of its inputs:
// the priority queue breaks distance ties by node ID, so repeated calls
// return identical paths.
//
// Unknown identifiers fail with ErrUnknownNode; a disconnected pair returns
// ErrNoPath rather than an error condition callers may not expect.
func ShortestPath(g *domain.Graph, startID, endID string) (domain.Path, error) {
	if !g.HasNode(startID) {
		return domain.Path{}, fmt.Errorf("shortest path: start %q: %w", startID, ErrUnknownNode)
	}
	if !g.HasNode(endID) {
		return domain.Path{}, fmt.Errorf("shortest path: end %q: %w", endID, ErrUnknownNode)
	}

	if startID == endID {
		return domain.Path{Nodes: []string{startID}, Distance: 0}, nil
	}

	dist := map[string]float64{startID: 0}
	parent := make(map[string]string)
	visited := make(map[string]bool, g.NodeCount())

	pq := &nodePQ{}
	heap.Init(pq)
	heap.Push(pq, &nodeItem{id: startID, dist: 0})

	for pq.Len() > 0 {
		u := heap.Pop(pq).(*nodeItem)
		if visited[u.id] {
			continue // stale duplicate from lazy decrease-key
		}
		if u.id == endID {
			return domain.Path{Nodes: reconstruct(parent, startID, endID), Distance: u.dist}, nil
		}
		visited[u.id] = true

		for _, arc := range g.Neighbors(u.id) {
			if visited[arc.To] {
				continue
			}
			nd := u.dist + arc.Weight
			if best, ok := dist[arc.To]; !ok || nd < best {
				dist[arc.To] = nd
				parent[arc.To] = u.id
				heap.Push(pq, &nodeItem{id: arc.To, dist: nd})
			}
		}
	}

	return domain.Path{}, fmt.Errorf("shortest path %q -> %q: %w", startID, endID, ErrNoPath)
}

// reconstruct walks predecessor links back to the start.
func reconstruct(parent map[string]string, startID, endID string) []string {
	path := []string{endID}
	for cur := endID; cur != startID; {
		cur = parent[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type nodeItem struct {
	id   string
	dist float64
}

// min-heap keyed by tentative distance, node ID as deterministic tie-break.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].id < pq[j].id
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x any) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]
	return it
}
