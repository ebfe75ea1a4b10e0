package routing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"dispatch-strategy-service/internal/domain"
)

// buildGraph wires an undirected test network from (source, target, weight)
// triples; capacities default to 1 unless a fourth value is given.
func buildGraph(t *testing.T, nodes []string, edges [][4]float64, ids map[int]string) *domain.Graph {
	t.Helper()

	g := domain.NewGraph()
	for _, id := range nodes {
		require.NoError(t, g.AddNode(domain.Node{ID: id, Name: id}))
	}
	for _, e := range edges {
		capacity := int(e[3])
		if capacity == 0 {
			capacity = 1
		}
		require.NoError(t, g.AddEdge(domain.Edge{
			Source:   ids[int(e[0])],
			Target:   ids[int(e[1])],
			Weight:   e[2],
			Capacity: capacity,
		}))
	}
	return g
}

func lineGraph(t *testing.T) *domain.Graph {
	// depot --10-- wh --5-- cust, plus a 20-unit direct shortcut depot--cust
	ids := map[int]string{0: "depot", 1: "wh", 2: "cust"}
	return buildGraph(t,
		[]string{"depot", "wh", "cust"},
		[][4]float64{{0, 1, 10, 0}, {1, 2, 5, 0}, {0, 2, 20, 0}},
		ids,
	)
}

func TestShortestPathPrefersCheaperWalk(t *testing.T) {
	g := lineGraph(t)

	p, err := ShortestPath(g, "depot", "cust")
	require.NoError(t, err)
	// 10+5 beats the direct 20 edge; intermediate node appears in the walk.
	require.Equal(t, []string{"depot", "wh", "cust"}, p.Nodes)
	require.InDelta(t, 15, p.Distance, 1e-9)
}

func TestShortestPathSymmetric(t *testing.T) {
	g := lineGraph(t)

	fwd, err := ShortestPath(g, "depot", "cust")
	require.NoError(t, err)
	rev, err := ShortestPath(g, "cust", "depot")
	require.NoError(t, err)
	require.InDelta(t, fwd.Distance, rev.Distance, 1e-9)
}

func TestShortestPathSameNode(t *testing.T) {
	g := lineGraph(t)

	p, err := ShortestPath(g, "wh", "wh")
	require.NoError(t, err)
	require.Equal(t, []string{"wh"}, p.Nodes)
	require.Zero(t, p.Distance)
}

func TestShortestPathUnknownNode(t *testing.T) {
	g := lineGraph(t)

	_, err := ShortestPath(g, "ghost", "cust")
	require.ErrorIs(t, err, ErrUnknownNode)
	_, err = ShortestPath(g, "depot", "ghost")
	require.ErrorIs(t, err, ErrUnknownNode)
}

func TestShortestPathDisconnected(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddNode(domain.Node{ID: "a"}))
	require.NoError(t, g.AddNode(domain.Node{ID: "b"}))
	require.NoError(t, g.AddNode(domain.Node{ID: "island"}))
	require.NoError(t, g.AddEdge(domain.Edge{Source: "a", Target: "b", Weight: 1, Capacity: 1}))

	_, err := ShortestPath(g, "a", "island")
	require.ErrorIs(t, err, ErrNoPath)
	require.False(t, errors.Is(err, ErrUnknownNode))
}

func TestShortestPathDeterministicAcrossCalls(t *testing.T) {
	// Two equal-cost routes: tie-break must pick the same walk every time.
	ids := map[int]string{0: "s", 1: "m1", 2: "m2", 3: "t"}
	g := buildGraph(t,
		[]string{"s", "m1", "m2", "t"},
		[][4]float64{{0, 1, 5, 0}, {0, 2, 5, 0}, {1, 3, 5, 0}, {2, 3, 5, 0}},
		ids,
	)

	first, err := ShortestPath(g, "s", "t")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := ShortestPath(g, "s", "t")
		require.NoError(t, err)
		require.Equal(t, first.Nodes, again.Nodes)
		require.Equal(t, first.Distance, again.Distance)
	}
}
