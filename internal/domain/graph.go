package domain

import (
	"errors"
	"fmt"
)

// A single location in the road network. Coordinates are used for
// visualization only and never enter routing distance.
type Node struct {
	ID   string
	Name string
	X    float64
	Y    float64
}

// Undirected weighted edge between two nodes. Weight is traversal cost
// (identical both ways); Capacity is packages/hour and independent of weight.
type Edge struct {
	Source   string
	Target   string
	Weight   float64
	Capacity int
}

// One direction of an undirected edge, as stored in the adjacency list.
type Arc struct {
	To       string
	Weight   float64
	Capacity int
}

var (
	ErrDuplicateNode = errors.New("graph: duplicate node id")
	ErrSelfLoop      = errors.New("graph: self-loop edge")
	ErrDuplicateEdge = errors.New("graph: duplicate edge")
	ErrBadWeight     = errors.New("graph: edge weight must be non-negative")
	ErrBadCapacity   = errors.New("graph: edge capacity must be positive")
	ErrMissingNode   = errors.New("graph: edge references unknown node")
)

// Graph is a simple undirected weighted road network with per-edge
// capacities. It is built once and treated as an immutable snapshot for the
// duration of an optimization run; node and adjacency iteration follow
// insertion order so algorithms stay deterministic.
type Graph struct {
	nodes map[string]Node
	order []string
	adj   map[string][]Arc
	edges int
}

func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]Node),
		adj:   make(map[string][]Arc),
	}
}

func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return fmt.Errorf("add node: %w: empty id", ErrMissingNode)
	}
	if _, ok := g.nodes[n.ID]; ok {
		return fmt.Errorf("add node %q: %w", n.ID, ErrDuplicateNode)
	}
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
	return nil
}

func (g *Graph) AddEdge(e Edge) error {
	if e.Source == e.Target {
		return fmt.Errorf("add edge %q-%q: %w", e.Source, e.Target, ErrSelfLoop)
	}
	if _, ok := g.nodes[e.Source]; !ok {
		return fmt.Errorf("add edge: source %q: %w", e.Source, ErrMissingNode)
	}
	if _, ok := g.nodes[e.Target]; !ok {
		return fmt.Errorf("add edge: target %q: %w", e.Target, ErrMissingNode)
	}
	if e.Weight < 0 {
		return fmt.Errorf("add edge %q-%q: %w", e.Source, e.Target, ErrBadWeight)
	}
	if e.Capacity < 1 {
		return fmt.Errorf("add edge %q-%q: %w", e.Source, e.Target, ErrBadCapacity)
	}
	for _, a := range g.adj[e.Source] {
		if a.To == e.Target {
			return fmt.Errorf("add edge %q-%q: %w", e.Source, e.Target, ErrDuplicateEdge)
		}
	}

	g.adj[e.Source] = append(g.adj[e.Source], Arc{To: e.Target, Weight: e.Weight, Capacity: e.Capacity})
	g.adj[e.Target] = append(g.adj[e.Target], Arc{To: e.Source, Weight: e.Weight, Capacity: e.Capacity})
	g.edges++
	return nil
}

func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// NodeIDs returns all node identifiers in insertion order.
func (g *Graph) NodeIDs() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Neighbors returns the outgoing arcs of a node in insertion order.
// The returned slice must not be modified.
func (g *Graph) Neighbors(id string) []Arc {
	return g.adj[id]
}

func (g *Graph) NodeCount() int { return len(g.order) }

func (g *Graph) EdgeCount() int { return g.edges }
