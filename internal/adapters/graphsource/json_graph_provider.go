package graphsource

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"dispatch-strategy-service/internal/domain"
)

type nodeSpec struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type edgeSpec struct {
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	Weight   float64 `json:"weight"`
	Capacity int     `json:"capacity"`
}

type graphFile struct {
	Nodes []nodeSpec `json:"nodes"`
	Edges []edgeSpec `json:"edges"`
}

// JSONGraphProvider serves immutable road-network snapshots parsed from a
// JSON file. Reload re-parses the file and swaps the snapshot atomically;
// a parse failure leaves the previous snapshot in place.
type JSONGraphProvider struct {
	path string

	mu      sync.RWMutex
	current *domain.Graph
}

func NewJSONGraphProvider(path string) (*JSONGraphProvider, error) {
	p := &JSONGraphProvider{path: path}
	g, err := loadGraph(path)
	if err != nil {
		return nil, err
	}
	p.current = g
	return p, nil
}

func (p *JSONGraphProvider) Snapshot(ctx context.Context) (*domain.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("graph snapshot: %w", err)
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current, nil
}

func (p *JSONGraphProvider) Reload(ctx context.Context) (*domain.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("graph reload: %w", err)
	}

	g, err := loadGraph(p.path)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.current = g
	p.mu.Unlock()
	return g, nil
}

func loadGraph(path string) (*domain.Graph, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load graph: read %q: %w", path, err)
	}

	var file graphFile
	if err := json.Unmarshal(bytes, &file); err != nil {
		return nil, fmt.Errorf("load graph: parse json: %w", err)
	}
	if len(file.Nodes) == 0 {
		return nil, fmt.Errorf("load graph: %q: no nodes", path)
	}

	g := domain.NewGraph()
	for _, n := range file.Nodes {
		if err := g.AddNode(domain.Node{ID: n.ID, Name: n.Name, X: n.X, Y: n.Y}); err != nil {
			return nil, fmt.Errorf("load graph: node %q: %w", n.ID, err)
		}
	}
	for _, e := range file.Edges {
		err := g.AddEdge(domain.Edge{
			Source:   e.Source,
			Target:   e.Target,
			Weight:   e.Weight,
			Capacity: e.Capacity,
		})
		if err != nil {
			return nil, fmt.Errorf("load graph: edge %s-%s: %w", e.Source, e.Target, err)
		}
	}
	return g, nil
}
