package domain

import (
	"errors"
	"testing"
)

func newTestGraph(t *testing.T) *Graph {
	t.Helper()

	g := NewGraph()
	for _, id := range []string{"depot", "wh-north", "cust-a"} {
		if err := g.AddNode(Node{ID: id, Name: id}); err != nil {
			t.Fatalf("add node %q: %v", id, err)
		}
	}
	return g
}

func TestGraphAddEdgeValidation(t *testing.T) {
	g := newTestGraph(t)

	cases := []struct {
		name string
		edge Edge
		want error
	}{
		{"self loop", Edge{Source: "depot", Target: "depot", Weight: 1, Capacity: 1}, ErrSelfLoop},
		{"unknown source", Edge{Source: "ghost", Target: "depot", Weight: 1, Capacity: 1}, ErrMissingNode},
		{"unknown target", Edge{Source: "depot", Target: "ghost", Weight: 1, Capacity: 1}, ErrMissingNode},
		{"negative weight", Edge{Source: "depot", Target: "cust-a", Weight: -2, Capacity: 1}, ErrBadWeight},
		{"zero capacity", Edge{Source: "depot", Target: "cust-a", Weight: 2, Capacity: 0}, ErrBadCapacity},
	}
	for _, tc := range cases {
		if err := g.AddEdge(tc.edge); !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}

	if err := g.AddEdge(Edge{Source: "depot", Target: "wh-north", Weight: 10, Capacity: 5}); err != nil {
		t.Fatalf("valid edge rejected: %v", err)
	}
	// The reverse direction is the same undirected edge.
	if err := g.AddEdge(Edge{Source: "wh-north", Target: "depot", Weight: 4, Capacity: 5}); !errors.Is(err, ErrDuplicateEdge) {
		t.Fatalf("duplicate edge: got %v, want ErrDuplicateEdge", err)
	}
}

func TestGraphUndirectedAdjacency(t *testing.T) {
	g := newTestGraph(t)
	if err := g.AddEdge(Edge{Source: "depot", Target: "wh-north", Weight: 10, Capacity: 5}); err != nil {
		t.Fatalf("add edge: %v", err)
	}

	fwd := g.Neighbors("depot")
	if len(fwd) != 1 || fwd[0].To != "wh-north" || fwd[0].Weight != 10 || fwd[0].Capacity != 5 {
		t.Fatalf("forward arc = %+v", fwd)
	}
	rev := g.Neighbors("wh-north")
	if len(rev) != 1 || rev[0].To != "depot" || rev[0].Weight != 10 {
		t.Fatalf("reverse arc = %+v", rev)
	}
	if g.EdgeCount() != 1 {
		t.Fatalf("edge count = %d, want 1", g.EdgeCount())
	}
}

func TestGraphNodeOrderIsInsertionOrder(t *testing.T) {
	g := newTestGraph(t)
	ids := g.NodeIDs()
	want := []string{"depot", "wh-north", "cust-a"}
	if len(ids) != len(want) {
		t.Fatalf("node ids = %v", ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("node ids = %v, want %v", ids, want)
		}
	}
}

func TestParseTimeWindow(t *testing.T) {
	cases := map[string]TimeWindow{
		"morning":   WindowMorning,
		" Morning ": WindowMorning,
		"afternoon": WindowAfternoon,
		"any":       WindowAny,
		"":          WindowAny,
		"evening":   WindowAny,
	}
	for in, want := range cases {
		if got := ParseTimeWindow(in); got != want {
			t.Fatalf("ParseTimeWindow(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOrderWarehouses(t *testing.T) {
	o := &Order{
		ID:      "o-1",
		Address: "cust-a",
		Items: []LineItem{
			{ID: "i1", WarehouseID: "wh-north"},
			{ID: "i2", WarehouseID: "wh-south"},
			{ID: "i3", WarehouseID: "wh-north"},
		},
	}
	got := o.Warehouses()
	if len(got) != 2 || got[0] != "wh-north" || got[1] != "wh-south" {
		t.Fatalf("warehouses = %v", got)
	}

	var empty *Order
	if empty.Active() {
		t.Fatal("nil order reported active")
	}
	if (&Order{ID: "o-2"}).Active() {
		t.Fatal("itemless order reported active")
	}
}
