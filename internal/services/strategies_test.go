package services

import (
	"context"
	"errors"
	"testing"

	"dispatch-strategy-service/internal/domain"
	"dispatch-strategy-service/internal/routing"
)

// Shared fixture: depot D, warehouse W, customers C1/C2.
//
//	D --10-- W --5-- C1
//	          \--7-- C2 --4-- C1
func strategyGraph(t *testing.T) *domain.Graph {
	t.Helper()
	return mustGraph(t,
		[]string{"D", "W", "C1", "C2"},
		[]domain.Edge{
			{Source: "D", Target: "W", Weight: 10, Capacity: 5},
			{Source: "W", Target: "C1", Weight: 5, Capacity: 8},
			{Source: "W", Target: "C2", Weight: 7, Capacity: 6},
			{Source: "C1", Target: "C2", Weight: 4, Capacity: 3},
		},
	)
}

func itemsFrom(warehouseID string, n int) []domain.LineItem {
	items := make([]domain.LineItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, domain.LineItem{ID: warehouseID + string(rune('a'+i)), WarehouseID: warehouseID})
	}
	return items
}

func compareReq() CompareRequest {
	return CompareRequest{
		DepotID:       "D",
		TruckCapacity: 10,
		Costs:         domain.CostParams{PerKm: 1, PerTruck: 10},
	}
}

func TestComparePlansZeroOrders(t *testing.T) {
	g := strategyGraph(t)

	cmp, err := ComparePlans(context.Background(), g, nil, compareReq())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmp.ActiveOrders != 0 {
		t.Fatalf("active orders = %d, want 0", cmp.ActiveOrders)
	}
	if len(cmp.DirectShip.Shipments) != 0 || cmp.DirectShip.TotalCost != 0 {
		t.Fatalf("direct ship not empty: %+v", cmp.DirectShip)
	}
	if cmp.Consolidated.HasRoute {
		t.Fatal("consolidated plan present with no orders")
	}
	if cmp.Batched.TruckCount != 0 {
		t.Fatalf("batched truck count = %d, want 0", cmp.Batched.TruckCount)
	}
	// No nearest warehouse exists, so the diagnostic is absent, not zero.
	if cmp.Flow != nil {
		t.Fatalf("flow diagnostic = %+v, want nil", cmp.Flow)
	}
	if cmp.PlanID == "" {
		t.Fatal("missing plan id")
	}
}

func TestComparePlansIgnoresItemlessOrders(t *testing.T) {
	g := strategyGraph(t)
	orders := []*domain.Order{
		{ID: "o-empty", Address: "C1", Window: domain.WindowAny},
		{ID: "o-1", Address: "C1", Window: domain.WindowAny, Items: itemsFrom("W", 1)},
	}

	cmp, err := ComparePlans(context.Background(), g, orders, compareReq())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmp.ActiveOrders != 1 {
		t.Fatalf("active orders = %d, want 1", cmp.ActiveOrders)
	}
}

func TestComparePlansDirectShip(t *testing.T) {
	g := strategyGraph(t)
	orders := []*domain.Order{
		{ID: "o-1", Address: "C1", Window: domain.WindowAny, Items: itemsFrom("W", 6)},
		{ID: "o-2", Address: "C2", Window: domain.WindowAny, Items: itemsFrom("W", 6)},
	}

	cmp, err := ComparePlans(context.Background(), g, orders, compareReq())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ds := cmp.DirectShip
	if ds.TruckCount != 2 || len(ds.Shipments) != 2 {
		t.Fatalf("shipments = %+v", ds.Shipments)
	}
	// W->C1 is 5, W->C2 is 7 (direct beats the C1 detour).
	if ds.TotalDistance != 12 {
		t.Fatalf("direct total distance = %v, want 12", ds.TotalDistance)
	}
	if ds.TotalCost != 32 {
		t.Fatalf("direct total cost = %v, want 32", ds.TotalCost)
	}
}

func TestComparePlansConsolidated(t *testing.T) {
	g := strategyGraph(t)
	orders := []*domain.Order{
		{ID: "o-1", Address: "C1", Window: domain.WindowAny, Items: itemsFrom("W", 6)},
		{ID: "o-2", Address: "C2", Window: domain.WindowAny, Items: itemsFrom("W", 6)},
	}

	cmp, err := ComparePlans(context.Background(), g, orders, compareReq())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := cmp.Consolidated
	if !c.HasRoute {
		t.Fatal("consolidated plan missing")
	}
	// One truck: D -> W (pickup) -> C1 -> C2 -> back via W.
	pathEquals(t, c.Tour.Path, "D", "W", "C1", "C2", "W", "D")
	if c.Tour.Distance != 36 {
		t.Fatalf("consolidated distance = %v, want 36", c.Tour.Distance)
	}
	if c.Cost != 46 {
		t.Fatalf("consolidated cost = %v, want 46", c.Cost)
	}
}

// Two orders of 6 items each from one warehouse with truck capacity 10:
// exactly ceil(12/10) = 2 trucks, batch sizes 10 and 2.
func TestComparePlansBatchedTruckCounts(t *testing.T) {
	g := strategyGraph(t)
	orders := []*domain.Order{
		{ID: "o-1", Address: "C1", Window: domain.WindowAny, Items: itemsFrom("W", 6)},
		{ID: "o-2", Address: "C2", Window: domain.WindowAny, Items: itemsFrom("W", 6)},
	}

	cmp, err := ComparePlans(context.Background(), g, orders, compareReq())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b := cmp.Batched
	if b.TruckCount != 2 || len(b.Batches) != 2 {
		t.Fatalf("batches = %+v", b.Batches)
	}
	if b.Batches[0].ItemCount != 10 || b.Batches[1].ItemCount != 2 {
		t.Fatalf("batch sizes = [%d %d], want [10 2]", b.Batches[0].ItemCount, b.Batches[1].ItemCount)
	}

	// First truck serves both customers from the warehouse itself (no
	// pickup phase); second truck only re-serves o-2's address.
	pathEquals(t, b.Batches[0].Tour.Path, "W", "C1", "C2", "W")
	pathEquals(t, b.Batches[1].Tour.Path, "W", "C2", "W")
	if b.TotalDistance != 30 {
		t.Fatalf("batched distance = %v, want 30", b.TotalDistance)
	}
	if b.TotalCost != 50 {
		t.Fatalf("batched cost = %v, want 50", b.TotalCost)
	}
}

func TestComparePlansFlowDiagnostic(t *testing.T) {
	g := strategyGraph(t)
	orders := []*domain.Order{
		{ID: "o-1", Address: "C1", Window: domain.WindowAny, Items: itemsFrom("W", 2)},
	}

	cmp, err := ComparePlans(context.Background(), g, orders, compareReq())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmp.Flow == nil {
		t.Fatal("flow diagnostic missing")
	}
	if cmp.Flow.WarehouseID != "W" || cmp.Flow.DestinationID != "C1" {
		t.Fatalf("flow endpoints = %+v", cmp.Flow)
	}
	// W->C1 carries 8 directly plus 3 through C2.
	if cmp.Flow.MaxFlow != 11 {
		t.Fatalf("max flow = %d, want 11", cmp.Flow.MaxFlow)
	}
}

func TestComparePlansPrimaryOrderSelection(t *testing.T) {
	g := strategyGraph(t)
	orders := []*domain.Order{
		{ID: "o-1", Address: "C1", Window: domain.WindowAny, Items: itemsFrom("W", 1)},
		{ID: "o-2", Address: "C2", Window: domain.WindowAny, Items: itemsFrom("W", 1)},
	}

	req := compareReq()
	req.PrimaryOrderID = "o-2"
	cmp, err := ComparePlans(context.Background(), g, orders, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmp.Flow == nil || cmp.Flow.DestinationID != "C2" {
		t.Fatalf("flow = %+v, want destination C2", cmp.Flow)
	}
}

func TestComparePlansInvalidInput(t *testing.T) {
	g := strategyGraph(t)

	req := compareReq()
	req.DepotID = "ghost"
	if _, err := ComparePlans(context.Background(), g, nil, req); !errors.Is(err, routing.ErrUnknownNode) {
		t.Fatalf("got %v, want ErrUnknownNode", err)
	}

	req = compareReq()
	req.TruckCapacity = 0
	if _, err := ComparePlans(context.Background(), g, nil, req); err == nil {
		t.Fatal("zero truck capacity accepted")
	}
}

func TestSummarize(t *testing.T) {
	g := strategyGraph(t)
	orders := []*domain.Order{
		{ID: "o-1", Address: "C1", Window: domain.WindowAny, Items: itemsFrom("W", 2)},
	}

	cmp, err := ComparePlans(context.Background(), g, orders, compareReq())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	digest := Summarize(cmp)
	if digest.PlanID != cmp.PlanID || digest.ActiveOrders != 1 {
		t.Fatalf("digest header = %+v", digest)
	}
	if len(digest.Strategies) != 3 {
		t.Fatalf("strategies = %+v", digest.Strategies)
	}
	if digest.FlowLimit == nil || digest.FlowLimit.MaxFlow != 11 {
		t.Fatalf("flow digest = %+v", digest.FlowLimit)
	}
}
