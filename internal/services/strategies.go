package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"dispatch-strategy-service/internal/domain"
	"dispatch-strategy-service/internal/platform/obs"
	"dispatch-strategy-service/internal/routing"
)

type CompareRequest struct {
	DepotID        string
	TruckCapacity  int
	Costs          domain.CostParams
	PrimaryOrderID string
}

// ComparePlans runs the three delivery strategies plus the standalone
// max-flow diagnostic over one immutable (graph, orders) snapshot and
// composes the results atomically.
//
// The four computations share no mutable state, so they run concurrently
// and join before anything is returned; a caller never observes a partial
// comparison.
func ComparePlans(
	ctx context.Context,
	g *domain.Graph,
	orders []*domain.Order,
	req CompareRequest,
) (_ *domain.StrategyComparison, err error) {
	defer obs.Time(ctx, "strategies.ComparePlans")(&err)

	if !g.HasNode(req.DepotID) {
		return nil, fmt.Errorf("compare plans: depot %q: %w", req.DepotID, routing.ErrUnknownNode)
	}
	if req.TruckCapacity < 1 {
		return nil, fmt.Errorf("compare plans: truck capacity must be positive, got %d", req.TruckCapacity)
	}

	active := make([]*domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.Active() {
			active = append(active, o)
		}
	}

	cmp := &domain.StrategyComparison{
		PlanID:       uuid.New().String(),
		GeneratedAt:  time.Now().UTC(),
		ActiveOrders: len(active),
	}
	if len(active) == 0 {
		// Nothing to compute: empty zero-cost plans, no flow diagnostic.
		return cmp, nil
	}

	var (
		wg       sync.WaitGroup
		direct   domain.DirectShipPlan
		consol   domain.ConsolidatedPlan
		batched  domain.BatchedPlan
		flow     *domain.FlowDiagnostic
		errParts [4]error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		direct, errParts[0] = buildDirectShip(g, active, req.Costs)
	}()
	go func() {
		defer wg.Done()
		consol, errParts[1] = buildConsolidated(g, active, req.DepotID, req.Costs)
	}()
	go func() {
		defer wg.Done()
		batched, errParts[2] = buildBatched(g, active, req.TruckCapacity, req.Costs)
	}()
	go func() {
		defer wg.Done()
		flow, errParts[3] = buildFlowDiagnostic(g, active, req.PrimaryOrderID)
	}()
	wg.Wait()

	for _, e := range errParts {
		if e != nil {
			return nil, fmt.Errorf("compare plans: %w", e)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("compare plans: %w", err)
	}

	cmp.DirectShip = direct
	cmp.Consolidated = consol
	cmp.Batched = batched
	cmp.Flow = flow
	return cmp, nil
}

// buildDirectShip dispatches one truck per (order, source warehouse) group:
// the fastest and most expensive baseline, with no sharing between orders.
func buildDirectShip(g *domain.Graph, orders []*domain.Order, costs domain.CostParams) (domain.DirectShipPlan, error) {
	var plan domain.DirectShipPlan
	for _, o := range orders {
		for _, wh := range o.Warehouses() {
			p, err := routing.ShortestPath(g, wh, o.Address)
			if errors.Is(err, routing.ErrNoPath) {
				plan.Unreachable = append(plan.Unreachable, wh+"->"+o.Address)
				continue
			}
			if err != nil {
				return domain.DirectShipPlan{}, fmt.Errorf("direct ship: order %q: %w", o.ID, err)
			}

			cost := costs.TripCost(p.Distance, 1)
			plan.Shipments = append(plan.Shipments, domain.Shipment{
				OrderID:     o.ID,
				WarehouseID: wh,
				Address:     o.Address,
				Path:        p.Nodes,
				Distance:    p.Distance,
				Cost:        cost,
			})
			plan.TotalDistance += p.Distance
			plan.TotalCost += cost
		}
	}
	plan.TruckCount = len(plan.Shipments)
	return plan, nil
}

// buildConsolidated sends a single truck from the depot through the union of
// all required warehouses and customer stops.
func buildConsolidated(g *domain.Graph, orders []*domain.Order, depotID string, costs domain.CostParams) (domain.ConsolidatedPlan, error) {
	var warehouses []string
	for _, o := range orders {
		warehouses = append(warehouses, o.Warehouses()...)
	}

	stops := mergeStops(orders)
	tour, err := BuildTour(g, depotID, dedupe(warehouses), stops)
	if err != nil {
		return domain.ConsolidatedPlan{}, fmt.Errorf("consolidated: %w", err)
	}

	return domain.ConsolidatedPlan{
		Tour:     tour,
		Cost:     costs.TripCost(tour.Distance, 1),
		HasRoute: true,
	}, nil
}

// buildBatched groups pending items by source warehouse and splits each
// warehouse's load into consecutive chunks of at most the truck capacity,
// dispatching ceil(N/K) trucks from the warehouse itself (no pickup phase).
func buildBatched(g *domain.Graph, orders []*domain.Order, truckCapacity int, costs domain.CostParams) (domain.BatchedPlan, error) {
	type pending struct {
		order *domain.Order
	}

	byWarehouse := make(map[string][]pending)
	var warehouseOrder []string
	for _, o := range orders {
		for _, it := range o.Items {
			if _, ok := byWarehouse[it.WarehouseID]; !ok {
				warehouseOrder = append(warehouseOrder, it.WarehouseID)
			}
			byWarehouse[it.WarehouseID] = append(byWarehouse[it.WarehouseID], pending{order: o})
		}
	}

	var plan domain.BatchedPlan
	for _, wh := range warehouseOrder {
		items := byWarehouse[wh]
		for start := 0; start < len(items); start += truckCapacity {
			end := start + truckCapacity
			if end > len(items) {
				end = len(items)
			}
			chunk := items[start:end]

			chunkOrders := make([]*domain.Order, 0, len(chunk))
			for _, it := range chunk {
				chunkOrders = append(chunkOrders, it.order)
			}

			tour, err := BuildTour(g, wh, nil, mergeStops(chunkOrders))
			if err != nil {
				return domain.BatchedPlan{}, fmt.Errorf("batched: warehouse %q: %w", wh, err)
			}

			cost := costs.TripCost(tour.Distance, 1)
			plan.Batches = append(plan.Batches, domain.Batch{
				WarehouseID: wh,
				ItemCount:   len(chunk),
				Tour:        tour,
				Cost:        cost,
			})
			plan.TotalDistance += tour.Distance
			plan.TotalCost += cost
		}
	}
	plan.TruckCount = len(plan.Batches)
	return plan, nil
}

// buildFlowDiagnostic reports the max-flow bound between the primary
// order's destination and its nearest source warehouse. Purely informative;
// nil when no candidate warehouse is usable.
func buildFlowDiagnostic(g *domain.Graph, orders []*domain.Order, primaryOrderID string) (*domain.FlowDiagnostic, error) {
	primary := orders[0]
	for _, o := range orders {
		if o.ID == primaryOrderID {
			primary = o
			break
		}
	}

	nearest := ""
	nearestDist := 0.0
	for _, wh := range primary.Warehouses() {
		if wh == primary.Address {
			continue
		}
		p, err := routing.ShortestPath(g, wh, primary.Address)
		if errors.Is(err, routing.ErrNoPath) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("flow diagnostic: order %q: %w", primary.ID, err)
		}
		if nearest == "" || p.Distance < nearestDist {
			nearest = wh
			nearestDist = p.Distance
		}
	}
	if nearest == "" {
		return nil, nil
	}

	flow, err := routing.MaxFlow(g, nearest, primary.Address)
	if err != nil {
		return nil, fmt.Errorf("flow diagnostic: order %q: %w", primary.ID, err)
	}
	return &domain.FlowDiagnostic{
		WarehouseID:   nearest,
		DestinationID: primary.Address,
		MaxFlow:       flow,
	}, nil
}

// mergeStops collapses the orders' destinations into one stop per address,
// keeping the most restrictive requested window (morning over afternoon
// over any) when addresses repeat.
func mergeStops(orders []*domain.Order) []Stop {
	rank := func(w domain.TimeWindow) int {
		switch w {
		case domain.WindowMorning:
			return 2
		case domain.WindowAfternoon:
			return 1
		default:
			return 0
		}
	}

	byAddress := make(map[string]int)
	var stops []Stop
	for _, o := range orders {
		if i, ok := byAddress[o.Address]; ok {
			if rank(o.Window) > rank(stops[i].Window) {
				stops[i].Window = o.Window
			}
			continue
		}
		byAddress[o.Address] = len(stops)
		stops = append(stops, Stop{Address: o.Address, Window: o.Window})
	}
	return stops
}
