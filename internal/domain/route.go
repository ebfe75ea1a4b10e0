package domain

import "time"

// A shortest-path result: the exact node walk and its accumulated weight.
type Path struct {
	Nodes    []string
	Distance float64
}

// A constructed multi-phase tour. Path is a valid walk through the graph
// (pass-through nodes included) that starts and ends at the origin.
// Unreachable lists required stops that could not be incorporated.
type Tour struct {
	Path        []string
	Distance    float64
	Unreachable []string
}

// One independent warehouse→customer shipment of the direct-ship strategy.
type Shipment struct {
	OrderID     string
	WarehouseID string
	Address     string
	Path        []string
	Distance    float64
	Cost        float64
}

// Direct-ship plan: every (order, warehouse) group dispatches its own truck.
type DirectShipPlan struct {
	Shipments     []Shipment
	TruckCount    int
	TotalDistance float64
	TotalCost     float64
	Unreachable   []string
}

// Consolidated plan: one truck covers every warehouse and customer in a
// single tour from the depot.
type ConsolidatedPlan struct {
	Tour     Tour
	Cost     float64
	HasRoute bool
}

// One capacity-bounded truck dispatched from a warehouse.
type Batch struct {
	WarehouseID string
	ItemCount   int
	Tour        Tour
	Cost        float64
}

// Warehouse-batched plan: per-warehouse item chunks of at most the truck
// capacity, one tour per chunk.
type BatchedPlan struct {
	Batches       []Batch
	TruckCount    int
	TotalDistance float64
	TotalCost     float64
}

// Standalone network-bottleneck diagnostic, independent of the three
// delivery strategies.
type FlowDiagnostic struct {
	WarehouseID   string
	DestinationID string
	MaxFlow       int
}

// The composed comparison handed to the presentation layer. Built atomically
// per run; never mutated afterwards.
type StrategyComparison struct {
	PlanID       string
	GeneratedAt  time.Time
	ActiveOrders int
	DirectShip   DirectShipPlan
	Consolidated ConsolidatedPlan
	Batched      BatchedPlan
	Flow         *FlowDiagnostic
}
