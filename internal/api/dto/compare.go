package dto

import "time"

type CompareRequest struct {
	DepotID        string   `json:"depot_id"`
	TruckCapacity  int      `json:"truck_capacity"`
	CostPerKm      *float64 `json:"cost_per_km"`
	CostPerTruck   *float64 `json:"cost_per_truck"`
	PrimaryOrderID string   `json:"primary_order_id"`
}

type ShipmentResponse struct {
	OrderID     string   `json:"order_id"`
	WarehouseID string   `json:"warehouse_id"`
	Address     string   `json:"address"`
	Route       []string `json:"route"`
	Distance    float64  `json:"distance"`
	Cost        float64  `json:"cost"`
}

type DirectShipResponse struct {
	Shipments     []ShipmentResponse `json:"shipments"`
	TruckCount    int                `json:"truck_count"`
	TotalDistance float64            `json:"total_distance"`
	TotalCost     float64            `json:"total_cost"`
	Unreachable   []string           `json:"unreachable,omitempty"`
}

type ConsolidatedResponse struct {
	HasRoute    bool     `json:"has_route"`
	Route       []string `json:"route"`
	Distance    float64  `json:"distance"`
	Cost        float64  `json:"cost"`
	Unreachable []string `json:"unreachable,omitempty"`
}

type BatchResponse struct {
	WarehouseID string   `json:"warehouse_id"`
	ItemCount   int      `json:"item_count"`
	Route       []string `json:"route"`
	Distance    float64  `json:"distance"`
	Cost        float64  `json:"cost"`
	Unreachable []string `json:"unreachable,omitempty"`
}

type BatchedResponse struct {
	Batches       []BatchResponse `json:"batches"`
	TruckCount    int             `json:"truck_count"`
	TotalDistance float64         `json:"total_distance"`
	TotalCost     float64         `json:"total_cost"`
}

type FlowLimitResponse struct {
	WarehouseID   string `json:"warehouse_id"`
	DestinationID string `json:"destination_id"`
	MaxFlow       int    `json:"max_flow"`
}

type AdviceResponse struct {
	RecommendedStrategy string   `json:"recommended_strategy"`
	Commentary          string   `json:"commentary"`
	RestockHints        []string `json:"restock_hints,omitempty"`
}

type CompareResponse struct {
	PlanID       string               `json:"plan_id"`
	GeneratedAt  time.Time            `json:"generated_at"`
	ActiveOrders int                  `json:"active_orders"`
	DirectShip   DirectShipResponse   `json:"direct_ship"`
	Consolidated ConsolidatedResponse `json:"consolidated"`
	Batched      BatchedResponse      `json:"warehouse_batched"`
	FlowLimit    *FlowLimitResponse   `json:"flow_limit,omitempty"`
	Advice       *AdviceResponse      `json:"advice,omitempty"`
}
