package ports

import "context"

// Structured summary of one comparison run, sent to the external
// text-generation collaborator.
type AdviceRequest struct {
	PlanID       string            `json:"plan_id"`
	ActiveOrders int               `json:"active_orders"`
	Strategies   []StrategyDigest  `json:"strategies"`
	FlowLimit    *FlowDigest       `json:"flow_limit,omitempty"`
	Extra        map[string]string `json:"extra,omitempty"`
}

// One strategy's headline numbers.
type StrategyDigest struct {
	Name          string  `json:"name"`
	TruckCount    int     `json:"truck_count"`
	TotalDistance float64 `json:"total_distance"`
	TotalCost     float64 `json:"total_cost"`
}

// Network bottleneck context for the collaborator.
type FlowDigest struct {
	WarehouseID   string `json:"warehouse_id"`
	DestinationID string `json:"destination_id"`
	MaxFlow       int    `json:"max_flow"`
}

// Structured recommendations returned by the collaborator.
type Advice struct {
	RecommendedStrategy string   `json:"recommended_strategy"`
	Commentary          string   `json:"commentary"`
	RestockHints        []string `json:"restock_hints,omitempty"`
}

// Port: the external text-generation collaborator. Strictly an optional
// enrichment — callers must tolerate any error from it without failing the
// computation that produced the request.
type Advisor interface {
	Recommend(ctx context.Context, req AdviceRequest) (*Advice, error)
}
