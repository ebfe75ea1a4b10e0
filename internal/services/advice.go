package services

import (
	"dispatch-strategy-service/internal/domain"
	"dispatch-strategy-service/internal/ports"
)

// Summarize flattens a comparison into the structured request shape the
// advisor collaborator consumes.
func Summarize(c *domain.StrategyComparison) ports.AdviceRequest {
	req := ports.AdviceRequest{
		PlanID:       c.PlanID,
		ActiveOrders: c.ActiveOrders,
		Strategies: []ports.StrategyDigest{
			{
				Name:          "direct_ship",
				TruckCount:    c.DirectShip.TruckCount,
				TotalDistance: c.DirectShip.TotalDistance,
				TotalCost:     c.DirectShip.TotalCost,
			},
			{
				Name:          "consolidated",
				TruckCount:    1,
				TotalDistance: c.Consolidated.Tour.Distance,
				TotalCost:     c.Consolidated.Cost,
			},
			{
				Name:          "warehouse_batched",
				TruckCount:    c.Batched.TruckCount,
				TotalDistance: c.Batched.TotalDistance,
				TotalCost:     c.Batched.TotalCost,
			},
		},
	}
	if c.Flow != nil {
		req.FlowLimit = &ports.FlowDigest{
			WarehouseID:   c.Flow.WarehouseID,
			DestinationID: c.Flow.DestinationID,
			MaxFlow:       c.Flow.MaxFlow,
		}
	}
	return req
}
