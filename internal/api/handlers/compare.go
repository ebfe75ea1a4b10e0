package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"dispatch-strategy-service/internal/api/dto"
	"dispatch-strategy-service/internal/domain"
	"dispatch-strategy-service/internal/metrics"
	"dispatch-strategy-service/internal/ports"
	"dispatch-strategy-service/internal/routing"
	"dispatch-strategy-service/internal/services"
)

// CompareHandler runs the full strategy comparison over the current graph
// snapshot and order book.
type CompareHandler struct {
	Graphs  ports.GraphProvider
	Repo    ports.OrderRepository
	Advisor ports.Advisor // optional
	Metrics *metrics.Metrics

	DefaultDepotID  string
	DefaultCapacity int
	DefaultCosts    domain.CostParams
}

// Compare orchestrates the three delivery strategies plus the flow
// diagnostic, then best-effort enriches the result with advisor commentary.
func (h *CompareHandler) Compare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.CompareRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	depotID := strings.TrimSpace(req.DepotID)
	if depotID == "" {
		depotID = h.DefaultDepotID
	}

	capacity := req.TruckCapacity
	if capacity == 0 {
		capacity = h.DefaultCapacity
	}
	if capacity < 1 || capacity > 1000 {
		writeError(w, r, http.StatusBadRequest, "truck_capacity must be between 1 and 1000")
		return
	}

	costs := h.DefaultCosts
	if req.CostPerKm != nil {
		costs.PerKm = *req.CostPerKm
	}
	if req.CostPerTruck != nil {
		costs.PerTruck = *req.CostPerTruck
	}
	if costs.PerKm < 0 || costs.PerTruck < 0 {
		writeError(w, r, http.StatusBadRequest, "cost rates must not be negative")
		return
	}

	g, err := h.Graphs.Snapshot(r.Context())
	if err != nil {
		log.Printf("graph snapshot failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	orders, err := h.Repo.ListOrders(r.Context())
	if err != nil {
		log.Printf("list orders failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	cmp, err := services.ComparePlans(r.Context(), g, orders, services.CompareRequest{
		DepotID:        depotID,
		TruckCapacity:  capacity,
		Costs:          costs,
		PrimaryOrderID: strings.TrimSpace(req.PrimaryOrderID),
	})
	if errors.Is(err, routing.ErrUnknownNode) {
		writeError(w, r, http.StatusBadRequest, "depot is not on the road network")
		return
	}
	if err != nil {
		log.Printf("compare plans failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if h.Metrics != nil {
		h.Metrics.PlanCompares.Inc()
	}

	res := toCompareResponse(cmp)

	// Advisor enrichment never fails the comparison.
	if h.Advisor != nil && cmp.ActiveOrders > 0 {
		advice, err := h.Advisor.Recommend(r.Context(), services.Summarize(cmp))
		if err != nil {
			log.Printf("advisor unavailable: %v", err)
			if h.Metrics != nil {
				h.Metrics.AdvisorFailure.Inc()
			}
		} else {
			res.Advice = &dto.AdviceResponse{
				RecommendedStrategy: advice.RecommendedStrategy,
				Commentary:          advice.Commentary,
				RestockHints:        advice.RestockHints,
			}
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}

func toCompareResponse(cmp *domain.StrategyComparison) dto.CompareResponse {
	res := dto.CompareResponse{
		PlanID:       cmp.PlanID,
		GeneratedAt:  cmp.GeneratedAt,
		ActiveOrders: cmp.ActiveOrders,
		DirectShip: dto.DirectShipResponse{
			Shipments:     make([]dto.ShipmentResponse, 0, len(cmp.DirectShip.Shipments)),
			TruckCount:    cmp.DirectShip.TruckCount,
			TotalDistance: cmp.DirectShip.TotalDistance,
			TotalCost:     cmp.DirectShip.TotalCost,
			Unreachable:   cmp.DirectShip.Unreachable,
		},
		Consolidated: dto.ConsolidatedResponse{
			HasRoute:    cmp.Consolidated.HasRoute,
			Route:       cmp.Consolidated.Tour.Path,
			Distance:    cmp.Consolidated.Tour.Distance,
			Cost:        cmp.Consolidated.Cost,
			Unreachable: cmp.Consolidated.Tour.Unreachable,
		},
		Batched: dto.BatchedResponse{
			Batches:       make([]dto.BatchResponse, 0, len(cmp.Batched.Batches)),
			TruckCount:    cmp.Batched.TruckCount,
			TotalDistance: cmp.Batched.TotalDistance,
			TotalCost:     cmp.Batched.TotalCost,
		},
	}

	for _, s := range cmp.DirectShip.Shipments {
		res.DirectShip.Shipments = append(res.DirectShip.Shipments, dto.ShipmentResponse{
			OrderID:     s.OrderID,
			WarehouseID: s.WarehouseID,
			Address:     s.Address,
			Route:       s.Path,
			Distance:    s.Distance,
			Cost:        s.Cost,
		})
	}
	for _, b := range cmp.Batched.Batches {
		res.Batched.Batches = append(res.Batched.Batches, dto.BatchResponse{
			WarehouseID: b.WarehouseID,
			ItemCount:   b.ItemCount,
			Route:       b.Tour.Path,
			Distance:    b.Tour.Distance,
			Cost:        b.Cost,
			Unreachable: b.Tour.Unreachable,
		})
	}
	if cmp.Flow != nil {
		res.FlowLimit = &dto.FlowLimitResponse{
			WarehouseID:   cmp.Flow.WarehouseID,
			DestinationID: cmp.Flow.DestinationID,
			MaxFlow:       cmp.Flow.MaxFlow,
		}
	}
	return res
}
