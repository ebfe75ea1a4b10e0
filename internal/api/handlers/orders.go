package handlers

import (
	"log"
	"net/http"

	"dispatch-strategy-service/internal/api/dto"
	"dispatch-strategy-service/internal/ports"
)

// OrderHandler exposes read-only order retrieval endpoints.
type OrderHandler struct {
	Repo ports.OrderRepository
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	orders, err := h.Repo.ListOrders(r.Context())
	if err != nil {
		log.Printf("list orders failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListOrdersResponse{
		Orders: make([]dto.OrderResponse, 0, len(orders)),
	}
	for _, o := range orders {
		items := make([]dto.LineItemResponse, 0, len(o.Items))
		for _, item := range o.Items {
			items = append(items, dto.LineItemResponse{
				ItemID:      item.ID,
				Name:        item.Name,
				WarehouseID: item.WarehouseID,
			})
		}
		res.Orders = append(res.Orders, dto.OrderResponse{
			OrderID:    o.ID,
			Address:    o.Address,
			TimeWindow: string(o.Window),
			Active:     o.Active(),
			Items:      items,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
