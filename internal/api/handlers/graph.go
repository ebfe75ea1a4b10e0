package handlers

import (
	"log"
	"net/http"

	"dispatch-strategy-service/internal/api/dto"
	"dispatch-strategy-service/internal/metrics"
	"dispatch-strategy-service/internal/ports"
)

// GraphHandler exposes the road network: a read-only summary and an
// operator-triggered reload.
type GraphHandler struct {
	Graphs  ports.GraphProvider
	Cache   ports.PathCache // optional; flushed after a reload
	Metrics *metrics.Metrics
}

func (h *GraphHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	g, err := h.Graphs.Snapshot(r.Context())
	if err != nil {
		log.Printf("graph snapshot failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.GraphResponse{
		NodeCount: g.NodeCount(),
		EdgeCount: g.EdgeCount(),
		Nodes:     make([]dto.GraphNodeResponse, 0, g.NodeCount()),
	}
	for _, n := range g.Nodes() {
		res.Nodes = append(res.Nodes, dto.GraphNodeResponse{
			ID:   n.ID,
			Name: n.Name,
			X:    n.X,
			Y:    n.Y,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Reload re-parses the graph source and swaps the snapshot. Cached paths
// are computed against the old network, so the cache is flushed afterwards.
func (h *GraphHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	g, err := h.Graphs.Reload(r.Context())
	if err != nil {
		log.Printf("graph reload failed: %v", err)
		writeError(w, r, http.StatusUnprocessableEntity, "graph source rejected; previous snapshot kept")
		return
	}
	if h.Metrics != nil {
		h.Metrics.GraphReloads.Inc()
	}

	if h.Cache != nil {
		if err := h.Cache.Flush(r.Context()); err != nil {
			log.Printf("path cache flush failed: %v", err)
		}
	}

	writeJSON(w, r, http.StatusOK, map[string]int{
		"node_count": g.NodeCount(),
		"edge_count": g.EdgeCount(),
	})
}
