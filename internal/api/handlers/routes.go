package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"dispatch-strategy-service/internal/api/dto"
	"dispatch-strategy-service/internal/metrics"
	"dispatch-strategy-service/internal/ports"
	"dispatch-strategy-service/internal/routing"
)

// RouteHandler answers point-to-point queries against the current graph
// snapshot: shortest paths (cache-assisted) and max-flow probes.
type RouteHandler struct {
	Graphs  ports.GraphProvider
	Cache   ports.PathCache // optional
	Metrics *metrics.Metrics
}

func (h *RouteHandler) Shortest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	from := strings.TrimSpace(r.URL.Query().Get("from"))
	to := strings.TrimSpace(r.URL.Query().Get("to"))
	if from == "" || to == "" {
		writeError(w, r, http.StatusBadRequest, "from and to are required")
		return
	}

	if h.Cache != nil {
		cached, err := h.Cache.Get(r.Context(), from, to)
		if err != nil {
			log.Printf("path cache get failed: %v", err)
		} else if cached != nil {
			if h.Metrics != nil {
				h.Metrics.PathCacheHits.Inc()
			}
			writeJSON(w, r, http.StatusOK, dto.PathResponse{
				From:     from,
				To:       to,
				Found:    true,
				Route:    cached.Nodes,
				Distance: cached.Distance,
				Cached:   true,
			})
			return
		}
	}
	if h.Metrics != nil {
		h.Metrics.PathCacheMiss.Inc()
	}

	g, err := h.Graphs.Snapshot(r.Context())
	if err != nil {
		log.Printf("graph snapshot failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	p, err := routing.ShortestPath(g, from, to)
	switch {
	case errors.Is(err, routing.ErrUnknownNode):
		writeError(w, r, http.StatusNotFound, "node is not on the road network")
		return
	case errors.Is(err, routing.ErrNoPath):
		// Disconnected endpoints are a valid answer, not a failure.
		writeJSON(w, r, http.StatusOK, dto.PathResponse{From: from, To: to, Found: false})
		return
	case err != nil:
		log.Printf("shortest path failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if h.Cache != nil {
		if err := h.Cache.Put(r.Context(), from, to, p); err != nil {
			log.Printf("path cache put failed: %v", err)
		}
	}

	writeJSON(w, r, http.StatusOK, dto.PathResponse{
		From:     from,
		To:       to,
		Found:    true,
		Route:    p.Nodes,
		Distance: p.Distance,
	})
}

func (h *RouteHandler) Flow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	source := strings.TrimSpace(r.URL.Query().Get("source"))
	sink := strings.TrimSpace(r.URL.Query().Get("sink"))
	if source == "" || sink == "" {
		writeError(w, r, http.StatusBadRequest, "source and sink are required")
		return
	}
	if source == sink {
		writeError(w, r, http.StatusBadRequest, "source and sink must differ")
		return
	}

	g, err := h.Graphs.Snapshot(r.Context())
	if err != nil {
		log.Printf("graph snapshot failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	flow, err := routing.MaxFlow(g, source, sink)
	switch {
	case errors.Is(err, routing.ErrUnknownNode):
		writeError(w, r, http.StatusNotFound, "node is not on the road network")
		return
	case err != nil:
		log.Printf("max flow failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FlowResponse{
		Source:  source,
		Sink:    sink,
		MaxFlow: flow,
	})
}
