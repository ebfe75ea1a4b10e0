package api

import (
	"net/http"

	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"dispatch-strategy-service/internal/api/handlers"
	"dispatch-strategy-service/internal/domain"
	"dispatch-strategy-service/internal/metrics"
	"dispatch-strategy-service/internal/ports"
)

// RouterDeps carries everything the HTTP surface needs. Advisor and Cache
// are optional; the router degrades gracefully without them.
type RouterDeps struct {
	Graphs  ports.GraphProvider
	Repo    ports.OrderRepository
	Cache   ports.PathCache
	Advisor ports.Advisor
	Metrics *metrics.Metrics

	DefaultDepotID  string
	DefaultCapacity int
	DefaultCosts    domain.CostParams

	CompareLimiter *rate.Limiter
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	orderHandler := &handlers.OrderHandler{Repo: deps.Repo}
	compareHandler := &handlers.CompareHandler{
		Graphs:          deps.Graphs,
		Repo:            deps.Repo,
		Advisor:         deps.Advisor,
		Metrics:         deps.Metrics,
		DefaultDepotID:  deps.DefaultDepotID,
		DefaultCapacity: deps.DefaultCapacity,
		DefaultCosts:    deps.DefaultCosts,
	}
	routeHandler := &handlers.RouteHandler{
		Graphs:  deps.Graphs,
		Cache:   deps.Cache,
		Metrics: deps.Metrics,
	}
	graphHandler := &handlers.GraphHandler{
		Graphs:  deps.Graphs,
		Cache:   deps.Cache,
		Metrics: deps.Metrics,
	}

	handle := func(route string, h http.Handler) {
		mux.Handle(route, metricsMiddleware(deps.Metrics, route, h))
	}

	handle("/health", http.HandlerFunc(handlers.Health))
	handle("/orders", http.HandlerFunc(orderHandler.List))
	handle("/plans/compare", rateLimitMiddleware(deps.CompareLimiter, http.HandlerFunc(compareHandler.Compare)))
	handle("/routes/shortest", http.HandlerFunc(routeHandler.Shortest))
	handle("/flow", http.HandlerFunc(routeHandler.Flow))
	handle("/graph", http.HandlerFunc(graphHandler.Get))
	handle("/graph/reload", http.HandlerFunc(graphHandler.Reload))

	if deps.Metrics != nil {
		mux.Handle("/metrics", deps.Metrics.Handler())
	}

	corsWrapper := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
	})

	return requestIDMiddleware(loggingMiddleware(corsWrapper.Handler(mux)))
}
