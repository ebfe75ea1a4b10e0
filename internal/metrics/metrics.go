package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the service's prometheus collectors behind one registry
// so tests can build isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
	OpDuration     *prometheus.HistogramVec
	PlanCompares   prometheus.Counter
	GraphReloads   prometheus.Counter
	PathCacheHits  prometheus.Counter
	PathCacheMiss  prometheus.Counter
	AdvisorFailure prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dispatch_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		OpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dispatch_op_duration_seconds",
			Help:    "Internal operation latency by operation name.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		PlanCompares: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_plan_comparisons_total",
			Help: "Completed strategy comparison runs.",
		}),
		GraphReloads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_graph_reloads_total",
			Help: "Successful road-network reloads.",
		}),
		PathCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_path_cache_hits_total",
			Help: "Shortest-path lookups served from cache.",
		}),
		PathCacheMiss: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_path_cache_misses_total",
			Help: "Shortest-path lookups that fell through to Dijkstra.",
		}),
		AdvisorFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_advisor_failures_total",
			Help: "Advisor calls that returned no usable advice.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.OpDuration,
		m.PlanCompares,
		m.GraphReloads,
		m.PathCacheHits,
		m.PathCacheMiss,
		m.AdvisorFailure,
	)
	return m
}

// Handler serves the /metrics scrape endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveOp records one internal operation duration. Shaped to plug into
// the obs timing hook.
func (m *Metrics) ObserveOp(op string, d time.Duration) {
	m.OpDuration.WithLabelValues(op).Observe(d.Seconds())
}
