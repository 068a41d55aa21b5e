package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
	OutcomeError   = "error"
)

var (
	// Registry holds the service's collectors; it is exposed at /metrics.
	Registry = prometheus.NewRegistry()

	generationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summary_generation_total",
			Help: "Generative-text calls by provider and outcome.",
		},
		[]string{"provider", "outcome"},
	)

	generationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "summary_generation_duration_seconds",
			Help:    "Latency of generative-text calls.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"provider"},
	)

	shareTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summary_share_total",
			Help: "Share-by-email attempts by outcome.",
		},
		[]string{"outcome"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)
)

func init() {
	Registry.MustRegister(generationTotal, generationDuration, shareTotal, httpRequests)
}

// ObserveGeneration records one provider call.
func ObserveGeneration(provider, outcome string, elapsed time.Duration) {
	generationTotal.WithLabelValues(provider, outcome).Inc()
	generationDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// IncShare records one share attempt.
func IncShare(outcome string) {
	shareTotal.WithLabelValues(outcome).Inc()
}

// ObserveRequest records one completed HTTP request. route is the matched
// pattern (e.g. /api/summaries/:id) so ids do not explode cardinality.
func ObserveRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}
