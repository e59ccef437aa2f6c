package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "humanizer"

var (
	registry = prometheus.NewRegistry()

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	humanizeRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "humanize",
			Name:      "requests_total",
			Help:      "Humanization requests by outcome.",
		},
		[]string{"outcome"},
	)
	strategyAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "humanize",
			Name:      "strategy_attempts_total",
			Help:      "Rewrite strategy attempts by strategy and result.",
		},
		[]string{"strategy", "result"},
	)
	strategyDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "humanize",
			Name:      "strategy_duration_seconds",
			Help:      "Rewrite strategy latency in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.25, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"strategy"},
	)
	creditsConsumedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "credits",
			Name:      "consumed_total",
			Help:      "Credits consumed by successful humanizations.",
		},
	)
	extractionJobsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "extract",
			Name:      "jobs_total",
			Help:      "Document extraction jobs by result.",
		},
		[]string{"result"},
	)
)

func init() {
	registry.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		humanizeRequestsTotal,
		strategyAttemptsTotal,
		strategyDuration,
		creditsConsumedTotal,
		extractionJobsTotal,
	)
}

// IncHumanizeRequest records an orchestrated humanization outcome
// (success, validation, unauthenticated, no_credits, failed).
func IncHumanizeRequest(outcome string) {
	humanizeRequestsTotal.WithLabelValues(outcome).Inc()
}

// ObserveStrategy records one rewrite strategy attempt.
func ObserveStrategy(strategy, result string, d time.Duration) {
	strategyAttemptsTotal.WithLabelValues(strategy, result).Inc()
	strategyDuration.WithLabelValues(strategy).Observe(d.Seconds())
}

func IncCreditsConsumed() {
	creditsConsumedTotal.Inc()
}

func IncExtractionJob(result string) {
	extractionJobsTotal.WithLabelValues(result).Inc()
}

// Middleware records request counts and latency keyed by the matched route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

// Registry returns the private registry backing all collectors.
func Registry() *prometheus.Registry {
	return registry
}
