// Package middleware provides HTTP middleware for the planner API
package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planner_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	httpInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "planner_http_inflight_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	itemsPricedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "planner_wave_items_priced_total",
			Help: "Total number of wave items priced or re-priced",
		},
	)

	reportsExportedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_reports_exported_total",
			Help: "Total number of campaign reports exported",
		},
		[]string{"format"},
	)
)

// Metrics returns a Fiber middleware that records request counts, latency
// and in-flight gauge. The matched route template keeps label cardinality low.
func Metrics() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		err := c.Next()

		route := c.Path()
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		labels := prometheus.Labels{
			"method": c.Method(),
			"route":  route,
			"status": strconv.Itoa(c.Response().StatusCode()),
		}
		httpRequestsTotal.With(labels).Inc()
		httpRequestDuration.With(labels).Observe(time.Since(start).Seconds())

		return err
	}
}

// CountItemPriced records one pricing engine run over a wave item
func CountItemPriced() {
	itemsPricedTotal.Inc()
}

// CountReportExported records one report export in the given format
func CountReportExported(format string) {
	reportsExportedTotal.WithLabelValues(format).Inc()
}
