// Package metrics exposes Prometheus instrumentation for the client.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestsTotal counts every HTTP request by method and status.
	RequestsTotal *prometheus.CounterVec

	// RequestDuration observes request latency by method.
	RequestDuration *prometheus.HistogramVec

	// TaskWaitDuration observes how long callers waited for a task to
	// reach a terminal status, labeled with the outcome.
	TaskWaitDuration *prometheus.HistogramVec
)

// init creates and registers all metrics with the default registry
func init() {
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "meiligo",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests sent to the search service",
		},
		[]string{"method", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "meiligo",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.025, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method"},
	)

	TaskWaitDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "meiligo",
			Subsystem: "client",
			Name:      "task_wait_duration_seconds",
			Help:      "Time spent polling a task until terminal status or timeout",
			Buckets:   []float64{0.05, 0.25, 1, 5, 15, 60, 300},
		},
		[]string{"outcome"},
	)

	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(TaskWaitDuration)
}

// RecordRequest records one HTTP request.
func RecordRequest(method, status string, elapsed time.Duration) {
	RequestsTotal.WithLabelValues(method, status).Inc()
	RequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// RecordTaskWait records one completed task wait.
func RecordTaskWait(outcome string, elapsed time.Duration) {
	if outcome == "" {
		outcome = "unknown"
	}
	TaskWaitDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}
