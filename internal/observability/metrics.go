package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "activity_signup"

var (
	registryMutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "registry",
		Name:      "mutations_total",
		Help:      "Signup and unregister attempts by operation, authorization path and outcome.",
	}, []string{"operation", "path", "outcome"})

	lastMutationGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "registry",
		Name:      "last_mutation_timestamp_seconds",
		Help:      "Unix timestamp of the most recent successful participant change.",
	})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route template and status code.",
	}, []string{"method", "route", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route template.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	httpPanics = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "panics_total",
		Help:      "Handler panics recovered by the recovery middleware.",
	})
)

func init() {
	prometheus.MustRegister(registryMutations, lastMutationGauge, httpRequests, httpDuration, httpPanics)
}

// RecordRegistryMutation counts one signup/unregister attempt
func RecordRegistryMutation(operation, path, outcome string) {
	registryMutations.WithLabelValues(operation, path, outcome).Inc()
}

// RecordLastMutation updates the mutation watermark gauge.
func RecordLastMutation(ts time.Time) {
	if ts.IsZero() {
		return
	}
	lastMutationGauge.Set(float64(ts.Unix()))
}

// ObserveHTTPRequest records a completed HTTP request
func ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordPanic counts one recovered handler panic
func RecordPanic() {
	httpPanics.Inc()
}

// RegistryMutationCount returns the current count for a label set (for tests and diagnostics)
func RegistryMutationCount(operation, path, outcome string) prometheus.Counter {
	return registryMutations.WithLabelValues(operation, path, outcome)
}

// LastMutationGauge exposes the watermark gauge (for tests)
func LastMutationGauge() prometheus.Gauge {
	return lastMutationGauge
}

// HTTPRequestCount returns the counter for a label set (for tests)
func HTTPRequestCount(method, route string, status int) prometheus.Counter {
	return httpRequests.WithLabelValues(method, route, strconv.Itoa(status))
}

// PanicCount exposes the recovered panic counter (for tests)
func PanicCount() prometheus.Counter {
	return httpPanics
}
