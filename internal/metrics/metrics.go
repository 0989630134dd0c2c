// Package metrics provides Prometheus metrics for the persistence path.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Save paths
const (
	PathDebounced = "debounced"
	PathFlush     = "flush"
	PathDirect    = "direct"
)

var (
	// savesTotal records state writes.
	// Labels:
	//   - path: how the write was triggered ("debounced", "flush", "direct")
	//   - status: "success" or "failed"
	savesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tinywins_saves_total",
			Help: "Total number of state writes to the store",
		},
		[]string{"path", "status"},
	)

	// saveDuration records how long a store write took.
	saveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tinywins_save_duration_seconds",
			Help:    "Duration of state writes in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"path"},
	)

	// coalescedTotal counts save requests superseded by a newer request inside the debounce window.
	coalescedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tinywins_save_requests_coalesced_total",
			Help: "Total number of debounced save requests superseded by a newer request",
		},
	)

	// loadErrorsTotal records failed loads.
	// Labels:
	//   - reason: "read" or "decode"
	loadErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tinywins_load_errors_total",
			Help: "Total number of failed state loads",
		},
		[]string{"reason"},
	)

	// skippedEntriesTotal counts history records dropped while loading.
	skippedEntriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tinywins_history_entries_skipped_total",
			Help: "Total number of malformed or duplicate history entries dropped on load",
		},
	)

	// httpRequestsTotal records API requests served by the read-only server.
	// Labels:
	//   - route: the matched route pattern, or "unmatched"
	//   - code: the HTTP status code
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tinywins_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"route", "code"},
	)
)

func init() {
	prometheus.MustRegister(savesTotal)
	prometheus.MustRegister(saveDuration)
	prometheus.MustRegister(coalescedTotal)
	prometheus.MustRegister(loadErrorsTotal)
	prometheus.MustRegister(skippedEntriesTotal)
	prometheus.MustRegister(httpRequestsTotal)
}

// RecordSave records a successful write and its duration.
func RecordSave(path string, d time.Duration) {
	savesTotal.WithLabelValues(path, "success").Inc()
	saveDuration.WithLabelValues(path).Observe(d.Seconds())
}

// RecordSaveFailure records a failed write.
func RecordSaveFailure(path string) {
	savesTotal.WithLabelValues(path, "failed").Inc()
}

func RecordCoalesced() {
	coalescedTotal.Inc()
}

// RecordLoadError records a failed load with the given reason.
func RecordLoadError(reason string) {
	loadErrorsTotal.WithLabelValues(reason).Inc()
}

func RecordSkippedEntries(n int) {
	skippedEntriesTotal.Add(float64(n))
}

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(route string, code int) {
	httpRequestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// HTTPRequestCount returns the number of requests served for route and code.
func HTTPRequestCount(route string, code int) float64 {
	return counterValue(httpRequestsTotal.WithLabelValues(route, strconv.Itoa(code)))
}

// SaveCount returns the current counter value for path and status. Used by
// diagnostics and tests.
func SaveCount(path, status string) float64 {
	return counterValue(savesTotal.WithLabelValues(path, status))
}

// CoalescedCount returns the number of coalesced save requests.
func CoalescedCount() float64 {
	return counterValue(coalescedTotal)
}

// LoadErrorCount returns the number of failed loads for reason.
func LoadErrorCount(reason string) float64 {
	return counterValue(loadErrorsTotal.WithLabelValues(reason))
}

func counterValue(c prometheus.Collector) float64 {
	return testutil.ToFloat64(c)
}
