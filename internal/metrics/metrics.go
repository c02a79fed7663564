// Package metrics exposes Prometheus instrumentation for the TMDB client,
// the detail cache and account operations.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TMDBRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediamatch_tmdb_requests_total",
			Help: "Total number of TMDB API requests by endpoint and status",
		},
		[]string{"endpoint", "status"}, // status: HTTP code, "error" or "rejected"
	)

	TMDBRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mediamatch_tmdb_request_duration_seconds",
			Help:    "Duration of TMDB API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// 0 closed, 1 half-open, 2 open
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mediamatch_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mediamatch_detail_cache_hits_total",
			Help: "Total number of movie detail cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mediamatch_detail_cache_misses_total",
			Help: "Total number of movie detail cache misses",
		},
	)

	CacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mediamatch_detail_cache_expired_total",
			Help: "Total number of expired cache entries removed by the janitor",
		},
	)

	AccountOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediamatch_account_operations_total",
			Help: "Total number of account operations by outcome",
		},
		[]string{"operation", "result"},
	)

	CatalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mediamatch_catalog_items",
			Help: "Number of movies currently held in the catalog list",
		},
	)
)

// RecordTMDBRequest records one TMDB call. statusCode 0 means no response.
func RecordTMDBRequest(endpoint string, statusCode int, duration time.Duration) {
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	TMDBRequests.WithLabelValues(endpoint, status).Inc()
	TMDBRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordTMDBRejected counts calls short-circuited by the breaker.
func RecordTMDBRejected(endpoint string) {
	TMDBRequests.WithLabelValues(endpoint, "rejected").Inc()
}

func RecordCacheLookup(hit bool) {
	if hit {
		CacheHits.Inc()
		return
	}
	CacheMisses.Inc()
}

func RecordAccountOperation(operation string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	AccountOperations.WithLabelValues(operation, result).Inc()
}

func SetBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
