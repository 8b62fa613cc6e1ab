// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Computation Metrics
	ComputationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reliefmap_computation_duration_seconds",
			Help:    "Duration of score and recommendation computations in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"}, // "world", "country", "region", "urgency", "deployment", "coordination", "integrity"
	)

	ComputationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reliefmap_computation_errors_total",
			Help: "Total number of failed computations",
		},
		[]string{"operation", "error_type"},
	)

	PlanUnitsAllocated = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reliefmap_plan_units_allocated",
			Help:    "Projects allocated per deployment plan",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	CoordinationSuggestions = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reliefmap_coordination_suggestions",
			Help:    "Suggestions returned per coordination request",
			Buckets: []float64{0, 1, 2, 5, 10, 20},
		},
	)

	// Dataset Metrics
	DatasetVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reliefmap_dataset_version",
			Help: "Current dataset version",
		},
	)

	DatasetEntities = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reliefmap_dataset_entities",
			Help: "Number of entities in the current dataset",
		},
		[]string{"entity"}, // "country", "region", "organization", "edge"
	)

	IntegrityViolations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reliefmap_integrity_violations",
			Help: "Integrity violations found in the current dataset",
		},
	)

	StoreWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reliefmap_store_writes_total",
			Help: "Total number of store mutations",
		},
		[]string{"operation", "status"}, // operation: "put_edge", "delete_edge", "put_region", "import"
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reliefmap_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reliefmap_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reliefmap_api_active_requests",
			Help: "Number of active API requests",
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reliefmap_cache_hits_total",
			Help: "Total number of score cache hits",
		},
		[]string{"operation"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reliefmap_cache_misses_total",
			Help: "Total number of score cache misses",
		},
		[]string{"operation"},
	)

	CacheInvalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reliefmap_cache_invalidations_total",
			Help: "Entries dropped after dataset changes",
		},
	)

	// Event Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reliefmap_events_published_total",
			Help: "Total number of dataset events published",
		},
		[]string{"topic"},
	)

	EventsHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reliefmap_events_handled_total",
			Help: "Total number of dataset events handled",
		},
		[]string{"topic", "status"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reliefmap_websocket_connections",
			Help: "Current number of WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reliefmap_websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
		[]string{"message_type"},
	)

	// Application Info
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reliefmap_app_info",
			Help: "Application information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordComputation records the duration of a computation and, when err is
// non-nil, a truncated error label.
func RecordComputation(operation string, duration time.Duration, err error) {
	ComputationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		ComputationErrors.WithLabelValues(operation, errorType).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCacheLookup records a score cache hit or miss.
func RecordCacheLookup(operation string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(operation).Inc()
	} else {
		CacheMisses.WithLabelValues(operation).Inc()
	}
}

// RecordCacheInvalidation records entries dropped after a dataset change.
func RecordCacheInvalidation(entries int) {
	CacheInvalidations.Add(float64(entries))
}

// RecordStoreWrite records a store mutation.
func RecordStoreWrite(operation string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	StoreWrites.WithLabelValues(operation, status).Inc()
}

// RecordPlan records the size of a deployment plan.
func RecordPlan(unitsAllocated int) {
	PlanUnitsAllocated.Observe(float64(unitsAllocated))
}

// RecordCoordination records how many suggestions a request produced.
func RecordCoordination(suggestions int) {
	CoordinationSuggestions.Observe(float64(suggestions))
}

// UpdateDataset sets the dataset gauges after a snapshot is loaded.
func UpdateDataset(version uint64, countries, regions, organizations, edges, violations int) {
	DatasetVersion.Set(float64(version))
	DatasetEntities.WithLabelValues("country").Set(float64(countries))
	DatasetEntities.WithLabelValues("region").Set(float64(regions))
	DatasetEntities.WithLabelValues("organization").Set(float64(organizations))
	DatasetEntities.WithLabelValues("edge").Set(float64(edges))
	IntegrityViolations.Set(float64(violations))
}

// RecordEventPublished counts a published event.
func RecordEventPublished(topic string) {
	EventsPublished.WithLabelValues(topic).Inc()
}

// RecordEventHandled counts a handled event.
func RecordEventHandled(topic string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	EventsHandled.WithLabelValues(topic, status).Inc()
}

// RecordWSMessage counts a message broadcast to WebSocket clients.
func RecordWSMessage(messageType string) {
	WSMessagesSent.WithLabelValues(messageType).Inc()
}

// SetWSConnections sets the current WebSocket client count.
func SetWSConnections(n int) {
	WSConnections.Set(float64(n))
}

// SetAppInfo publishes build information.
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}

// StatusLabel renders an HTTP status code as a metric label.
func StatusLabel(code int) string {
	return strconv.Itoa(code)
}
