// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

/*
Package metrics provides Prometheus metrics for the reliefmap server.

All collectors are registered on the default registry through promauto and
exposed at /metrics by the api package.

# Available Metrics

Computation:
  - reliefmap_computation_duration_seconds{operation}
  - reliefmap_computation_errors_total{operation,error_type}
  - reliefmap_plan_units_allocated
  - reliefmap_coordination_suggestions

Dataset:
  - reliefmap_dataset_version
  - reliefmap_dataset_entities{entity}
  - reliefmap_integrity_violations
  - reliefmap_store_writes_total{operation,status}

API:
  - reliefmap_api_requests_total{method,endpoint,status_code}
  - reliefmap_api_request_duration_seconds{method,endpoint}
  - reliefmap_api_active_requests

Cache, events and WebSocket:
  - reliefmap_cache_hits_total{operation}, reliefmap_cache_misses_total{operation}
  - reliefmap_cache_invalidations_total
  - reliefmap_events_published_total{topic}, reliefmap_events_handled_total{topic,status}
  - reliefmap_websocket_connections, reliefmap_websocket_messages_sent_total{message_type}

# Usage

	start := time.Now()
	scores := calc.WorldScores(idx)
	metrics.RecordComputation("world", time.Since(start), nil)

Endpoint labels use the chi route pattern, not the raw path, to keep
cardinality bounded.
*/
package metrics
