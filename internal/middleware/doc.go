// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

/*
Package middleware provides chi-compatible HTTP middleware.

  - RequestID: request and correlation IDs in the context and X-Request-ID header
  - RequestLogger: request-scoped zerolog logger and access log line
  - PrometheusMetrics: request count and latency per route pattern

Order matters: RequestID first so later layers can read the IDs.

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(logging.WithComponent("http")))
	r.Use(middleware.PrometheusMetrics)

CORS, rate limiting, panic recovery and compression come from go-chi/cors,
go-chi/httprate and chi's own middleware package and are wired in the api
package.
*/
package middleware
