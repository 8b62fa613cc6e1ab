// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package api

import (
	"net/http"
	"time"
)

// HealthLive handles liveness probe requests.
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests.
// Returns 200 OK only when the dataset can be read and indexed.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	integrity, err := h.svc.Integrity(r.Context())
	if err != nil {
		NewResponseWriter(w, r).ServiceUnavailable("Dataset not readable")
		return
	}

	status := "ready"
	if !integrity.Valid {
		status = "degraded"
	}
	WriteSuccess(w, r, map[string]interface{}{
		"status":          status,
		"dataset_version": integrity.DatasetVersion,
		"violations":      len(integrity.Report.Violations),
		"websocket":       h.wsHub != nil,
		"uptime":          time.Since(h.startTime).Seconds(),
	})
}
