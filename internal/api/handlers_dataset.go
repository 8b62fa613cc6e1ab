// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reliefmap/internal/logging"
	"github.com/tomtom215/reliefmap/internal/models"
)

// PutDataset replaces the whole dataset.
//
// PUT /api/v1/dataset
func (h *Handler) PutDataset(w http.ResponseWriter, r *http.Request) {
	var ds models.Dataset
	if err := decodeJSON(w, r, &ds); err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}

	version, err := h.svc.ImportDataset(r.Context(), &ds)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	logging.Ctx(r.Context()).Info().
		Uint64("dataset_version", version).
		Int("regions", len(ds.Regions)).
		Int("edges", len(ds.Edges)).
		Msg("Dataset replaced")
	WriteSuccess(w, r, WriteResult{DatasetVersion: version})
}

// PutEdge creates or replaces an aid edge. The body id may be omitted; when
// present it must match the path.
//
// PUT /api/v1/edges/{id}
func (h *Handler) PutEdge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var edge models.AidEdge
	if err := decodeJSON(w, r, &edge); err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	if edge.ID == "" {
		edge.ID = id
	}
	if edge.ID != id {
		NewResponseWriter(w, r).BadRequest("body id does not match path id")
		return
	}

	version, err := h.svc.PutEdge(r.Context(), &edge)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, WriteResult{DatasetVersion: version})
}

// DeleteEdge removes an aid edge.
//
// DELETE /api/v1/edges/{id}
func (h *Handler) DeleteEdge(w http.ResponseWriter, r *http.Request) {
	version, err := h.svc.DeleteEdge(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, WriteResult{DatasetVersion: version})
}

// PutRegion creates or replaces a region, typically to update volatility or
// need indicators.
//
// PUT /api/v1/regions/{id}
func (h *Handler) PutRegion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var region models.Region
	if err := decodeJSON(w, r, &region); err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	if region.ID == "" {
		region.ID = id
	}
	if region.ID != id {
		NewResponseWriter(w, r).BadRequest("body id does not match path id")
		return
	}

	version, err := h.svc.PutRegion(r.Context(), &region)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, WriteResult{DatasetVersion: version})
}
