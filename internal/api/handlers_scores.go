// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// World returns the country-level coverage map.
//
// GET /api/v1/world
func (h *Handler) World(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.World(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, view)
}

// CountryRegions returns the region scores of one country.
//
// GET /api/v1/countries/{id}/regions
func (h *Handler) CountryRegions(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.CountryRegions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, view)
}

// TopOrgs ranks the organizations in one country.
//
// GET /api/v1/countries/{id}/top-orgs?k=5
func (h *Handler) TopOrgs(w http.ResponseWriter, r *http.Request) {
	k, err := getIntParam(r, "k", h.svc.DefaultTopOrgs())
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	view, err := h.svc.TopOrgs(r.Context(), chi.URLParam(r, "id"), k)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, view)
}

// Region returns the drill-down for one region.
//
// GET /api/v1/regions/{id}
func (h *Handler) Region(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Region(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, view)
}

// Integrity reports integrity violations in the current dataset.
//
// GET /api/v1/integrity
func (h *Handler) Integrity(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Integrity(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, view)
}
