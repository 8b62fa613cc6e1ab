// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package api

import (
	"net/http"

	"github.com/tomtom215/reliefmap/internal/recommend"
)

// Urgency ranks regions by urgency.
//
// GET /api/v1/recommendations/urgency?top_n=10&scenario=famine_onset&scenario_countries=ke,so
func (h *Handler) Urgency(w http.ResponseWriter, r *http.Request) {
	topN, err := getIntParam(r, "top_n", 0)
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}

	view, err := h.svc.Urgency(r.Context(), recommend.UrgencyOptions{
		TopN:              topN,
		Scenario:          r.URL.Query().Get("scenario"),
		ScenarioCountries: getListParam(r, "scenario_countries"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, view)
}

// Deployment builds a deployment plan.
//
// GET /api/v1/recommendations/deployment?budget=20&aid_types=food,medical&countries=ke
func (h *Handler) Deployment(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if r.URL.Query().Get("budget") == "" {
		rw.BadRequest("budget is required")
		return
	}
	budget, err := getIntParam(r, "budget", 0)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	aidTypes, err := getAidTypesParam(r, "aid_types")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	view, err := h.svc.Deployment(r.Context(), budget, recommend.PlanOptions{
		Scenario:          r.URL.Query().Get("scenario"),
		ScenarioCountries: getListParam(r, "scenario_countries"),
		AidTypes:          aidTypes,
		CountryIDs:        getListParam(r, "countries"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	rw.Success(view)
}

// Coordination suggests project moves between regions.
//
// GET /api/v1/recommendations/coordination?limit=10&same_country=true
func (h *Handler) Coordination(w http.ResponseWriter, r *http.Request) {
	limit, err := getIntParam(r, "limit", 0)
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}

	view, err := h.svc.Coordination(r.Context(), recommend.CoordinationOptions{
		Scenario:          r.URL.Query().Get("scenario"),
		ScenarioCountries: getListParam(r, "scenario_countries"),
		SameCountryOnly:   getBoolParam(r, "same_country"),
		Limit:             limit,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, view)
}

// Scenarios lists the what-if presets.
//
// GET /api/v1/scenarios
func (h *Handler) Scenarios(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, h.svc.Scenarios())
}
