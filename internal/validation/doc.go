// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

// Package validation checks entities and API requests with go-playground/validator v10
// and runs the referential integrity pass over a dataset.
//
// # Struct Validation
//
// A single validator instance is shared process-wide (GetValidator). Field names
// in messages come from json tags, so a failing Region.Population is reported as
// "population". Two domain tags are registered on top of the built-ins:
//
//   - aidtype: food, medical or infrastructure
//   - needlevel: low, medium or high
//
// Example:
//
//	type planRequest struct {
//	    Budget   int      `json:"budget" validate:"gte=0,lte=500"`
//	    AidTypes []string `json:"aid_types" validate:"dive,aidtype"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// # Integrity
//
// CheckIntegrity reports, per entity, tag failures (missing ids, non-positive
// region population, negative project counts, unknown aid types), references to
// unknown countries, regions or organizations, and duplicate ids. Scoring never
// depends on the report; the service layer decides whether to reject a dataset
// (strict mode, via IntegrityReport.Err) or serve it with warnings.
package validation
