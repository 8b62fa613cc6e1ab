// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tomtom215/reliefmap/internal/dashboard"
	"github.com/tomtom215/reliefmap/internal/logging"
	"github.com/tomtom215/reliefmap/internal/recommend"
	"github.com/tomtom215/reliefmap/internal/store"
	"github.com/tomtom215/reliefmap/internal/validation"
)

func TestWriteSuccess(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(logging.ContextWithRequestID(req.Context(), "req-1"))
	rec := httptest.NewRecorder()

	WriteSuccess(rec, req, map[string]int{"answer": 42})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if !env.Success || env.Error != nil {
		t.Errorf("envelope = %+v", env)
	}
	if env.Meta == nil || env.Meta.RequestID != "req-1" {
		t.Errorf("meta = %+v, want request id req-1", env.Meta)
	}
	if string(env.Data) != `{"answer":42}` {
		t.Errorf("data = %s", env.Data)
	}
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"country not found", fmt.Errorf("%w: x", dashboard.ErrCountryNotFound), http.StatusNotFound, ErrCodeNotFound},
		{"region not found", dashboard.ErrRegionNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"edge not found", store.ErrNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"invalid budget", dashboard.ErrInvalidBudget, http.StatusBadRequest, ErrCodeBadRequest},
		{"unknown scenario", recommend.ErrUnknownScenario, http.StatusBadRequest, ErrCodeBadRequest},
		{"empty id", store.ErrEmptyID, http.StatusBadRequest, ErrCodeBadRequest},
		{"integrity", fmt.Errorf("%w: 3 violations", validation.ErrIntegrity), http.StatusConflict, ErrCodeIntegrityViolation},
		{"store closed", store.ErrClosed, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"canceled", context.Canceled, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			var env envelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatal(err)
			}
			if env.Error == nil || env.Error.Code != tt.code {
				t.Errorf("error = %+v, want code %s", env.Error, tt.code)
			}
		})
	}
}

func TestWriteServiceError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("badger: value log corrupt"))

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Error == nil || env.Error.Message == "badger: value log corrupt" {
		t.Errorf("internal error message leaked: %+v", env.Error)
	}
}
