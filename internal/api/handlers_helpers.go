// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reliefmap/internal/dashboard"
	"github.com/tomtom215/reliefmap/internal/logging"
	"github.com/tomtom215/reliefmap/internal/models"
	"github.com/tomtom215/reliefmap/internal/recommend"
	"github.com/tomtom215/reliefmap/internal/store"
	"github.com/tomtom215/reliefmap/internal/validation"
)

// maxBodyBytes bounds request bodies; a full dataset import is the largest.
const maxBodyBytes = 32 << 20

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// getIntParam extracts an integer query parameter with a default value.
func getIntParam(r *http.Request, key string, defaultValue int) (int, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}

// getBoolParam extracts a boolean query parameter. Missing or unparsable is false.
func getBoolParam(r *http.Request, key string) bool {
	b, err := strconv.ParseBool(r.URL.Query().Get(key))
	return err == nil && b
}

// getListParam splits a comma-separated query parameter, dropping empty items.
func getListParam(r *http.Request, key string) []string {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getAidTypesParam(r *http.Request, key string) ([]models.AidType, error) {
	var out []models.AidType
	for _, raw := range getListParam(r, key) {
		t := models.AidType(raw)
		if !t.Valid() {
			return nil, fmt.Errorf("unknown aid type %q", raw)
		}
		out = append(out, t)
	}
	return out, nil
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// writeServiceError maps service and store errors to API responses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)

	var verr *validation.RequestValidationError
	switch {
	case errors.As(err, &verr):
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
	case errors.Is(err, dashboard.ErrCountryNotFound),
		errors.Is(err, dashboard.ErrRegionNotFound),
		errors.Is(err, store.ErrNotFound):
		rw.NotFound(err.Error())
	case errors.Is(err, dashboard.ErrInvalidBudget),
		errors.Is(err, recommend.ErrUnknownScenario),
		errors.Is(err, store.ErrEmptyID):
		rw.BadRequest(err.Error())
	case errors.Is(err, validation.ErrIntegrity):
		rw.Error(http.StatusConflict, ErrCodeIntegrityViolation, err.Error())
	case errors.Is(err, store.ErrClosed), errors.Is(err, context.Canceled):
		rw.ServiceUnavailable("Dataset store unavailable")
	default:
		logging.Ctx(r.Context()).Error().
			Str("path", sanitizeLogValue(r.URL.Path)).
			Err(err).
			Msg("API error")
		rw.InternalError("An internal error occurred")
	}
}

// WriteResult is the body of a successful dataset write.
type WriteResult struct {
	DatasetVersion uint64 `json:"dataset_version"`
}
