// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reliefmap/internal/logging"
)

// RequestLogger binds base into the request context, where logging.Ctx adds
// the request and correlation IDs, and writes one access line per request.
// Successful requests log at debug, client errors at warn and server errors at
// error. It must run after RequestID.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func RequestLogger(base zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logging.ContextWithLogger(r.Context(), base)
			logger := logging.Ctx(ctx)

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(ctx))

			var event *zerolog.Event
			switch {
			case rec.statusCode >= http.StatusInternalServerError:
				event = logger.Error()
			case rec.statusCode >= http.StatusBadRequest:
				event = logger.Warn()
			default:
				event = logger.Debug()
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.statusCode).
				Dur("duration", time.Since(start)).
				Msg("http request")
		})
	}
}
