// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reliefmap/internal/logging"
)

func TestRequestLogger(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	defer zerolog.SetGlobalLevel(prev)

	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"success at debug", http.StatusOK, "debug"},
		{"client error at warn", http.StatusNotFound, "warn"},
		{"server error at error", http.StatusServiceUnavailable, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := zerolog.New(&buf).Level(zerolog.TraceLevel)

			var handlerLogged bool
			handler := RequestID(RequestLogger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logging.Ctx(r.Context()).Info().Msg("inside")
				handlerLogged = true
				w.WriteHeader(tt.status)
			})))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/world", nil))
			if !handlerLogged {
				t.Fatal("handler not called")
			}

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			if len(lines) != 2 {
				t.Fatalf("got %d log lines, want 2: %s", len(lines), buf.String())
			}

			var inside map[string]interface{}
			if err := json.Unmarshal([]byte(lines[0]), &inside); err != nil {
				t.Fatal(err)
			}
			if inside["request_id"] != rec.Header().Get(RequestIDHeader) {
				t.Errorf("handler log request_id = %v, want %s", inside["request_id"], rec.Header().Get(RequestIDHeader))
			}

			var access map[string]interface{}
			if err := json.Unmarshal([]byte(lines[1]), &access); err != nil {
				t.Fatal(err)
			}
			if access["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %s", access["level"], tt.wantLevel)
			}
			if access["status"] != float64(tt.status) {
				t.Errorf("status = %v, want %d", access["status"], tt.status)
			}
			if access["path"] != "/api/v1/world" {
				t.Errorf("path = %v", access["path"])
			}
		})
	}
}
