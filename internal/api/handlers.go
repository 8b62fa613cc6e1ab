// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package api

import (
	"time"

	"github.com/tomtom215/reliefmap/internal/dashboard"
	ws "github.com/tomtom215/reliefmap/internal/websocket"
)

const defaultWSRegisterTimeout = 10 * time.Second

// Handler serves the HTTP API.
type Handler struct {
	svc            *dashboard.Service
	wsHub          *ws.Hub
	allowedOrigins []string
	startTime      time.Time

	// wsRegisterTimeout bounds the wait for the hub to accept a new client.
	wsRegisterTimeout time.Duration
}

// NewHandler creates a handler. hub may be nil, in which case /ws answers 503.
func NewHandler(svc *dashboard.Service, hub *ws.Hub, allowedOrigins []string) *Handler {
	return &Handler{
		svc:               svc,
		wsHub:             hub,
		allowedOrigins:    allowedOrigins,
		startTime:         time.Now(),
		wsRegisterTimeout: defaultWSRegisterTimeout,
	}
}
