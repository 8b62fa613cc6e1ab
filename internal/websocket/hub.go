// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package websocket

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reliefmap/internal/metrics"
)

// ErrRegisterTimeout is returned when the hub does not accept a client in time,
// typically because it is restarting or shutting down.
var ErrRegisterTimeout = errors.New("websocket hub did not accept client")

// ShutdownReason identifies why the hub stopped.
type ShutdownReason string

const (
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Message types for WebSocket communication
const (
	MessageTypePing              = "ping"
	MessageTypePong              = "pong"
	MessageTypeScoresInvalidated = "scores_invalidated"
	MessageTypeIntegrityAlert    = "integrity_alert"
)

// Message represents a WebSocket message
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ScoresInvalidatedData tells dashboards to refetch. Reason is the store
// operation that changed the dataset.
type ScoresInvalidatedData struct {
	Version   uint64 `json:"version"`
	Reason    string `json:"reason"`
	Timestamp string `json:"timestamp"`
}

// IntegrityAlertData is sent when a new dataset version has violations.
type IntegrityAlertData struct {
	Version    uint64 `json:"version"`
	Violations int    `json:"violations"`
	Timestamp  string `json:"timestamp"`
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex
	logger     zerolog.Logger
}

// NewHub creates a new Hub
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan Message, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

// RegisterClient hands client to the running hub. It gives up when ctx is done
// or timeout elapses; the caller then owns the connection and must close it.
func (h *Hub) RegisterClient(ctx context.Context, client *Client, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case h.Register <- client:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrRegisterTimeout
	}
}

// Serve runs the hub until ctx is canceled, then closes every client.
// It satisfies suture.Service.
//
// Lifecycle events are drained before broadcasts so a message is never sent
// to a client whose registration is still queued.
func (h *Hub) Serve(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case client := <-h.Register:
			h.register(client)
			continue
		case client := <-h.Unregister:
			h.unregister(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.register(client)
		case client := <-h.Unregister:
			h.unregister(client)
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

func (h *Hub) String() string {
	return "websocket-hub"
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	n := len(h.clients)
	h.mu.Unlock()

	metrics.SetWSConnections(n)
	h.logger.Debug().Uint64("client_id", client.id).Int("total_clients", n).Msg("websocket client connected")
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	n := len(h.clients)
	h.mu.Unlock()

	metrics.SetWSConnections(n)
	h.logger.Debug().Uint64("client_id", client.id).Int("total_clients", n).Msg("websocket client disconnected")
}

func (h *Hub) shutdown(ctx context.Context) {
	count := h.GetClientCount()
	h.closeAllClients()

	h.logger.Info().
		Str("reason", string(getShutdownReason(ctx))).
		Int("clients_closed", count).
		Msg("websocket hub stopped")
}

func getShutdownReason(ctx context.Context) ShutdownReason {
	if ctx.Err() == context.DeadlineExceeded {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}

// sortedClients must be called with h.mu held.
func (h *Hub) sortedClients() []*Client {
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	return clients
}

// broadcastToClients delivers message in client ID order. Clients whose send
// buffer is full are dropped.
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var slow []*Client
	for _, client := range h.sortedClients() {
		select {
		case client.send <- message:
		default:
			slow = append(slow, client)
		}
	}

	for _, client := range slow {
		close(client.send)
		delete(h.clients, client)
		h.logger.Warn().Uint64("client_id", client.id).Msg("dropping slow websocket client")
	}

	metrics.RecordWSMessage(message.Type)
	metrics.SetWSConnections(len(h.clients))
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.sortedClients() {
		close(client.send)
		delete(h.clients, client)
	}
	metrics.SetWSConnections(0)
}

// BroadcastJSON queues a message for every connected client. It never blocks;
// when the queue is full the message is dropped.
func (h *Hub) BroadcastJSON(messageType string, data interface{}) bool {
	select {
	case h.broadcast <- Message{Type: messageType, Data: data}:
		return true
	default:
		h.logger.Warn().Str("message_type", messageType).Msg("broadcast channel full, dropping message")
		return false
	}
}

// BroadcastScoresInvalidated tells clients that scores for version are stale.
func (h *Hub) BroadcastScoresInvalidated(version uint64, reason string) bool {
	return h.BroadcastJSON(MessageTypeScoresInvalidated, ScoresInvalidatedData{
		Version:   version,
		Reason:    reason,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// BroadcastIntegrityAlert tells clients the new dataset has violations.
func (h *Hub) BroadcastIntegrityAlert(version uint64, violations int) bool {
	return h.BroadcastJSON(MessageTypeIntegrityAlert, IntegrityAlertData{
		Version:    version,
		Violations: violations,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// MarshalMessage converts a message to JSON
func MarshalMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
