// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package events

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reliefmap/internal/logging"
	"github.com/tomtom215/reliefmap/internal/metrics"
)

// HandlerName is the router name of the invalidation handler.
const HandlerName = "score-invalidation"

// Invalidator drops cached results older than a dataset version.
type Invalidator interface {
	EvictBefore(version uint64) int
}

// Broadcaster pushes notifications to connected dashboards.
type Broadcaster interface {
	BroadcastScoresInvalidated(version uint64, reason string) bool
	BroadcastIntegrityAlert(version uint64, violations int) bool
}

// IntegrityChecker reports how many integrity violations the current
// dataset has.
type IntegrityChecker interface {
	IntegrityViolations(ctx context.Context) (version uint64, violations int, err error)
}

// InvalidationHandler reacts to dataset changes: it evicts stale cached
// scores, tells dashboards to refetch, and raises an integrity alert when the
// new dataset has violations. Any dependency may be nil.
type InvalidationHandler struct {
	cache     Invalidator
	hub       Broadcaster
	integrity IntegrityChecker
	logger    zerolog.Logger

	received    atomic.Int64
	processed   atomic.Int64
	parseErrors atomic.Int64
}

// HandlerStats is a point-in-time view of handler counters.
type HandlerStats struct {
	Received    int64 `json:"received"`
	Processed   int64 `json:"processed"`
	ParseErrors int64 `json:"parse_errors"`
}

// NewInvalidationHandler creates the dataset.changed consumer.
func NewInvalidationHandler(cache Invalidator, hub Broadcaster, integrity IntegrityChecker) *InvalidationHandler {
	return &InvalidationHandler{
		cache:     cache,
		hub:       hub,
		integrity: integrity,
		logger:    logging.WithComponent("events"),
	}
}

// Register adds the handler to r.
func (h *InvalidationHandler) Register(r *Router) {
	r.AddConsumerHandler(HandlerName, TopicDatasetChanged, h.Handle)
}

// Handle processes one dataset.changed message. Malformed payloads are
// counted and acked; retrying them cannot succeed.
func (h *InvalidationHandler) Handle(msg *message.Message) error {
	h.received.Add(1)

	ev, err := UnmarshalDatasetChanged(msg.Payload)
	if err != nil {
		h.parseErrors.Add(1)
		metrics.RecordEventHandled(TopicDatasetChanged, err)
		h.logger.Warn().Err(err).Str("message_uuid", msg.UUID).Msg("dropping malformed dataset event")
		return nil
	}

	ctx := msg.Context()
	if id := middleware.MessageCorrelationID(msg); id != "" {
		ctx = logging.ContextWithCorrelationID(ctx, id)
	}
	ctx = logging.ContextWithDatasetVersion(ctx, ev.Version)
	log := h.logger.With().
		Str("correlation_id", logging.CorrelationIDFromContext(ctx)).
		Uint64("dataset_version", ev.Version).
		Str("operation", ev.Operation).
		Logger()

	evicted := 0
	if h.cache != nil {
		evicted = h.cache.EvictBefore(ev.Version)
		metrics.RecordCacheInvalidation(evicted)
	}
	if h.hub != nil {
		h.hub.BroadcastScoresInvalidated(ev.Version, ev.Operation)
	}

	if h.integrity != nil {
		version, violations, err := h.integrity.IntegrityViolations(ctx)
		if err != nil {
			metrics.RecordEventHandled(TopicDatasetChanged, err)
			return fmt.Errorf("integrity check for version %d: %w", ev.Version, err)
		}
		if violations > 0 && h.hub != nil {
			h.hub.BroadcastIntegrityAlert(version, violations)
		}
	}

	h.processed.Add(1)
	metrics.RecordEventHandled(TopicDatasetChanged, nil)
	log.Debug().Int("evicted", evicted).Msg("dataset change handled")
	return nil
}

// Stats returns the handler counters.
func (h *InvalidationHandler) Stats() HandlerStats {
	return HandlerStats{
		Received:    h.received.Load(),
		Processed:   h.processed.Load(),
		ParseErrors: h.parseErrors.Load(),
	}
}
