// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/reliefmap/internal/logging"
	"github.com/tomtom215/reliefmap/internal/metrics"
)

// DefaultBufferSize is the per-subscriber output buffer.
const DefaultBufferSize = 64

// Bus is the in-process pub/sub for dataset events.
type Bus struct {
	pubsub *gochannel.GoChannel
}

// NewBus creates a non-persistent in-process bus. Events published while no
// handler is subscribed are dropped; consumers only need the latest version.
func NewBus(bufferSize int64, logger watermill.LoggerAdapter) *Bus {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: bufferSize,
		}, logger),
	}
}

// Publisher returns the underlying watermill publisher.
func (b *Bus) Publisher() message.Publisher {
	return b.pubsub
}

// Subscriber returns the underlying watermill subscriber.
func (b *Bus) Subscriber() message.Subscriber {
	return b.pubsub
}

// PublishDatasetChanged publishes ev on TopicDatasetChanged. The correlation
// ID from ctx travels in the message metadata.
func (b *Bus) PublishDatasetChanged(ctx context.Context, ev *DatasetChanged) error {
	payload, err := ev.Marshal()
	if err != nil {
		return fmt.Errorf("encode dataset event: %w", err)
	}

	msg := message.NewMessage(ev.EventID, payload)
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		middleware.SetCorrelationID(id, msg)
	}

	if err := b.pubsub.Publish(TopicDatasetChanged, msg); err != nil {
		return fmt.Errorf("publish %s: %w", TopicDatasetChanged, err)
	}
	metrics.RecordEventPublished(TopicDatasetChanged)
	return nil
}

// Close closes the bus. Subsequent publishes fail.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
