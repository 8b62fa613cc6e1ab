// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// RouterConfig holds configuration for the Watermill Router.
type RouterConfig struct {
	// CloseTimeout is how long to wait for handlers to finish when closing.
	CloseTimeout time.Duration

	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64
}

// DefaultRouterConfig returns production defaults for the Router.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CloseTimeout:         10 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 100 * time.Millisecond,
		RetryMaxInterval:     2 * time.Second,
		RetryMultiplier:      2.0,
	}
}

type handlerSpec struct {
	name    string
	topic   string
	handler message.NoPublishHandlerFunc
}

// Router runs consumer handlers against the bus. A fresh watermill router is
// built on every Serve call so the supervisor can restart it after a failure.
type Router struct {
	config     RouterConfig
	subscriber message.Subscriber
	logger     watermill.LoggerAdapter

	mu       sync.Mutex
	handlers []handlerSpec
	running  chan struct{}
}

// NewRouter creates a router reading from subscriber.
func NewRouter(cfg RouterConfig, subscriber message.Subscriber, logger watermill.LoggerAdapter) *Router {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return &Router{
		config:     cfg,
		subscriber: subscriber,
		logger:     logger,
		running:    make(chan struct{}),
	}
}

// AddConsumerHandler registers a handler that produces no output messages.
// Handlers added after Serve starts take effect on the next restart.
func (r *Router) AddConsumerHandler(name, topic string, handler message.NoPublishHandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = append(r.handlers, handlerSpec{name: name, topic: topic, handler: handler})
}

// Running returns a channel that closes once the first run has subscribed
// every handler.
func (r *Router) Running() <-chan struct{} {
	return r.running
}

// Serve implements suture.Service.
func (r *Router) Serve(ctx context.Context) error {
	wmRouter, err := r.build()
	if err != nil {
		return err
	}

	go func() {
		select {
		case <-wmRouter.Running():
			r.markRunning()
		case <-ctx.Done():
		}
	}()

	err = wmRouter.Run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("event router: %w", err)
	}
	return fmt.Errorf("event router stopped unexpectedly")
}

// String implements fmt.Stringer for suture logging.
func (r *Router) String() string {
	return "event-router"
}

func (r *Router) build() (*message.Router, error) {
	wmRouter, err := message.NewRouter(message.RouterConfig{
		CloseTimeout: r.config.CloseTimeout,
	}, r.logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	// Recoverer: Convert panics to errors
	wmRouter.AddMiddleware(middleware.Recoverer)

	// Retry: Exponential backoff for transient failures
	retry := middleware.Retry{
		MaxRetries:      r.config.RetryMaxRetries,
		InitialInterval: r.config.RetryInitialInterval,
		MaxInterval:     r.config.RetryMaxInterval,
		Multiplier:      r.config.RetryMultiplier,
		Logger:          r.logger,
	}
	wmRouter.AddMiddleware(retry.Middleware)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.handlers {
		wmRouter.AddConsumerHandler(h.name, h.topic, r.subscriber, h.handler)
	}
	return wmRouter, nil
}

func (r *Router) markRunning() {
	r.mu.Lock()
	defer r.mu.Unlock()
	select {
	case <-r.running:
	default:
		close(r.running)
	}
}
