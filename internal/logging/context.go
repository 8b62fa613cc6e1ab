// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	correlationIDKey  contextKey = "correlation_id"
	requestIDKey      contextKey = "request_id"
	datasetVersionKey contextKey = "dataset_version"
	loggerKey         contextKey = "logger"
)

// GenerateCorrelationID returns a short id for tying together the log lines of
// one background operation (an import, an event delivery).
func GenerateCorrelationID() string {
	return uuid.New().String()[:8]
}

// GenerateRequestID returns a full UUID.
func GenerateRequestID() string {
	return uuid.New().String()
}

func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// ContextWithDatasetVersion records which dataset version a computation runs
// against so every line it logs can be matched to a snapshot.
func ContextWithDatasetVersion(ctx context.Context, version uint64) context.Context {
	return context.WithValue(ctx, datasetVersionKey, version)
}

// DatasetVersionFromContext returns the version and whether one was set.
func DatasetVersionFromContext(ctx context.Context) (uint64, bool) {
	v, ok := ctx.Value(datasetVersionKey).(uint64)
	return v, ok
}

// ContextWithLogger stores a logger for Ctx to build on.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext returns the stored logger, or the global one.
func LoggerFromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return logger
	}
	return Logger()
}

// Ctx returns a logger carrying the correlation id, request id and dataset
// version found in ctx.
//
//	logging.Ctx(ctx).Info().Int("budget", budget).Msg("Deployment plan computed")
func Ctx(ctx context.Context) *zerolog.Logger {
	logger := CtxWith(ctx).Logger()
	return &logger
}

// CtxWith is Ctx for callers that add more fields before building.
func CtxWith(ctx context.Context) zerolog.Context {
	logger := LoggerFromContext(ctx)
	c := logger.With()
	if id := CorrelationIDFromContext(ctx); id != "" {
		c = c.Str("correlation_id", id)
	}
	if id := RequestIDFromContext(ctx); id != "" {
		c = c.Str("request_id", id)
	}
	if v, ok := DatasetVersionFromContext(ctx); ok {
		c = c.Uint64("dataset_version", v)
	}
	return c
}
