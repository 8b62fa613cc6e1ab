// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

// Package logging provides the process-wide zerolog logger.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//	logging.Err(err).Msg("Import failed")
//
// Long-lived components take a child logger once and keep it:
//
//	logger := logging.WithComponent("dashboard")
//
// # Context
//
// Request-scoped code logs through Ctx, which adds request_id, correlation_id
// and dataset_version when the context carries them:
//
//	ctx = logging.ContextWithDatasetVersion(ctx, snap.Version)
//	logging.Ctx(ctx).Debug().Msg("World scores computed")
//
// # slog
//
// SlogHandler adapts zerolog to log/slog for libraries that only accept a
// *slog.Logger (the suture supervisor via sutureslog).
//
// Always terminate event chains with Msg or Send; an unterminated chain is
// never written.
package logging
