// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

/*
Package events carries dataset change notifications between the store and the
parts of the server that depend on dataset contents.

Every committed store write publishes a DatasetChanged on the in-process Bus
(a watermill GoChannel). The Router delivers it to the InvalidationHandler,
which evicts cached scores older than the new version, pushes a
scores_invalidated message to websocket clients, and raises an integrity
alert when the new dataset has violations.

The Router wraps watermill's message.Router with panic recovery and retry
with exponential backoff. It implements suture.Service; each Serve call
builds a new watermill router so a restart after failure starts clean.

The bus is not persistent. A change published while no handler is subscribed
is lost, which is harmless because handlers only care about the newest
version.
*/
package events
