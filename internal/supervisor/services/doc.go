// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

// Package services adapts components that do not already implement
// suture.Service. Most reliefmap services (the store GC, the score cache
// janitor, the event router and the websocket hub) implement Serve and String
// themselves; the HTTP server needs the wrapper in this package because
// *http.Server splits its lifecycle across ListenAndServe and Shutdown.
package services
