// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

/*
Package websocket pushes dataset change notifications to dashboards.

A Hub owns the set of connected clients; each Client runs a read pump (ping
handling, disconnect detection) and a write pump (queued messages and keepalive
pings). Clients are listeners only: they refetch scores over HTTP when told the
dataset changed.

Message types:

  - scores_invalidated: a store mutation produced a new dataset version
  - integrity_alert: the new version has integrity violations
  - pong: reply to a client ping

The hub runs under the supervisor tree:

	hub := websocket.NewHub(logging.WithComponent("websocket"))
	tree.AddMessagingService(hub)

	// in the /ws handler, after upgrading:
	client := websocket.NewClient(hub, conn)
	if err := hub.RegisterClient(r.Context(), client, 10*time.Second); err != nil {
		conn.Close()
		return
	}
	client.Start()

Broadcasts never block the caller. A client whose send buffer is full is
disconnected rather than allowed to stall the hub.
*/
package websocket
