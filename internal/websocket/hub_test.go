// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package websocket

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// startHub runs a hub until the test ends.
func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.Serve(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return hub
}

func testClient(hub *Hub, buffer int) *Client {
	return &Client{id: clientIDCounter.Add(1), hub: hub, send: make(chan Message, buffer)}
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.GetClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("client count = %d, want %d", hub.GetClientCount(), want)
		}
		time.Sleep(time.Millisecond)
	}
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case msg, ok := <-c.send:
		if !ok {
			t.Fatal("send channel closed")
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
	return Message{}
}

func TestNewHub(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	if hub.clients == nil || hub.broadcast == nil || hub.Register == nil || hub.Unregister == nil {
		t.Fatal("hub not fully initialized")
	}
	if hub.GetClientCount() != 0 {
		t.Errorf("GetClientCount() = %d, want 0", hub.GetClientCount())
	}
	if hub.String() != "websocket-hub" {
		t.Errorf("String() = %q", hub.String())
	}
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := startHub(t)
	a, b := testClient(hub, 4), testClient(hub, 4)

	hub.Register <- a
	hub.Register <- b
	waitForClients(t, hub, 2)

	hub.Unregister <- a
	waitForClients(t, hub, 1)
	if _, ok := <-a.send; ok {
		t.Error("unregistered client's send channel should be closed")
	}

	// Unregistering twice is harmless.
	hub.Unregister <- a
	waitForClients(t, hub, 1)
}

func TestHub_RegisterClient(t *testing.T) {
	t.Run("running hub accepts", func(t *testing.T) {
		hub := startHub(t)
		if err := hub.RegisterClient(context.Background(), testClient(hub, 4), time.Second); err != nil {
			t.Fatalf("RegisterClient() error = %v", err)
		}
		waitForClients(t, hub, 1)
	})

	t.Run("stopped hub times out", func(t *testing.T) {
		hub := NewHub(zerolog.Nop())
		err := hub.RegisterClient(context.Background(), testClient(hub, 4), 20*time.Millisecond)
		if !errors.Is(err, ErrRegisterTimeout) {
			t.Errorf("RegisterClient() error = %v, want ErrRegisterTimeout", err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		hub := NewHub(zerolog.Nop())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := hub.RegisterClient(ctx, testClient(hub, 4), time.Minute)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("RegisterClient() error = %v, want context.Canceled", err)
		}
	})
}

func TestHub_BroadcastScoresInvalidated(t *testing.T) {
	hub := startHub(t)
	clients := []*Client{testClient(hub, 4), testClient(hub, 4)}
	for _, c := range clients {
		hub.Register <- c
	}
	waitForClients(t, hub, 2)

	if !hub.BroadcastScoresInvalidated(7, "put_edge") {
		t.Fatal("broadcast dropped")
	}

	for _, c := range clients {
		msg := receive(t, c)
		if msg.Type != MessageTypeScoresInvalidated {
			t.Errorf("type = %s, want %s", msg.Type, MessageTypeScoresInvalidated)
		}
		data, ok := msg.Data.(ScoresInvalidatedData)
		if !ok {
			t.Fatalf("data type = %T", msg.Data)
		}
		if data.Version != 7 || data.Reason != "put_edge" || data.Timestamp == "" {
			t.Errorf("data = %+v", data)
		}
	}
}

func TestHub_BroadcastIntegrityAlert(t *testing.T) {
	hub := startHub(t)
	c := testClient(hub, 4)
	hub.Register <- c
	waitForClients(t, hub, 1)

	hub.BroadcastIntegrityAlert(3, 2)

	msg := receive(t, c)
	data := msg.Data.(IntegrityAlertData)
	if msg.Type != MessageTypeIntegrityAlert || data.Violations != 2 || data.Version != 3 {
		t.Errorf("message = %+v", msg)
	}
}

func TestHub_SlowClientDropped(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	slow := testClient(hub, 1)
	fast := testClient(hub, 4)
	hub.clients[slow] = true
	hub.clients[fast] = true

	hub.broadcastToClients(Message{Type: "a"})
	hub.broadcastToClients(Message{Type: "b"})

	if hub.GetClientCount() != 1 {
		t.Fatalf("GetClientCount() = %d, want 1", hub.GetClientCount())
	}
	if _, ok := hub.clients[fast]; !ok {
		t.Error("fast client should remain")
	}
	if len(fast.send) != 2 {
		t.Errorf("fast client queued %d messages, want 2", len(fast.send))
	}
}

func TestHub_BroadcastQueueFull(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	for i := 0; i < cap(hub.broadcast); i++ {
		if !hub.BroadcastJSON("fill", i) {
			t.Fatalf("broadcast %d dropped before queue was full", i)
		}
	}
	if hub.BroadcastJSON("overflow", nil) {
		t.Error("expected drop when queue is full")
	}
}

func TestHub_Serve_Shutdown(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	c := testClient(hub, 4)
	hub.clients[c] = true

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := hub.Serve(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if hub.GetClientCount() != 0 {
		t.Errorf("clients remaining after shutdown: %d", hub.GetClientCount())
	}
	if _, ok := <-c.send; ok {
		t.Error("client channel should be closed on shutdown")
	}
}

func TestGetShutdownReason(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	if got := getShutdownReason(canceled); got != ShutdownReasonContextCanceled {
		t.Errorf("canceled reason = %s", got)
	}

	expired, cancel2 := context.WithTimeout(context.Background(), -time.Second)
	defer cancel2()
	if got := getShutdownReason(expired); got != ShutdownReasonContextDeadline {
		t.Errorf("deadline reason = %s", got)
	}
}

func TestMarshalMessage(t *testing.T) {
	data, err := MarshalMessage(Message{
		Type: MessageTypeScoresInvalidated,
		Data: ScoresInvalidatedData{Version: 2, Reason: "import", Timestamp: "2026-01-01T00:00:00Z"},
	})
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	for _, want := range []string{`"type":"scores_invalidated"`, `"version":2`, `"reason":"import"`} {
		if !strings.Contains(got, want) {
			t.Errorf("marshaled %s missing %s", got, want)
		}
	}
}
