// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package events

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
)

type fakeCache struct {
	mu     sync.Mutex
	before []uint64
}

func (c *fakeCache) EvictBefore(version uint64) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.before = append(c.before, version)
	return 2
}

func (c *fakeCache) calls() []uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]uint64(nil), c.before...)
}

type fakeHub struct {
	mu          sync.Mutex
	invalidated []uint64
	reasons     []string
	alerts      []int
}

func (h *fakeHub) BroadcastScoresInvalidated(version uint64, reason string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.invalidated = append(h.invalidated, version)
	h.reasons = append(h.reasons, reason)
	return true
}

func (h *fakeHub) BroadcastIntegrityAlert(_ uint64, violations int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.alerts = append(h.alerts, violations)
	return true
}

type fakeIntegrity struct {
	violations int
	err        error
}

func (f *fakeIntegrity) IntegrityViolations(context.Context) (uint64, int, error) {
	return 1, f.violations, f.err
}

func datasetMessage(t *testing.T, version uint64, op string) *message.Message {
	t.Helper()
	ev := NewDatasetChanged(version, op, "")
	payload, err := ev.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	return message.NewMessage(ev.EventID, payload)
}

func TestInvalidationHandler_Handle(t *testing.T) {
	c := &fakeCache{}
	hub := &fakeHub{}
	h := NewInvalidationHandler(c, hub, &fakeIntegrity{})

	if err := h.Handle(datasetMessage(t, 4, "put_edge")); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if got := c.calls(); len(got) != 1 || got[0] != 4 {
		t.Errorf("EvictBefore calls = %v, want [4]", got)
	}
	if len(hub.invalidated) != 1 || hub.invalidated[0] != 4 || hub.reasons[0] != "put_edge" {
		t.Errorf("invalidations = %v %v", hub.invalidated, hub.reasons)
	}
	if len(hub.alerts) != 0 {
		t.Errorf("alerts = %v, want none", hub.alerts)
	}
	if s := h.Stats(); s.Received != 1 || s.Processed != 1 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestInvalidationHandler_IntegrityAlert(t *testing.T) {
	hub := &fakeHub{}
	h := NewInvalidationHandler(nil, hub, &fakeIntegrity{violations: 3})

	if err := h.Handle(datasetMessage(t, 2, "import")); err != nil {
		t.Fatal(err)
	}
	if len(hub.alerts) != 1 || hub.alerts[0] != 3 {
		t.Errorf("alerts = %v, want [3]", hub.alerts)
	}
}

func TestInvalidationHandler_IntegrityErrorRetries(t *testing.T) {
	h := NewInvalidationHandler(nil, nil, &fakeIntegrity{err: errors.New("store closed")})

	if err := h.Handle(datasetMessage(t, 2, "import")); err == nil {
		t.Error("Handle() expected error when integrity check fails")
	}
	if s := h.Stats(); s.Processed != 0 {
		t.Errorf("Processed = %d, want 0", s.Processed)
	}
}

func TestInvalidationHandler_MalformedPayload(t *testing.T) {
	c := &fakeCache{}
	h := NewInvalidationHandler(c, nil, nil)

	if err := h.Handle(message.NewMessage("bad", []byte("{"))); err != nil {
		t.Errorf("Handle() error = %v, want nil for malformed payload", err)
	}
	if len(c.calls()) != 0 {
		t.Error("cache touched for malformed payload")
	}
	if s := h.Stats(); s.ParseErrors != 1 || s.Received != 1 {
		t.Errorf("Stats() = %+v", s)
	}
}
