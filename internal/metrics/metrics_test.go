// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package metrics

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordComputation(t *testing.T) {
	before := testutil.ToFloat64(ComputationErrors.WithLabelValues("deployment", "boom"))

	RecordComputation("deployment", 2*time.Millisecond, nil)
	RecordComputation("deployment", 3*time.Millisecond, errors.New("boom"))

	after := testutil.ToFloat64(ComputationErrors.WithLabelValues("deployment", "boom"))
	if after-before != 1 {
		t.Errorf("error counter delta = %f, want 1", after-before)
	}
}

func TestRecordComputation_ErrorTruncation(t *testing.T) {
	long := strings.Repeat("x", 80)
	RecordComputation("world", time.Millisecond, errors.New(long))

	got := testutil.ToFloat64(ComputationErrors.WithLabelValues("world", long[:50]))
	if got < 1 {
		t.Errorf("truncated label counter = %f, want >= 1", got)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	counter := APIRequestsTotal.WithLabelValues("GET", "/api/v1/world", "200")
	before := testutil.ToFloat64(counter)

	RecordAPIRequest("GET", "/api/v1/world", "200", 25*time.Millisecond)
	RecordAPIRequest("GET", "/api/v1/world", "200", 5*time.Millisecond)

	if delta := testutil.ToFloat64(counter) - before; delta != 2 {
		t.Errorf("request counter delta = %f, want 2", delta)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active = %f, want %f", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active = %f, want %f", got, before)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("urgency"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("urgency"))

	RecordCacheLookup("urgency", true)
	RecordCacheLookup("urgency", false)
	RecordCacheLookup("urgency", false)

	if d := testutil.ToFloat64(CacheHits.WithLabelValues("urgency")) - hits; d != 1 {
		t.Errorf("hits delta = %f, want 1", d)
	}
	if d := testutil.ToFloat64(CacheMisses.WithLabelValues("urgency")) - misses; d != 2 {
		t.Errorf("misses delta = %f, want 2", d)
	}
}

func TestRecordStoreWrite(t *testing.T) {
	ok := testutil.ToFloat64(StoreWrites.WithLabelValues("put_edge", "ok"))
	failed := testutil.ToFloat64(StoreWrites.WithLabelValues("put_edge", "error"))

	RecordStoreWrite("put_edge", nil)
	RecordStoreWrite("put_edge", errors.New("disk full"))

	if d := testutil.ToFloat64(StoreWrites.WithLabelValues("put_edge", "ok")) - ok; d != 1 {
		t.Errorf("ok delta = %f, want 1", d)
	}
	if d := testutil.ToFloat64(StoreWrites.WithLabelValues("put_edge", "error")) - failed; d != 1 {
		t.Errorf("error delta = %f, want 1", d)
	}
}

func TestUpdateDataset(t *testing.T) {
	UpdateDataset(7, 8, 32, 15, 120, 3)

	if got := testutil.ToFloat64(DatasetVersion); got != 7 {
		t.Errorf("version = %f, want 7", got)
	}
	if got := testutil.ToFloat64(DatasetEntities.WithLabelValues("region")); got != 32 {
		t.Errorf("regions = %f, want 32", got)
	}
	if got := testutil.ToFloat64(IntegrityViolations); got != 3 {
		t.Errorf("violations = %f, want 3", got)
	}
}

func TestWebSocketMetrics(t *testing.T) {
	SetWSConnections(4)
	if got := testutil.ToFloat64(WSConnections); got != 4 {
		t.Errorf("connections = %f, want 4", got)
	}

	before := testutil.ToFloat64(WSMessagesSent.WithLabelValues("scores_invalidated"))
	RecordWSMessage("scores_invalidated")
	if d := testutil.ToFloat64(WSMessagesSent.WithLabelValues("scores_invalidated")) - before; d != 1 {
		t.Errorf("sent delta = %f, want 1", d)
	}
}

func TestStatusLabel(t *testing.T) {
	if got := StatusLabel(404); got != "404" {
		t.Errorf("StatusLabel(404) = %q", got)
	}
}

func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				RecordComputation("region", time.Microsecond, nil)
				RecordCacheLookup("region", j%2 == 0)
				RecordEventHandled("dataset.changed", nil)
				RecordPlan(j)
			}
		}()
	}
	wg.Wait()
}

func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		ComputationDuration,
		ComputationErrors,
		PlanUnitsAllocated,
		CoordinationSuggestions,
		DatasetVersion,
		DatasetEntities,
		IntegrityViolations,
		StoreWrites,
		APIRequestsTotal,
		APIRequestDuration,
		APIActiveRequests,
		CacheHits,
		CacheMisses,
		CacheInvalidations,
		EventsPublished,
		EventsHandled,
		WSConnections,
		WSMessagesSent,
		AppInfo,
	}

	for _, c := range collectors {
		ch := make(chan *prometheus.Desc, 10)
		c.Describe(ch)
		close(ch)

		count := 0
		for range ch {
			count++
		}
		if count == 0 {
			t.Errorf("collector has no descriptors")
		}
	}
}

func BenchmarkRecordComputation(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordComputation("world", time.Millisecond, nil)
	}
}
