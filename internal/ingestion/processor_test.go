package ingestion

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"freight-tms/internal/domain/load"
)

// stubLoadRepo satisfies load.Repository through embedding; only Exists is
// implemented, which is all the pipeline touches.
type stubLoadRepo struct {
	load.Repository
	known map[uuid.UUID]bool

	mu     sync.Mutex
	calls  int
	events []*load.StatusEvent
}

func (r *stubLoadRepo) Exists(_ context.Context, loadID uuid.UUID) (bool, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	return r.known[loadID], nil
}

func (r *stubLoadRepo) existsCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func (r *stubLoadRepo) CreateEvent(_ context.Context, e *load.StatusEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

type stubTrackingRepo struct {
	load.TrackingRepository

	mu       sync.Mutex
	inserted []*load.TrackingPing
}

func (r *stubTrackingRepo) BatchInsertPings(_ context.Context, pings []*load.TrackingPing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inserted = append(r.inserted, pings...)
	return nil
}

func (r *stubTrackingRepo) insertedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.inserted)
}

func pingFor(loadID uuid.UUID) *TrackingPingMessage {
	speed := 62.5
	return &TrackingPingMessage{
		LoadID:    loadID.String(),
		Timestamp: time.Now().UTC(),
		Latitude:  40.7357,
		Longitude: -74.1724,
		SpeedMPH:  &speed,
	}
}

func TestProcessPingBatchesAtThreshold(t *testing.T) {
	loadID := uuid.New()
	loads := &stubLoadRepo{known: map[uuid.UUID]bool{loadID: true}}
	tracking := &stubTrackingRepo{}
	p := NewProcessor(loads, tracking, 3, 1, 10, time.Hour)

	for i := 0; i < 2; i++ {
		if err := p.processPing(pingFor(loadID)); err != nil {
			t.Fatalf("processPing error: %v", err)
		}
	}
	if tracking.insertedCount() != 0 {
		t.Fatalf("batch flushed below threshold: %d rows", tracking.insertedCount())
	}

	if err := p.processPing(pingFor(loadID)); err != nil {
		t.Fatalf("processPing error: %v", err)
	}
	if tracking.insertedCount() != 3 {
		t.Errorf("inserted = %d, want 3", tracking.insertedCount())
	}
}

func TestUnknownLoadIsDroppedSilently(t *testing.T) {
	loads := &stubLoadRepo{known: map[uuid.UUID]bool{}}
	tracking := &stubTrackingRepo{}
	p := NewProcessor(loads, tracking, 1, 1, 10, time.Hour)

	if err := p.processPing(pingFor(uuid.New())); err != nil {
		t.Fatalf("unknown load should not error: %v", err)
	}
	if tracking.insertedCount() != 0 {
		t.Errorf("ping for unknown load was inserted")
	}
	if m := p.GetMetrics(); m.UnknownLoads != 1 {
		t.Errorf("UnknownLoads = %d, want 1", m.UnknownLoads)
	}
}

func TestExistsCheckIsCached(t *testing.T) {
	loadID := uuid.New()
	loads := &stubLoadRepo{known: map[uuid.UUID]bool{loadID: true}}
	tracking := &stubTrackingRepo{}
	p := NewProcessor(loads, tracking, 100, 1, 10, time.Hour)

	for i := 0; i < 5; i++ {
		if err := p.processPing(pingFor(loadID)); err != nil {
			t.Fatalf("processPing error: %v", err)
		}
	}
	if calls := loads.existsCalls(); calls != 1 {
		t.Errorf("Exists called %d times, want 1", calls)
	}
}

func TestInvalidPingIsRejected(t *testing.T) {
	loads := &stubLoadRepo{known: map[uuid.UUID]bool{}}
	tracking := &stubTrackingRepo{}
	p := NewProcessor(loads, tracking, 1, 1, 10, time.Hour)

	msg := pingFor(uuid.New())
	msg.Latitude = 123.4
	if err := p.processPing(msg); err == nil {
		t.Error("expected error for out-of-range latitude")
	}
}

func TestBreadcrumbPingRecordsTimelineEvent(t *testing.T) {
	loadID := uuid.New()
	loads := &stubLoadRepo{known: map[uuid.UUID]bool{loadID: true}}
	tracking := &stubTrackingRepo{}
	p := NewProcessor(loads, tracking, 100, 1, 10, time.Hour)

	msg := pingFor(loadID)
	msg.Breadcrumb = true
	if err := p.processPing(msg); err != nil {
		t.Fatalf("processPing error: %v", err)
	}

	loads.mu.Lock()
	defer loads.mu.Unlock()
	if len(loads.events) != 1 {
		t.Fatalf("events = %d, want 1", len(loads.events))
	}
	e := loads.events[0]
	if e.EventType != "tracking_ping" || e.LoadID != loadID {
		t.Errorf("event = %+v", e)
	}
	if e.Lat == nil || *e.Lat != msg.Latitude {
		t.Errorf("event lat = %v", e.Lat)
	}
}

func TestTimedFlushDrainsBuffer(t *testing.T) {
	loadID := uuid.New()
	loads := &stubLoadRepo{known: map[uuid.UUID]bool{loadID: true}}
	tracking := &stubTrackingRepo{}
	p := NewProcessor(loads, tracking, 100, 1, 10, 20*time.Millisecond)
	p.Start()
	defer p.Stop()

	p.ProcessPing(pingFor(loadID))

	deadline := time.Now().Add(2 * time.Second)
	for tracking.insertedCount() < 1 {
		if time.Now().After(deadline) {
			t.Fatalf("timed flusher never inserted the buffered ping")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	loads := &stubLoadRepo{known: map[uuid.UUID]bool{}}
	tracking := &stubTrackingRepo{}
	p := NewProcessor(loads, tracking, 100, 1, 10, time.Hour)
	p.Start()

	p.Stop()
	p.Stop()
}

func TestStopFlushesRemainingBuffer(t *testing.T) {
	loadID := uuid.New()
	loads := &stubLoadRepo{known: map[uuid.UUID]bool{loadID: true}}
	tracking := &stubTrackingRepo{}
	p := NewProcessor(loads, tracking, 100, 1, 10, time.Hour)
	p.Start()

	p.ProcessPing(pingFor(loadID))
	p.ProcessPing(pingFor(loadID))
	p.Stop()

	if tracking.insertedCount() != 2 {
		t.Errorf("inserted = %d after Stop, want 2", tracking.insertedCount())
	}
}
