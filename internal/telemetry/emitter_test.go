package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/velumsign/velum/internal/storage"
)

type recordingStore struct {
	events []storage.TelemetryEvent
}

func (r *recordingStore) AppendTelemetryEvent(_ context.Context, event storage.TelemetryEvent) error {
	r.events = append(r.events, event)
	return nil
}

func TestEmitDefaultsSeverityAndTimestamp(t *testing.T) {
	store := &recordingStore{}
	emitter := NewEmitter(store)
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	emitter.clock = func() time.Time { return now }

	if err := emitter.Emit(context.Background(), storage.TelemetryEvent{Event: EventRequestCreated}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(store.events) != 1 {
		t.Fatalf("events len = %d, want 1", len(store.events))
	}
	got := store.events[0]
	if got.Severity != string(SeverityInfo) {
		t.Fatalf("severity = %q, want INFO", got.Severity)
	}
	if !got.Timestamp.Equal(now) {
		t.Fatalf("timestamp = %v, want %v", got.Timestamp, now)
	}
}

func TestEmitNilReceiverAndNilStore(t *testing.T) {
	var emitter *Emitter
	if err := emitter.Emit(context.Background(), storage.TelemetryEvent{Event: "x"}); err != nil {
		t.Fatalf("nil emitter: %v", err)
	}
	if err := NewEmitter(nil).Emit(context.Background(), storage.TelemetryEvent{Event: "x"}); err != nil {
		t.Fatalf("nil store: %v", err)
	}
}

func TestEmitRequestFinalizedAttributes(t *testing.T) {
	store := &recordingStore{}
	emitter := NewEmitter(store)

	if err := emitter.EmitRequestFinalized(context.Background(), "req-1", 3, 4, 1); err != nil {
		t.Fatalf("emit request finalized: %v", err)
	}
	got := store.events[0]
	if got.Event != EventRequestFinalized {
		t.Fatalf("event = %q", got.Event)
	}
	want := map[string]string{"request_id": "req-1", "populated": "3", "total": "4", "skipped": "1"}
	for key, value := range want {
		if got.Attributes[key] != value {
			t.Fatalf("attribute %s = %q, want %q", key, got.Attributes[key], value)
		}
	}
}

func TestEmitLinkVisited(t *testing.T) {
	store := &recordingStore{}
	emitter := NewEmitter(store)

	if err := emitter.EmitLinkVisited(context.Background(), "lnk-1", "offer-letter"); err != nil {
		t.Fatalf("emit link visited: %v", err)
	}
	got := store.events[0]
	if got.Event != EventLinkVisited || got.Attributes["slug"] != "offer-letter" {
		t.Fatalf("event = %+v", got)
	}
}
