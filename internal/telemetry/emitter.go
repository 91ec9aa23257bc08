// Package telemetry records operational events for signing activity.
package telemetry

import (
	"context"
	"strconv"
	"time"

	"github.com/velumsign/velum/internal/storage"
	"go.opentelemetry.io/otel/trace"
)

// Severity describes the telemetry severity level.
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// Event names emitted by the web modules.
const (
	EventRequestCreated   = "request.created"
	EventRequestFinalized = "request.finalized"
	EventSignerViewed     = "signer.viewed"
	EventSignerSigned     = "signer.signed"
	EventSignerDeclined   = "signer.declined"
	EventLinkVisited      = "link.visited"
)

// Emitter records operational telemetry events.
type Emitter struct {
	store storage.TelemetryStore
	clock func() time.Time
}

// NewEmitter creates a new telemetry emitter.
func NewEmitter(store storage.TelemetryStore) *Emitter {
	return &Emitter{store: store, clock: time.Now}
}

// Emit records a telemetry event. It is a no-op when the store is nil.
func (e *Emitter) Emit(ctx context.Context, evt storage.TelemetryEvent) error {
	if e == nil || e.store == nil {
		return nil
	}
	if evt.Severity == "" {
		evt.Severity = string(SeverityInfo)
	}
	if evt.Timestamp.IsZero() {
		if e.clock == nil {
			evt.Timestamp = time.Now().UTC()
		} else {
			evt.Timestamp = e.clock().UTC()
		}
	}
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		if evt.Attributes == nil {
			evt.Attributes = make(map[string]string, 2)
		}
		evt.Attributes["trace_id"] = sc.TraceID().String()
		evt.Attributes["span_id"] = sc.SpanID().String()
	}
	return e.store.AppendTelemetryEvent(ctx, evt)
}

// EmitRequestFinalized records the outcome of input population for a request.
func (e *Emitter) EmitRequestFinalized(ctx context.Context, requestID string, populated, total, skipped int) error {
	return e.Emit(ctx, storage.TelemetryEvent{
		Event: EventRequestFinalized,
		Attributes: map[string]string{
			"request_id": requestID,
			"populated":  strconv.Itoa(populated),
			"total":      strconv.Itoa(total),
			"skipped":    strconv.Itoa(skipped),
		},
	})
}

// EmitSignerEvent records one signer lifecycle transition.
func (e *Emitter) EmitSignerEvent(ctx context.Context, event, requestID, signerID string) error {
	return e.Emit(ctx, storage.TelemetryEvent{
		Event: event,
		Attributes: map[string]string{
			"request_id": requestID,
			"signer_id":  signerID,
		},
	})
}

// EmitLinkVisited records one share link visit.
func (e *Emitter) EmitLinkVisited(ctx context.Context, linkID, slug string) error {
	return e.Emit(ctx, storage.TelemetryEvent{
		Event: EventLinkVisited,
		Attributes: map[string]string{
			"link_id": linkID,
			"slug":    slug,
		},
	})
}
