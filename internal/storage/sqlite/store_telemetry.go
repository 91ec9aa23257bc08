package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/velumsign/velum/internal/storage"
)

// AppendTelemetryEvent appends one operational telemetry record.
func (s *Store) AppendTelemetryEvent(ctx context.Context, event storage.TelemetryEvent) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	event.Event = strings.TrimSpace(event.Event)
	if event.Event == "" {
		return fmt.Errorf("telemetry event name is required")
	}
	if event.Severity == "" {
		event.Severity = "INFO"
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	attributes := []byte("{}")
	if len(event.Attributes) > 0 {
		encoded, err := json.Marshal(event.Attributes)
		if err != nil {
			return fmt.Errorf("encode telemetry attributes: %w", err)
		}
		attributes = encoded
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO telemetry_events (severity, event, attributes_json, created_at)
		 VALUES (?, ?, ?, ?)`,
		event.Severity,
		event.Event,
		string(attributes),
		timeToUnixMillis(event.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("append telemetry event: %w", err)
	}
	return nil
}
