package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/velumsign/velum/internal/storage"
)

// PutCustomField upserts one custom field definition.
func (s *Store) PutCustomField(ctx context.Context, field storage.CustomField) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	field.ID = strings.TrimSpace(field.ID)
	if field.ID == "" {
		return fmt.Errorf("custom field id is required")
	}
	if strings.TrimSpace(field.OwnerID) == "" {
		return fmt.Errorf("custom field owner id is required")
	}
	if strings.TrimSpace(field.Label) == "" {
		return fmt.Errorf("custom field label is required")
	}
	if field.CreatedAt.IsZero() {
		field.CreatedAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO custom_fields (id, owner_id, label, field_type, required, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    label = excluded.label,
		    field_type = excluded.field_type,
		    required = excluded.required`,
		field.ID,
		strings.TrimSpace(field.OwnerID),
		strings.TrimSpace(field.Label),
		strings.TrimSpace(field.Type),
		boolToInt(field.Required),
		timeToUnixMillis(field.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put custom field: %w", err)
	}
	return nil
}

// GetCustomField loads one custom field by id.
func (s *Store) GetCustomField(ctx context.Context, fieldID string) (storage.CustomField, error) {
	if s == nil || s.sqlDB == nil {
		return storage.CustomField{}, fmt.Errorf("storage is not configured")
	}
	fieldID = strings.TrimSpace(fieldID)
	if fieldID == "" {
		return storage.CustomField{}, fmt.Errorf("custom field id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, owner_id, label, field_type, required, created_at FROM custom_fields WHERE id = ?`,
		fieldID,
	)
	var field storage.CustomField
	var required, createdAt int64
	if err := row.Scan(&field.ID, &field.OwnerID, &field.Label, &field.Type, &required, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return storage.CustomField{}, storage.ErrNotFound
		}
		return storage.CustomField{}, fmt.Errorf("get custom field: %w", err)
	}
	field.Required = required != 0
	field.CreatedAt = unixMillisToTime(createdAt)
	return field, nil
}

// ListCustomFieldsByOwner returns an owner's custom fields, oldest first.
func (s *Store) ListCustomFieldsByOwner(ctx context.Context, ownerID string) ([]storage.CustomField, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, owner_id, label, field_type, required, created_at
		 FROM custom_fields
		 WHERE owner_id = ?
		 ORDER BY created_at, id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list custom fields: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	fields := make([]storage.CustomField, 0)
	for rows.Next() {
		var field storage.CustomField
		var required, createdAt int64
		if err := rows.Scan(&field.ID, &field.OwnerID, &field.Label, &field.Type, &required, &createdAt); err != nil {
			return nil, fmt.Errorf("scan custom field: %w", err)
		}
		field.Required = required != 0
		field.CreatedAt = unixMillisToTime(createdAt)
		fields = append(fields, field)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate custom fields: %w", err)
	}
	return fields, nil
}

// DeleteCustomField removes one custom field by id.
func (s *Store) DeleteCustomField(ctx context.Context, fieldID string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	fieldID = strings.TrimSpace(fieldID)
	if fieldID == "" {
		return fmt.Errorf("custom field id is required")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM custom_fields WHERE id = ?`, fieldID); err != nil {
		return fmt.Errorf("delete custom field: %w", err)
	}
	return nil
}

// GetSecuritySettings loads per-owner settings or platform defaults.
func (s *Store) GetSecuritySettings(ctx context.Context, ownerID string) (storage.SecuritySettings, error) {
	if s == nil || s.sqlDB == nil {
		return storage.SecuritySettings{}, fmt.Errorf("storage is not configured")
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return storage.SecuritySettings{}, fmt.Errorf("owner id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT owner_id, require_email, allow_downloads, watermark, notify_on_view, notify_on_sign, updated_at
		 FROM security_settings
		 WHERE owner_id = ?`,
		ownerID,
	)
	var settings storage.SecuritySettings
	var requireEmail, allowDownloads, watermark, notifyOnView, notifyOnSign, updatedAt int64
	err := row.Scan(
		&settings.OwnerID,
		&requireEmail,
		&allowDownloads,
		&watermark,
		&notifyOnView,
		&notifyOnSign,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			// Defaults mirror the schema column defaults.
			return storage.SecuritySettings{
				OwnerID:        ownerID,
				AllowDownloads: true,
				NotifyOnView:   true,
				NotifyOnSign:   true,
			}, nil
		}
		return storage.SecuritySettings{}, fmt.Errorf("get security settings: %w", err)
	}
	settings.RequireEmail = requireEmail != 0
	settings.AllowDownloads = allowDownloads != 0
	settings.Watermark = watermark != 0
	settings.NotifyOnView = notifyOnView != 0
	settings.NotifyOnSign = notifyOnSign != 0
	settings.UpdatedAt = unixMillisToTime(updatedAt)
	return settings, nil
}

// PutSecuritySettings upserts per-owner settings.
func (s *Store) PutSecuritySettings(ctx context.Context, settings storage.SecuritySettings) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	settings.OwnerID = strings.TrimSpace(settings.OwnerID)
	if settings.OwnerID == "" {
		return fmt.Errorf("owner id is required")
	}
	if settings.UpdatedAt.IsZero() {
		settings.UpdatedAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO security_settings (owner_id, require_email, allow_downloads, watermark, notify_on_view, notify_on_sign, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(owner_id) DO UPDATE SET
		    require_email = excluded.require_email,
		    allow_downloads = excluded.allow_downloads,
		    watermark = excluded.watermark,
		    notify_on_view = excluded.notify_on_view,
		    notify_on_sign = excluded.notify_on_sign,
		    updated_at = excluded.updated_at`,
		settings.OwnerID,
		boolToInt(settings.RequireEmail),
		boolToInt(settings.AllowDownloads),
		boolToInt(settings.Watermark),
		boolToInt(settings.NotifyOnView),
		boolToInt(settings.NotifyOnSign),
		timeToUnixMillis(settings.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put security settings: %w", err)
	}
	return nil
}
