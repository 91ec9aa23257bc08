package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/velumsign/velum/internal/storage"
)

// PutTemplate upserts one document template row.
func (s *Store) PutTemplate(ctx context.Context, template storage.Template) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	template.ID = strings.TrimSpace(template.ID)
	if template.ID == "" {
		return fmt.Errorf("template id is required")
	}
	if strings.TrimSpace(template.OwnerID) == "" {
		return fmt.Errorf("template owner id is required")
	}
	if strings.TrimSpace(template.Name) == "" {
		return fmt.Errorf("template name is required")
	}
	if template.CreatedAt.IsZero() {
		template.CreatedAt = time.Now().UTC()
	}
	if template.UpdatedAt.IsZero() {
		template.UpdatedAt = template.CreatedAt
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO templates (id, owner_id, name, storage_key, field_schema, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    name = excluded.name,
		    storage_key = excluded.storage_key,
		    field_schema = excluded.field_schema,
		    updated_at = excluded.updated_at`,
		template.ID,
		strings.TrimSpace(template.OwnerID),
		strings.TrimSpace(template.Name),
		strings.TrimSpace(template.StorageKey),
		template.FieldSchema,
		timeToUnixMillis(template.CreatedAt),
		timeToUnixMillis(template.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put template: %w", err)
	}
	return nil
}

// GetTemplate loads one template by id.
func (s *Store) GetTemplate(ctx context.Context, templateID string) (storage.Template, error) {
	if s == nil || s.sqlDB == nil {
		return storage.Template{}, fmt.Errorf("storage is not configured")
	}
	templateID = strings.TrimSpace(templateID)
	if templateID == "" {
		return storage.Template{}, fmt.Errorf("template id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, owner_id, name, storage_key, field_schema, created_at, updated_at
		 FROM templates
		 WHERE id = ?`,
		templateID,
	)

	var template storage.Template
	var createdAt, updatedAt int64
	err := row.Scan(
		&template.ID,
		&template.OwnerID,
		&template.Name,
		&template.StorageKey,
		&template.FieldSchema,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return storage.Template{}, storage.ErrNotFound
		}
		return storage.Template{}, fmt.Errorf("get template: %w", err)
	}
	template.CreatedAt = unixMillisToTime(createdAt)
	template.UpdatedAt = unixMillisToTime(updatedAt)
	return template, nil
}

// ListTemplatesByOwner returns an owner's templates, newest first.
func (s *Store) ListTemplatesByOwner(ctx context.Context, ownerID string) ([]storage.Template, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, owner_id, name, storage_key, field_schema, created_at, updated_at
		 FROM templates
		 WHERE owner_id = ?
		 ORDER BY created_at DESC, id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	templates := make([]storage.Template, 0)
	for rows.Next() {
		var template storage.Template
		var createdAt, updatedAt int64
		if err := rows.Scan(
			&template.ID,
			&template.OwnerID,
			&template.Name,
			&template.StorageKey,
			&template.FieldSchema,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		template.CreatedAt = unixMillisToTime(createdAt)
		template.UpdatedAt = unixMillisToTime(updatedAt)
		templates = append(templates, template)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}
	return templates, nil
}

// DeleteTemplate removes one template by id.
func (s *Store) DeleteTemplate(ctx context.Context, templateID string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	templateID = strings.TrimSpace(templateID)
	if templateID == "" {
		return fmt.Errorf("template id is required")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, templateID); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}
