package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/velumsign/velum/internal/storage"
)

// PutDataRoom upserts one data room row.
func (s *Store) PutDataRoom(ctx context.Context, room storage.DataRoom) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	room.ID = strings.TrimSpace(room.ID)
	if room.ID == "" {
		return fmt.Errorf("data room id is required")
	}
	if strings.TrimSpace(room.OwnerID) == "" {
		return fmt.Errorf("data room owner id is required")
	}
	if strings.TrimSpace(room.Name) == "" {
		return fmt.Errorf("data room name is required")
	}
	if room.CreatedAt.IsZero() {
		room.CreatedAt = time.Now().UTC()
	}
	if room.UpdatedAt.IsZero() {
		room.UpdatedAt = room.CreatedAt
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO data_rooms (id, owner_id, name, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    name = excluded.name,
		    updated_at = excluded.updated_at`,
		room.ID,
		strings.TrimSpace(room.OwnerID),
		strings.TrimSpace(room.Name),
		timeToUnixMillis(room.CreatedAt),
		timeToUnixMillis(room.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put data room: %w", err)
	}
	return nil
}

// GetDataRoom loads one data room by id.
func (s *Store) GetDataRoom(ctx context.Context, roomID string) (storage.DataRoom, error) {
	if s == nil || s.sqlDB == nil {
		return storage.DataRoom{}, fmt.Errorf("storage is not configured")
	}
	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return storage.DataRoom{}, fmt.Errorf("data room id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, owner_id, name, created_at, updated_at FROM data_rooms WHERE id = ?`,
		roomID,
	)
	var room storage.DataRoom
	var createdAt, updatedAt int64
	if err := row.Scan(&room.ID, &room.OwnerID, &room.Name, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return storage.DataRoom{}, storage.ErrNotFound
		}
		return storage.DataRoom{}, fmt.Errorf("get data room: %w", err)
	}
	room.CreatedAt = unixMillisToTime(createdAt)
	room.UpdatedAt = unixMillisToTime(updatedAt)
	return room, nil
}

// ListDataRoomsByOwner returns an owner's data rooms, newest first.
func (s *Store) ListDataRoomsByOwner(ctx context.Context, ownerID string) ([]storage.DataRoom, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, owner_id, name, created_at, updated_at
		 FROM data_rooms
		 WHERE owner_id = ?
		 ORDER BY created_at DESC, id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list data rooms: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	rooms := make([]storage.DataRoom, 0)
	for rows.Next() {
		var room storage.DataRoom
		var createdAt, updatedAt int64
		if err := rows.Scan(&room.ID, &room.OwnerID, &room.Name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan data room: %w", err)
		}
		room.CreatedAt = unixMillisToTime(createdAt)
		room.UpdatedAt = unixMillisToTime(updatedAt)
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate data rooms: %w", err)
	}
	return rooms, nil
}

// DeleteDataRoom removes one data room; membership rows cascade.
func (s *Store) DeleteDataRoom(ctx context.Context, roomID string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return fmt.Errorf("data room id is required")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM data_rooms WHERE id = ?`, roomID); err != nil {
		return fmt.Errorf("delete data room: %w", err)
	}
	return nil
}

// SetDataRoomTemplates replaces a room's ordered template membership.
func (s *Store) SetDataRoomTemplates(ctx context.Context, roomID string, templateIDs []string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return fmt.Errorf("data room id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set data room templates: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM data_room_templates WHERE room_id = ?`, roomID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear data room templates: %w", err)
	}
	for position, templateID := range templateIDs {
		templateID = strings.TrimSpace(templateID)
		if templateID == "" {
			continue
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO data_room_templates (room_id, template_id, position) VALUES (?, ?, ?)`,
			roomID,
			templateID,
			int64(position),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert data room template: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit set data room templates: %w", err)
	}
	return nil
}

// ListDataRoomTemplates returns a room's template ids in display order.
func (s *Store) ListDataRoomTemplates(ctx context.Context, roomID string) ([]string, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return nil, fmt.Errorf("data room id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT template_id FROM data_room_templates WHERE room_id = ? ORDER BY position`,
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("list data room templates: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	templateIDs := make([]string, 0)
	for rows.Next() {
		var templateID string
		if err := rows.Scan(&templateID); err != nil {
			return nil, fmt.Errorf("scan data room template: %w", err)
		}
		templateIDs = append(templateIDs, templateID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate data room templates: %w", err)
	}
	return templateIDs, nil
}
