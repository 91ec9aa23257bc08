package datarooms

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/velumsign/velum/internal/platform/errors"
	"github.com/velumsign/velum/internal/platform/id"
	"github.com/velumsign/velum/internal/storage"
)

type service struct {
	store storage.Store
	clock func() time.Time
}

func (s service) now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock().UTC()
}

func (s service) createRoom(ctx context.Context, ownerID, name string) (storage.DataRoom, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return storage.DataRoom{}, apperrors.New(apperrors.CodeDataRoomNameEmpty, "data room name is required")
	}
	room := storage.DataRoom{
		ID:        id.MustNewID(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	}
	if err := s.store.PutDataRoom(ctx, room); err != nil {
		return storage.DataRoom{}, fmt.Errorf("create data room: %w", err)
	}
	return room, nil
}

// roomListing pairs a data room with its template count for the list page.
type roomListing struct {
	Room          storage.DataRoom
	TemplateCount int
}

func (s service) listRooms(ctx context.Context, ownerID string) ([]roomListing, error) {
	rooms, err := s.store.ListDataRoomsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list data rooms: %w", err)
	}
	listings := make([]roomListing, 0, len(rooms))
	for _, room := range rooms {
		templateIDs, err := s.store.ListDataRoomTemplates(ctx, room.ID)
		if err != nil {
			return nil, fmt.Errorf("list room templates: %w", err)
		}
		listings = append(listings, roomListing{Room: room, TemplateCount: len(templateIDs)})
	}
	return listings, nil
}

// roomDetail resolves the room's template membership to template records.
// Templates deleted since membership was set are skipped rather than failing
// the whole page.
type roomDetail struct {
	Room      storage.DataRoom
	Templates []storage.Template
}

func (s service) detail(ctx context.Context, roomID string) (roomDetail, error) {
	room, err := s.store.GetDataRoom(ctx, roomID)
	if err != nil {
		if err == storage.ErrNotFound {
			return roomDetail{}, apperrors.New(apperrors.CodeNotFound, "data room not found")
		}
		return roomDetail{}, fmt.Errorf("load data room: %w", err)
	}
	templateIDs, err := s.store.ListDataRoomTemplates(ctx, roomID)
	if err != nil {
		return roomDetail{}, fmt.Errorf("list room templates: %w", err)
	}
	detail := roomDetail{Room: room}
	for _, templateID := range templateIDs {
		template, err := s.store.GetTemplate(ctx, templateID)
		if err != nil {
			if err == storage.ErrNotFound {
				continue
			}
			return roomDetail{}, fmt.Errorf("load room template: %w", err)
		}
		detail.Templates = append(detail.Templates, template)
	}
	return detail, nil
}

func (s service) setTemplates(ctx context.Context, roomID string, templateIDs []string) error {
	if _, err := s.store.GetDataRoom(ctx, roomID); err != nil {
		if err == storage.ErrNotFound {
			return apperrors.New(apperrors.CodeNotFound, "data room not found")
		}
		return fmt.Errorf("load data room: %w", err)
	}
	if err := s.store.SetDataRoomTemplates(ctx, roomID, templateIDs); err != nil {
		return fmt.Errorf("set room templates: %w", err)
	}
	return nil
}

func (s service) deleteRoom(ctx context.Context, roomID string) error {
	return s.store.DeleteDataRoom(ctx, roomID)
}

// parseTemplateLines splits a one-id-per-line textarea into template ids.
func parseTemplateLines(raw string) []string {
	var ids []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ids = append(ids, line)
	}
	return ids
}
