// Package storagetest provides an in-memory storage.Store for handler and
// service tests.
package storagetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/velumsign/velum/internal/signing"
	"github.com/velumsign/velum/internal/storage"
)

// Store is an in-memory storage.Store. The zero value is not usable; call
// New.
type Store struct {
	mu sync.Mutex

	requests  map[string]signing.SignRequest
	signers   map[string]signing.Signer
	templates map[string]storage.Template
	links     map[string]storage.ShareLink
	visits    []storage.LinkVisit
	rooms     map[string]storage.DataRoom
	roomTpls  map[string][]string
	fields    map[string]storage.CustomField
	settings  map[string]storage.SecuritySettings

	// Events records every telemetry append for assertions.
	Events []storage.TelemetryEvent

	// FailPutSigner, when set, makes PutSigner fail once per matching email.
	FailPutSigner string
}

var _ storage.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		requests:  make(map[string]signing.SignRequest),
		signers:   make(map[string]signing.Signer),
		templates: make(map[string]storage.Template),
		links:     make(map[string]storage.ShareLink),
		rooms:     make(map[string]storage.DataRoom),
		roomTpls:  make(map[string][]string),
		fields:    make(map[string]storage.CustomField),
		settings:  make(map[string]storage.SecuritySettings),
	}
}

// Close implements storage.Store.
func (s *Store) Close() error { return nil }

func (s *Store) PutSignRequest(_ context.Context, request signing.SignRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[request.ID] = request
	return nil
}

func (s *Store) GetSignRequest(_ context.Context, requestID string) (signing.SignRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	request, ok := s.requests[requestID]
	if !ok {
		return signing.SignRequest{}, storage.ErrNotFound
	}
	return request, nil
}

func (s *Store) ListSignRequestsByOwner(_ context.Context, ownerID string) ([]signing.SignRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	requests := make([]signing.SignRequest, 0)
	for _, request := range s.requests {
		if request.OwnerID == ownerID {
			requests = append(requests, request)
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].CreatedAt.After(requests[j].CreatedAt) })
	return requests, nil
}

func (s *Store) DeleteSignRequest(_ context.Context, requestID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.requests, requestID)
	for signerID, signer := range s.signers {
		if signer.RequestID == requestID {
			delete(s.signers, signerID)
		}
	}
	return nil
}

func (s *Store) PutSigner(_ context.Context, signer signing.Signer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailPutSigner != "" && signer.Email == s.FailPutSigner {
		s.FailPutSigner = ""
		return context.DeadlineExceeded
	}
	s.signers[signer.ID] = signer
	return nil
}

func (s *Store) GetSigner(_ context.Context, signerID string) (signing.Signer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	signer, ok := s.signers[signerID]
	if !ok {
		return signing.Signer{}, storage.ErrNotFound
	}
	return signer, nil
}

func (s *Store) ListSigners(_ context.Context, requestID string) ([]signing.Signer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	signers := make([]signing.Signer, 0)
	for _, signer := range s.signers {
		if signer.RequestID == requestID {
			signers = append(signers, signer)
		}
	}
	sort.Slice(signers, func(i, j int) bool { return signers[i].SigningOrder < signers[j].SigningOrder })
	return signers, nil
}

func (s *Store) PutTemplate(_ context.Context, template storage.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[template.ID] = template
	return nil
}

func (s *Store) GetTemplate(_ context.Context, templateID string) (storage.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	template, ok := s.templates[templateID]
	if !ok {
		return storage.Template{}, storage.ErrNotFound
	}
	return template, nil
}

func (s *Store) ListTemplatesByOwner(_ context.Context, ownerID string) ([]storage.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	templates := make([]storage.Template, 0)
	for _, template := range s.templates {
		if template.OwnerID == ownerID {
			templates = append(templates, template)
		}
	}
	sort.Slice(templates, func(i, j int) bool { return templates[i].ID < templates[j].ID })
	return templates, nil
}

func (s *Store) DeleteTemplate(_ context.Context, templateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.templates, templateID)
	return nil
}

func (s *Store) PutShareLink(_ context.Context, link storage.ShareLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.links {
		if existing.Slug == link.Slug && existing.ID != link.ID {
			return storage.ErrAlreadyExists
		}
	}
	s.links[link.ID] = link
	return nil
}

func (s *Store) GetShareLink(_ context.Context, linkID string) (storage.ShareLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	link, ok := s.links[linkID]
	if !ok {
		return storage.ShareLink{}, storage.ErrNotFound
	}
	return link, nil
}

func (s *Store) GetShareLinkBySlug(_ context.Context, slug string) (storage.ShareLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, link := range s.links {
		if link.Slug == slug {
			return link, nil
		}
	}
	return storage.ShareLink{}, storage.ErrNotFound
}

func (s *Store) ListShareLinksByOwner(_ context.Context, ownerID string) ([]storage.ShareLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	links := make([]storage.ShareLink, 0)
	for _, link := range s.links {
		if link.OwnerID == ownerID {
			links = append(links, link)
		}
	}
	sort.Slice(links, func(i, j int) bool { return links[i].ID < links[j].ID })
	return links, nil
}

func (s *Store) DeleteShareLink(_ context.Context, linkID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.links, linkID)
	return nil
}

func (s *Store) RecordLinkVisit(_ context.Context, visit storage.LinkVisit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visits = append(s.visits, visit)
	return nil
}

func (s *Store) ListLinkVisits(_ context.Context, linkID string, limit int) ([]storage.LinkVisit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 {
		limit = 50
	}
	visits := make([]storage.LinkVisit, 0)
	for _, visit := range s.visits {
		if visit.LinkID == linkID {
			visits = append(visits, visit)
		}
	}
	sort.Slice(visits, func(i, j int) bool { return visits[i].VisitedAt.After(visits[j].VisitedAt) })
	if len(visits) > limit {
		visits = visits[:limit]
	}
	return visits, nil
}

func (s *Store) GetLinkAnalytics(_ context.Context, linkID string) (storage.LinkAnalytics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	analytics := storage.LinkAnalytics{LinkID: linkID}
	var last time.Time
	for _, visit := range s.visits {
		if visit.LinkID != linkID {
			continue
		}
		analytics.VisitCount++
		if visit.VisitedAt.After(last) {
			last = visit.VisitedAt
		}
	}
	analytics.LastVisitAt = last
	return analytics, nil
}

func (s *Store) PutDataRoom(_ context.Context, room storage.DataRoom) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.ID] = room
	return nil
}

func (s *Store) GetDataRoom(_ context.Context, roomID string) (storage.DataRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[roomID]
	if !ok {
		return storage.DataRoom{}, storage.ErrNotFound
	}
	return room, nil
}

func (s *Store) ListDataRoomsByOwner(_ context.Context, ownerID string) ([]storage.DataRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rooms := make([]storage.DataRoom, 0)
	for _, room := range s.rooms {
		if room.OwnerID == ownerID {
			rooms = append(rooms, room)
		}
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

func (s *Store) DeleteDataRoom(_ context.Context, roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, roomID)
	delete(s.roomTpls, roomID)
	return nil
}

func (s *Store) SetDataRoomTemplates(_ context.Context, roomID string, templateIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roomTpls[roomID] = append([]string(nil), templateIDs...)
	return nil
}

func (s *Store) ListDataRoomTemplates(_ context.Context, roomID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.roomTpls[roomID]...), nil
}

func (s *Store) PutCustomField(_ context.Context, field storage.CustomField) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields[field.ID] = field
	return nil
}

func (s *Store) GetCustomField(_ context.Context, fieldID string) (storage.CustomField, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	field, ok := s.fields[fieldID]
	if !ok {
		return storage.CustomField{}, storage.ErrNotFound
	}
	return field, nil
}

func (s *Store) ListCustomFieldsByOwner(_ context.Context, ownerID string) ([]storage.CustomField, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fields := make([]storage.CustomField, 0)
	for _, field := range s.fields {
		if field.OwnerID == ownerID {
			fields = append(fields, field)
		}
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].ID < fields[j].ID })
	return fields, nil
}

func (s *Store) DeleteCustomField(_ context.Context, fieldID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fields, fieldID)
	return nil
}

func (s *Store) GetSecuritySettings(_ context.Context, ownerID string) (storage.SecuritySettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if settings, ok := s.settings[ownerID]; ok {
		return settings, nil
	}
	return storage.SecuritySettings{
		OwnerID:        ownerID,
		AllowDownloads: true,
		NotifyOnView:   true,
		NotifyOnSign:   true,
	}, nil
}

func (s *Store) PutSecuritySettings(_ context.Context, settings storage.SecuritySettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[settings.OwnerID] = settings
	return nil
}

func (s *Store) AppendTelemetryEvent(_ context.Context, event storage.TelemetryEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, event)
	return nil
}
