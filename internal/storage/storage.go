// Package storage defines persistence contracts for signing platform state.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/velumsign/velum/internal/signing"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
var ErrAlreadyExists = errors.New("record already exists")

// Template stores one uploaded document template and its field schema.
type Template struct {
	ID          string
	OwnerID     string
	Name        string
	StorageKey  string
	FieldSchema []byte
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ShareLink stores one shareable document or data room link.
type ShareLink struct {
	ID           string
	OwnerID      string
	TargetKind   string // "template" or "dataroom"
	TargetID     string
	Slug         string
	RequireEmail bool
	Password     string
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

// LinkVisit stores one recorded share link visit for analytics.
type LinkVisit struct {
	LinkID       string
	VisitorEmail string
	UserAgent    string
	VisitedAt    time.Time
}

// LinkAnalytics aggregates visit data for one share link.
type LinkAnalytics struct {
	LinkID      string
	VisitCount  int
	LastVisitAt time.Time
}

// DataRoom stores one named, ordered collection of templates.
type DataRoom struct {
	ID        string
	OwnerID   string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomField stores one owner-defined reusable field definition.
type CustomField struct {
	ID        string
	OwnerID   string
	Label     string
	Type      string
	Required  bool
	CreatedAt time.Time
}

// SecuritySettings stores per-owner document security preferences.
type SecuritySettings struct {
	OwnerID        string
	RequireEmail   bool
	AllowDownloads bool
	Watermark      bool
	NotifyOnView   bool
	NotifyOnSign   bool
	UpdatedAt      time.Time
}

// TelemetryEvent stores one operational telemetry record.
type TelemetryEvent struct {
	Severity   string
	Event      string
	Attributes map[string]string
	Timestamp  time.Time
}

// SignRequestStore persists signing requests and their signer rows.
type SignRequestStore interface {
	PutSignRequest(ctx context.Context, request signing.SignRequest) error
	GetSignRequest(ctx context.Context, requestID string) (signing.SignRequest, error)
	ListSignRequestsByOwner(ctx context.Context, ownerID string) ([]signing.SignRequest, error)
	// DeleteSignRequest removes a request and its signers (request rollback).
	DeleteSignRequest(ctx context.Context, requestID string) error
	PutSigner(ctx context.Context, signer signing.Signer) error
	GetSigner(ctx context.Context, signerID string) (signing.Signer, error)
	ListSigners(ctx context.Context, requestID string) ([]signing.Signer, error)
}

// TemplateStore persists document templates and their field schemas.
type TemplateStore interface {
	PutTemplate(ctx context.Context, template Template) error
	GetTemplate(ctx context.Context, templateID string) (Template, error)
	ListTemplatesByOwner(ctx context.Context, ownerID string) ([]Template, error)
	DeleteTemplate(ctx context.Context, templateID string) error
}

// ShareLinkStore persists share links and their visit analytics.
type ShareLinkStore interface {
	PutShareLink(ctx context.Context, link ShareLink) error
	GetShareLink(ctx context.Context, linkID string) (ShareLink, error)
	GetShareLinkBySlug(ctx context.Context, slug string) (ShareLink, error)
	ListShareLinksByOwner(ctx context.Context, ownerID string) ([]ShareLink, error)
	DeleteShareLink(ctx context.Context, linkID string) error
	RecordLinkVisit(ctx context.Context, visit LinkVisit) error
	ListLinkVisits(ctx context.Context, linkID string, limit int) ([]LinkVisit, error)
	GetLinkAnalytics(ctx context.Context, linkID string) (LinkAnalytics, error)
}

// DataRoomStore persists data rooms and their template membership.
type DataRoomStore interface {
	PutDataRoom(ctx context.Context, room DataRoom) error
	GetDataRoom(ctx context.Context, roomID string) (DataRoom, error)
	ListDataRoomsByOwner(ctx context.Context, ownerID string) ([]DataRoom, error)
	DeleteDataRoom(ctx context.Context, roomID string) error
	SetDataRoomTemplates(ctx context.Context, roomID string, templateIDs []string) error
	ListDataRoomTemplates(ctx context.Context, roomID string) ([]string, error)
}

// CustomFieldStore persists owner-defined custom field definitions.
type CustomFieldStore interface {
	PutCustomField(ctx context.Context, field CustomField) error
	GetCustomField(ctx context.Context, fieldID string) (CustomField, error)
	ListCustomFieldsByOwner(ctx context.Context, ownerID string) ([]CustomField, error)
	DeleteCustomField(ctx context.Context, fieldID string) error
}

// SettingsStore persists per-owner security settings.
type SettingsStore interface {
	// GetSecuritySettings returns stored settings or platform defaults when
	// no row exists for the owner.
	GetSecuritySettings(ctx context.Context, ownerID string) (SecuritySettings, error)
	PutSecuritySettings(ctx context.Context, settings SecuritySettings) error
}

// TelemetryStore appends operational telemetry events.
type TelemetryStore interface {
	AppendTelemetryEvent(ctx context.Context, event TelemetryEvent) error
}

// Store is the full persistence surface consumed by the web service.
type Store interface {
	SignRequestStore
	TemplateStore
	ShareLinkStore
	DataRoomStore
	CustomFieldStore
	SettingsStore
	TelemetryStore
	Close() error
}
