package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/velumsign/velum/internal/signing"
	"github.com/velumsign/velum/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir() + "/velum.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSignRequestAndSignerRoundTrip(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)

	request := signing.SignRequest{
		ID:             "req-1",
		OwnerID:        "owner-1",
		TemplateID:     "tpl-1",
		Title:          "Master Services Agreement",
		DocumentSignID: "MSA-0042",
		Status:         signing.RequestInitiated,
		Mode:           signing.ModeSequential,
		TotalSigners:   2,
		CreatedAt:      now,
		ExpiresAt:      now.AddDate(0, 1, 0),
	}
	if err := store.PutSignRequest(context.Background(), request); err != nil {
		t.Fatalf("put sign request: %v", err)
	}

	signer := signing.Signer{
		ID:             "sgn-1",
		RequestID:      "req-1",
		Email:          "alice@example.com",
		Name:           "Alice",
		SigningOrder:   1,
		Status:         signing.SignerInitiated,
		SchemaSignerID: "slot-1",
		SignatureData:  []byte(`{"signature_image":"data:img"}`),
	}
	if err := store.PutSigner(context.Background(), signer); err != nil {
		t.Fatalf("put signer: %v", err)
	}

	got, err := store.GetSignRequest(context.Background(), "req-1")
	if err != nil {
		t.Fatalf("get sign request: %v", err)
	}
	if got.Title != request.Title || got.Mode != signing.ModeSequential {
		t.Fatalf("request = %+v", got)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("created at = %v, want %v", got.CreatedAt, now)
	}

	gotSigner, err := store.GetSigner(context.Background(), "sgn-1")
	if err != nil {
		t.Fatalf("get signer: %v", err)
	}
	if gotSigner.SchemaSignerID != "slot-1" {
		t.Fatalf("schema signer id = %q", gotSigner.SchemaSignerID)
	}
	if string(gotSigner.SignatureData) != `{"signature_image":"data:img"}` {
		t.Fatalf("signature data = %q", gotSigner.SignatureData)
	}

	// Sign event mutates the signer in place.
	gotSigner.Status = signing.SignerSigned
	gotSigner.SignedAt = now.Add(time.Hour)
	if err := store.PutSigner(context.Background(), gotSigner); err != nil {
		t.Fatalf("update signer: %v", err)
	}
	updated, err := store.GetSigner(context.Background(), "sgn-1")
	if err != nil {
		t.Fatalf("get updated signer: %v", err)
	}
	if updated.Status != signing.SignerSigned || !updated.SignedAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("updated signer = %+v", updated)
	}
}

func TestListSignersOrderedBySigningOrder(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	if err := store.PutSignRequest(context.Background(), signing.SignRequest{
		ID: "req-1", OwnerID: "owner-1", Title: "NDA", Status: signing.RequestInitiated, CreatedAt: now,
	}); err != nil {
		t.Fatalf("put sign request: %v", err)
	}
	for _, signer := range []signing.Signer{
		{ID: "sgn-b", RequestID: "req-1", Email: "b@x.com", SigningOrder: 2, Status: signing.SignerInitiated},
		{ID: "sgn-a", RequestID: "req-1", Email: "a@x.com", SigningOrder: 1, Status: signing.SignerInitiated},
	} {
		if err := store.PutSigner(context.Background(), signer); err != nil {
			t.Fatalf("put signer %s: %v", signer.ID, err)
		}
	}

	signers, err := store.ListSigners(context.Background(), "req-1")
	if err != nil {
		t.Fatalf("list signers: %v", err)
	}
	if len(signers) != 2 || signers[0].ID != "sgn-a" || signers[1].ID != "sgn-b" {
		t.Fatalf("signers = %+v, want sgn-a then sgn-b", signers)
	}
}

func TestDeleteSignRequestCascadesSigners(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	if err := store.PutSignRequest(context.Background(), signing.SignRequest{
		ID: "req-1", OwnerID: "owner-1", Title: "NDA", Status: signing.RequestInitiated, CreatedAt: now,
	}); err != nil {
		t.Fatalf("put sign request: %v", err)
	}
	if err := store.PutSigner(context.Background(), signing.Signer{
		ID: "sgn-1", RequestID: "req-1", Email: "a@x.com", Status: signing.SignerInitiated,
	}); err != nil {
		t.Fatalf("put signer: %v", err)
	}

	if err := store.DeleteSignRequest(context.Background(), "req-1"); err != nil {
		t.Fatalf("delete sign request: %v", err)
	}
	if _, err := store.GetSignRequest(context.Background(), "req-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for request, got %v", err)
	}
	if _, err := store.GetSigner(context.Background(), "sgn-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for cascaded signer, got %v", err)
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	store := openTestStore(t)
	schema := []byte(`[{"name":"sig1","type":"signature","signerId":"s1"}]`)
	if err := store.PutTemplate(context.Background(), storage.Template{
		ID:          "tpl-1",
		OwnerID:     "owner-1",
		Name:        "Offer Letter",
		StorageKey:  "templates/tpl-1.pdf",
		FieldSchema: schema,
	}); err != nil {
		t.Fatalf("put template: %v", err)
	}

	got, err := store.GetTemplate(context.Background(), "tpl-1")
	if err != nil {
		t.Fatalf("get template: %v", err)
	}
	if string(got.FieldSchema) != string(schema) {
		t.Fatalf("field schema = %q", got.FieldSchema)
	}

	templates, err := store.ListTemplatesByOwner(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("list templates: %v", err)
	}
	if len(templates) != 1 {
		t.Fatalf("templates len = %d, want 1", len(templates))
	}
}

func TestShareLinkSlugUniqueness(t *testing.T) {
	store := openTestStore(t)
	first := storage.ShareLink{
		ID: "lnk-1", OwnerID: "owner-1", TargetKind: "template", TargetID: "tpl-1", Slug: "offer-letter",
	}
	if err := store.PutShareLink(context.Background(), first); err != nil {
		t.Fatalf("put share link: %v", err)
	}
	duplicate := storage.ShareLink{
		ID: "lnk-2", OwnerID: "owner-1", TargetKind: "template", TargetID: "tpl-2", Slug: "offer-letter",
	}
	if err := store.PutShareLink(context.Background(), duplicate); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	got, err := store.GetShareLinkBySlug(context.Background(), "offer-letter")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if got.ID != "lnk-1" {
		t.Fatalf("link id = %q, want lnk-1", got.ID)
	}
}

func TestLinkVisitAnalytics(t *testing.T) {
	store := openTestStore(t)
	if err := store.PutShareLink(context.Background(), storage.ShareLink{
		ID: "lnk-1", OwnerID: "owner-1", TargetKind: "template", TargetID: "tpl-1", Slug: "nda",
	}); err != nil {
		t.Fatalf("put share link: %v", err)
	}

	base := time.Date(2026, time.August, 20, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if err := store.RecordLinkVisit(context.Background(), storage.LinkVisit{
			LinkID:       "lnk-1",
			VisitorEmail: "viewer@example.com",
			UserAgent:    "test-agent",
			VisitedAt:    base.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("record visit %d: %v", i, err)
		}
	}

	analytics, err := store.GetLinkAnalytics(context.Background(), "lnk-1")
	if err != nil {
		t.Fatalf("get analytics: %v", err)
	}
	if analytics.VisitCount != 3 {
		t.Fatalf("visit count = %d, want 3", analytics.VisitCount)
	}
	if !analytics.LastVisitAt.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("last visit = %v", analytics.LastVisitAt)
	}

	visits, err := store.ListLinkVisits(context.Background(), "lnk-1", 2)
	if err != nil {
		t.Fatalf("list visits: %v", err)
	}
	if len(visits) != 2 {
		t.Fatalf("visits len = %d, want 2", len(visits))
	}
	if !visits[0].VisitedAt.After(visits[1].VisitedAt) {
		t.Fatalf("visits not newest-first: %+v", visits)
	}
}

func TestDataRoomTemplateOrdering(t *testing.T) {
	store := openTestStore(t)
	if err := store.PutDataRoom(context.Background(), storage.DataRoom{
		ID: "room-1", OwnerID: "owner-1", Name: "Diligence",
	}); err != nil {
		t.Fatalf("put data room: %v", err)
	}
	if err := store.SetDataRoomTemplates(context.Background(), "room-1", []string{"tpl-c", "tpl-a", "tpl-b"}); err != nil {
		t.Fatalf("set templates: %v", err)
	}

	templateIDs, err := store.ListDataRoomTemplates(context.Background(), "room-1")
	if err != nil {
		t.Fatalf("list templates: %v", err)
	}
	want := []string{"tpl-c", "tpl-a", "tpl-b"}
	if len(templateIDs) != len(want) {
		t.Fatalf("template ids = %v, want %v", templateIDs, want)
	}
	for i := range want {
		if templateIDs[i] != want[i] {
			t.Fatalf("template ids = %v, want %v", templateIDs, want)
		}
	}

	// Replacement is wholesale, preserving the new order.
	if err := store.SetDataRoomTemplates(context.Background(), "room-1", []string{"tpl-b"}); err != nil {
		t.Fatalf("replace templates: %v", err)
	}
	templateIDs, err = store.ListDataRoomTemplates(context.Background(), "room-1")
	if err != nil {
		t.Fatalf("list replaced templates: %v", err)
	}
	if len(templateIDs) != 1 || templateIDs[0] != "tpl-b" {
		t.Fatalf("template ids = %v, want [tpl-b]", templateIDs)
	}
}

func TestCustomFieldRoundTrip(t *testing.T) {
	store := openTestStore(t)
	if err := store.PutCustomField(context.Background(), storage.CustomField{
		ID: "fld-1", OwnerID: "owner-1", Label: "Employee ID", Type: "text", Required: true,
	}); err != nil {
		t.Fatalf("put custom field: %v", err)
	}

	got, err := store.GetCustomField(context.Background(), "fld-1")
	if err != nil {
		t.Fatalf("get custom field: %v", err)
	}
	if !got.Required || got.Label != "Employee ID" {
		t.Fatalf("custom field = %+v", got)
	}

	if err := store.DeleteCustomField(context.Background(), "fld-1"); err != nil {
		t.Fatalf("delete custom field: %v", err)
	}
	if _, err := store.GetCustomField(context.Background(), "fld-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSecuritySettingsDefaultsWhenAbsent(t *testing.T) {
	store := openTestStore(t)

	settings, err := store.GetSecuritySettings(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if !settings.AllowDownloads || !settings.NotifyOnView || !settings.NotifyOnSign {
		t.Fatalf("defaults = %+v", settings)
	}
	if settings.RequireEmail || settings.Watermark {
		t.Fatalf("defaults = %+v", settings)
	}

	settings.RequireEmail = true
	settings.Watermark = true
	if err := store.PutSecuritySettings(context.Background(), settings); err != nil {
		t.Fatalf("put settings: %v", err)
	}
	stored, err := store.GetSecuritySettings(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("get stored settings: %v", err)
	}
	if !stored.RequireEmail || !stored.Watermark {
		t.Fatalf("stored = %+v", stored)
	}
}

func TestAppendTelemetryEvent(t *testing.T) {
	store := openTestStore(t)
	err := store.AppendTelemetryEvent(context.Background(), storage.TelemetryEvent{
		Severity:   "INFO",
		Event:      "request.finalized",
		Attributes: map[string]string{"populated": "3", "total": "4"},
	})
	if err != nil {
		t.Fatalf("append telemetry event: %v", err)
	}
	if err := store.AppendTelemetryEvent(context.Background(), storage.TelemetryEvent{Event: ""}); err == nil {
		t.Fatal("expected error for empty event name")
	}
}
