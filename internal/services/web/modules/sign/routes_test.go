package sign

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/velumsign/velum/internal/auth/linktoken"
	module "github.com/velumsign/velum/internal/services/web/module"
	"github.com/velumsign/velum/internal/signing"
	"github.com/velumsign/velum/internal/storage"
	"github.com/velumsign/velum/internal/storage/storagetest"
	"github.com/velumsign/velum/internal/telemetry"
)

var testClock = func() time.Time {
	return time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
}

func newTestMinter(t *testing.T) *linktoken.Minter {
	t.Helper()
	minter, err := linktoken.NewMinter("test-secret", linktoken.WithClock(testClock))
	if err != nil {
		t.Fatalf("new minter: %v", err)
	}
	return minter
}

func mountTestModule(t *testing.T, store *storagetest.Store, minter *linktoken.Minter) http.Handler {
	t.Helper()
	mount, err := New().Mount(module.Dependencies{
		Store:     store,
		Tokens:    minter,
		Telemetry: telemetry.NewEmitter(store),
		Clock:     testClock,
	})
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	return mount.Handler
}

func seedRequest(t *testing.T, store *storagetest.Store, mode signing.SigningMode) {
	t.Helper()
	if err := store.PutSignRequest(context.Background(), signing.SignRequest{
		ID:           "req-1",
		OwnerID:      "owner-1",
		Title:        "Offer Letter",
		Status:       signing.RequestInitiated,
		Mode:         mode,
		TotalSigners: 2,
		CreatedAt:    testClock(),
		ExpiresAt:    testClock().Add(24 * time.Hour),
	}); err != nil {
		t.Fatalf("put request: %v", err)
	}
	signers := []signing.Signer{
		{ID: "sgn-1", RequestID: "req-1", Name: "Alice", Email: "alice@x.com", SigningOrder: 1, Status: signing.SignerInitiated},
		{ID: "sgn-2", RequestID: "req-1", Name: "Bob", Email: "bob@x.com", SigningOrder: 2, Status: signing.SignerInitiated},
	}
	for _, signer := range signers {
		if err := store.PutSigner(context.Background(), signer); err != nil {
			t.Fatalf("put signer %s: %v", signer.ID, err)
		}
	}
}

func signerToken(t *testing.T, minter *linktoken.Minter, signerID string) string {
	t.Helper()
	token, err := minter.Mint(linktoken.PurposeSigner, signerID, time.Hour)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestSignViewMarksSignerViewed(t *testing.T) {
	store := storagetest.New()
	seedRequest(t, store, signing.ModeParallel)
	minter := newTestMinter(t)
	handler := mountTestModule(t, store, minter)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sign/"+signerToken(t, minter, "sgn-1"), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Alice") {
		t.Fatalf("body = %s", rec.Body.String())
	}

	signer, err := store.GetSigner(context.Background(), "sgn-1")
	if err != nil {
		t.Fatalf("get signer: %v", err)
	}
	if signer.Status != signing.SignerViewed || !signer.ViewedAt.Equal(testClock()) {
		t.Fatalf("signer = %+v", signer)
	}
	request, err := store.GetSignRequest(context.Background(), "req-1")
	if err != nil {
		t.Fatalf("get request: %v", err)
	}
	if request.Status != signing.RequestInProgress || request.ViewedCount != 1 {
		t.Fatalf("request = %+v", request)
	}
}

func TestSignSubmitRecordsSignature(t *testing.T) {
	store := storagetest.New()
	seedRequest(t, store, signing.ModeParallel)
	minter := newTestMinter(t)
	handler := mountTestModule(t, store, minter)
	token := signerToken(t, minter, "sgn-1")

	form := url.Values{}
	form.Set("signature_data", `{"signature_image":"data:image/png;base64,abc"}`)
	req := httptest.NewRequest(http.MethodPost, "/sign/"+token, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}

	signer, err := store.GetSigner(context.Background(), "sgn-1")
	if err != nil {
		t.Fatalf("get signer: %v", err)
	}
	if signer.Status != signing.SignerSigned {
		t.Fatalf("signer = %+v", signer)
	}
	if string(signer.SignatureData) != `{"signature_image":"data:image/png;base64,abc"}` {
		t.Fatalf("signature data = %s", signer.SignatureData)
	}
	request, err := store.GetSignRequest(context.Background(), "req-1")
	if err != nil {
		t.Fatalf("get request: %v", err)
	}
	if request.Status != signing.RequestPartiallySigned || request.SignedCount != 1 {
		t.Fatalf("request = %+v", request)
	}
}

func TestSignSubmitEmptyPayloadRejected(t *testing.T) {
	store := storagetest.New()
	seedRequest(t, store, signing.ModeParallel)
	minter := newTestMinter(t)
	handler := mountTestModule(t, store, minter)

	req := httptest.NewRequest(http.MethodPost, "/sign/"+signerToken(t, minter, "sgn-1"), strings.NewReader("signature_data="))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSequentialModeBlocksOutOfTurnSigner(t *testing.T) {
	store := storagetest.New()
	seedRequest(t, store, signing.ModeSequential)
	minter := newTestMinter(t)
	handler := mountTestModule(t, store, minter)

	form := url.Values{}
	form.Set("signature_data", `{"signature":"ok"}`)
	req := httptest.NewRequest(http.MethodPost, "/sign/"+signerToken(t, minter, "sgn-2"), strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestSignSubmitTwiceIsConflict(t *testing.T) {
	store := storagetest.New()
	seedRequest(t, store, signing.ModeParallel)
	minter := newTestMinter(t)
	handler := mountTestModule(t, store, minter)
	token := signerToken(t, minter, "sgn-1")

	form := url.Values{}
	form.Set("signature_data", `{"signature":"ok"}`)
	for attempt, wantStatus := range []int{http.StatusFound, http.StatusConflict} {
		req := httptest.NewRequest(http.MethodPost, "/sign/"+token, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != wantStatus {
			t.Fatalf("attempt %d status = %d, want %d", attempt, rec.Code, wantStatus)
		}
	}
}

func TestDeclineIsTerminalForRequest(t *testing.T) {
	store := storagetest.New()
	seedRequest(t, store, signing.ModeParallel)
	minter := newTestMinter(t)
	handler := mountTestModule(t, store, minter)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sign/"+signerToken(t, minter, "sgn-2")+"/decline", nil))
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}

	request, err := store.GetSignRequest(context.Background(), "req-1")
	if err != nil {
		t.Fatalf("get request: %v", err)
	}
	if request.Status != signing.RequestDeclined {
		t.Fatalf("request status = %q, want declined", request.Status)
	}
}

func TestExpiredRequestIsGone(t *testing.T) {
	store := storagetest.New()
	seedRequest(t, store, signing.ModeParallel)
	request, err := store.GetSignRequest(context.Background(), "req-1")
	if err != nil {
		t.Fatalf("get request: %v", err)
	}
	request.ExpiresAt = testClock().Add(-time.Hour)
	if err := store.PutSignRequest(context.Background(), request); err != nil {
		t.Fatalf("put request: %v", err)
	}
	minter := newTestMinter(t)
	handler := mountTestModule(t, store, minter)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sign/"+signerToken(t, minter, "sgn-1"), nil))
	if rec.Code != http.StatusGone {
		t.Fatalf("status = %d, want 410", rec.Code)
	}
}

func TestInvalidTokenIsUnauthorized(t *testing.T) {
	handler := mountTestModule(t, storagetest.New(), newTestMinter(t))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sign/not-a-token", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestShareRecordsVisitAndRendersTarget(t *testing.T) {
	store := storagetest.New()
	if err := store.PutTemplate(context.Background(), storage.Template{
		ID: "tpl-1", OwnerID: "owner-1", Name: "Pitch Deck",
	}); err != nil {
		t.Fatalf("put template: %v", err)
	}
	if err := store.PutShareLink(context.Background(), storage.ShareLink{
		ID: "lnk-1", OwnerID: "owner-1", TargetKind: "template", TargetID: "tpl-1", Slug: "pitch",
	}); err != nil {
		t.Fatalf("put link: %v", err)
	}
	handler := mountTestModule(t, store, newTestMinter(t))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/l/pitch", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Pitch Deck") {
		t.Fatalf("body = %s", rec.Body.String())
	}

	analytics, err := store.GetLinkAnalytics(context.Background(), "lnk-1")
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if analytics.VisitCount != 1 {
		t.Fatalf("visit count = %d", analytics.VisitCount)
	}
}

func TestShareRequiresEmailWhenConfigured(t *testing.T) {
	store := storagetest.New()
	if err := store.PutShareLink(context.Background(), storage.ShareLink{
		ID: "lnk-1", OwnerID: "owner-1", TargetKind: "template", TargetID: "tpl-1", Slug: "pitch", RequireEmail: true,
	}); err != nil {
		t.Fatalf("put link: %v", err)
	}
	handler := mountTestModule(t, store, newTestMinter(t))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/l/pitch", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Enter your email") {
		t.Fatalf("body = %s", rec.Body.String())
	}
	analytics, err := store.GetLinkAnalytics(context.Background(), "lnk-1")
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if analytics.VisitCount != 0 {
		t.Fatal("prompt should not count as a visit")
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/l/pitch?email=viewer@x.com", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	analytics, err = store.GetLinkAnalytics(context.Background(), "lnk-1")
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if analytics.VisitCount != 1 {
		t.Fatalf("visit count = %d, want 1", analytics.VisitCount)
	}
}

func TestShareExpiredLinkIsGone(t *testing.T) {
	store := storagetest.New()
	if err := store.PutShareLink(context.Background(), storage.ShareLink{
		ID: "lnk-1", OwnerID: "owner-1", TargetKind: "template", TargetID: "tpl-1", Slug: "pitch",
		ExpiresAt: testClock().Add(-time.Minute),
	}); err != nil {
		t.Fatalf("put link: %v", err)
	}
	handler := mountTestModule(t, store, newTestMinter(t))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/l/pitch", nil))
	if rec.Code != http.StatusGone {
		t.Fatalf("status = %d, want 410", rec.Code)
	}
}
