package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/velumsign/velum/internal/platform/errors"
	"github.com/velumsign/velum/internal/signing"
	"github.com/velumsign/velum/internal/storage"
	"github.com/velumsign/velum/internal/storage/storagetest"
	"github.com/velumsign/velum/internal/telemetry"
)

var testClock = func() time.Time {
	return time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
}

func newTestService(store *storagetest.Store) service {
	return service{
		store:     store,
		telemetry: telemetry.NewEmitter(store),
		clock:     testClock,
	}
}

type fakeFiller struct {
	templateKey string
	inputs      map[string]string
	err         error
}

func (f *fakeFiller) Fill(_ context.Context, templateKey, requestID string, inputs map[string]string) (string, error) {
	f.templateKey = templateKey
	f.inputs = inputs
	if f.err != nil {
		return "", f.err
	}
	return requestID + ".json", nil
}

func TestCreateRequestValidation(t *testing.T) {
	svc := newTestService(storagetest.New())

	_, err := svc.createRequest(context.Background(), "owner-1", createRequestInput{
		Signers: []signerInput{{Email: "a@x.com"}},
	})
	if !errors.Is(err, apperrors.New(apperrors.CodeSignRequestTitleEmpty, "")) {
		t.Fatalf("expected title error, got %v", err)
	}

	_, err = svc.createRequest(context.Background(), "owner-1", createRequestInput{Title: "NDA"})
	if !errors.Is(err, apperrors.New(apperrors.CodeSignRequestNoSigners, "")) {
		t.Fatalf("expected no-signers error, got %v", err)
	}

	_, err = svc.createRequest(context.Background(), "owner-1", createRequestInput{
		Title:   "NDA",
		Mode:    "roundtable",
		Signers: []signerInput{{Email: "a@x.com"}},
	})
	if !errors.Is(err, apperrors.New(apperrors.CodeSignRequestInvalidMode, "")) {
		t.Fatalf("expected mode error, got %v", err)
	}

	_, err = svc.createRequest(context.Background(), "owner-1", createRequestInput{
		Title:   "NDA",
		Signers: []signerInput{{Name: "No Email"}},
	})
	if !errors.Is(err, apperrors.New(apperrors.CodeSignerEmailEmpty, "")) {
		t.Fatalf("expected signer email error, got %v", err)
	}
}

func TestCreateRequestAssignsSequentialOrders(t *testing.T) {
	store := storagetest.New()
	svc := newTestService(store)

	request, err := svc.createRequest(context.Background(), "owner-1", createRequestInput{
		Title: "Master Services Agreement",
		Mode:  "sequential",
		Signers: []signerInput{
			{Name: "Alice", Email: "alice@x.com"},
			{Name: "Bob", Email: "bob@x.com"},
		},
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if request.Mode != signing.ModeSequential || request.TotalSigners != 2 {
		t.Fatalf("request = %+v", request)
	}
	if !request.ExpiresAt.Equal(testClock().Add(defaultExpiry)) {
		t.Fatalf("expires at = %v", request.ExpiresAt)
	}

	signers, err := store.ListSigners(context.Background(), request.ID)
	if err != nil {
		t.Fatalf("list signers: %v", err)
	}
	if len(signers) != 2 || signers[0].SigningOrder != 1 || signers[1].SigningOrder != 2 {
		t.Fatalf("signers = %+v", signers)
	}
	if signers[0].Email != "alice@x.com" || signers[1].Email != "bob@x.com" {
		t.Fatalf("signer order wrong: %+v", signers)
	}

	if len(store.Events) != 1 || store.Events[0].Event != telemetry.EventRequestCreated {
		t.Fatalf("telemetry events = %+v", store.Events)
	}
}

func TestCreateRequestRollsBackOnSignerFailure(t *testing.T) {
	store := storagetest.New()
	store.FailPutSigner = "bob@x.com"
	svc := newTestService(store)

	_, err := svc.createRequest(context.Background(), "owner-1", createRequestInput{
		Title: "NDA",
		Signers: []signerInput{
			{Email: "alice@x.com"},
			{Email: "bob@x.com"},
		},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	requests, err := store.ListSignRequestsByOwner(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("list requests: %v", err)
	}
	if len(requests) != 0 {
		t.Fatalf("half-created request not rolled back: %+v", requests)
	}
}

func setupFinalizableRequest(t *testing.T, store *storagetest.Store) (signing.SignRequest, storage.Template) {
	t.Helper()
	template := storage.Template{
		ID:         "tpl-1",
		OwnerID:    "owner-1",
		Name:       "Offer Letter",
		StorageKey: "templates/tpl-1.pdf",
		FieldSchema: []byte(`[
			{"name":"sig1","type":"signature","signer_email":"alice@x.com"},
			{"name":"date1","type":"date","signer_email":"alice@x.com"},
			{"name":"name1","type":"name","signer_email":"alice@x.com"}
		]`),
	}
	if err := store.PutTemplate(context.Background(), template); err != nil {
		t.Fatalf("put template: %v", err)
	}
	request := signing.SignRequest{
		ID:           "req-1",
		OwnerID:      "owner-1",
		TemplateID:   "tpl-1",
		Title:        "Offer Letter",
		Status:       signing.RequestInProgress,
		Mode:         signing.ModeParallel,
		TotalSigners: 1,
		CreatedAt:    testClock(),
	}
	if err := store.PutSignRequest(context.Background(), request); err != nil {
		t.Fatalf("put request: %v", err)
	}
	signer := signing.Signer{
		ID:            "sgn-1",
		RequestID:     "req-1",
		Email:         "alice@x.com",
		Name:          "Alice",
		SigningOrder:  1,
		Status:        signing.SignerSigned,
		SignatureData: []byte(`{"signature_image":"data:image/png;base64,abc","signer_name":"Alice Smith"}`),
		SignedAt:      testClock(),
	}
	if err := store.PutSigner(context.Background(), signer); err != nil {
		t.Fatalf("put signer: %v", err)
	}
	return request, template
}

func TestFinalizePopulatesInputsAndCompletes(t *testing.T) {
	store := storagetest.New()
	setupFinalizableRequest(t, store)
	filler := &fakeFiller{}
	svc := newTestService(store)
	svc.filler = filler

	outcome, err := svc.finalize(context.Background(), "req-1")
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if outcome.PopulatedFields != 3 || outcome.TotalFields != 3 || outcome.SkippedFields != 0 {
		t.Fatalf("outcome = %+v", outcome)
	}
	if outcome.ArtifactKey != "req-1.json" {
		t.Fatalf("artifact key = %q", outcome.ArtifactKey)
	}

	if filler.templateKey != "templates/tpl-1.pdf" {
		t.Fatalf("filler template = %q", filler.templateKey)
	}
	if filler.inputs["sig1"] != "data:image/png;base64,abc" {
		t.Fatalf("sig1 = %q", filler.inputs["sig1"])
	}
	if filler.inputs["date1"] != "August 20, 2026" {
		t.Fatalf("date1 = %q", filler.inputs["date1"])
	}
	if filler.inputs["name1"] != "Alice Smith" {
		t.Fatalf("name1 = %q", filler.inputs["name1"])
	}

	request, err := store.GetSignRequest(context.Background(), "req-1")
	if err != nil {
		t.Fatalf("get request: %v", err)
	}
	if request.Status != signing.RequestCompleted || request.SignedCount != 1 {
		t.Fatalf("request = %+v", request)
	}
	if request.ArtifactKey != "req-1.json" {
		t.Fatalf("artifact key = %q", request.ArtifactKey)
	}

	found := false
	for _, event := range store.Events {
		if event.Event == telemetry.EventRequestFinalized {
			found = true
			if event.Attributes["populated"] != "3" {
				t.Fatalf("event attributes = %+v", event.Attributes)
			}
		}
	}
	if !found {
		t.Fatal("finalize telemetry not emitted")
	}
}

func TestFinalizeCompletedRequestIsRejected(t *testing.T) {
	store := storagetest.New()
	request, _ := setupFinalizableRequest(t, store)
	request.Status = signing.RequestCompleted
	if err := store.PutSignRequest(context.Background(), request); err != nil {
		t.Fatalf("put request: %v", err)
	}
	svc := newTestService(store)

	_, err := svc.finalize(context.Background(), "req-1")
	if !errors.Is(err, apperrors.New(apperrors.CodeSignRequestCompleted, "")) {
		t.Fatalf("expected completed error, got %v", err)
	}
}

func TestFinalizeMissingRequest(t *testing.T) {
	svc := newTestService(storagetest.New())
	_, err := svc.finalize(context.Background(), "nope")
	if !errors.Is(err, apperrors.New(apperrors.CodeNotFound, "")) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteCompletedRequestIsRejected(t *testing.T) {
	store := storagetest.New()
	request, _ := setupFinalizableRequest(t, store)
	request.Status = signing.RequestCompleted
	if err := store.PutSignRequest(context.Background(), request); err != nil {
		t.Fatalf("put request: %v", err)
	}
	svc := newTestService(store)

	err := svc.deleteRequest(context.Background(), "req-1")
	if !errors.Is(err, apperrors.New(apperrors.CodeSignRequestCompleted, "")) {
		t.Fatalf("expected completed error, got %v", err)
	}
}

func TestCreateTemplateValidatesSchema(t *testing.T) {
	svc := newTestService(storagetest.New())

	_, err := svc.createTemplate(context.Background(), "owner-1", "", "key", []byte(`[]`))
	if !errors.Is(err, apperrors.New(apperrors.CodeTemplateNameEmpty, "")) {
		t.Fatalf("expected name error, got %v", err)
	}

	_, err = svc.createTemplate(context.Background(), "owner-1", "Offer", "key", []byte(`not json`))
	if !errors.Is(err, apperrors.New(apperrors.CodeTemplateFieldSchemaInvalid, "")) {
		t.Fatalf("expected schema error, got %v", err)
	}

	_, err = svc.createTemplate(context.Background(), "owner-1", "Offer", "key", nil)
	if !errors.Is(err, apperrors.New(apperrors.CodeFieldSchemaEmpty, "")) {
		t.Fatalf("expected empty schema error, got %v", err)
	}

	template, err := svc.createTemplate(context.Background(), "owner-1", "Offer", "key", []byte(`[{"name":"sig1","type":"signature"}]`))
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	if template.ID == "" || template.Name != "Offer" {
		t.Fatalf("template = %+v", template)
	}
}

func TestParseSignerLines(t *testing.T) {
	signers := parseSignerLines("Alice Smith <alice@x.com>\n\nbob@x.com\n  Carol <carol@x.com>  ")
	if len(signers) != 3 {
		t.Fatalf("signers = %+v", signers)
	}
	if signers[0].Name != "Alice Smith" || signers[0].Email != "alice@x.com" {
		t.Fatalf("first = %+v", signers[0])
	}
	if signers[1].Name != "" || signers[1].Email != "bob@x.com" {
		t.Fatalf("second = %+v", signers[1])
	}
	if signers[2].Name != "Carol" || signers[2].Email != "carol@x.com" {
		t.Fatalf("third = %+v", signers[2])
	}
}
