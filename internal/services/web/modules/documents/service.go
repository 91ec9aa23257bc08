package documents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/velumsign/velum/internal/pdf"
	apperrors "github.com/velumsign/velum/internal/platform/errors"
	"github.com/velumsign/velum/internal/platform/id"
	"github.com/velumsign/velum/internal/platform/timeouts"
	"github.com/velumsign/velum/internal/signing"
	"github.com/velumsign/velum/internal/signing/engine"
	"github.com/velumsign/velum/internal/storage"
	"github.com/velumsign/velum/internal/telemetry"
)

// defaultExpiry is how long a new signing request stays actionable.
const defaultExpiry = 30 * 24 * time.Hour

type service struct {
	store     storage.Store
	filler    pdf.Filler
	telemetry *telemetry.Emitter
	clock     func() time.Time
}

type signerInput struct {
	Name  string
	Email string
}

type createRequestInput struct {
	Title      string
	TemplateID string
	Mode       string
	Signers    []signerInput
}

func (s service) now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock().UTC()
}

func (s service) createRequest(ctx context.Context, ownerID string, input createRequestInput) (signing.SignRequest, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return signing.SignRequest{}, apperrors.New(apperrors.CodeSignRequestTitleEmpty, "signing request title is required")
	}
	if len(input.Signers) == 0 {
		return signing.SignRequest{}, apperrors.New(apperrors.CodeSignRequestNoSigners, "signing request needs at least one signer")
	}
	mode, err := parseMode(input.Mode)
	if err != nil {
		return signing.SignRequest{}, err
	}
	for _, signer := range input.Signers {
		if strings.TrimSpace(signer.Email) == "" {
			return signing.SignRequest{}, apperrors.New(apperrors.CodeSignerEmailEmpty, "signer email is required")
		}
	}

	now := s.now()
	request := signing.SignRequest{
		ID:           id.MustNewID(),
		OwnerID:      ownerID,
		TemplateID:   strings.TrimSpace(input.TemplateID),
		Title:        title,
		Status:       signing.RequestInitiated,
		Mode:         mode,
		TotalSigners: len(input.Signers),
		CreatedAt:    now,
		ExpiresAt:    now.Add(defaultExpiry),
	}
	if err := s.store.PutSignRequest(ctx, request); err != nil {
		return signing.SignRequest{}, fmt.Errorf("create signing request: %w", err)
	}
	for index, signer := range input.Signers {
		record := signing.Signer{
			ID:           id.MustNewID(),
			RequestID:    request.ID,
			Email:        strings.TrimSpace(signer.Email),
			Name:         strings.TrimSpace(signer.Name),
			SigningOrder: index + 1,
			Status:       signing.SignerInitiated,
		}
		if err := s.store.PutSigner(ctx, record); err != nil {
			// Roll the half-created request back so no orphan rows remain.
			_ = s.store.DeleteSignRequest(ctx, request.ID)
			return signing.SignRequest{}, fmt.Errorf("create signer: %w", err)
		}
	}

	if s.telemetry != nil {
		_ = s.telemetry.Emit(ctx, storage.TelemetryEvent{
			Event: telemetry.EventRequestCreated,
			Attributes: map[string]string{
				"request_id": request.ID,
				"signers":    fmt.Sprintf("%d", request.TotalSigners),
			},
		})
	}
	return request, nil
}

func parseMode(raw string) (signing.SigningMode, error) {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "", string(signing.ModeParallel):
		return signing.ModeParallel, nil
	case string(signing.ModeSequential):
		return signing.ModeSequential, nil
	default:
		return "", apperrors.New(apperrors.CodeSignRequestInvalidMode, "signing mode must be sequential or parallel")
	}
}

func (s service) listRequests(ctx context.Context, ownerID string) ([]signing.SignRequest, error) {
	return s.store.ListSignRequestsByOwner(ctx, ownerID)
}

func (s service) requestDetail(ctx context.Context, requestID string) (signing.SignRequest, []signing.Signer, error) {
	request, err := s.store.GetSignRequest(ctx, requestID)
	if err != nil {
		if err == storage.ErrNotFound {
			return signing.SignRequest{}, nil, apperrors.New(apperrors.CodeNotFound, "signing request not found")
		}
		return signing.SignRequest{}, nil, fmt.Errorf("load signing request: %w", err)
	}
	signers, err := s.store.ListSigners(ctx, requestID)
	if err != nil {
		return signing.SignRequest{}, nil, fmt.Errorf("load signers: %w", err)
	}
	return request, signers, nil
}

func (s service) deleteRequest(ctx context.Context, requestID string) error {
	request, err := s.store.GetSignRequest(ctx, requestID)
	if err != nil {
		if err == storage.ErrNotFound {
			return apperrors.New(apperrors.CodeNotFound, "signing request not found")
		}
		return fmt.Errorf("load signing request: %w", err)
	}
	if request.Status == signing.RequestCompleted {
		return apperrors.New(apperrors.CodeSignRequestCompleted, "completed requests are immutable")
	}
	return s.store.DeleteSignRequest(ctx, requestID)
}

// finalizeOutcome summarizes one finalize run for the detail page.
type finalizeOutcome struct {
	ArtifactKey     string
	PopulatedFields int
	TotalFields     int
	SkippedFields   int
}

// finalize resolves field inputs from the captured signatures and hands them
// to the document filler. It may run more than once as signatures arrive;
// a completed request is final.
func (s service) finalize(ctx context.Context, requestID string) (finalizeOutcome, error) {
	request, err := s.store.GetSignRequest(ctx, requestID)
	if err != nil {
		if err == storage.ErrNotFound {
			return finalizeOutcome{}, apperrors.New(apperrors.CodeNotFound, "signing request not found")
		}
		return finalizeOutcome{}, fmt.Errorf("load signing request: %w", err)
	}
	if request.Status == signing.RequestCompleted {
		return finalizeOutcome{}, apperrors.New(apperrors.CodeSignRequestCompleted, "request is already finalized")
	}
	template, err := s.store.GetTemplate(ctx, request.TemplateID)
	if err != nil {
		if err == storage.ErrNotFound {
			return finalizeOutcome{}, apperrors.New(apperrors.CodeNotFound, "document template not found")
		}
		return finalizeOutcome{}, fmt.Errorf("load template: %w", err)
	}
	schema, err := signing.ParseFieldSchema(template.FieldSchema)
	if err != nil {
		return finalizeOutcome{}, err
	}
	signers, err := s.store.ListSigners(ctx, requestID)
	if err != nil {
		return finalizeOutcome{}, fmt.Errorf("load signers: %w", err)
	}

	result, err := engine.Populate(schema, signers, engine.WithClock(s.clock))
	if err != nil {
		return finalizeOutcome{}, err
	}

	artifactKey := ""
	if s.filler != nil {
		fillCtx, cancel := context.WithTimeout(ctx, timeouts.PDFGeneration)
		defer cancel()
		artifactKey, err = s.filler.Fill(fillCtx, template.StorageKey, request.ID, result.Inputs)
		if err != nil {
			return finalizeOutcome{}, fmt.Errorf("fill document: %w", err)
		}
	}

	request.ArtifactKey = artifactKey
	request.Status = signing.DeriveRequestStatus(signers)
	request.SignedCount = signing.CountByStatus(signers, signing.SignerSigned)
	request.ViewedCount = signing.CountByStatus(signers, signing.SignerViewed) + request.SignedCount
	if err := s.store.PutSignRequest(ctx, request); err != nil {
		return finalizeOutcome{}, fmt.Errorf("update signing request: %w", err)
	}

	if s.telemetry != nil {
		_ = s.telemetry.EmitRequestFinalized(ctx, request.ID, result.PopulatedFields, result.TotalFields, len(result.Skips))
	}
	return finalizeOutcome{
		ArtifactKey:     artifactKey,
		PopulatedFields: result.PopulatedFields,
		TotalFields:     result.TotalFields,
		SkippedFields:   len(result.Skips),
	}, nil
}

func (s service) createTemplate(ctx context.Context, ownerID, name, storageKey string, fieldSchema []byte) (storage.Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return storage.Template{}, apperrors.New(apperrors.CodeTemplateNameEmpty, "template name is required")
	}
	if _, err := signing.ParseFieldSchema(fieldSchema); err != nil {
		return storage.Template{}, err
	}

	now := s.now()
	template := storage.Template{
		ID:          id.MustNewID(),
		OwnerID:     ownerID,
		Name:        name,
		StorageKey:  strings.TrimSpace(storageKey),
		FieldSchema: fieldSchema,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.PutTemplate(ctx, template); err != nil {
		return storage.Template{}, fmt.Errorf("create template: %w", err)
	}
	return template, nil
}

func (s service) listTemplates(ctx context.Context, ownerID string) ([]storage.Template, error) {
	return s.store.ListTemplatesByOwner(ctx, ownerID)
}

func (s service) deleteTemplate(ctx context.Context, templateID string) error {
	return s.store.DeleteTemplate(ctx, templateID)
}
