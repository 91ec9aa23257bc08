package sign

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/velumsign/velum/internal/auth/linktoken"
	apperrors "github.com/velumsign/velum/internal/platform/errors"
	"github.com/velumsign/velum/internal/signing"
	"github.com/velumsign/velum/internal/storage"
	"github.com/velumsign/velum/internal/telemetry"
)

type service struct {
	store     storage.Store
	tokens    *linktoken.Minter
	telemetry *telemetry.Emitter
	clock     func() time.Time
}

func (s service) now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock().UTC()
}

// signerView is what the public signing page needs to render.
type signerView struct {
	Request signing.SignRequest
	Signer  signing.Signer
}

func (s service) loadSigner(ctx context.Context, token string) (signing.SignRequest, signing.Signer, error) {
	signerID, err := s.tokens.Verify(token, linktoken.PurposeSigner)
	if err != nil {
		return signing.SignRequest{}, signing.Signer{}, err
	}
	signer, err := s.store.GetSigner(ctx, signerID)
	if err != nil {
		if err == storage.ErrNotFound {
			return signing.SignRequest{}, signing.Signer{}, apperrors.New(apperrors.CodeNotFound, "signer not found")
		}
		return signing.SignRequest{}, signing.Signer{}, fmt.Errorf("load signer: %w", err)
	}
	request, err := s.store.GetSignRequest(ctx, signer.RequestID)
	if err != nil {
		if err == storage.ErrNotFound {
			return signing.SignRequest{}, signing.Signer{}, apperrors.New(apperrors.CodeNotFound, "signing request not found")
		}
		return signing.SignRequest{}, signing.Signer{}, fmt.Errorf("load signing request: %w", err)
	}
	if !request.ExpiresAt.IsZero() && request.ExpiresAt.Before(s.now()) {
		return signing.SignRequest{}, signing.Signer{}, apperrors.New(apperrors.CodeSignRequestExpired, "signing request has expired")
	}
	return request, signer, nil
}

// view loads the signer page and records the first view.
func (s service) view(ctx context.Context, token string) (signerView, error) {
	request, signer, err := s.loadSigner(ctx, token)
	if err != nil {
		return signerView{}, err
	}
	if signer.Status == signing.SignerInitiated {
		signer.Status = signing.SignerViewed
		signer.ViewedAt = s.now()
		if err := s.store.PutSigner(ctx, signer); err != nil {
			return signerView{}, fmt.Errorf("record signer view: %w", err)
		}
		if err := s.syncRequest(ctx, request.ID); err != nil {
			return signerView{}, err
		}
		if s.telemetry != nil {
			_ = s.telemetry.EmitSignerEvent(ctx, telemetry.EventSignerViewed, request.ID, signer.ID)
		}
	}
	return signerView{Request: request, Signer: signer}, nil
}

// submit records the signer's signature payload.
func (s service) submit(ctx context.Context, token, payload string) error {
	request, signer, err := s.loadSigner(ctx, token)
	if err != nil {
		return err
	}
	switch signer.Status {
	case signing.SignerSigned:
		return apperrors.New(apperrors.CodeSignerAlreadySigned, "signer has already signed")
	case signing.SignerDeclined:
		return apperrors.New(apperrors.CodeSignerAlreadyDeclined, "signer has already declined")
	}
	if request.Status == signing.RequestCompleted {
		return apperrors.New(apperrors.CodeSignRequestCompleted, "request is already finalized")
	}
	if strings.TrimSpace(payload) == "" {
		return apperrors.New(apperrors.CodeSignerSignatureDataMissing, "signature data is required")
	}
	if request.Mode == signing.ModeSequential {
		signers, err := s.store.ListSigners(ctx, request.ID)
		if err != nil {
			return fmt.Errorf("load signers: %w", err)
		}
		if !signing.SequentialTurn(signers, signer.ID) {
			return apperrors.New(apperrors.CodeSignRequestInvalidStatus, "earlier signers have not signed yet")
		}
	}

	signer.SignatureData = []byte(payload)
	signer.Status = signing.SignerSigned
	signer.SignedAt = s.now()
	if err := s.store.PutSigner(ctx, signer); err != nil {
		return fmt.Errorf("record signature: %w", err)
	}
	if err := s.syncRequest(ctx, request.ID); err != nil {
		return err
	}
	if s.telemetry != nil {
		_ = s.telemetry.EmitSignerEvent(ctx, telemetry.EventSignerSigned, request.ID, signer.ID)
	}
	return nil
}

// decline records a terminal decline for the signer.
func (s service) decline(ctx context.Context, token string) error {
	request, signer, err := s.loadSigner(ctx, token)
	if err != nil {
		return err
	}
	switch signer.Status {
	case signing.SignerSigned:
		return apperrors.New(apperrors.CodeSignerAlreadySigned, "signer has already signed")
	case signing.SignerDeclined:
		return apperrors.New(apperrors.CodeSignerAlreadyDeclined, "signer has already declined")
	}

	signer.Status = signing.SignerDeclined
	if err := s.store.PutSigner(ctx, signer); err != nil {
		return fmt.Errorf("record decline: %w", err)
	}
	if err := s.syncRequest(ctx, request.ID); err != nil {
		return err
	}
	if s.telemetry != nil {
		_ = s.telemetry.EmitSignerEvent(ctx, telemetry.EventSignerDeclined, request.ID, signer.ID)
	}
	return nil
}

// syncRequest recomputes derived request state from its signers.
func (s service) syncRequest(ctx context.Context, requestID string) error {
	request, err := s.store.GetSignRequest(ctx, requestID)
	if err != nil {
		return fmt.Errorf("load signing request: %w", err)
	}
	signers, err := s.store.ListSigners(ctx, requestID)
	if err != nil {
		return fmt.Errorf("load signers: %w", err)
	}
	request.Status = signing.DeriveRequestStatus(signers)
	request.SignedCount = signing.CountByStatus(signers, signing.SignerSigned)
	request.ViewedCount = signing.CountByStatus(signers, signing.SignerViewed) + request.SignedCount
	if err := s.store.PutSignRequest(ctx, request); err != nil {
		return fmt.Errorf("update signing request: %w", err)
	}
	return nil
}

// shareView is what the public share page needs to render.
type shareView struct {
	Link       storage.ShareLink
	TargetName string
}

// resolveShare loads a share link by slug, enforces its access rules, and
// records the visit.
func (s service) resolveShare(ctx context.Context, slug, visitorEmail, userAgent string) (shareView, error) {
	slug = strings.TrimSpace(slug)
	link, err := s.store.GetShareLinkBySlug(ctx, slug)
	if err != nil {
		if err == storage.ErrNotFound {
			return shareView{}, apperrors.New(apperrors.CodeNotFound, "share link not found")
		}
		return shareView{}, fmt.Errorf("load share link: %w", err)
	}
	if !link.ExpiresAt.IsZero() && link.ExpiresAt.Before(s.now()) {
		return shareView{}, apperrors.New(apperrors.CodeLinkExpired, "share link has expired")
	}

	requireEmail := link.RequireEmail
	settings, err := s.store.GetSecuritySettings(ctx, link.OwnerID)
	if err == nil && settings.RequireEmail {
		requireEmail = true
	}
	if requireEmail && strings.TrimSpace(visitorEmail) == "" {
		return shareView{}, apperrors.New(apperrors.CodeLinkEmailRequired, "an email address is required to view this document")
	}

	if err := s.store.RecordLinkVisit(ctx, storage.LinkVisit{
		LinkID:       link.ID,
		VisitorEmail: strings.TrimSpace(visitorEmail),
		UserAgent:    strings.TrimSpace(userAgent),
		VisitedAt:    s.now(),
	}); err != nil {
		return shareView{}, fmt.Errorf("record link visit: %w", err)
	}
	if s.telemetry != nil {
		_ = s.telemetry.EmitLinkVisited(ctx, link.ID, link.Slug)
	}

	targetName := link.TargetID
	switch link.TargetKind {
	case "template":
		if template, err := s.store.GetTemplate(ctx, link.TargetID); err == nil {
			targetName = template.Name
		}
	case "dataroom":
		if room, err := s.store.GetDataRoom(ctx, link.TargetID); err == nil {
			targetName = room.Name
		}
	}
	return shareView{Link: link, TargetName: targetName}, nil
}
