package links

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	apperrors "github.com/velumsign/velum/internal/platform/errors"
	"github.com/velumsign/velum/internal/platform/id"
	"github.com/velumsign/velum/internal/storage"
)

// slugPattern constrains public slugs to URL-safe lowercase tokens.
var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,62}$`)

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

type createLinkInput struct {
	Slug         string
	TargetKind   string
	TargetID     string
	RequireEmail bool
	Password     string
	ExpiresAt    time.Time
}

func (s service) createLink(ctx context.Context, ownerID string, input createLinkInput) (storage.ShareLink, error) {
	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if slug == "" {
		return storage.ShareLink{}, apperrors.New(apperrors.CodeLinkSlugEmpty, "share link slug is required")
	}
	if !slugPattern.MatchString(slug) {
		return storage.ShareLink{}, apperrors.New(apperrors.CodeLinkSlugEmpty, "slug must be lowercase letters, digits, and dashes")
	}
	targetKind := strings.TrimSpace(input.TargetKind)
	if targetKind != "template" && targetKind != "dataroom" {
		return storage.ShareLink{}, apperrors.New(apperrors.CodeLinkTargetEmpty, "share target must be a template or data room")
	}
	targetID := strings.TrimSpace(input.TargetID)
	if targetID == "" {
		return storage.ShareLink{}, apperrors.New(apperrors.CodeLinkTargetEmpty, "share target id is required")
	}

	link := storage.ShareLink{
		ID:           id.MustNewID(),
		OwnerID:      ownerID,
		TargetKind:   targetKind,
		TargetID:     targetID,
		Slug:         slug,
		RequireEmail: input.RequireEmail,
		Password:     strings.TrimSpace(input.Password),
		ExpiresAt:    input.ExpiresAt,
		CreatedAt:    s.now(),
	}
	if err := s.store.PutShareLink(ctx, link); err != nil {
		if err == storage.ErrAlreadyExists {
			return storage.ShareLink{}, apperrors.New(apperrors.CodeLinkSlugTaken, "slug is already in use")
		}
		return storage.ShareLink{}, fmt.Errorf("create share link: %w", err)
	}
	return link, nil
}

func (s service) listLinks(ctx context.Context, ownerID string) ([]storage.ShareLink, error) {
	return s.store.ListShareLinksByOwner(ctx, ownerID)
}

func (s service) deleteLink(ctx context.Context, linkID string) error {
	return s.store.DeleteShareLink(ctx, linkID)
}

// linkAnalytics is the analytics page view model source.
type linkAnalytics struct {
	Link      storage.ShareLink
	Analytics storage.LinkAnalytics
	Visits    []storage.LinkVisit
}

func (s service) analytics(ctx context.Context, linkID string) (linkAnalytics, error) {
	link, err := s.store.GetShareLink(ctx, linkID)
	if err != nil {
		if err == storage.ErrNotFound {
			return linkAnalytics{}, apperrors.New(apperrors.CodeNotFound, "share link not found")
		}
		return linkAnalytics{}, fmt.Errorf("load share link: %w", err)
	}
	aggregate, err := s.store.GetLinkAnalytics(ctx, linkID)
	if err != nil {
		return linkAnalytics{}, fmt.Errorf("load link analytics: %w", err)
	}
	visits, err := s.store.ListLinkVisits(ctx, linkID, 50)
	if err != nil {
		return linkAnalytics{}, fmt.Errorf("load link visits: %w", err)
	}
	return linkAnalytics{Link: link, Analytics: aggregate, Visits: visits}, nil
}
