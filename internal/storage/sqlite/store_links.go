package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/velumsign/velum/internal/storage"
	msqlite "modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

// PutShareLink upserts one share link row. A slug collision with a
// different link reports storage.ErrAlreadyExists.
func (s *Store) PutShareLink(ctx context.Context, link storage.ShareLink) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	link.ID = strings.TrimSpace(link.ID)
	if link.ID == "" {
		return fmt.Errorf("share link id is required")
	}
	if strings.TrimSpace(link.OwnerID) == "" {
		return fmt.Errorf("share link owner id is required")
	}
	link.Slug = strings.TrimSpace(link.Slug)
	if link.Slug == "" {
		return fmt.Errorf("share link slug is required")
	}
	if strings.TrimSpace(link.TargetID) == "" {
		return fmt.Errorf("share link target id is required")
	}
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO share_links (id, owner_id, target_kind, target_id, slug, require_email, password, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    target_kind = excluded.target_kind,
		    target_id = excluded.target_id,
		    slug = excluded.slug,
		    require_email = excluded.require_email,
		    password = excluded.password,
		    expires_at = excluded.expires_at`,
		link.ID,
		strings.TrimSpace(link.OwnerID),
		strings.TrimSpace(link.TargetKind),
		strings.TrimSpace(link.TargetID),
		link.Slug,
		boolToInt(link.RequireEmail),
		link.Password,
		timeToUnixMillis(link.ExpiresAt),
		timeToUnixMillis(link.CreatedAt),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("put share link: %w", err)
	}
	return nil
}

// GetShareLink loads one share link by id.
func (s *Store) GetShareLink(ctx context.Context, linkID string) (storage.ShareLink, error) {
	if s == nil || s.sqlDB == nil {
		return storage.ShareLink{}, fmt.Errorf("storage is not configured")
	}
	linkID = strings.TrimSpace(linkID)
	if linkID == "" {
		return storage.ShareLink{}, fmt.Errorf("share link id is required")
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, owner_id, target_kind, target_id, slug, require_email, password, expires_at, created_at
		 FROM share_links
		 WHERE id = ?`,
		linkID,
	)
	return scanShareLink(row)
}

// GetShareLinkBySlug loads one share link by its public slug.
func (s *Store) GetShareLinkBySlug(ctx context.Context, slug string) (storage.ShareLink, error) {
	if s == nil || s.sqlDB == nil {
		return storage.ShareLink{}, fmt.Errorf("storage is not configured")
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return storage.ShareLink{}, fmt.Errorf("share link slug is required")
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, owner_id, target_kind, target_id, slug, require_email, password, expires_at, created_at
		 FROM share_links
		 WHERE slug = ?`,
		slug,
	)
	return scanShareLink(row)
}

// ListShareLinksByOwner returns an owner's share links, newest first.
func (s *Store) ListShareLinksByOwner(ctx context.Context, ownerID string) ([]storage.ShareLink, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, owner_id, target_kind, target_id, slug, require_email, password, expires_at, created_at
		 FROM share_links
		 WHERE owner_id = ?
		 ORDER BY created_at DESC, id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list share links: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	links := make([]storage.ShareLink, 0)
	for rows.Next() {
		link, err := scanShareLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate share links: %w", err)
	}
	return links, nil
}

// DeleteShareLink removes one share link; visits cascade.
func (s *Store) DeleteShareLink(ctx context.Context, linkID string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	linkID = strings.TrimSpace(linkID)
	if linkID == "" {
		return fmt.Errorf("share link id is required")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM share_links WHERE id = ?`, linkID); err != nil {
		return fmt.Errorf("delete share link: %w", err)
	}
	return nil
}

// RecordLinkVisit appends one visit row for a share link.
func (s *Store) RecordLinkVisit(ctx context.Context, visit storage.LinkVisit) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	visit.LinkID = strings.TrimSpace(visit.LinkID)
	if visit.LinkID == "" {
		return fmt.Errorf("link id is required")
	}
	if visit.VisitedAt.IsZero() {
		visit.VisitedAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO link_visits (link_id, visitor_email, user_agent, visited_at)
		 VALUES (?, ?, ?, ?)`,
		visit.LinkID,
		strings.TrimSpace(visit.VisitorEmail),
		strings.TrimSpace(visit.UserAgent),
		timeToUnixMillis(visit.VisitedAt),
	)
	if err != nil {
		return fmt.Errorf("record link visit: %w", err)
	}
	return nil
}

// ListLinkVisits returns the most recent visits for a link.
func (s *Store) ListLinkVisits(ctx context.Context, linkID string, limit int) ([]storage.LinkVisit, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	linkID = strings.TrimSpace(linkID)
	if linkID == "" {
		return nil, fmt.Errorf("link id is required")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT link_id, visitor_email, user_agent, visited_at
		 FROM link_visits
		 WHERE link_id = ?
		 ORDER BY visited_at DESC
		 LIMIT ?`,
		linkID,
		int64(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("list link visits: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	visits := make([]storage.LinkVisit, 0)
	for rows.Next() {
		var visit storage.LinkVisit
		var visitedAt int64
		if err := rows.Scan(&visit.LinkID, &visit.VisitorEmail, &visit.UserAgent, &visitedAt); err != nil {
			return nil, fmt.Errorf("scan link visit: %w", err)
		}
		visit.VisitedAt = unixMillisToTime(visitedAt)
		visits = append(visits, visit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate link visits: %w", err)
	}
	return visits, nil
}

// GetLinkAnalytics aggregates visit counts for one share link.
func (s *Store) GetLinkAnalytics(ctx context.Context, linkID string) (storage.LinkAnalytics, error) {
	if s == nil || s.sqlDB == nil {
		return storage.LinkAnalytics{}, fmt.Errorf("storage is not configured")
	}
	linkID = strings.TrimSpace(linkID)
	if linkID == "" {
		return storage.LinkAnalytics{}, fmt.Errorf("link id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT COUNT(*), COALESCE(MAX(visited_at), 0)
		 FROM link_visits
		 WHERE link_id = ?`,
		linkID,
	)
	var count int64
	var lastVisit int64
	if err := row.Scan(&count, &lastVisit); err != nil {
		return storage.LinkAnalytics{}, fmt.Errorf("get link analytics: %w", err)
	}
	return storage.LinkAnalytics{
		LinkID:      linkID,
		VisitCount:  int(count),
		LastVisitAt: unixMillisToTime(lastVisit),
	}, nil
}

func scanShareLink(row rowScanner) (storage.ShareLink, error) {
	var link storage.ShareLink
	var requireEmail int64
	var expiresAt, createdAt int64
	err := row.Scan(
		&link.ID,
		&link.OwnerID,
		&link.TargetKind,
		&link.TargetID,
		&link.Slug,
		&requireEmail,
		&link.Password,
		&expiresAt,
		&createdAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return storage.ShareLink{}, storage.ErrNotFound
		}
		return storage.ShareLink{}, fmt.Errorf("scan share link: %w", err)
	}
	link.RequireEmail = requireEmail != 0
	link.ExpiresAt = unixMillisToTime(expiresAt)
	link.CreatedAt = unixMillisToTime(createdAt)
	return link, nil
}

// isUniqueConstraintError reports whether err is a SQLite unique violation.
func isUniqueConstraintError(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlitelib.SQLITE_CONSTRAINT_UNIQUE || code == sqlitelib.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
