package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/velumsign/velum/internal/signing"
	"github.com/velumsign/velum/internal/storage"
)

// PutSignRequest upserts one signing request row.
func (s *Store) PutSignRequest(ctx context.Context, request signing.SignRequest) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	request.ID = strings.TrimSpace(request.ID)
	if request.ID == "" {
		return fmt.Errorf("sign request id is required")
	}
	if strings.TrimSpace(request.OwnerID) == "" {
		return fmt.Errorf("sign request owner id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO sign_requests (
		    id, owner_id, template_id, title, document_sign_id, status, signing_mode,
		    total_signers, viewed_count, signed_count, artifact_key, created_at, expires_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    title = excluded.title,
		    document_sign_id = excluded.document_sign_id,
		    status = excluded.status,
		    signing_mode = excluded.signing_mode,
		    total_signers = excluded.total_signers,
		    viewed_count = excluded.viewed_count,
		    signed_count = excluded.signed_count,
		    artifact_key = excluded.artifact_key,
		    expires_at = excluded.expires_at`,
		request.ID,
		strings.TrimSpace(request.OwnerID),
		strings.TrimSpace(request.TemplateID),
		strings.TrimSpace(request.Title),
		strings.TrimSpace(request.DocumentSignID),
		string(request.Status),
		string(request.Mode),
		int64(request.TotalSigners),
		int64(request.ViewedCount),
		int64(request.SignedCount),
		strings.TrimSpace(request.ArtifactKey),
		timeToUnixMillis(request.CreatedAt),
		timeToUnixMillis(request.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("put sign request: %w", err)
	}
	return nil
}

// GetSignRequest loads one signing request by id.
func (s *Store) GetSignRequest(ctx context.Context, requestID string) (signing.SignRequest, error) {
	if s == nil || s.sqlDB == nil {
		return signing.SignRequest{}, fmt.Errorf("storage is not configured")
	}
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return signing.SignRequest{}, fmt.Errorf("sign request id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, owner_id, template_id, title, document_sign_id, status, signing_mode,
		        total_signers, viewed_count, signed_count, artifact_key, created_at, expires_at
		 FROM sign_requests
		 WHERE id = ?`,
		requestID,
	)
	return scanSignRequest(row)
}

// ListSignRequestsByOwner returns an owner's requests, newest first.
func (s *Store) ListSignRequestsByOwner(ctx context.Context, ownerID string) ([]signing.SignRequest, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, owner_id, template_id, title, document_sign_id, status, signing_mode,
		        total_signers, viewed_count, signed_count, artifact_key, created_at, expires_at
		 FROM sign_requests
		 WHERE owner_id = ?
		 ORDER BY created_at DESC, id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list sign requests: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	requests := make([]signing.SignRequest, 0)
	for rows.Next() {
		request, err := scanSignRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sign requests: %w", err)
	}
	return requests, nil
}

// DeleteSignRequest removes a request; signer rows cascade.
func (s *Store) DeleteSignRequest(ctx context.Context, requestID string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return fmt.Errorf("sign request id is required")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM sign_requests WHERE id = ?`, requestID); err != nil {
		return fmt.Errorf("delete sign request: %w", err)
	}
	return nil
}

// PutSigner upserts one signer row.
func (s *Store) PutSigner(ctx context.Context, signer signing.Signer) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	signer.ID = strings.TrimSpace(signer.ID)
	if signer.ID == "" {
		return fmt.Errorf("signer id is required")
	}
	if strings.TrimSpace(signer.RequestID) == "" {
		return fmt.Errorf("signer request id is required")
	}
	if strings.TrimSpace(signer.Email) == "" {
		return fmt.Errorf("signer email is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO signers (
		    id, request_id, email, name, signing_order, status, schema_signer_id,
		    signature_data, reminder_count, viewed_at, signed_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    email = excluded.email,
		    name = excluded.name,
		    signing_order = excluded.signing_order,
		    status = excluded.status,
		    schema_signer_id = excluded.schema_signer_id,
		    signature_data = excluded.signature_data,
		    reminder_count = excluded.reminder_count,
		    viewed_at = excluded.viewed_at,
		    signed_at = excluded.signed_at`,
		signer.ID,
		strings.TrimSpace(signer.RequestID),
		strings.TrimSpace(signer.Email),
		strings.TrimSpace(signer.Name),
		int64(signer.SigningOrder),
		string(signer.Status),
		strings.TrimSpace(signer.SchemaSignerID),
		signer.SignatureData,
		int64(signer.ReminderCount),
		timeToUnixMillis(signer.ViewedAt),
		timeToUnixMillis(signer.SignedAt),
	)
	if err != nil {
		return fmt.Errorf("put signer: %w", err)
	}
	return nil
}

// GetSigner loads one signer by id.
func (s *Store) GetSigner(ctx context.Context, signerID string) (signing.Signer, error) {
	if s == nil || s.sqlDB == nil {
		return signing.Signer{}, fmt.Errorf("storage is not configured")
	}
	signerID = strings.TrimSpace(signerID)
	if signerID == "" {
		return signing.Signer{}, fmt.Errorf("signer id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, request_id, email, name, signing_order, status, schema_signer_id,
		        signature_data, reminder_count, viewed_at, signed_at
		 FROM signers
		 WHERE id = ?`,
		signerID,
	)
	return scanSigner(row)
}

// ListSigners returns a request's signers in signing order.
func (s *Store) ListSigners(ctx context.Context, requestID string) ([]signing.Signer, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return nil, fmt.Errorf("sign request id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, request_id, email, name, signing_order, status, schema_signer_id,
		        signature_data, reminder_count, viewed_at, signed_at
		 FROM signers
		 WHERE request_id = ?
		 ORDER BY signing_order, id`,
		requestID,
	)
	if err != nil {
		return nil, fmt.Errorf("list signers: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	signers := make([]signing.Signer, 0)
	for rows.Next() {
		signer, err := scanSigner(rows)
		if err != nil {
			return nil, err
		}
		signers = append(signers, signer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate signers: %w", err)
	}
	return signers, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSignRequest(row rowScanner) (signing.SignRequest, error) {
	var request signing.SignRequest
	var status string
	var mode string
	var totalSigners, viewedCount, signedCount int64
	var createdAt, expiresAt int64
	err := row.Scan(
		&request.ID,
		&request.OwnerID,
		&request.TemplateID,
		&request.Title,
		&request.DocumentSignID,
		&status,
		&mode,
		&totalSigners,
		&viewedCount,
		&signedCount,
		&request.ArtifactKey,
		&createdAt,
		&expiresAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return signing.SignRequest{}, storage.ErrNotFound
		}
		return signing.SignRequest{}, fmt.Errorf("scan sign request: %w", err)
	}
	request.Status = signing.RequestStatus(status)
	request.Mode = signing.SigningMode(mode)
	request.TotalSigners = int(totalSigners)
	request.ViewedCount = int(viewedCount)
	request.SignedCount = int(signedCount)
	request.CreatedAt = unixMillisToTime(createdAt)
	request.ExpiresAt = unixMillisToTime(expiresAt)
	return request, nil
}

func scanSigner(row rowScanner) (signing.Signer, error) {
	var signer signing.Signer
	var status string
	var signingOrder, reminderCount int64
	var viewedAt, signedAt int64
	err := row.Scan(
		&signer.ID,
		&signer.RequestID,
		&signer.Email,
		&signer.Name,
		&signingOrder,
		&status,
		&signer.SchemaSignerID,
		&signer.SignatureData,
		&reminderCount,
		&viewedAt,
		&signedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return signing.Signer{}, storage.ErrNotFound
		}
		return signing.Signer{}, fmt.Errorf("scan signer: %w", err)
	}
	signer.Status = signing.SignerStatus(status)
	signer.SigningOrder = int(signingOrder)
	signer.ReminderCount = int(reminderCount)
	signer.ViewedAt = unixMillisToTime(viewedAt)
	signer.SignedAt = unixMillisToTime(signedAt)
	return signer, nil
}
