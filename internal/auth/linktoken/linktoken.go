// Package linktoken mints and verifies the signed tokens embedded in signer
// and share links. Tokens are HS256 JWTs; possession of a valid token is the
// only credential a recipient needs.
package linktoken

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/velumsign/velum/internal/platform/errors"
)

// Purpose scopes a token to one link kind.
type Purpose string

const (
	// PurposeSigner addresses one signer on one signing request.
	PurposeSigner Purpose = "signer"
	// PurposeShare addresses one public share link.
	PurposeShare Purpose = "share"
)

// Claims is the token payload for signer and share links.
type Claims struct {
	Purpose Purpose `json:"purpose"`
	// Subject carries the signer id (signer tokens) or link id (share tokens).
	jwt.RegisteredClaims
}

// Minter mints and verifies link tokens with a shared secret.
type Minter struct {
	secret []byte
	clock  func() time.Time
}

// Option configures a Minter.
type Option func(*Minter)

// WithClock overrides the time source, for tests.
func WithClock(clock func() time.Time) Option {
	return func(m *Minter) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// NewMinter creates a Minter. The secret must be non-empty.
func NewMinter(secret string, opts ...Option) (*Minter, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("link token secret is required")
	}
	m := &Minter{secret: []byte(secret), clock: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Mint issues a token for subject scoped to purpose, valid for ttl.
func (m *Minter) Mint(purpose Purpose, subject string, ttl time.Duration) (string, error) {
	if m == nil {
		return "", fmt.Errorf("minter is not configured")
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", fmt.Errorf("token subject is required")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("token ttl must be positive")
	}

	now := m.clock().UTC()
	claims := Claims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign link token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns its subject. The token must carry the
// expected purpose and must not be expired.
func (m *Minter) Verify(token string, purpose Purpose) (string, error) {
	if m == nil {
		return "", fmt.Errorf("minter is not configured")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", apperrors.New(apperrors.CodeTokenInvalid, "token is required")
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(
		token,
		claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return m.clock().UTC() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.Wrap(apperrors.CodeTokenExpired, "token is expired", err)
		}
		return "", apperrors.Wrap(apperrors.CodeTokenInvalid, "token is invalid", err)
	}
	if !parsed.Valid {
		return "", apperrors.New(apperrors.CodeTokenInvalid, "token is invalid")
	}
	if claims.Purpose != purpose {
		return "", apperrors.New(apperrors.CodeTokenInvalid, "token purpose mismatch")
	}
	if claims.Subject == "" {
		return "", apperrors.New(apperrors.CodeTokenInvalid, "token subject missing")
	}
	return claims.Subject, nil
}
