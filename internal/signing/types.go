// Package signing defines the core domain model for signing requests,
// signers, and document field schemas.
package signing

import "time"

// RequestStatus is the lifecycle status of a signing request.
type RequestStatus string

const (
	RequestInitiated       RequestStatus = "initiated"
	RequestInProgress      RequestStatus = "in_progress"
	RequestPartiallySigned RequestStatus = "partially_signed"
	RequestCompleted       RequestStatus = "completed"
	RequestDeclined        RequestStatus = "declined"
)

// SigningMode controls whether signers act in order or independently.
type SigningMode string

const (
	ModeSequential SigningMode = "sequential"
	ModeParallel   SigningMode = "parallel"
)

// SignerStatus is the lifecycle status of one signer on a request.
type SignerStatus string

const (
	SignerInitiated SignerStatus = "initiated"
	SignerViewed    SignerStatus = "viewed"
	SignerSigned    SignerStatus = "signed"
	SignerDeclined  SignerStatus = "declined"
)

// SignRequest represents one document sent out for signature.
// A completed request is immutable.
type SignRequest struct {
	ID             string
	OwnerID        string
	TemplateID     string
	Title          string
	DocumentSignID string
	Status         RequestStatus
	Mode           SigningMode
	TotalSigners   int
	ViewedCount    int
	SignedCount    int
	ArtifactKey    string
	CreatedAt      time.Time
	ExpiresAt      time.Time
}

// Signer is one recipient of a signing request.
type Signer struct {
	ID             string
	RequestID      string
	Email          string
	Name           string
	SigningOrder   int
	Status         SignerStatus
	SchemaSignerID string
	// SignatureData holds the captured signature payload as stored: JSON,
	// sometimes double-encoded, occasionally malformed. It is normalized
	// only at input population time.
	SignatureData []byte
	ReminderCount int
	ViewedAt      time.Time
	SignedAt      time.Time
}

// Field is one descriptor in a document template's ordered field schema.
type Field struct {
	// Name is unique within a schema and keys the resolved input map.
	Name string
	// Type selects value extraction behavior. An empty type falls back to
	// the field's own name.
	Type string
	// SignerSlotID links the field to a schema-level signer slot. It is the
	// authoritative assignment hint.
	SignerSlotID string
	SignerEmail  string
	SignerID     string
	SigningOrder *int
}

// HasAssignmentHint reports whether the field carries any signer hint.
// Only hint-free fields participate in fallback distribution.
func (f Field) HasAssignmentHint() bool {
	return f.SignerSlotID != "" || f.SignerEmail != "" || f.SignerID != "" || f.SigningOrder != nil
}

// EffectiveType returns the declared field type, defaulting to the name.
func (f Field) EffectiveType() string {
	if f.Type == "" {
		return f.Name
	}
	return f.Type
}
