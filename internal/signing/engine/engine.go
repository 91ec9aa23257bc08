// Package engine resolves document fields to signers and assembles the
// input map handed to the PDF filler when a signing request is finalized.
//
// The computation is pure and single-invocation: all state, including the
// fallback distribution counter, is local to one Populate call, so the
// engine is safe to run concurrently for different signing requests.
package engine

import (
	"sort"
	"strings"
	"time"

	apperrors "github.com/velumsign/velum/internal/platform/errors"
	"github.com/velumsign/velum/internal/signing"
)

// ErrEmptySchema is returned when Populate is invoked with no fields.
// Callers must not enter population with an empty schema.
var ErrEmptySchema = apperrors.New(apperrors.CodeFieldSchemaEmpty, "field schema has no fields")

// locationUnavailable is rendered for location fields when the signer's
// payload carries no profile location.
const locationUnavailable = "Location not available"

// longDateLayout renders generation-time dates, e.g. "January 5, 2025".
const longDateLayout = "January 2, 2006"

// SkipReason classifies why a field was left out of the input map.
type SkipReason string

const (
	// SkipNoMatchingSigner: the field carried at least one assignment hint
	// and none of them matched a signer.
	SkipNoMatchingSigner SkipReason = "no_matching_signer"
	// SkipNoSignedFallback: the field carried no hints and no signer has
	// completed signing, so fallback distribution had no candidates.
	SkipNoSignedFallback SkipReason = "no_signed_fallback_signer"
	// SkipMissingSignatureData: the resolved signer has no captured payload.
	SkipMissingSignatureData SkipReason = "missing_signature_data"
	// SkipMalformedSignatureData: the resolved signer's payload did not
	// normalize to a structured object.
	SkipMalformedSignatureData SkipReason = "malformed_signature_data"
)

// FieldSkip records one field left out of the input map and why.
type FieldSkip struct {
	FieldName string
	Reason    SkipReason
}

// Result is the outcome of one input population run. Skipped fields are
// absent from Inputs; the downstream filler renders them blank. Skips are
// observability data for the caller, not failures.
type Result struct {
	Inputs          map[string]string
	PopulatedFields int
	TotalFields     int
	Skips           []FieldSkip
}

type options struct {
	clock func() time.Time
}

// Option adjusts population behavior.
type Option func(*options)

// WithClock overrides the wall clock used for date and datetime fields.
// Date fields are intentionally generation-time dependent; tests pin the
// clock to keep runs reproducible.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// Populate assigns each field to at most one signer and extracts its value,
// producing the flat input map for PDF generation.
//
// Resolution order per field, first match wins: schema signer slot, exact
// email, signer id, signing order. Fields with no hints at all distribute
// round-robin across signers who have completed signing, ascending by
// signing order. A field whose declared hints all fail to match is skipped;
// it never enters fallback distribution.
func Populate(schema []signing.Field, signers []signing.Signer, opts ...Option) (Result, error) {
	if len(schema) == 0 {
		return Result{}, ErrEmptySchema
	}

	resolved := options{clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&resolved)
		}
	}

	signedSigners := make([]signing.Signer, 0, len(signers))
	for _, signer := range signers {
		if signer.Status == signing.SignerSigned {
			signedSigners = append(signedSigners, signer)
		}
	}
	sort.SliceStable(signedSigners, func(i, j int) bool {
		return signedSigners[i].SigningOrder < signedSigners[j].SigningOrder
	})

	result := Result{
		Inputs:      make(map[string]string, len(schema)),
		TotalFields: len(schema),
	}
	fallbackCounter := 0

	for _, field := range schema {
		signer, skip := resolveSigner(field, signers, signedSigners, &fallbackCounter)
		if skip != "" {
			result.Skips = append(result.Skips, FieldSkip{FieldName: field.Name, Reason: skip})
			continue
		}

		value, skip := extractValue(field, signer, resolved.clock)
		if skip != "" {
			result.Skips = append(result.Skips, FieldSkip{FieldName: field.Name, Reason: skip})
			continue
		}

		result.Inputs[field.Name] = value
		result.PopulatedFields++
	}

	return result, nil
}

// resolveSigner decides which signer owns a field, or reports a skip reason.
// The fallback counter advances once per hint-free field distributed.
func resolveSigner(field signing.Field, signers []signing.Signer, signedSigners []signing.Signer, fallbackCounter *int) (signing.Signer, SkipReason) {
	if field.SignerSlotID != "" {
		for _, signer := range signers {
			if signer.SchemaSignerID == field.SignerSlotID {
				return signer, ""
			}
		}
	}
	if field.SignerEmail != "" {
		for _, signer := range signers {
			if signer.Email == field.SignerEmail {
				return signer, ""
			}
		}
	}
	if field.SignerID != "" {
		for _, signer := range signers {
			if signer.ID == field.SignerID {
				return signer, ""
			}
		}
	}
	if field.SigningOrder != nil {
		for _, signer := range signers {
			if signer.SigningOrder == *field.SigningOrder {
				return signer, ""
			}
		}
	}

	if field.HasAssignmentHint() {
		// A declared hint that failed to match never falls through to
		// round-robin distribution.
		return signing.Signer{}, SkipNoMatchingSigner
	}

	if len(signedSigners) == 0 {
		return signing.Signer{}, SkipNoSignedFallback
	}
	signer := signedSigners[*fallbackCounter%len(signedSigners)]
	*fallbackCounter++
	return signer, ""
}

// extractValue produces the literal field value for a resolved signer.
func extractValue(field signing.Field, signer signing.Signer, clock func() time.Time) (string, SkipReason) {
	if len(signer.SignatureData) == 0 {
		return "", SkipMissingSignatureData
	}
	payload, err := parsePayload(signer.SignatureData)
	if err != nil {
		return "", SkipMalformedSignatureData
	}

	switch strings.ToLower(field.EffectiveType()) {
	case "signature":
		return payload.image(), ""
	case "text", "name", "full_name":
		if payload.SignerName != "" {
			return payload.SignerName, ""
		}
		return signer.Name, ""
	case "date", "datetime":
		return clock().Format(longDateLayout), ""
	case "location":
		if payload.ProfileLocation == nil {
			return locationUnavailable, ""
		}
		district := strings.TrimSpace(payload.ProfileLocation.District)
		state := strings.TrimSpace(payload.ProfileLocation.State)
		if district == "" {
			return state, ""
		}
		return district + ", " + state, ""
	case "state":
		if payload.ProfileLocation == nil {
			return "", ""
		}
		return strings.TrimSpace(payload.ProfileLocation.State), ""
	case "district":
		if payload.ProfileLocation == nil {
			return "", ""
		}
		return strings.TrimSpace(payload.ProfileLocation.District), ""
	case "email":
		return signer.Email, ""
	default:
		// Unrecognized types render the field name as a visible placeholder
		// rather than an empty cell.
		return field.Name, ""
	}
}
