package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Payload is the normalized captured-signature payload. Stored payloads
// arrive either as a JSON object or as a JSON string wrapping one; both
// shapes normalize here before value extraction, so the type switch never
// branches on the raw representation.
type Payload struct {
	SignatureImage  string           `json:"signature_image"`
	Signature       string           `json:"signature"`
	SignerName      string           `json:"signer_name"`
	ProfileLocation *ProfileLocation `json:"profile_location"`
}

// ProfileLocation is the optional signer profile location sub-object.
type ProfileLocation struct {
	District string `json:"district"`
	State    string `json:"state"`
}

// parsePayload normalizes a raw stored signature payload. A failure here is
// a per-field skip for the owning signer's fields, never a batch abort.
func parsePayload(raw []byte) (Payload, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Payload{}, fmt.Errorf("signature payload is empty")
	}

	// Double-encoded payloads are stored as a JSON string holding JSON.
	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return Payload{}, fmt.Errorf("decode payload string: %w", err)
		}
		trimmed = bytes.TrimSpace([]byte(inner))
		if len(trimmed) == 0 {
			return Payload{}, fmt.Errorf("signature payload string is empty")
		}
	}

	if trimmed[0] != '{' {
		return Payload{}, fmt.Errorf("signature payload is not a JSON object")
	}
	var payload Payload
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return Payload{}, fmt.Errorf("decode payload object: %w", err)
	}
	return payload, nil
}

// image returns the rendered signature image, preferring the primary key.
func (p Payload) image() string {
	if p.SignatureImage != "" {
		return p.SignatureImage
	}
	return p.Signature
}
