package signing

import (
	"encoding/json"
	"strings"

	apperrors "github.com/velumsign/velum/internal/platform/errors"
)

// fieldJSON mirrors the persisted template field shape. Assignment hints may
// live on the field itself or under a nested original-config object kept by
// the visual designer.
type fieldJSON struct {
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	SignerSlotID string          `json:"signerId"`
	SignerEmail  string          `json:"signer_email"`
	SignerID     string          `json:"signer_id"`
	SigningOrder *int            `json:"signing_order"`
	Properties   *propertiesJSON `json:"properties"`
}

type propertiesJSON struct {
	OriginalConfig *originalConfigJSON `json:"originalConfig"`
}

type originalConfigJSON struct {
	SignerSlotID string `json:"signerId"`
}

// ParseFieldSchema decodes a template's persisted field schema JSON into the
// ordered field list consumed by input population.
func ParseFieldSchema(raw []byte) ([]Field, error) {
	if len(raw) == 0 {
		return nil, apperrors.New(apperrors.CodeFieldSchemaEmpty, "field schema is empty")
	}

	var decoded []fieldJSON
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeTemplateFieldSchemaInvalid, "decode field schema", err)
	}
	if len(decoded) == 0 {
		return nil, apperrors.New(apperrors.CodeFieldSchemaEmpty, "field schema has no fields")
	}

	fields := make([]Field, 0, len(decoded))
	for _, entry := range decoded {
		field := Field{
			Name:         strings.TrimSpace(entry.Name),
			Type:         strings.TrimSpace(entry.Type),
			SignerSlotID: strings.TrimSpace(entry.SignerSlotID),
			SignerEmail:  strings.TrimSpace(entry.SignerEmail),
			SignerID:     strings.TrimSpace(entry.SignerID),
			SigningOrder: entry.SigningOrder,
		}
		if field.SignerSlotID == "" && entry.Properties != nil && entry.Properties.OriginalConfig != nil {
			field.SignerSlotID = strings.TrimSpace(entry.Properties.OriginalConfig.SignerSlotID)
		}
		fields = append(fields, field)
	}
	return fields, nil
}
