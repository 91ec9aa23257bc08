package fields

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/velumsign/velum/internal/platform/errors"
	"github.com/velumsign/velum/internal/platform/id"
	"github.com/velumsign/velum/internal/storage"
)

// fieldTypes are the supported custom field value types.
var fieldTypes = map[string]bool{
	"text":     true,
	"number":   true,
	"date":     true,
	"email":    true,
	"checkbox": true,
}

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

func (s service) createField(ctx context.Context, ownerID, label, fieldType string, required bool) (storage.CustomField, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return storage.CustomField{}, apperrors.New(apperrors.CodeCustomFieldLabelEmpty, "field label is required")
	}
	fieldType = strings.ToLower(strings.TrimSpace(fieldType))
	if !fieldTypes[fieldType] {
		return storage.CustomField{}, apperrors.New(apperrors.CodeCustomFieldInvalidType, fmt.Sprintf("unsupported field type %q", fieldType))
	}
	field := storage.CustomField{
		ID:        id.MustNewID(),
		OwnerID:   ownerID,
		Label:     label,
		Type:      fieldType,
		Required:  required,
		CreatedAt: s.now(),
	}
	if err := s.store.PutCustomField(ctx, field); err != nil {
		return storage.CustomField{}, fmt.Errorf("create custom field: %w", err)
	}
	return field, nil
}

func (s service) listFields(ctx context.Context, ownerID string) ([]storage.CustomField, error) {
	return s.store.ListCustomFieldsByOwner(ctx, ownerID)
}

func (s service) deleteField(ctx context.Context, fieldID string) error {
	return s.store.DeleteCustomField(ctx, fieldID)
}
