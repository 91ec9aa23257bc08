// Package errors provides structured error handling for the signing platform.
package errors

import (
	stderrors "errors"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Signing request errors
	CodeSignRequestTitleEmpty       Code = "SIGN_REQUEST_TITLE_EMPTY"
	CodeSignRequestNoSigners        Code = "SIGN_REQUEST_NO_SIGNERS"
	CodeSignRequestCompleted        Code = "SIGN_REQUEST_COMPLETED"
	CodeSignRequestInvalidMode      Code = "SIGN_REQUEST_INVALID_SIGNING_MODE"
	CodeSignRequestInvalidStatus    Code = "SIGN_REQUEST_INVALID_STATUS_TRANSITION"
	CodeSignRequestExpired          Code = "SIGN_REQUEST_EXPIRED"
	CodeSignerEmailEmpty            Code = "SIGNER_EMAIL_EMPTY"
	CodeSignerAlreadySigned         Code = "SIGNER_ALREADY_SIGNED"
	CodeSignerAlreadyDeclined       Code = "SIGNER_ALREADY_DECLINED"
	CodeSignerSignatureDataMissing  Code = "SIGNER_SIGNATURE_DATA_MISSING"
	CodeFieldSchemaEmpty            Code = "FIELD_SCHEMA_EMPTY"
	CodeTemplateNameEmpty           Code = "TEMPLATE_NAME_EMPTY"
	CodeTemplateFieldSchemaInvalid  Code = "TEMPLATE_FIELD_SCHEMA_INVALID"

	// Share link errors
	CodeLinkSlugEmpty     Code = "LINK_SLUG_EMPTY"
	CodeLinkSlugTaken     Code = "LINK_SLUG_TAKEN"
	CodeLinkExpired       Code = "LINK_EXPIRED"
	CodeLinkTargetEmpty   Code = "LINK_TARGET_EMPTY"
	CodeLinkEmailRequired Code = "LINK_EMAIL_REQUIRED"

	// Data room errors
	CodeDataRoomNameEmpty Code = "DATA_ROOM_NAME_EMPTY"

	// Custom field errors
	CodeCustomFieldLabelEmpty  Code = "CUSTOM_FIELD_LABEL_EMPTY"
	CodeCustomFieldInvalidType Code = "CUSTOM_FIELD_INVALID_TYPE"

	// Token errors
	CodeTokenInvalid Code = "TOKEN_INVALID"
	CodeTokenExpired Code = "TOKEN_EXPIRED"

	// Storage errors
	CodeNotFound      Code = "NOT_FOUND"
	CodeAlreadyExists Code = "ALREADY_EXISTS"
)

// HTTPStatus maps a code to an HTTP status for web responses.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists, CodeLinkSlugTaken, CodeSignRequestCompleted,
		CodeSignerAlreadySigned, CodeSignerAlreadyDeclined, CodeSignRequestInvalidStatus:
		return http.StatusConflict
	case CodeTokenInvalid, CodeTokenExpired:
		return http.StatusUnauthorized
	case CodeLinkExpired, CodeSignRequestExpired:
		return http.StatusGone
	case CodeUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// HTTPStatus maps an error to an HTTP status code.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var domainErr *Error
	if !stderrors.As(err, &domainErr) {
		return http.StatusInternalServerError
	}
	return domainErr.Code.HTTPStatus()
}
