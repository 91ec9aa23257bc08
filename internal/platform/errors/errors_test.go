package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := New(CodeNotFound, "signing request missing")
	if !stderrors.Is(err, New(CodeNotFound, "other message")) {
		t.Fatal("expected code-based match")
	}
	if stderrors.Is(err, New(CodeAlreadyExists, "other code")) {
		t.Fatal("expected no match across codes")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(CodeUnknown, "persist signer", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to match")
	}
	wrapped := fmt.Errorf("outer: %w", err)
	var domainErr *Error
	if !stderrors.As(wrapped, &domainErr) {
		t.Fatal("expected domain error in chain")
	}
	if domainErr.Code != CodeUnknown {
		t.Fatalf("code = %q, want %q", domainErr.Code, CodeUnknown)
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "not found", err: New(CodeNotFound, "missing"), want: http.StatusNotFound},
		{name: "slug taken", err: New(CodeLinkSlugTaken, "taken"), want: http.StatusConflict},
		{name: "token", err: New(CodeTokenExpired, "expired"), want: http.StatusUnauthorized},
		{name: "link expired", err: New(CodeLinkExpired, "expired"), want: http.StatusGone},
		{name: "validation", err: New(CodeFieldSchemaEmpty, "empty"), want: http.StatusBadRequest},
		{name: "unknown", err: New(CodeUnknown, "boom"), want: http.StatusInternalServerError},
		{name: "untyped", err: stderrors.New("plain"), want: http.StatusInternalServerError},
		{name: "wrapped", err: fmt.Errorf("outer: %w", New(CodeNotFound, "missing")), want: http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Fatalf("HTTPStatus = %d, want %d", got, tc.want)
			}
		})
	}
}
