package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFromUnwrapsWrappedError(t *testing.T) {
	base := NotFound("case_not_found", errors.New("case not found"))
	wrapped := fmt.Errorf("lookup: %w", base)

	got := From(wrapped, "internal")
	if got != base {
		t.Fatalf("expected the wrapped *Error, got %#v", got)
	}
	if got.Status != http.StatusNotFound {
		t.Fatalf("status: got %d", got.Status)
	}
}

func TestFromPlainErrorIsInternal(t *testing.T) {
	got := From(errors.New("boom"), "save_failed")
	if got.Status != http.StatusInternalServerError || got.Code != "save_failed" {
		t.Fatalf("unexpected mapping: %#v", got)
	}
	if From(nil, "x") != nil {
		t.Fatalf("nil error should map to nil")
	}
}

func TestErrorMessageFallbacks(t *testing.T) {
	if msg := New(502, "pdf_download_failed", nil).Error(); msg != "pdf_download_failed" {
		t.Fatalf("code fallback: %q", msg)
	}
	if msg := New(418, "", nil).Error(); msg != "api error (418)" {
		t.Fatalf("status fallback: %q", msg)
	}
}
