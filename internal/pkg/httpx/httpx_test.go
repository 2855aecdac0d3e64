package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckStatusAndStatusCode(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "http://hooks.example.com/cb", nil)
	if err := CheckStatus(&http.Response{StatusCode: http.StatusNoContent, Request: req}); err != nil {
		t.Fatalf("2xx should pass: %v", err)
	}

	err := CheckStatus(&http.Response{StatusCode: http.StatusBadGateway, Request: req})
	wrapped := fmt.Errorf("webhook: %w", err)
	if got := StatusCode(wrapped); got != http.StatusBadGateway {
		t.Fatalf("status through wrap: %d", got)
	}
	if got := StatusCode(errors.New("dial tcp: refused")); got != 0 {
		t.Fatalf("plain error should carry no status, got %d", got)
	}
	if CheckStatus(nil) == nil {
		t.Fatalf("nil response should error")
	}
}
