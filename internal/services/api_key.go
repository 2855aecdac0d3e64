package services

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/yungbote/juridica-backend/internal/platform/apierr"
)

var (
	errAPIKeyRequired = errors.New("API key required")
	errInvalidAPIKey  = errors.New("Invalid API key")
)

// APIKeyService checks request keys against a fixed allow-list.
type APIKeyService interface {
	Check(key string) error
}

type apiKeyService struct {
	keys [][]byte
}

func NewAPIKeyService(keys []string) APIKeyService {
	s := &apiKeyService{}
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			s.keys = append(s.keys, []byte(k))
		}
	}
	return s
}

// Check returns an *apierr.Error with status 401 on failure. An empty
// allow-list rejects every request.
func (s *apiKeyService) Check(key string) error {
	if len(s.keys) == 0 {
		return apierr.New(http.StatusUnauthorized, "api_key_required", errAPIKeyRequired)
	}
	candidate := []byte(strings.TrimSpace(key))
	match := 0
	for _, k := range s.keys {
		match |= subtle.ConstantTimeCompare(candidate, k)
	}
	if len(candidate) == 0 || match != 1 {
		return apierr.New(http.StatusUnauthorized, "invalid_api_key", errInvalidAPIKey)
	}
	return nil
}
