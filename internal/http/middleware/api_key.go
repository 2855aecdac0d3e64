package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/juridica-backend/internal/http/response"
	"github.com/yungbote/juridica-backend/internal/pkg/logger"
	"github.com/yungbote/juridica-backend/internal/platform/apierr"
	"github.com/yungbote/juridica-backend/internal/services"
)

const HeaderAPIKey = "X-API-Key"

type APIKeyMiddleware struct {
	log  *logger.Logger
	keys services.APIKeyService
}

func NewAPIKeyMiddleware(log *logger.Logger, keys services.APIKeyService) *APIKeyMiddleware {
	return &APIKeyMiddleware{log: log.With("Middleware", "APIKeyMiddleware"), keys: keys}
}

// RequireAPIKey aborts with 401 before any handler runs when the X-API-Key
// header is absent or not in the allow-list.
func (m *APIKeyMiddleware) RequireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.keys.Check(c.GetHeader(HeaderAPIKey)); err != nil {
			code := "unauthorized"
			var ae *apierr.Error
			if errors.As(err, &ae) && ae.Code != "" {
				code = ae.Code
			}
			m.log.Debug("request rejected", "path", c.Request.URL.Path, "code", code)
			response.RespondError(c, http.StatusUnauthorized, code, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
