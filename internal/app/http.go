package app

import (
	"database/sql"

	httpx "github.com/yungbote/juridica-backend/internal/http"
	httpH "github.com/yungbote/juridica-backend/internal/http/handlers"
	httpMW "github.com/yungbote/juridica-backend/internal/http/middleware"
	"github.com/yungbote/juridica-backend/internal/pkg/logger"
)

type Middleware struct {
	APIKey *httpMW.APIKeyMiddleware
}

type Handlers struct {
	Health  *httpH.HealthHandler
	Extract *httpH.ExtractHandler
	Job     *httpH.JobHandler
	Case    *httpH.CaseHandler
	LLM     *httpH.LLMHandler
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		APIKey: httpMW.NewAPIKeyMiddleware(log, services.APIKey),
	}
}

func wireHandlers(log *logger.Logger, cfg Config, sqlDB *sql.DB, services Services) Handlers {
	log.Info("Wiring handlers...")
	h := Handlers{
		Extract: httpH.NewExtractHandler(services.Extraction, services.Job, cfg.DebugPayload),
		Job:     httpH.NewJobHandler(services.Job),
		Case:    httpH.NewCaseHandler(services.Case),
		LLM:     httpH.NewLLMHandler(services.LLM),
	}
	if sqlDB != nil {
		h.Health = httpH.NewHealthHandler(sqlDB)
	} else {
		h.Health = httpH.NewHealthHandler(nil)
	}
	return h
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *httpx.Server {
	return httpx.NewServer(httpx.RouterConfig{
		HealthHandler:    handlers.Health,
		ExtractHandler:   handlers.Extract,
		JobHandler:       handlers.Job,
		CaseHandler:      handlers.Case,
		LLMHandler:       handlers.LLM,
		APIKeyMiddleware: middleware.APIKey,
		Logger:           log,
		CORSOrigins:      cfg.CORSOrigins,
		OTelEnabled:      cfg.Otel.Enabled,
		ServiceName:      cfg.AppName,
	})
}
