package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/juridica-backend/internal/http/handlers"
	httpMW "github.com/yungbote/juridica-backend/internal/http/middleware"
	"github.com/yungbote/juridica-backend/internal/pkg/logger"
)

type RouterConfig struct {
	HealthHandler  *httpH.HealthHandler
	ExtractHandler *httpH.ExtractHandler
	JobHandler     *httpH.JobHandler
	CaseHandler    *httpH.CaseHandler
	LLMHandler     *httpH.LLMHandler

	APIKeyMiddleware *httpMW.APIKeyMiddleware

	Logger      *logger.Logger
	CORSOrigins []string

	OTelEnabled bool
	ServiceName string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.OTelEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	if cfg.Logger != nil {
		r.Use(httpMW.RequestLogger(cfg.Logger))
	}
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health (public)
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}

	protected := r.Group("/")
	if cfg.APIKeyMiddleware != nil {
		protected.Use(cfg.APIKeyMiddleware.RequireAPIKey())
	}
	{
		if cfg.ExtractHandler != nil {
			protected.POST("/extract", cfg.ExtractHandler.Extract)
			protected.POST("/extract/async", cfg.ExtractHandler.ExtractAsync)
		}
		if cfg.JobHandler != nil {
			protected.GET("/extract/jobs/:job_id", cfg.JobHandler.GetJob)
		}
		if cfg.CaseHandler != nil {
			protected.GET("/cases", cfg.CaseHandler.ListCases)
			protected.GET("/cases/:case_id", cfg.CaseHandler.GetCase)
		}
		if cfg.LLMHandler != nil {
			protected.POST("/llm/generate", cfg.LLMHandler.Generate)
		}
	}

	return r
}
