package services

import (
	"context"
	"errors"
	"strings"

	"github.com/yungbote/juridica-backend/internal/pkg/logger"
	"github.com/yungbote/juridica-backend/internal/platform/apierr"
	"github.com/yungbote/juridica-backend/internal/platform/llm"
)

type LLMRequest struct {
	Prompt string `json:"prompt"`
}

type LLMResponse struct {
	Output string `json:"output"`
}

type LLMService interface {
	Generate(ctx context.Context, req LLMRequest) (*LLMResponse, error)
}

type llmService struct {
	log    *logger.Logger
	client llm.Generator
}

func NewLLMService(baseLog *logger.Logger, client llm.Generator) LLMService {
	if client == nil {
		client = llm.Echo{}
	}
	return &llmService{
		log:    baseLog.With("service", "LLMService"),
		client: client,
	}
}

func (s *llmService) Generate(ctx context.Context, req LLMRequest) (*LLMResponse, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, apierr.BadRequest("invalid_request", errors.New("prompt is required"))
	}
	out, err := s.client.Generate(ctx, req.Prompt)
	if err != nil {
		s.log.Warn("generate failed", "error", err)
		return nil, apierr.Internal("generate_failed", err)
	}
	return &LLMResponse{Output: out}, nil
}
