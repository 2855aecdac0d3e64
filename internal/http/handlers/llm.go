package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/juridica-backend/internal/http/response"
	"github.com/yungbote/juridica-backend/internal/services"
)

type LLMHandler struct {
	llm services.LLMService
}

func NewLLMHandler(llm services.LLMService) *LLMHandler {
	return &LLMHandler{llm: llm}
}

// POST /llm/generate
func (h *LLMHandler) Generate(c *gin.Context) {
	var req services.LLMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.llm.Generate(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err, "generate_failed")
		return
	}
	response.RespondOK(c, out)
}
