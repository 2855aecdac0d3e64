package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/juridica-backend/internal/extraction"
	"github.com/yungbote/juridica-backend/internal/http/response"
	"github.com/yungbote/juridica-backend/internal/pkg/dbctx"
	"github.com/yungbote/juridica-backend/internal/services"
)

type CaseHandler struct {
	cases services.CaseService
}

func NewCaseHandler(cases services.CaseService) *CaseHandler {
	return &CaseHandler{cases: cases}
}

type CaseResponse struct {
	CaseID   string                `json:"case_id"`
	Resume   string                `json:"resume"`
	Timeline []extraction.Event    `json:"timeline"`
	Evidence []extraction.Evidence `json:"evidence"`
}

// GET /cases
func (h *CaseHandler) ListCases(c *gin.Context) {
	list, err := h.cases.List(dbctx.Context{Ctx: c.Request.Context()})
	if err != nil {
		response.RespondAPIError(c, err, "list_cases_failed")
		return
	}
	response.RespondOK(c, gin.H{"cases": list})
}

// GET /cases/:case_id
func (h *CaseHandler) GetCase(c *gin.Context) {
	caseID := c.Param("case_id")
	ce, err := h.cases.Get(dbctx.Context{Ctx: c.Request.Context()}, caseID)
	if err != nil {
		response.RespondAPIError(c, err, "load_case_failed")
		return
	}
	response.RespondOK(c, CaseResponse{
		CaseID:   caseID,
		Resume:   ce.Resume,
		Timeline: ce.Timeline,
		Evidence: ce.Evidence,
	})
}
