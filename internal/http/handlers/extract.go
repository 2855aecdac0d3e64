package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/juridica-backend/internal/extraction"
	"github.com/yungbote/juridica-backend/internal/http/response"
	"github.com/yungbote/juridica-backend/internal/pkg/dbctx"
	"github.com/yungbote/juridica-backend/internal/services"
)

type ExtractHandler struct {
	extractor    services.ExtractionService
	jobs         services.JobService
	debugPayload bool
}

func NewExtractHandler(extractor services.ExtractionService, jobs services.JobService, debugPayload bool) *ExtractHandler {
	return &ExtractHandler{extractor: extractor, jobs: jobs, debugPayload: debugPayload}
}

type ExtractResponse struct {
	CaseID          string                `json:"case_id"`
	Resume          string                `json:"resume"`
	Timeline        []extraction.Event    `json:"timeline"`
	Evidence        []extraction.Evidence `json:"evidence"`
	PersistedAt     time.Time             `json:"persisted_at"`
	ValidationError *bool                 `json:"validation_error,omitempty"`
	Debug           *services.Diagnostics `json:"debug,omitempty"`
}

// POST /extract
func (h *ExtractHandler) Extract(c *gin.Context) {
	var req services.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.extractor.Extract(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err, "extract_failed")
		return
	}

	resp := ExtractResponse{
		CaseID:      out.CaseID,
		Resume:      out.Extraction.Resume,
		Timeline:    out.Extraction.Timeline,
		Evidence:    out.Extraction.Evidence,
		PersistedAt: out.PersistedAt,
	}
	if out.ValidationError {
		flag := true
		resp.ValidationError = &flag
	}
	if h.wantDebug(c) {
		d := out.Diagnostics
		resp.Debug = &d
	}
	response.RespondOK(c, resp)
}

// POST /extract/async
func (h *ExtractHandler) ExtractAsync(c *gin.Context) {
	var req services.AsyncExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	job, err := h.jobs.SubmitExtraction(dbctx.Context{Ctx: c.Request.Context()}, req)
	if err != nil {
		response.RespondAPIError(c, err, "submit_failed")
		return
	}
	response.RespondStatus(c, http.StatusAccepted, gin.H{
		"job_id": job.ID,
		"status": job.Status,
	})
}

func (h *ExtractHandler) wantDebug(c *gin.Context) bool {
	if h.debugPayload {
		return true
	}
	v, err := strconv.ParseBool(c.Query("debug"))
	return err == nil && v
}
