package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/juridica-backend/internal/http/response"
	"github.com/yungbote/juridica-backend/internal/pkg/dbctx"
	"github.com/yungbote/juridica-backend/internal/services"
)

type JobHandler struct {
	jobs services.JobService
}

func NewJobHandler(jobs services.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// GET /extract/jobs/:job_id
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobs.Get(dbctx.Context{Ctx: c.Request.Context()}, c.Param("job_id"))
	if err != nil {
		response.RespondAPIError(c, err, "load_job_failed")
		return
	}
	response.RespondOK(c, job)
}
