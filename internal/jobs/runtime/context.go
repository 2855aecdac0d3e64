package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"github.com/yungbote/juridica-backend/internal/data/repos"
	"github.com/yungbote/juridica-backend/internal/domain"
	"github.com/yungbote/juridica-backend/internal/pkg/ctxutil"
	"github.com/yungbote/juridica-backend/internal/pkg/dbctx"
	"github.com/yungbote/juridica-backend/internal/pkg/logger"
	"github.com/yungbote/juridica-backend/internal/pkg/pointers"
	"github.com/yungbote/juridica-backend/internal/services"
)

/*
Context is the execution handle for a single extraction job.
It wraps:
	- the request-independent context.Context the job runs under,
	- the in-memory extraction_jobs row,
	- the notifier fired after terminal transitions,
	- the only sanctioned ways to move a job through its lifecycle.
Handlers never write extraction_jobs directly; they call Running, Succeed or Fail.
*/
type Context struct {
	Ctx     context.Context
	Job     *domain.ExtractionJob
	Repo    repos.ExtractionJobRepo
	Notify  services.JobNotifier
	Log     *logger.Logger
	payload map[string]any
}

func NewContext(ctx context.Context, job *domain.ExtractionJob, payload map[string]any, repo repos.ExtractionJobRepo, notify services.JobNotifier, log *logger.Logger) *Context {
	c := &Context{
		Ctx:     ctxutil.Default(ctx),
		Job:     job,
		Repo:    repo,
		Notify:  notify,
		Log:     log,
		payload: payload,
	}
	c.applyTraceData()
	return c
}

func (c *Context) applyTraceData() {
	traceID := c.PayloadString("trace_id")
	reqID := c.PayloadString("request_id")
	if traceID == "" && reqID == "" {
		return
	}
	c.Ctx = ctxutil.WithTraceData(c.Ctx, &ctxutil.TraceData{
		TraceID:   traceID,
		RequestID: reqID,
	})
}

// Payload never returns nil.
func (c *Context) Payload() map[string]any {
	if c.payload == nil {
		c.payload = map[string]any{}
	}
	return c.payload
}

// PayloadString returns the trimmed string value of key, or "".
func (c *Context) PayloadString(key string) string {
	v, ok := c.Payload()[key]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func (c *Context) dbc() dbctx.Context { return dbctx.Context{Ctx: c.Ctx} }

func (c *Context) jobID() string {
	if c == nil || c.Job == nil {
		return ""
	}
	return c.Job.ID
}

// Running moves a pending job to running. It reports false when the row is
// unknown or already terminal, in which case the handler must not run.
func (c *Context) Running() bool {
	if c.jobID() == "" || domain.IsTerminalJobStatus(c.Job.Status) {
		return false
	}
	ok, err := c.Repo.MarkRunning(c.dbc(), c.Job.ID)
	if err != nil {
		c.logWarn("mark running failed", err)
		return false
	}
	if ok {
		c.Job.Status = domain.JobStatusRunning
	}
	return ok
}

/*
Fail marks the job as failed and fires the failure notification.
If the guarded update is rejected (job already terminal or unknown) no
notification is sent.
*/
func (c *Context) Fail(stage string, err error) {
	if c.jobID() == "" {
		return
	}
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	ok, uErr := c.Repo.MarkFailed(c.dbc(), c.Job.ID, msg)
	if uErr != nil {
		c.logWarn("mark failed failed", uErr)
		return
	}
	if !ok {
		return
	}
	c.Job.Status = domain.JobStatusFailed
	c.Job.Error = pointers.String(msg)
	if c.Notify != nil {
		c.Notify.JobFailed(c.Job, stage, msg)
	}
}

/*
Succeed stores result as JSON, marks the job completed and fires the done
notification. A result that cannot be encoded fails the job instead.
*/
func (c *Context) Succeed(result any) {
	if c.jobID() == "" {
		return
	}
	var res datatypes.JSON
	if result != nil {
		b, err := json.Marshal(result)
		if err != nil {
			c.Fail("encode_result", err)
			return
		}
		res = datatypes.JSON(b)
	}
	ok, err := c.Repo.MarkSucceeded(c.dbc(), c.Job.ID, res)
	if err != nil {
		c.logWarn("mark succeeded failed", err)
		return
	}
	if !ok {
		return
	}
	c.Job.Status = domain.JobStatusCompleted
	c.Job.Error = nil
	c.Job.Result = res
	if c.Notify != nil {
		c.Notify.JobDone(c.Job)
	}
}

func (c *Context) logWarn(msg string, err error) {
	if c.Log != nil {
		c.Log.Warn(msg, "job_id", c.jobID(), "error", err)
	}
}
