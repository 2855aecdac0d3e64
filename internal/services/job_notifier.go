package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/yungbote/juridica-backend/internal/domain"
	"github.com/yungbote/juridica-backend/internal/pkg/httpx"
	"github.com/yungbote/juridica-backend/internal/pkg/logger"
	"github.com/yungbote/juridica-backend/internal/pkg/pointers"
)

type JobNotifier interface {
	JobCreated(job *domain.ExtractionJob)
	JobFailed(job *domain.ExtractionJob, stage string, errorMessage string)
	JobDone(job *domain.ExtractionJob)
}

// WebhookPoster delivers one JSON payload to a callback URL.
type WebhookPoster interface {
	Post(ctx context.Context, url string, payload any) error
}

type WebhookPayload struct {
	JobID  string          `json:"job_id"`
	CaseID string          `json:"case_id"`
	Status string          `json:"status"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

type jobNotifier struct {
	log     *logger.Logger
	poster  WebhookPoster
	timeout time.Duration
}

// NewJobNotifier posts terminal job states to the job's callback URL.
// Delivery is attempted once; failures are logged and dropped.
func NewJobNotifier(baseLog *logger.Logger, poster WebhookPoster, timeout time.Duration) JobNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &jobNotifier{
		log:     baseLog.With("component", "JobNotifier"),
		poster:  poster,
		timeout: timeout,
	}
}

func (n *jobNotifier) JobCreated(job *domain.ExtractionJob) {
	if job == nil {
		return
	}
	n.log.Debug("job created", "job_id", job.ID, "case_id", job.CaseID, "callback", job.CallbackURL != nil)
}

func (n *jobNotifier) JobFailed(job *domain.ExtractionJob, stage string, errorMessage string) {
	if job == nil {
		return
	}
	n.log.Warn("job failed", "job_id", job.ID, "case_id", job.CaseID, "stage", stage, "error", errorMessage)
	n.deliver(job, WebhookPayload{
		JobID:  job.ID,
		CaseID: job.CaseID,
		Status: domain.JobStatusFailed,
		Error:  errorMessage,
	})
}

func (n *jobNotifier) JobDone(job *domain.ExtractionJob) {
	if job == nil {
		return
	}
	n.log.Info("job completed", "job_id", job.ID, "case_id", job.CaseID)
	payload := WebhookPayload{
		JobID:  job.ID,
		CaseID: job.CaseID,
		Status: domain.JobStatusCompleted,
	}
	if len(job.Result) > 0 {
		payload.Result = json.RawMessage(job.Result)
	}
	n.deliver(job, payload)
}

func (n *jobNotifier) deliver(job *domain.ExtractionJob, payload WebhookPayload) {
	url := pointers.Deref(job.CallbackURL)
	if url == "" || n.poster == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()
	if err := n.poster.Post(ctx, url, payload); err != nil {
		n.log.Warn("webhook delivery failed",
			"job_id", job.ID,
			"callback_url", url,
			"upstream_status", httpx.StatusCode(err),
			"error", err,
		)
		return
	}
	n.log.Debug("webhook delivered", "job_id", job.ID, "status", payload.Status)
}
