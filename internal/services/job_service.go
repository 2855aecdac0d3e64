package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/juridica-backend/internal/data/repos"
	"github.com/yungbote/juridica-backend/internal/domain"
	"github.com/yungbote/juridica-backend/internal/pkg/ctxutil"
	"github.com/yungbote/juridica-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/juridica-backend/internal/pkg/errors"
	"github.com/yungbote/juridica-backend/internal/pkg/logger"
	"github.com/yungbote/juridica-backend/internal/pkg/pointers"
	"github.com/yungbote/juridica-backend/internal/platform/apierr"
)

const JobTypeCaseExtract = "case_extract"

var (
	errJobNotFound = errors.New("Job not found")
	// ErrQueueFull is returned by JobEnqueuer implementations that cannot
	// accept more work.
	ErrQueueFull = errors.New("job queue is full")
)

type AsyncExtractRequest struct {
	ExtractRequest
	CallbackURL *string `json:"callback_url,omitempty"`
}

func (r AsyncExtractRequest) Validate() error {
	if err := r.ExtractRequest.Validate(); err != nil {
		return err
	}
	if cb := pointers.Deref(r.CallbackURL); strings.TrimSpace(cb) != "" {
		if err := validateHTTPURL(cb); err != nil {
			return fmt.Errorf("callback_url: %w", err)
		}
	}
	return nil
}

// JobEnqueuer hands a task to the background workers without blocking.
type JobEnqueuer interface {
	Enqueue(task domain.JobTask) error
}

type JobService interface {
	SubmitExtraction(dbc dbctx.Context, req AsyncExtractRequest) (*domain.ExtractionJob, error)
	Get(dbc dbctx.Context, jobID string) (*domain.ExtractionJob, error)
}

type jobService struct {
	log    *logger.Logger
	repo   repos.ExtractionJobRepo
	queue  JobEnqueuer
	notify JobNotifier
}

func NewJobService(baseLog *logger.Logger, repo repos.ExtractionJobRepo, queue JobEnqueuer, notify JobNotifier) JobService {
	return &jobService{
		log:    baseLog.With("service", "JobService"),
		repo:   repo,
		queue:  queue,
		notify: notify,
	}
}

// SubmitExtraction records a pending job and queues it. The caller gets the
// pending row back immediately.
func (s *jobService) SubmitExtraction(dbc dbctx.Context, req AsyncExtractRequest) (*domain.ExtractionJob, error) {
	req.CaseID = strings.TrimSpace(req.CaseID)
	req.PDFURL = strings.TrimSpace(req.PDFURL)
	if err := req.Validate(); err != nil {
		return nil, apierr.BadRequest("invalid_request", err)
	}

	jobID := uuid.NewString()
	job, err := s.repo.Create(dbc, jobID, req.CaseID, req.CallbackURL)
	if err != nil {
		return nil, apierr.Internal("create_job_failed", err)
	}
	if s.notify != nil {
		s.notify.JobCreated(job)
	}

	payload := map[string]any{
		"pdf_url": req.PDFURL,
		"case_id": req.CaseID,
	}
	if td := ctxutil.GetTraceData(dbc.Ctx); td != nil {
		if td.TraceID != "" {
			payload["trace_id"] = td.TraceID
		}
		if td.RequestID != "" {
			payload["request_id"] = td.RequestID
		}
	}

	if err := s.queue.Enqueue(domain.JobTask{JobID: jobID, Type: JobTypeCaseExtract, Payload: payload}); err != nil {
		s.log.Warn("enqueue failed", "job_id", jobID, "error", err)
		if _, mErr := s.repo.MarkFailed(dbc, jobID, err.Error()); mErr != nil {
			s.log.Error("mark failed after enqueue error", "job_id", jobID, "error", mErr)
		}
		return nil, apierr.New(http.StatusServiceUnavailable, "queue_unavailable", err)
	}

	s.log.Info("extraction job queued", "job_id", jobID, "case_id", req.CaseID)
	return job, nil
}

func (s *jobService) Get(dbc dbctx.Context, jobID string) (*domain.ExtractionJob, error) {
	job, err := s.repo.Get(dbc, jobID)
	if errors.Is(err, pkgerrors.ErrNotFound) {
		return nil, apierr.NotFound("job_not_found", errJobNotFound)
	}
	if err != nil {
		return nil, apierr.Internal("load_job_failed", err)
	}
	return job, nil
}
