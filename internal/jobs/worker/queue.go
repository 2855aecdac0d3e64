package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yungbote/juridica-backend/internal/data/repos"
	"github.com/yungbote/juridica-backend/internal/domain"
	"github.com/yungbote/juridica-backend/internal/jobs/runtime"
	"github.com/yungbote/juridica-backend/internal/pkg/dbctx"
	"github.com/yungbote/juridica-backend/internal/pkg/logger"
	"github.com/yungbote/juridica-backend/internal/services"
)

var ErrQueueClosed = errors.New("job queue is closed")

type Config struct {
	Concurrency int
	QueueSize   int
}

// Queue is an in-process bounded job queue drained by a fixed worker pool.
// Started jobs are never cancelled; Shutdown waits for them.
type Queue struct {
	log      *logger.Logger
	repo     repos.ExtractionJobRepo
	registry *runtime.Registry
	notify   services.JobNotifier

	tasks       chan domain.JobTask
	concurrency int

	mu      sync.RWMutex
	closed  bool
	started bool
	wg      sync.WaitGroup
}

func NewQueue(baseLog *logger.Logger, repo repos.ExtractionJobRepo, registry *runtime.Registry, notify services.JobNotifier, cfg Config) *Queue {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 1
	}
	return &Queue{
		log:         baseLog.With("component", "JobQueue"),
		repo:        repo,
		registry:    registry,
		notify:      notify,
		tasks:       make(chan domain.JobTask, cfg.QueueSize),
		concurrency: cfg.Concurrency,
	}
}

func (q *Queue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started || q.closed {
		return
	}
	q.started = true
	q.log.Info("Starting job worker pool", "concurrency", q.concurrency, "queue_size", cap(q.tasks))
	for i := 0; i < q.concurrency; i++ {
		workerID := i + 1
		q.wg.Add(1)
		go q.runLoop(workerID)
	}
}

// Enqueue never blocks. It returns services.ErrQueueFull when the buffer is
// at capacity and ErrQueueClosed after Shutdown.
func (q *Queue) Enqueue(task domain.JobTask) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.tasks <- task:
		return nil
	default:
		return services.ErrQueueFull
	}
}

// Shutdown stops intake and waits for queued and running jobs, or for ctx.
func (q *Queue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.tasks)
	}
	started := q.started
	q.mu.Unlock()
	if !started {
		return nil
	}

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		q.log.Info("Job worker pool drained")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("job queue shutdown: %w", ctx.Err())
	}
}

func (q *Queue) runLoop(workerID int) {
	defer q.wg.Done()
	for task := range q.tasks {
		q.process(workerID, task)
	}
	q.log.Debug("Worker loop stopped", "worker_id", workerID)
}

func (q *Queue) process(workerID int, task domain.JobTask) {
	ctx := context.Background()
	job, err := q.repo.Get(dbctx.Context{Ctx: ctx}, task.JobID)
	if err != nil {
		q.log.Warn("Load job failed", "worker_id", workerID, "job_id", task.JobID, "error", err)
		if _, mErr := q.repo.MarkFailed(dbctx.Context{Ctx: ctx}, task.JobID, err.Error()); mErr != nil {
			q.log.Warn("Mark failed after load error", "worker_id", workerID, "job_id", task.JobID, "error", mErr)
		}
		return
	}

	jc := runtime.NewContext(ctx, job, task.Payload, q.repo, q.notify, q.log)
	h, ok := q.registry.Get(task.Type)
	if !ok {
		q.log.Warn("No handler registered for job_type",
			"worker_id", workerID,
			"job_type", task.Type,
			"job_id", task.JobID,
		)
		jc.Fail("dispatch", &missingHandlerError{JobType: task.Type})
		return
	}
	if !jc.Running() {
		q.log.Debug("Job not runnable",
			"worker_id", workerID,
			"job_id", task.JobID,
			"status", job.Status,
			"terminal", domain.IsTerminalJobStatus(job.Status),
		)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			q.log.Error("Job handler panic",
				"worker_id", workerID,
				"job_id", task.JobID,
				"job_type", task.Type,
				"panic", r,
			)
			jc.Fail("panic", errFromRecover(r))
		}
	}()
	if runErr := h.Run(jc); runErr != nil {
		// Handlers normally call jc.Fail themselves; a terminal row makes this a no-op.
		jc.Fail("run", runErr)
	}
}

type missingHandlerError struct{ JobType string }

func (e *missingHandlerError) Error() string { return "no handler registered for job_type=" + e.JobType }

func errFromRecover(v any) error { return &panicError{Val: v} }

type panicError struct{ Val any }

func (e *panicError) Error() string { return fmt.Sprintf("panic: %v", e.Val) }
