package app

import (
	"fmt"

	"github.com/yungbote/juridica-backend/internal/jobs/pipeline/case_extract"
	"github.com/yungbote/juridica-backend/internal/jobs/runtime"
	"github.com/yungbote/juridica-backend/internal/jobs/worker"
	"github.com/yungbote/juridica-backend/internal/pkg/logger"
	"github.com/yungbote/juridica-backend/internal/platform/llm"
	"github.com/yungbote/juridica-backend/internal/services"
)

type Services struct {
	Extraction services.ExtractionService
	Case       services.CaseService
	Job        services.JobService
	LLM        services.LLMService
	APIKey     services.APIKeyService
	Notifier   services.JobNotifier

	Queue *worker.Queue
}

func wireServices(log *logger.Logger, cfg Config, reposet Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	extractor := services.NewExtractionService(log, clients.PDF, clients.Analyzer, reposet.Case)
	notifier := services.NewJobNotifier(log, clients.Webhook, cfg.WebhookTimeout)

	registry := runtime.NewRegistry()
	if err := registry.Register(case_extract.New(log, extractor)); err != nil {
		return Services{}, fmt.Errorf("register job handler: %w", err)
	}
	log.Info("Job handlers registered", "types", registry.Types())
	queue := worker.NewQueue(log, reposet.ExtractionJob, registry, notifier, worker.Config{
		Concurrency: cfg.WorkerConcurrency,
		QueueSize:   cfg.JobQueueSize,
	})

	return Services{
		Extraction: extractor,
		Case:       services.NewCaseService(log, reposet.Case),
		Job:        services.NewJobService(log, reposet.ExtractionJob, queue, notifier),
		LLM:        services.NewLLMService(log, llm.Echo{}),
		APIKey:     services.NewAPIKeyService(cfg.APIKeys()),
		Notifier:   notifier,
		Queue:      queue,
	}, nil
}
