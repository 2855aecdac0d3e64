package app

import (
	"context"
	"fmt"

	"github.com/yungbote/juridica-backend/internal/pkg/logger"
	"github.com/yungbote/juridica-backend/internal/platform/gemini"
	"github.com/yungbote/juridica-backend/internal/platform/llm"
	"github.com/yungbote/juridica-backend/internal/platform/pdf"
	"github.com/yungbote/juridica-backend/internal/platform/webhook"
)

type Clients struct {
	Analyzer llm.PDFAnalyzer
	PDF      *pdf.Downloader
	Webhook  *webhook.Client
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	lc := cfg.LLMConfig()

	var analyzer llm.PDFAnalyzer = llm.NotConfigured{Model: lc.Model}
	if lc.Provider == "gemini" {
		gc, err := gemini.NewClient(ctx, log, gemini.Config{APIKey: lc.GeminiAPIKey, Model: lc.GeminiModel})
		if err != nil {
			return Clients{}, fmt.Errorf("init gemini: %w", err)
		}
		analyzer = gc
	} else {
		log.Warn("GEMINI_API_KEY not set; extraction returns stub results", "model", lc.Model)
	}

	return Clients{
		Analyzer: analyzer,
		PDF:      pdf.NewDownloader(log, cfg.PDFDownloadTimeout),
		Webhook:  webhook.NewClient(log, cfg.WebhookTimeout),
	}, nil
}
