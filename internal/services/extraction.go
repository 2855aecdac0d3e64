package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/yungbote/juridica-backend/internal/data/repos"
	"github.com/yungbote/juridica-backend/internal/extraction"
	"github.com/yungbote/juridica-backend/internal/observability"
	"github.com/yungbote/juridica-backend/internal/pkg/dbctx"
	"github.com/yungbote/juridica-backend/internal/pkg/logger"
	"github.com/yungbote/juridica-backend/internal/platform/apierr"
	"github.com/yungbote/juridica-backend/internal/platform/llm"
	"github.com/yungbote/juridica-backend/internal/platform/pdf"
)

const (
	StateStart        = "start"
	StateDownloaded   = "downloaded"
	StateModelInvoked = "model_invoked"
	StateModelAbsent  = "model_absent"
	StateReconciled   = "reconciled"
	StateDone         = "done"
)

const (
	ReasonModelAbsent     = "model_absent"
	ReasonModelError      = "model_error"
	ReasonValidationError = "validation_error"
)

const (
	StubResumeNotConfigured = "(model client not configured) stub resume"
	StubResumeModelFailed   = "(model call failed) stub resume"
)

const minCaseIDLength = 5

type OutcomeKind string

const (
	OutcomeSuccess  OutcomeKind = "success"
	OutcomeDegraded OutcomeKind = "degraded"
)

type ExtractRequest struct {
	PDFURL string `json:"pdf_url"`
	CaseID string `json:"case_id"`
}

func (r ExtractRequest) Validate() error {
	if len(strings.TrimSpace(r.CaseID)) < minCaseIDLength {
		return fmt.Errorf("case_id must be at least %d characters", minCaseIDLength)
	}
	if err := validateHTTPURL(r.PDFURL); err != nil {
		return fmt.Errorf("pdf_url: %w", err)
	}
	return nil
}

// Diagnostics records how an extraction was produced.
type Diagnostics struct {
	Model            string `json:"model"`
	State            string `json:"state"`
	Reason           string `json:"reason,omitempty"`
	Error            string `json:"error,omitempty"`
	RawModelOutput   string `json:"raw_model_output,omitempty"`
	ValidationDetail string `json:"validation_detail,omitempty"`
	PageCount        int    `json:"page_count"`
}

type Outcome struct {
	Kind            OutcomeKind
	Reason          string
	CaseID          string
	Extraction      extraction.CaseExtraction
	ValidationError bool
	PersistedAt     time.Time
	Diagnostics     Diagnostics
}

func (o *Outcome) Degraded() bool { return o != nil && o.Kind == OutcomeDegraded }

// PDFFetcher downloads a PDF to local disk.
type PDFFetcher interface {
	Download(ctx context.Context, url, caseID string) (*pdf.Document, error)
}

type ExtractionService interface {
	Extract(ctx context.Context, req ExtractRequest) (*Outcome, error)
}

type extractionService struct {
	log      *logger.Logger
	fetcher  PDFFetcher
	analyzer llm.PDFAnalyzer
	cases    repos.CaseRepo
}

func NewExtractionService(baseLog *logger.Logger, fetcher PDFFetcher, analyzer llm.PDFAnalyzer, cases repos.CaseRepo) ExtractionService {
	if analyzer == nil {
		analyzer = llm.NotConfigured{}
	}
	return &extractionService{
		log:      baseLog.With("service", "ExtractionService"),
		fetcher:  fetcher,
		analyzer: analyzer,
		cases:    cases,
	}
}

// Extract downloads, analyzes, reconciles and persists one case. Only an
// invalid request, a failed download or a failed commit return an error;
// every model problem degrades the outcome instead.
func (s *extractionService) Extract(ctx context.Context, req ExtractRequest) (*Outcome, error) {
	req.CaseID = strings.TrimSpace(req.CaseID)
	req.PDFURL = strings.TrimSpace(req.PDFURL)
	if err := req.Validate(); err != nil {
		return nil, apierr.BadRequest("invalid_request", err)
	}

	ctx, span := observability.StartSpan(ctx, "extraction.extract", attribute.String("case_id", req.CaseID))
	defer span.End()

	out := &Outcome{
		Kind:   OutcomeSuccess,
		CaseID: req.CaseID,
		Diagnostics: Diagnostics{
			Model: s.analyzer.Name(),
			State: StateStart,
		},
	}
	log := s.log.With("case_id", req.CaseID)

	doc, err := s.fetcher.Download(ctx, req.PDFURL, req.CaseID)
	if err != nil {
		log.Warn("pdf download failed", "pdf_url", req.PDFURL, "error", err)
		span.RecordError(err)
		return nil, apierr.New(http.StatusBadGateway, "pdf_download_failed", err)
	}
	defer func() {
		if err := doc.Remove(); err != nil {
			log.Warn("remove temp pdf failed", "path", doc.Path, "error", err)
		}
	}()
	out.Diagnostics.State = StateDownloaded
	out.Diagnostics.PageCount = doc.PageCount

	s.analyze(ctx, log, doc, out)
	out.Diagnostics.State = StateReconciled

	if err := s.cases.SaveExtraction(dbctx.Context{Ctx: ctx}, req.CaseID, out.Extraction); err != nil {
		log.Error("persist extraction failed", "error", err)
		span.RecordError(err)
		return nil, apierr.Internal("persist_failed", fmt.Errorf("persist extraction: %w", err))
	}
	out.PersistedAt = time.Now().UTC()
	out.Diagnostics.State = StateDone
	span.SetAttributes(
		attribute.String("outcome", string(out.Kind)),
		attribute.Int("page_count", doc.PageCount),
	)

	log.Info("extraction finished",
		"outcome", out.Kind,
		"reason", out.Reason,
		"timeline", len(out.Extraction.Timeline),
		"evidence", len(out.Extraction.Evidence),
		"page_count", doc.PageCount,
	)
	return out, nil
}

func (s *extractionService) analyze(ctx context.Context, log *logger.Logger, doc *pdf.Document, out *Outcome) {
	prompt := extraction.BuildPrompt(out.CaseID, doc.PageCount)
	raw, err := s.analyzer.AnalyzePDF(ctx, doc.Path, prompt)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		out.Diagnostics.State = StateModelAbsent
		out.degrade(ReasonModelAbsent, extraction.Stub(StubResumeNotConfigured))
		return
	case err != nil:
		log.Warn("model call failed", "model", s.analyzer.Name(), "error", err)
		out.Diagnostics.State = StateModelInvoked
		out.Diagnostics.Error = err.Error()
		out.degrade(ReasonModelError, extraction.Stub(StubResumeModelFailed))
		return
	}

	out.Diagnostics.State = StateModelInvoked
	res := extraction.Reconcile(raw)
	out.Diagnostics.RawModelOutput = res.RawOutput
	if res.ValidationError {
		log.Warn("model output failed validation", "parsed", res.Parsed, "detail", res.ValidationDetail)
		out.ValidationError = true
		out.Diagnostics.ValidationDetail = res.ValidationDetail
		out.degrade(ReasonValidationError, res.Extraction)
		return
	}
	out.Extraction = res.Extraction
}

func (o *Outcome) degrade(reason string, ce extraction.CaseExtraction) {
	o.Kind = OutcomeDegraded
	o.Reason = reason
	o.Diagnostics.Reason = reason
	o.Extraction = ce
}

func validateHTTPURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("must be an absolute http(s) url")
	}
	return nil
}
