package http

import (
	"bytes"
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/juridica-backend/internal/data/repos"
	"github.com/yungbote/juridica-backend/internal/data/repos/testutil"
	"github.com/yungbote/juridica-backend/internal/domain"
	"github.com/yungbote/juridica-backend/internal/extraction"
	httpH "github.com/yungbote/juridica-backend/internal/http/handlers"
	httpMW "github.com/yungbote/juridica-backend/internal/http/middleware"
	"github.com/yungbote/juridica-backend/internal/pkg/dbctx"
	"github.com/yungbote/juridica-backend/internal/platform/llm"
	"github.com/yungbote/juridica-backend/internal/services"
)

const testKey = "secret-key"

type stubExtractor struct {
	calls int
	out   *services.Outcome
	err   error
}

func (s *stubExtractor) Extract(_ context.Context, req services.ExtractRequest) (*services.Outcome, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := *s.out
	out.CaseID = req.CaseID
	return &out, nil
}

type recordingQueue struct {
	tasks []domain.JobTask
	err   error
}

func (q *recordingQueue) Enqueue(task domain.JobTask) error {
	if q.err != nil {
		return q.err
	}
	q.tasks = append(q.tasks, task)
	return nil
}

type fixture struct {
	router    *gin.Engine
	extractor *stubExtractor
	queue     *recordingQueue
	cases     repos.CaseRepo
}

func newFixture(t *testing.T, debugPayload bool) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := testutil.Logger(t)
	db := testutil.DB(t)

	caseRepo := repos.NewCaseRepo(db, log)
	jobRepo := repos.NewExtractionJobRepo(db, log)
	queue := &recordingQueue{}
	extractor := &stubExtractor{out: &services.Outcome{
		Kind:        services.OutcomeSuccess,
		Extraction:  extraction.Stub("Resumen"),
		PersistedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Diagnostics: services.Diagnostics{Model: "fake", State: services.StateDone, PageCount: 3},
	}}
	jobs := services.NewJobService(log, jobRepo, queue, nil)

	router := NewRouter(RouterConfig{
		HealthHandler:    httpH.NewHealthHandler(nil),
		ExtractHandler:   httpH.NewExtractHandler(extractor, jobs, debugPayload),
		JobHandler:       httpH.NewJobHandler(jobs),
		CaseHandler:      httpH.NewCaseHandler(services.NewCaseService(log, caseRepo)),
		LLMHandler:       httpH.NewLLMHandler(services.NewLLMService(log, llm.Echo{})),
		APIKeyMiddleware: httpMW.NewAPIKeyMiddleware(log, services.NewAPIKeyService([]string{testKey})),
		Logger:           log,
	})
	return &fixture{router: router, extractor: extractor, queue: queue, cases: caseRepo}
}

func (f *fixture) do(t *testing.T, method, path string, body any, key string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(httpMW.HeaderAPIKey, key)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

var extractBody = map[string]any{"pdf_url": "https://example.com/a.pdf", "case_id": "CASE-0001"}

func TestHealthcheckIsPublic(t *testing.T) {
	f := newFixture(t, false)
	w := f.do(t, nethttp.MethodGet, "/healthcheck", nil, "")
	assert.Equal(t, nethttp.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestProtectedRoutesRejectBeforeHandlers(t *testing.T) {
	f := newFixture(t, false)
	routes := []struct{ method, path string }{
		{nethttp.MethodPost, "/extract"},
		{nethttp.MethodPost, "/extract/async"},
		{nethttp.MethodGet, "/extract/jobs/abc"},
		{nethttp.MethodGet, "/cases"},
		{nethttp.MethodGet, "/cases/CASE-0001"},
		{nethttp.MethodPost, "/llm/generate"},
	}
	for _, rt := range routes {
		w := f.do(t, rt.method, rt.path, extractBody, "wrong")
		assert.Equal(t, nethttp.StatusUnauthorized, w.Code, rt.path)
		errObj := decode(t, w)["error"].(map[string]any)
		assert.Equal(t, "Invalid API key", errObj["message"], rt.path)
	}
	assert.Zero(t, f.extractor.calls)
	assert.Empty(t, f.queue.tasks)
}

func TestExtractReturnsFlatPayload(t *testing.T) {
	f := newFixture(t, false)
	w := f.do(t, nethttp.MethodPost, "/extract", extractBody, testKey)
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, "CASE-0001", body["case_id"])
	assert.Equal(t, "Resumen", body["resume"])
	assert.Equal(t, []any{}, body["timeline"])
	assert.Equal(t, []any{}, body["evidence"])
	assert.Equal(t, "2024-05-01T12:00:00Z", body["persisted_at"])
	assert.NotContains(t, body, "validation_error")
	assert.NotContains(t, body, "debug")
}

func TestExtractDebugAndValidationFlag(t *testing.T) {
	f := newFixture(t, false)
	f.extractor.out.ValidationError = true

	w := f.do(t, nethttp.MethodPost, "/extract?debug=true", extractBody, testKey)
	require.Equal(t, nethttp.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["validation_error"])
	debug := body["debug"].(map[string]any)
	assert.Equal(t, "fake", debug["model"])
	assert.EqualValues(t, 3, debug["page_count"])

	always := newFixture(t, true)
	w = always.do(t, nethttp.MethodPost, "/extract", extractBody, testKey)
	assert.Contains(t, decode(t, w), "debug")
}

func TestExtractRejectsMalformedJSON(t *testing.T) {
	f := newFixture(t, false)
	req := httptest.NewRequest(nethttp.MethodPost, "/extract", bytes.NewBufferString("{not json"))
	req.Header.Set(httpMW.HeaderAPIKey, testKey)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
	assert.Zero(t, f.extractor.calls)
}

func TestExtractAsyncThenPollJob(t *testing.T) {
	f := newFixture(t, false)
	body := map[string]any{
		"pdf_url":      "https://example.com/a.pdf",
		"case_id":      "CASE-0002",
		"callback_url": "https://hooks.example.com/done",
	}
	w := f.do(t, nethttp.MethodPost, "/extract/async", body, testKey)
	require.Equal(t, nethttp.StatusAccepted, w.Code, w.Body.String())
	accepted := decode(t, w)
	assert.Equal(t, domain.JobStatusPending, accepted["status"])
	jobID, _ := accepted["job_id"].(string)
	require.NotEmpty(t, jobID)

	require.Len(t, f.queue.tasks, 1)
	assert.Equal(t, jobID, f.queue.tasks[0].JobID)
	assert.Equal(t, "CASE-0002", f.queue.tasks[0].Payload["case_id"])

	w = f.do(t, nethttp.MethodGet, "/extract/jobs/"+jobID, nil, testKey)
	require.Equal(t, nethttp.StatusOK, w.Code)
	job := decode(t, w)
	assert.Equal(t, jobID, job["id"])
	assert.Equal(t, "CASE-0002", job["case_id"])
	assert.Equal(t, "https://hooks.example.com/done", job["callback_url"])
	assert.Nil(t, job["error"])
}

func TestExtractAsyncValidatesCallback(t *testing.T) {
	f := newFixture(t, false)
	body := map[string]any{"pdf_url": "https://example.com/a.pdf", "case_id": "CASE-0002", "callback_url": "ftp://x"}
	w := f.do(t, nethttp.MethodPost, "/extract/async", body, testKey)
	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
	assert.Empty(t, f.queue.tasks)
}

func TestUnknownJobAndCaseAre404(t *testing.T) {
	f := newFixture(t, false)

	w := f.do(t, nethttp.MethodGet, "/extract/jobs/missing", nil, testKey)
	assert.Equal(t, nethttp.StatusNotFound, w.Code)
	assert.Equal(t, "job_not_found", decode(t, w)["error"].(map[string]any)["code"])

	w = f.do(t, nethttp.MethodGet, "/cases/NOPE-0000", nil, testKey)
	assert.Equal(t, nethttp.StatusNotFound, w.Code)
	assert.Equal(t, "Case not found", decode(t, w)["error"].(map[string]any)["message"])
}

func TestCasesListAndGet(t *testing.T) {
	f := newFixture(t, false)
	ce := extraction.CaseExtraction{
		Resume: "Resumen",
		Timeline: []extraction.Event{{
			EventID: 0, EventName: "Demanda", EventDescription: "d", EventDate: "01/02/2020",
			EventPageInit: 1, EventPageEnd: 2,
		}},
		Evidence: []extraction.Evidence{},
	}
	require.NoError(t, f.cases.SaveExtraction(dbctx.Context{Ctx: context.Background()}, "CASE-0003", ce))

	w := f.do(t, nethttp.MethodGet, "/cases", nil, testKey)
	require.Equal(t, nethttp.StatusOK, w.Code)
	list := decode(t, w)["cases"].([]any)
	require.Len(t, list, 1)

	w = f.do(t, nethttp.MethodGet, "/cases/CASE-0003", nil, testKey)
	require.Equal(t, nethttp.StatusOK, w.Code)
	got := decode(t, w)
	assert.Equal(t, "CASE-0003", got["case_id"])
	assert.Len(t, got["timeline"], 1)
	assert.Equal(t, []any{}, got["evidence"])
}

func TestLLMGenerate(t *testing.T) {
	f := newFixture(t, false)
	w := f.do(t, nethttp.MethodPost, "/llm/generate", map[string]any{"prompt": "hola"}, testKey)
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.Equal(t, "Echo: hola", decode(t, w)["output"])

	w = f.do(t, nethttp.MethodPost, "/llm/generate", map[string]any{"prompt": ""}, testKey)
	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
}
