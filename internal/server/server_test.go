package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendy/internal/config"
	"trendy/internal/core"
	"trendy/internal/pipeline"
)

type fakeRunner struct {
	run  *core.Run
	err  error
	opts pipeline.RunOptions
}

func (f *fakeRunner) Run(ctx context.Context, opts pipeline.RunOptions) (*core.Run, error) {
	f.opts = opts
	return f.run, f.err
}

func newTestServer(runner Runner) *Server {
	return New(runner, config.Server{Host: "127.0.0.1", Port: 0, AllowedOrigins: []string{"*"}},
		Defaults{City: "Riyadh", Mode: core.ModeGrounded, RunTimeout: time.Minute})
}

func doneRun() *core.Run {
	start := time.Now()
	return &core.Run{
		ID:         "run-1",
		City:       "Riyadh",
		Mode:       core.ModeGrounded,
		State:      core.StateDone,
		Candidates: core.CandidateSet{core.CategoryCafe: {"Grin Cafe"}},
		Records: []core.ReportRecord{
			{Cafe: "Grin Cafe", Restaurant: "Takya", Park: "Wadi Namar", Report: "تقرير قصير."},
		},
		StartedAt:  start,
		FinishedAt: start.Add(1500 * time.Millisecond),
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(&fakeRunner{})
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
}

func TestCreateReportsSuccess(t *testing.T) {
	runner := &fakeRunner{run: doneRun()}
	s := newTestServer(runner)

	req := httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(`{"city":"Jeddah","mode":"ungrounded"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Jeddah", runner.opts.City)
	assert.Equal(t, core.ModeUngrounded, runner.opts.Mode)

	var body ReportsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "run-1", body.RunID)
	assert.Equal(t, int64(1500), body.DurationMS)
	require.Len(t, body.Records, 1)
	assert.Equal(t, "Takya", body.Records[0].Restaurant)
}

func TestCreateReportsDefaults(t *testing.T) {
	runner := &fakeRunner{run: doneRun()}
	s := newTestServer(runner)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reports", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Riyadh", runner.opts.City)
	assert.Equal(t, core.ModeGrounded, runner.opts.Mode)
}

func TestCreateReportsParseFailure(t *testing.T) {
	runErr := &pipeline.RunError{Kind: pipeline.KindNoJSONFound, Diagnostic: "no JSON array found in response", RawResponse: "Sorry!"}
	run := &core.Run{ID: "run-2", State: core.StateFailed, Err: runErr}
	s := newTestServer(&fakeRunner{run: run, err: runErr})

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var body FailureResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "run-2", body.RunID)
	assert.Equal(t, "NoJsonFound", body.Kind)
	assert.Equal(t, "Sorry!", body.RawResponse)
}

func TestCreateReportsInProgress(t *testing.T) {
	s := newTestServer(&fakeRunner{err: pipeline.ErrRunInProgress})

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateReportsBadRequest(t *testing.T) {
	s := newTestServer(&fakeRunner{})

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(`{"mode":"offline"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(`{not json`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHomePage(t *testing.T) {
	s := newTestServer(&fakeRunner{})
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `value="Riyadh"`)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestGeneratePage(t *testing.T) {
	s := newTestServer(&fakeRunner{run: doneRun()})

	form := url.Values{"city": {"Riyadh"}, "mode": {"grounded"}}
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h2")
	assert.Contains(t, body, "Set 1")
	assert.Contains(t, body, "<strong>Cafe:</strong> Grin Cafe")
	assert.Contains(t, body, "تقرير قصير.")
}

func TestGeneratePageFailure(t *testing.T) {
	runErr := &pipeline.RunError{Kind: pipeline.KindSearchUnavailable, Diagnostic: "Tavily API error: 401 - unauthorized"}
	run := &core.Run{ID: "run-3", City: "Riyadh", State: core.StateFailed, Err: runErr}
	s := newTestServer(&fakeRunner{run: run, err: runErr})

	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader("mode=grounded"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "SearchUnavailable")
	assert.Contains(t, rec.Body.String(), "401 - unauthorized")
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(&fakeRunner{})
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRenderMarkdown(t *testing.T) {
	assert.Equal(t, "", string(renderMarkdown("")))
	out := string(renderMarkdown("## Set 1\n\n<script>alert(1)</script>"))
	assert.Contains(t, out, "Set 1")
	assert.NotContains(t, out, "<script>")
}
