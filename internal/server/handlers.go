package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"trendy/internal/core"
	"trendy/internal/pipeline"
)

// HealthResponse is returned by /health
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// ReportsRequest is the body of POST /api/reports
type ReportsRequest struct {
	City string `json:"city"`
	Mode string `json:"mode"`
}

// ReportsResponse is returned by POST /api/reports on success
type ReportsResponse struct {
	RunID      string              `json:"run_id"`
	City       string              `json:"city"`
	Mode       core.Mode           `json:"mode"`
	Candidates core.CandidateSet   `json:"candidates,omitempty"`
	Records    []core.ReportRecord `json:"records"`
	DurationMS int64               `json:"duration_ms"`
}

// FailureResponse describes a failed run
type FailureResponse struct {
	RunID       string `json:"run_id,omitempty"`
	Kind        string `json:"kind"`
	Diagnostic  string `json:"diagnostic"`
	RawResponse string `json:"raw_response,omitempty"`
}

var serverStartTime = time.Now()

// handleHealth handles the /health endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: time.Since(serverStartTime).Round(time.Second).String(),
	})
}

// handleCreateReports handles POST /api/reports
func (s *Server) handleCreateReports(w http.ResponseWriter, r *http.Request) {
	var req ReportsRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}

	mode, err := core.ParseMode(req.Mode)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	run, err := s.execute(r.Context(), strings.TrimSpace(req.City), mode)
	if err != nil {
		status, failure := failureResponse(run, err)
		s.respondJSON(w, status, failure)
		return
	}

	s.respondJSON(w, http.StatusOK, ReportsResponse{
		RunID:      run.ID,
		City:       run.City,
		Mode:       run.Mode,
		Candidates: run.Candidates,
		Records:    run.Records,
		DurationMS: run.Duration().Milliseconds(),
	})
}

// failureResponse maps a run failure to an HTTP status and body.
func failureResponse(run *core.Run, err error) (int, FailureResponse) {
	if errors.Is(err, pipeline.ErrRunInProgress) {
		return http.StatusConflict, FailureResponse{Kind: "RunInProgress", Diagnostic: err.Error()}
	}

	failure := FailureResponse{Kind: "Error", Diagnostic: err.Error()}
	if run != nil {
		failure.RunID = run.ID
	}

	var runErr *pipeline.RunError
	if !errors.As(err, &runErr) {
		return http.StatusInternalServerError, failure
	}

	failure.Kind = string(runErr.Kind)
	failure.Diagnostic = runErr.Diagnostic
	failure.RawResponse = runErr.RawResponse
	if runErr.Kind == pipeline.KindPromptFailed {
		return http.StatusInternalServerError, failure
	}
	return http.StatusBadGateway, failure
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("Failed to encode JSON response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"status":  status,
			"message": message,
		},
	})
}
