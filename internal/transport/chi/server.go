package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kindph/matching/internal/domain"
	"github.com/kindph/matching/internal/domain/interaction"
	"github.com/kindph/matching/internal/domain/match"
	healthuc "github.com/kindph/matching/internal/usecase/health"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest       = "bad_request"
	CodeValidationFailed = "validation_failed"
	CodeUnauthorized     = "unauthorized"
	CodeNotFound         = "not_found"
	CodeStoreUnavailable = "store_unavailable"
	CodeInternalError    = "internal_error"
)

const maxIDLength = 128

// Matcher computes ranked matches for a seeker.
type Matcher interface {
	FindMatchingJobs(ctx context.Context, seekerID string, limit int) ([]match.Result, error)
}

// InteractionRecorder stores apply/skip decisions.
type InteractionRecorder interface {
	Record(ctx context.Context, seekerID, jobID, action string) (interaction.Record, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Limits bounds the limit query parameter.
type Limits struct {
	Default int
	Max     int
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the matching HTTP API.
type Server struct {
	matcher       Matcher
	interactions  InteractionRecorder
	health        HealthChecker
	limits        Limits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	matcher Matcher,
	interactions InteractionRecorder,
	health HealthChecker,
	limits Limits,
	logger *zap.Logger,
) *Server {
	if limits.Default <= 0 {
		limits.Default = 20
	}
	if limits.Max < limits.Default {
		limits.Max = limits.Default
	}
	s := &Server{
		matcher:      matcher,
		interactions: interactions,
		health:       health,
		limits:       limits,
		logger:       logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, CodeStoreUnavailable),
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/v1/seekers/{seekerID}", func(r chi.Router) {
		r.Get("/matches", s.GetMatches)
		r.Post("/interactions", s.RecordInteraction)
	})
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BreakdownResponse mirrors match.Breakdown.
type BreakdownResponse struct {
	JobTitle  int `json:"job_title"`
	JobType   int `json:"job_type"`
	Location  int `json:"location"`
	Salary    int `json:"salary"`
	Languages int `json:"languages"`
	Skills    int `json:"skills"`
	Priority  int `json:"priority"`
}

// MatchItem is one ranked posting.
type MatchItem struct {
	JobID     string            `json:"job_id"`
	Score     int               `json:"score"`
	Reasons   []string          `json:"reasons"`
	Breakdown BreakdownResponse `json:"breakdown"`
}

// MatchListResponse is the body of GET /matches.
type MatchListResponse struct {
	SeekerID string      `json:"seeker_id"`
	Matches  []MatchItem `json:"matches"`
}

// InteractionRequest is the body of POST /interactions.
type InteractionRequest struct {
	JobID  string `json:"job_id"`
	Action string `json:"action"`
}

// InteractionResponse echoes the stored interaction.
type InteractionResponse struct {
	SeekerID   string `json:"seeker_id"`
	JobID      string `json:"job_id"`
	Action     string `json:"action"`
	RecordedAt string `json:"recorded_at"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// GetMatches handles GET /api/v1/seekers/{seekerID}/matches.
func (s *Server) GetMatches(w http.ResponseWriter, r *http.Request) {
	seekerID, ok := s.seekerID(w, r)
	if !ok {
		return
	}

	limit, err := s.parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	results, err := s.matcher.FindMatchingJobs(r.Context(), seekerID, limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, NewMatchListResponse(seekerID, results))
}

// RecordInteraction handles POST /api/v1/seekers/{seekerID}/interactions.
func (s *Server) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	seekerID, ok := s.seekerID(w, r)
	if !ok {
		return
	}

	var req InteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.JobID) > maxIDLength {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "job_id is too long")
		return
	}

	rec, err := s.interactions.Record(r.Context(), seekerID, req.JobID, req.Action)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, InteractionResponse{
		SeekerID:   rec.SeekerID,
		JobID:      rec.JobID,
		Action:     string(rec.Action),
		RecordedAt: rec.RecordedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) seekerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "seekerID"))
	switch {
	case id == "":
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "seeker id is required")
		return "", false
	case len(id) > maxIDLength:
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "seeker id is too long")
		return "", false
	}
	return id, true
}

// parseLimit applies the configured default and clamps to the maximum.
func (s *Server) parseLimit(raw string) (int, error) {
	if raw == "" {
		return s.limits.Default, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.New("limit must be a positive integer")
	}
	if n > s.limits.Max {
		n = s.limits.Max
	}
	return n, nil
}

// NewMatchListResponse converts ranked results to their JSON form.
func NewMatchListResponse(seekerID string, results []match.Result) MatchListResponse {
	items := make([]MatchItem, len(results))
	for i := range results {
		items[i] = matchToResponse(&results[i])
	}
	return MatchListResponse{SeekerID: seekerID, Matches: items}
}

func matchToResponse(r *match.Result) MatchItem {
	b := r.Breakdown()
	reasons := r.Reasons()
	if reasons == nil {
		reasons = []string{}
	}
	return MatchItem{
		JobID:   r.JobID(),
		Score:   r.Score(),
		Reasons: reasons,
		Breakdown: BreakdownResponse{
			JobTitle:  b.JobTitle,
			JobType:   b.JobType,
			Location:  b.Location,
			Salary:    b.Salary,
			Languages: b.Languages,
			Skills:    b.Skills,
			Priority:  b.Priority,
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-safe message without exposing internals.
// Field errors are already client-facing.
func safeDomainMessage(err error) string {
	var fe *domain.FieldError
	if errors.As(err, &fe) {
		return fe.Error()
	}
	sentinels := []error{
		domain.ErrInvalidInput,
		domain.ErrNotFound,
		domain.ErrStoreUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.logger.With(
		zap.String("request_id", chiMiddleware.GetReqID(r.Context())),
		zap.String("seeker_id", chi.URLParam(r, "seekerID")),
	)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
