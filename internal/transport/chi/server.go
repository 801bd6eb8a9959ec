package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/virtualta/internal/domain"
	logpkg "github.com/kailas-cloud/virtualta/internal/logger"
	healthuc "github.com/kailas-cloud/virtualta/internal/usecase/health"
	questionuc "github.com/kailas-cloud/virtualta/internal/usecase/question"
	"github.com/kailas-cloud/virtualta/internal/version"
)

// DefaultMaxBodyBytes limits POST /api bodies.
const DefaultMaxBodyBytes int64 = 10 << 20

// Client-facing error messages.
const (
	msgInvalidRequest  = "Invalid request format"
	msgBodyTooLarge    = "Request body too large"
	msgInternal        = "Internal server error. Please try again later."
	msgRecentFailed    = "Failed to fetch recent questions"
	msgAPINotFound     = "API endpoint not found"
	msgNotFound        = "Not found"
	msgTooManyRequests = "Too many requests"
	msgInvalidLimit    = "limit must be a positive integer"
	msgUnauthorized    = "Unauthorized"
)

// healthTimeFormat is RFC 3339 with millisecond precision.
const healthTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the Virtual TA HTTP API.
type Server struct {
	questions     *questionuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	maxBodyBytes  int64
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(questions *questionuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		questions:    questions,
		health:       health,
		logger:       logger,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		bodyTooLargeHandler,
	}
	return s
}

// WithMaxBodyBytes overrides the request body limit.
func (s *Server) WithMaxBodyBytes(n int64) *Server {
	if n > 0 {
		s.maxBodyBytes = n
	}
	return s
}

// Ask handles POST /api.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	req, err := domain.ParseQuestionRequest(body)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	ans, err := s.questions.Ask(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, answerToResponse(ans))
}

// Health handles GET /api/health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:    string(report.Status),
		Timestamp: report.Timestamp.Format(healthTimeFormat),
		Message:   report.Message,
		Version:   version.Version,
		Checks:    checks,
	})
}

// Recent handles GET /api/recent.
func (s *Server) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, msgInvalidRequest, msgInvalidLimit)
			return
		}
		limit = n
	}

	recs, err := s.questions.Recent(r.Context(), limit)
	if err != nil {
		logpkg.FromContext(r.Context()).Error("fetch recent questions", zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgRecentFailed, "")
		return
	}

	resp := make([]recordResponse, len(recs))
	for i, rec := range recs {
		resp[i] = recordToResponse(rec)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// NotFound handles unmatched routes and unsupported methods.
func (s *Server) NotFound(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
		writeError(w, http.StatusNotFound, msgAPINotFound, "")
		return
	}
	writeError(w, http.StatusNotFound, msgNotFound, "")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}

// validationHandler maps field validation failures to 400 with details.
func validationHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrValidation) {
		return false
	}
	details := err.Error()
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		details = ve.Details()
	}
	writeError(w, http.StatusBadRequest, msgInvalidRequest, details)
	return true
}

func bodyTooLargeHandler(w http.ResponseWriter, err error) bool {
	var mbe *http.MaxBytesError
	if !errors.As(err, &mbe) {
		return false
	}
	writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge, "")
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("request rejected", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, msgInternal, "")
}
