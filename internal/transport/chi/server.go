package chi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/coursedex/internal/domain"
	"github.com/kailas-cloud/coursedex/internal/domain/facet"
	"github.com/kailas-cloud/coursedex/internal/domain/result"
	"github.com/kailas-cloud/coursedex/internal/logger"
	discoveryuc "github.com/kailas-cloud/coursedex/internal/usecase/discovery"
	healthuc "github.com/kailas-cloud/coursedex/internal/usecase/health"
)

const maxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the course discovery HTTP API.
type Server struct {
	finder        discoveryuc.Finder
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(finder discoveryuc.Finder, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		finder: finder,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrConfiguration, http.StatusBadRequest, ErrorCodeInvalidRequest),
		sentinelHandler(domain.ErrIndexUnavailable, http.StatusServiceUnavailable, ErrorCodeIndexUnavailable),
		sentinelHandler(domain.ErrStorageFailure, http.StatusBadGateway, ErrorCodeStorageFailure),
	}
	return s
}

// FindCourses handles GET /courses.
func (s *Server) FindCourses(w http.ResponseWriter, r *http.Request) {
	params, err := bindFindCoursesParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	s.find(w, r, params.facets())
}

// SearchCourses handles POST /courses/search with a JSON facet object.
func (s *Server) SearchCourses(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if raw == nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Request body must be a JSON object")
		return
	}
	s.find(w, r, raw)
}

func (s *Server) find(w http.ResponseWriter, r *http.Request, raw map[string]any) {
	req, err := facet.NewRequest(raw)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	res, err := s.finder.FindCourses(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, coursesToResponse(res))
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

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client message without exposing storage internals.
// Configuration errors describe the caller's own input and are returned whole.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrConfiguration) {
		return err.Error()
	}
	for _, s := range []error{domain.ErrStorageFailure, domain.ErrIndexUnavailable} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

func coursesToResponse(res result.Result) CoursesResponse {
	resp := CoursesResponse{
		Columns: res.ColumnNames(),
		Rows:    make([][]any, len(res.Rows)),
	}
	for i, row := range res.Rows {
		resp.Rows[i] = row
	}
	return resp
}
