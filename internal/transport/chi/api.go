package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ErrorCode is the machine-readable error code of an API error response.
type ErrorCode string

// API error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeInvalidRequest   ErrorCode = "invalid_request"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeIndexUnavailable ErrorCode = "index_unavailable"
	ErrorCodeStorageFailure   ErrorCode = "storage_failure"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// CoursesResponse is the (columns, rows) pair of a discovery request.
type CoursesResponse struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// HealthResponse reports component health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// FindCoursesParams are the query parameters of GET /courses.
type FindCoursesParams struct {
	Dept        *string
	SectionNum  *string
	Day         *[]string
	TimeStart   *int
	TimeEnd     *int
	WalkingTime *float64
	Building    *string
	EnrollLower *int
	EnrollUpper *int
	Terms       *string
}

// Handler mounts the API routes on r and returns it.
func Handler(s *Server, r chi.Router) http.Handler {
	r.Get("/courses", s.FindCourses)
	r.Post("/courses/search", s.SearchCourses)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	return r
}
