// ABOUTME: Request logging middleware for the document API
// ABOUTME: One completion line per request, levelled by status, carrying the envelope error on failures

package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sagar-developer08/tree-json/core/interfaces"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// failureBodyLimit caps how much of a failed response is kept to read its error text
const failureBodyLimit = 4 << 10

type requestIDKey struct{}

// WithRequestID returns a copy of ctx carrying id
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the ID assigned by RequestLoggingMiddleware
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// statusRecorder remembers the response status and, once the status marks a
// failure, the head of the body so the envelope's error text can be logged.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	failure bytes.Buffer
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status != 0 {
		return
	}
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.WriteHeader(http.StatusOK)
	}
	if s.status >= http.StatusBadRequest {
		if room := failureBodyLimit - s.failure.Len(); room > 0 {
			s.failure.Write(b[:min(len(b), room)])
		}
	}
	return s.ResponseWriter.Write(b)
}

func (s *statusRecorder) code() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}

// envelopeError is the "error" member of the failure body, or "" when the
// body is not an envelope.
func (s *statusRecorder) envelopeError() string {
	var env struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(s.failure.Bytes(), &env); err != nil {
		return ""
	}
	return env.Error
}

// RequestLoggingMiddleware logs every request once it completes: Info below
// 400, Warn for rejected requests and Error for server failures. An incoming
// X-Request-ID is reused; otherwise a new one is generated.
func RequestLoggingMiddleware(logger interfaces.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)
			r = r.WithContext(WithRequestID(r.Context(), id))

			logger.Debug("Request received", RequestLogFields(r))

			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(rec, r)

			status := rec.code()
			fields := ResponseLogFields(status, time.Since(start))
			fields["request_id"] = id
			fields["method"] = r.Method
			fields["path"] = r.URL.Path
			if isDocumentWrite(r.Method) {
				fields["document_write"] = true
			}

			switch {
			case status >= http.StatusInternalServerError:
				fields["error"] = rec.envelopeError()
				logger.Error("Request failed", fields)
			case status >= http.StatusBadRequest:
				fields["error"] = rec.envelopeError()
				logger.Warn("Request rejected", fields)
			default:
				logger.Info("Request completed", fields)
			}
		})
	}
}

func isDocumentWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// RequestLogFields extracts common log fields from a request
func RequestLogFields(r *http.Request) map[string]interface{} {
	id := RequestIDFromContext(r.Context())
	if id == "" {
		id = r.Header.Get(RequestIDHeader)
	}
	return map[string]interface{}{
		"request_id":     id,
		"method":         r.Method,
		"path":           r.URL.Path,
		"query":          r.URL.RawQuery,
		"remote_ip":      extractIP(r),
		"user_agent":     r.UserAgent(),
		"content_type":   r.Header.Get("Content-Type"),
		"content_length": r.ContentLength,
	}
}

// ResponseLogFields creates log fields for a response
func ResponseLogFields(status int, duration time.Duration) map[string]interface{} {
	return map[string]interface{}{
		"status":      status,
		"duration_ms": duration.Milliseconds(),
	}
}
