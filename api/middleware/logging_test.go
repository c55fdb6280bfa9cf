package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

// recordingLogger keeps every entry in order
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) add(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, fields: fields})
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) { l.add("debug", msg, fields) }
func (l *recordingLogger) Info(msg string, fields map[string]interface{})  { l.add("info", msg, fields) }
func (l *recordingLogger) Warn(msg string, fields map[string]interface{})  { l.add("warn", msg, fields) }
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) { l.add("error", msg, fields) }

// completion returns the entry written after the handler returned
func (l *recordingLogger) completion(t *testing.T) logEntry {
	t.Helper()
	l.mu.Lock()
	defer l.mu.Unlock()
	require.Len(t, l.entries, 2)
	return l.entries[1]
}

func envelopeHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	})
}

func TestRequestLogging_ReadCompletesAtInfo(t *testing.T) {
	logger := &recordingLogger{}
	handler := RequestLoggingMiddleware(logger)(envelopeHandler(http.StatusOK, `{"success":true,"data":{"a":1}}`))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/json?pretty=1", nil))

	received := logger.entries[0]
	assert.Equal(t, "debug", received.level)
	assert.Equal(t, "Request received", received.msg)
	assert.Equal(t, "pretty=1", received.fields["query"])

	done := logger.completion(t)
	assert.Equal(t, "info", done.level)
	assert.Equal(t, "Request completed", done.msg)
	assert.Equal(t, http.StatusOK, done.fields["status"])
	assert.Equal(t, "/api/json", done.fields["path"])
	assert.NotContains(t, done.fields, "document_write")
	assert.NotContains(t, done.fields, "error")
	assert.Len(t, done.fields["request_id"], 36)
	assert.Equal(t, done.fields["request_id"], rec.Header().Get(RequestIDHeader))
}

func TestRequestLogging_DocumentWritesShareOneRequestID(t *testing.T) {
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			logger := &recordingLogger{}

			var seen string
			handler := RequestLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = RequestIDFromContext(r.Context())
				w.Write([]byte(`{"success":true}`))
			}))

			req := httptest.NewRequest(method, "/api/json", strings.NewReader(`{"jsonData":{}}`))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			done := logger.completion(t)
			require.NotEmpty(t, seen)
			assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
			assert.Equal(t, seen, logger.entries[0].fields["request_id"])
			assert.Equal(t, seen, done.fields["request_id"])
			assert.Equal(t, true, done.fields["document_write"])
			assert.Equal(t, method, done.fields["method"])
		})
	}
}

func TestRequestLogging_ReusesIncomingRequestID(t *testing.T) {
	logger := &recordingLogger{}

	var seen string
	handler := RequestLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/json", nil)
	req.Header.Set(RequestIDHeader, "upstream-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "upstream-id", seen)
	assert.Equal(t, "upstream-id", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "upstream-id", logger.completion(t).fields["request_id"])
}

func TestRequestLogging_FailuresCarryEnvelopeError(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantLevel string
		wantMsg   string
		wantError string
	}{
		{
			name:      "missing payload",
			status:    http.StatusBadRequest,
			body:      `{"success":false,"error":"jsonData is required"}`,
			wantLevel: "warn",
			wantMsg:   "Request rejected",
			wantError: "jsonData is required",
		},
		{
			name:      "store failure",
			status:    http.StatusInternalServerError,
			body:      `{"success":false,"error":"Internal server error"}`,
			wantLevel: "error",
			wantMsg:   "Request failed",
			wantError: "Internal server error",
		},
		{
			name:      "router 404 is not an envelope",
			status:    http.StatusNotFound,
			body:      "404 page not found\n",
			wantLevel: "warn",
			wantMsg:   "Request rejected",
			wantError: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &recordingLogger{}
			handler := RequestLoggingMiddleware(logger)(envelopeHandler(tt.status, tt.body))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/json", nil))

			assert.Equal(t, tt.body, rec.Body.String(), "the client still gets the whole body")

			done := logger.completion(t)
			assert.Equal(t, tt.wantLevel, done.level)
			assert.Equal(t, tt.wantMsg, done.msg)
			assert.Equal(t, tt.status, done.fields["status"])
			assert.Equal(t, tt.wantError, done.fields["error"])
		})
	}
}

func TestRequestLogging_RateLimitedRequestIsRejected(t *testing.T) {
	logger := &recordingLogger{}
	limiter := NewRateLimiter(1, time.Hour)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := RequestLoggingMiddleware(logger)(RateLimitMiddleware(limiter)(ok))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPut, "/api/json", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPut, "/api/json", nil))

	require.Len(t, logger.entries, 4)
	assert.Equal(t, "info", logger.entries[1].level)

	limited := logger.entries[3]
	assert.Equal(t, "warn", limited.level)
	assert.Equal(t, http.StatusTooManyRequests, limited.fields["status"])
	assert.Equal(t, "Rate limit exceeded. Please try again later.", limited.fields["error"])
}

func TestStatusRecorder(t *testing.T) {
	t.Run("implicit 200 keeps no body", func(t *testing.T) {
		rec := &statusRecorder{ResponseWriter: httptest.NewRecorder()}
		rec.Write([]byte(`{"success":true}`))

		assert.Equal(t, http.StatusOK, rec.code())
		assert.Zero(t, rec.failure.Len())
	})

	t.Run("first status wins", func(t *testing.T) {
		rec := &statusRecorder{ResponseWriter: httptest.NewRecorder()}
		rec.WriteHeader(http.StatusCreated)
		rec.WriteHeader(http.StatusBadRequest)

		assert.Equal(t, http.StatusCreated, rec.code())
	})

	t.Run("failure body is capped", func(t *testing.T) {
		rec := &statusRecorder{ResponseWriter: httptest.NewRecorder()}
		rec.WriteHeader(http.StatusBadRequest)
		rec.Write([]byte(strings.Repeat("x", failureBodyLimit+10)))
		rec.Write([]byte("more"))

		assert.Equal(t, failureBodyLimit, rec.failure.Len())
		assert.Equal(t, "", rec.envelopeError())
	})
}

func TestRequestLogFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/json?merge=1", strings.NewReader(`{"jsonData":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "tree-json-cli")
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 192.168.1.1")
	req.Header.Set(RequestIDHeader, "header-id")

	fields := RequestLogFields(req)
	assert.Equal(t, "header-id", fields["request_id"])
	assert.Equal(t, "192.168.1.1", fields["remote_ip"])
	assert.Equal(t, "merge=1", fields["query"])
	assert.Equal(t, "tree-json-cli", fields["user_agent"])
	assert.Equal(t, "application/json", fields["content_type"])
	assert.Equal(t, int64(14), fields["content_length"])

	fields = RequestLogFields(req.WithContext(WithRequestID(req.Context(), "context-id")))
	assert.Equal(t, "context-id", fields["request_id"])
}

func TestResponseLogFields(t *testing.T) {
	fields := ResponseLogFields(http.StatusNotFound, 1500*time.Millisecond)

	assert.Equal(t, http.StatusNotFound, fields["status"])
	assert.Equal(t, int64(1500), fields["duration_ms"])
}
