package standard

import (
	"net/http"
	"time"

	"github.com/sagar-developer08/tree-json/core/interfaces"
)

// loggingTransport implements http.RoundTripper with logging
type loggingTransport struct {
	next   http.RoundTripper
	logger interfaces.Logger
}

// RoundTrip logs outgoing HTTP requests
func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	t.logger.Debug("Outgoing HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	})

	resp, err := t.next.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.logger.Warn("Outgoing HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      req.URL.String(),
			"duration": duration.String(),
			"error":    err.Error(),
		})
		return nil, err
	}

	t.logger.Debug("Outgoing HTTP response", map[string]interface{}{
		"method":   req.Method,
		"url":      req.URL.String(),
		"status":   resp.StatusCode,
		"duration": duration.String(),
	})
	return resp, nil
}
