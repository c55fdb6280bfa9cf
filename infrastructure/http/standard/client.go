// ABOUTME: Standard HTTP client implementation with timeout support and JSON headers
// ABOUTME: Each call is exactly one attempt; retry policy belongs to the caller

package standard

import (
	"context"
	"io"
	"net/http"
	"time"

	coreerrors "github.com/sagar-developer08/tree-json/core/errors"
	"github.com/sagar-developer08/tree-json/core/interfaces"
)

const userAgent = "TreeJSON/1.0"

// StandardHTTPClient implements the HTTPClient interface using the standard library
type StandardHTTPClient struct {
	client *http.Client
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout
func NewStandardHTTPClient(timeout time.Duration) *StandardHTTPClient {
	return &StandardHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewLoggingHTTPClient creates a client that logs every outgoing request and
// its outcome at debug level, and transport failures at warn level.
func NewLoggingHTTPClient(timeout time.Duration, logger interfaces.Logger) *StandardHTTPClient {
	c := NewStandardHTTPClient(timeout)
	c.client.Transport = &loggingTransport{next: http.DefaultTransport, logger: logger}
	return c
}

// Get performs an HTTP GET request
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	return c.Do(ctx, http.MethodGet, url, nil)
}

// Post performs an HTTP POST request with a JSON body
func (c *StandardHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return c.Do(ctx, http.MethodPost, url, body)
}

// Put performs an HTTP PUT request with a JSON body
func (c *StandardHTTPClient) Put(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return c.Do(ctx, http.MethodPut, url, body)
}

// Delete performs an HTTP DELETE request
func (c *StandardHTTPClient) Delete(ctx context.Context, url string) (interfaces.Response, error) {
	return c.Do(ctx, http.MethodDelete, url, nil)
}

// Do performs a single request. Transport failures are returned as
// *errors.NetworkError; any HTTP status, including 5xx, is a response.
func (c *StandardHTTPClient) Do(ctx context.Context, method, url string, body io.Reader) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &coreerrors.NetworkError{Op: method, URL: url, Err: err}
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &coreerrors.NetworkError{Op: method, URL: url, Err: err}
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
