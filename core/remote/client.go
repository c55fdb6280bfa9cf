// ABOUTME: Remote sync client for the single-document JSON API
// ABOUTME: Every call returns the uniform envelope; failures also come back as typed errors

package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sagar-developer08/tree-json/core/canonical"
	"github.com/sagar-developer08/tree-json/core/domain"
	coreerrors "github.com/sagar-developer08/tree-json/core/errors"
	"github.com/sagar-developer08/tree-json/core/interfaces"
)

const (
	documentPath = "/api/json"
	healthPath   = "/health"

	msgGetFailed     = "Failed to fetch JSON data"
	msgMergeFailed   = "Failed to update JSON data"
	msgReplaceFailed = "Failed to replace JSON data"
	msgClearFailed   = "Failed to clear JSON data"
	msgHealthFailed  = "API health check failed"
	msgNetworkFailed = "Network error occurred"
)

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 16 << 20

// Client talks to the document API. It never retries: each call is one
// request, and any retry policy belongs to the caller.
type Client struct {
	baseURL string
	http    interfaces.HTTPClient
	logger  interfaces.Logger
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, httpClient interfaces.HTTPClient, logger interfaces.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get fetches the current document.
func (c *Client) Get(ctx context.Context) (domain.Envelope, error) {
	url := c.baseURL + documentPath
	resp, err := c.http.Get(ctx, url)
	return c.finish("get", url, msgGetFailed, resp, err, true)
}

// Replace overwrites the document with v.
func (c *Client) Replace(ctx context.Context, v canonical.Value) (domain.Envelope, error) {
	url := c.baseURL + documentPath
	body, err := requestBody(v)
	if err != nil {
		return c.failure(0, err.Error()), &coreerrors.ValidationError{Field: "jsonData", Message: err.Error()}
	}
	resp, err := c.http.Put(ctx, url, body)
	return c.finish("replace", url, msgReplaceFailed, resp, err, true)
}

// Merge applies v to the document as a partial update.
func (c *Client) Merge(ctx context.Context, v canonical.Value) (domain.Envelope, error) {
	url := c.baseURL + documentPath
	body, err := requestBody(v)
	if err != nil {
		return c.failure(0, err.Error()), &coreerrors.ValidationError{Field: "jsonData", Message: err.Error()}
	}
	resp, err := c.http.Post(ctx, url, body)
	return c.finish("merge", url, msgMergeFailed, resp, err, true)
}

// Clear empties the document.
func (c *Client) Clear(ctx context.Context) (domain.Envelope, error) {
	url := c.baseURL + documentPath
	resp, err := c.http.Delete(ctx, url)
	return c.finish("clear", url, msgClearFailed, resp, err, true)
}

// Health probes the API. Error bodies are not inspected.
func (c *Client) Health(ctx context.Context) (domain.Envelope, error) {
	url := c.baseURL + healthPath
	resp, err := c.http.Get(ctx, url)
	return c.finish("health", url, msgHealthFailed, resp, err, false)
}

// Data decodes an envelope's payload into a canonical value, keeping key order.
func Data(env domain.Envelope) (canonical.Value, error) {
	if !env.HasData() {
		return nil, nil
	}
	return canonical.ParseJSON(env.Data)
}

func requestBody(v canonical.Value) (io.Reader, error) {
	payload := canonical.NewObject()
	payload.Set("jsonData", v)
	out, err := canonical.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(out), nil
}

func (c *Client) finish(op, url, defaultMsg string, resp interfaces.Response, err error, readErrorBody bool) (domain.Envelope, error) {
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = msgNetworkFailed
		}
		c.logger.Warn("Document API unreachable", map[string]interface{}{
			"op":    op,
			"url":   url,
			"error": msg,
		})
		if !coreerrors.IsNetwork(err) {
			err = &coreerrors.NetworkError{Op: op, URL: url, Err: err}
		}
		return c.failure(0, msg), err
	}
	defer resp.Body().Close()

	status := resp.StatusCode()
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body(), maxResponseSize))
	if readErr != nil {
		return c.failure(status, readErr.Error()), &coreerrors.NetworkError{Op: op, URL: url, Err: readErr}
	}

	c.logger.Debug("Document API responded", map[string]interface{}{
		"op":     op,
		"status": status,
		"bytes":  len(raw),
	})

	if status < 200 || status > 299 {
		msg := defaultMsg
		if readErrorBody {
			var body struct {
				Error string `json:"error"`
			}
			if json.Unmarshal(raw, &body) == nil && body.Error != "" {
				msg = body.Error
			}
		}
		return c.failure(status, msg), &coreerrors.RemoteAPIError{StatusCode: status, Message: msg}
	}

	var env domain.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		msg := fmt.Sprintf("invalid response body: %v", err)
		return c.failure(status, msg), &coreerrors.RemoteAPIError{StatusCode: status, Message: msg}
	}
	env.StatusCode = status

	if !env.Success {
		msg := env.Failure()
		if msg == "" {
			msg = defaultMsg
		}
		env.Error = msg
		return env, &coreerrors.RemoteAPIError{StatusCode: status, Message: msg}
	}
	return env, nil
}

func (c *Client) failure(status int, msg string) domain.Envelope {
	return domain.Envelope{Success: false, Error: msg, StatusCode: status}
}
