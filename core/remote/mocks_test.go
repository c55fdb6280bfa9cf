package remote

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/sagar-developer08/tree-json/core/domain"
	"github.com/sagar-developer08/tree-json/core/interfaces"
)

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	getFunc    func(ctx context.Context, url string) (interfaces.Response, error)
	postFunc   func(ctx context.Context, url string, body io.Reader) (interfaces.Response, error)
	putFunc    func(ctx context.Context, url string, body io.Reader) (interfaces.Response, error)
	deleteFunc func(ctx context.Context, url string) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, url)
	}
	return nil, nil
}

func (m *mockHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	if m.postFunc != nil {
		return m.postFunc(ctx, url, body)
	}
	return nil, nil
}

func (m *mockHTTPClient) Put(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	if m.putFunc != nil {
		return m.putFunc(ctx, url, body)
	}
	return nil, nil
}

func (m *mockHTTPClient) Delete(ctx context.Context, url string) (interfaces.Response, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, url)
	}
	return nil, nil
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
	headers    map[string]string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	if m.headers != nil {
		return m.headers[key]
	}
	return ""
}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct {
	warnFunc func(msg string, fields map[string]interface{})
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{}) {
	if m.warnFunc != nil {
		m.warnFunc(msg, fields)
	}
}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}

func okEnvelope(data string) domain.Envelope {
	env := domain.Envelope{Success: true, StatusCode: 200}
	if data != "" {
		env.Data = json.RawMessage(data)
	}
	return env
}
