package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagar-developer08/tree-json/core/canonical"
	"github.com/sagar-developer08/tree-json/core/docstore"
	"github.com/sagar-developer08/tree-json/core/domain"
	"github.com/sagar-developer08/tree-json/core/interfaces"
	"github.com/sagar-developer08/tree-json/infrastructure/cache/memory"
)

// mockDocumentService is a mock implementation of the document service
type mockDocumentService struct {
	getFunc     func(ctx context.Context) (canonical.Value, *domain.DocumentRecord, error)
	replaceFunc func(ctx context.Context, v canonical.Value) (*domain.DocumentRecord, error)
	mergeFunc   func(ctx context.Context, v canonical.Value) (*domain.DocumentRecord, error)
	clearFunc   func(ctx context.Context) error
}

func (m *mockDocumentService) Get(ctx context.Context) (canonical.Value, *domain.DocumentRecord, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx)
	}
	return nil, nil, nil
}

func (m *mockDocumentService) Replace(ctx context.Context, v canonical.Value) (*domain.DocumentRecord, error) {
	if m.replaceFunc != nil {
		return m.replaceFunc(ctx, v)
	}
	return &domain.DocumentRecord{}, nil
}

func (m *mockDocumentService) Merge(ctx context.Context, v canonical.Value) (*domain.DocumentRecord, error) {
	if m.mergeFunc != nil {
		return m.mergeFunc(ctx, v)
	}
	return &domain.DocumentRecord{}, nil
}

func (m *mockDocumentService) Clear(ctx context.Context) error {
	if m.clearFunc != nil {
		return m.clearFunc(ctx)
	}
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

var _ interfaces.Logger = nopLogger{}

func newDocumentAPI(t *testing.T, service DocumentService) humatest.TestAPI {
	t.Helper()
	useEnvelopeErrors(t)
	_, api := humatest.New(t, EnvelopeConfig("Test API", "1.0.0"))
	NewDocumentHandler(service, nopLogger{}).RegisterRoutes(api)
	RegisterHealthRoute(api)
	return api
}

func newStoreBackedAPI(t *testing.T) humatest.TestAPI {
	t.Helper()
	repo := docstore.NewCacheRepository(memory.NewMemoryCache(), "")
	return newDocumentAPI(t, docstore.NewService(repo, nopLogger{}))
}

func decodeEnvelope(t *testing.T, body string) domain.Envelope {
	t.Helper()
	var env domain.Envelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	return env
}

func TestDocument_GetEmptyStore(t *testing.T) {
	api := newStoreBackedAPI(t)

	resp := api.Get("/api/json")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"data":null`)
	env := decodeEnvelope(t, resp.Body.String())
	assert.True(t, env.Success)
	assert.False(t, env.HasData())
}

func TestDocument_BodiesCarryOnlyEnvelopeFields(t *testing.T) {
	api := newStoreBackedAPI(t)

	ok := api.Put("/api/json", strings.NewReader(`{"jsonData":{"a":1}}`))
	require.Equal(t, http.StatusOK, ok.Code, ok.Body.String())
	assert.JSONEq(t, `{"success":true,"data":{"a":1},"message":"JSON data saved successfully"}`, ok.Body.String())

	failed := api.Post("/api/json", strings.NewReader(`{}`))
	assert.Equal(t, http.StatusBadRequest, failed.Code)
	assert.JSONEq(t, `{"success":false,"error":"jsonData is required"}`, failed.Body.String())
	assert.NotContains(t, failed.Body.String(), "$schema")
}

func TestDocument_ReplaceThenGetKeepsKeyOrder(t *testing.T) {
	api := newStoreBackedAPI(t)

	resp := api.Put("/api/json", strings.NewReader(`{"jsonData":{"zeta":1,"alpha":{"b":true,"a":null}}}`))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	env := decodeEnvelope(t, resp.Body.String())
	assert.True(t, env.Success)
	assert.Equal(t, "JSON data saved successfully", env.Message)

	resp = api.Get("/api/json")
	require.Equal(t, http.StatusOK, resp.Code)
	env = decodeEnvelope(t, resp.Body.String())
	assert.Equal(t, `{"zeta":1,"alpha":{"b":true,"a":null}}`, string(env.Data))
}

func TestDocument_MergeAppliesPatch(t *testing.T) {
	api := newStoreBackedAPI(t)

	require.Equal(t, http.StatusOK, api.Put("/api/json", strings.NewReader(`{"jsonData":{"a":1,"b":{"c":2,"d":3}}}`)).Code)

	resp := api.Post("/api/json", strings.NewReader(`{"jsonData":{"b":{"d":null,"e":4},"f":"new"}}`))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decodeEnvelope(t, resp.Body.String())
	assert.Equal(t, "JSON data merged successfully", env.Message)
	assert.JSONEq(t, `{"a":1,"b":{"c":2,"e":4},"f":"new"}`, string(env.Data))
}

func TestDocument_MergeIntoEmptyStore(t *testing.T) {
	api := newStoreBackedAPI(t)

	resp := api.Post("/api/json", strings.NewReader(`{"jsonData":{"a":[1,2]}}`))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"a":[1,2]}`, string(decodeEnvelope(t, resp.Body.String()).Data))
}

func TestDocument_Clear(t *testing.T) {
	api := newStoreBackedAPI(t)
	require.Equal(t, http.StatusOK, api.Put("/api/json", strings.NewReader(`{"jsonData":[1]}`)).Code)

	resp := api.Delete("/api/json")
	require.Equal(t, http.StatusOK, resp.Code)
	env := decodeEnvelope(t, resp.Body.String())
	assert.True(t, env.Success)
	assert.Equal(t, "JSON data cleared successfully", env.Message)

	env = decodeEnvelope(t, api.Get("/api/json").Body.String())
	assert.False(t, env.HasData())
}

func TestDocument_WriteRejectsBadBodies(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"missing jsonData", `{"data":{}}`, "jsonData is required"},
		{"null jsonData", `{"jsonData":null}`, "jsonData is required"},
		{"not an object", `[1,2]`, "request body must be a JSON object"},
		{"malformed", `{"jsonData":`, "request body must be valid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newStoreBackedAPI(t)

			put := api.Put("/api/json", strings.NewReader(tt.body))
			assert.Equal(t, http.StatusBadRequest, put.Code)
			env := decodeEnvelope(t, put.Body.String())
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantMsg, env.Error)

			post := api.Post("/api/json", strings.NewReader(tt.body))
			assert.Equal(t, http.StatusBadRequest, post.Code)
		})
	}
}

func TestDocument_ServiceFailureIs500(t *testing.T) {
	api := newDocumentAPI(t, &mockDocumentService{
		getFunc: func(ctx context.Context) (canonical.Value, *domain.DocumentRecord, error) {
			return nil, nil, fmt.Errorf("redis down")
		},
		clearFunc: func(ctx context.Context) error {
			return fmt.Errorf("redis down")
		},
	})

	for _, resp := range []*httptest.ResponseRecorder{api.Get("/api/json"), api.Delete("/api/json")} {
		assert.Equal(t, http.StatusInternalServerError, resp.Code)
		env := decodeEnvelope(t, resp.Body.String())
		assert.False(t, env.Success)
		assert.Equal(t, "Internal server error", env.Error)
	}
}

func TestDocument_PassesPayloadToService(t *testing.T) {
	var replaced canonical.Value
	api := newDocumentAPI(t, &mockDocumentService{
		replaceFunc: func(ctx context.Context, v canonical.Value) (*domain.DocumentRecord, error) {
			replaced = v
			return &domain.DocumentRecord{Data: json.RawMessage(`"ok"`)}, nil
		},
	})

	resp := api.Put("/api/json", strings.NewReader(`{"jsonData":"ok"}`))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "ok", replaced)
	assert.Equal(t, `"ok"`, string(decodeEnvelope(t, resp.Body.String()).Data))
}

func TestHealth(t *testing.T) {
	api := newDocumentAPI(t, &mockDocumentService{})

	resp := api.Get("/health")

	require.Equal(t, http.StatusOK, resp.Code)
	env := decodeEnvelope(t, resp.Body.String())
	assert.True(t, env.Success)
	assert.Equal(t, "API is healthy", env.Message)
}
