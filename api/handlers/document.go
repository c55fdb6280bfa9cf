// ABOUTME: Document handlers for the Huma API
// ABOUTME: Get, merge, replace and clear the single JSON document behind /api/json

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/sagar-developer08/tree-json/core/canonical"
	"github.com/sagar-developer08/tree-json/core/domain"
	"github.com/sagar-developer08/tree-json/core/errors"
	"github.com/sagar-developer08/tree-json/core/interfaces"
)

// DocumentService interface defines the methods needed from the document service
type DocumentService interface {
	Get(ctx context.Context) (canonical.Value, *domain.DocumentRecord, error)
	Replace(ctx context.Context, v canonical.Value) (*domain.DocumentRecord, error)
	Merge(ctx context.Context, patch canonical.Value) (*domain.DocumentRecord, error)
	Clear(ctx context.Context) error
}

// DocumentHandler handles document-related HTTP requests
type DocumentHandler struct {
	service DocumentService
	logger  interfaces.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(service DocumentService, logger interfaces.Logger) *DocumentHandler {
	return &DocumentHandler{service: service, logger: logger}
}

// RegisterRoutes registers all document routes
func (h *DocumentHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getDocument",
		Method:      http.MethodGet,
		Path:        "/api/json",
		Summary:     "Get the stored document",
		Description: "Returns the stored JSON document, or null data when nothing is stored",
		Tags:        []string{"Document"},
	}, h.GetDocument)

	huma.Register(api, huma.Operation{
		OperationID: "mergeDocument",
		Method:      http.MethodPost,
		Path:        "/api/json",
		Summary:     "Merge into the stored document",
		Description: "Applies jsonData to the stored document as a JSON merge patch",
		Tags:        []string{"Document"},
	}, h.MergeDocument)

	huma.Register(api, huma.Operation{
		OperationID: "replaceDocument",
		Method:      http.MethodPut,
		Path:        "/api/json",
		Summary:     "Replace the stored document",
		Description: "Stores jsonData as the whole document",
		Tags:        []string{"Document"},
	}, h.ReplaceDocument)

	huma.Register(api, huma.Operation{
		OperationID: "clearDocument",
		Method:      http.MethodDelete,
		Path:        "/api/json",
		Summary:     "Clear the stored document",
		Tags:        []string{"Document"},
	}, h.ClearDocument)
}

// DocumentWriteInput carries the raw `{"jsonData": ...}` body. It is parsed
// by hand so key order of the document survives.
type DocumentWriteInput struct {
	RawBody []byte `contentType:"application/json"`
}

// EnvelopeOutput is the response of every document operation
type EnvelopeOutput struct {
	Body domain.Envelope
}

// GetDocument handles GET /api/json
func (h *DocumentHandler) GetDocument(ctx context.Context, _ *struct{}) (*EnvelopeOutput, error) {
	v, record, err := h.service.Get(ctx)
	if err != nil {
		h.logFailure("get", err)
		return nil, toHumaError(err)
	}

	data, err := canonical.Marshal(v)
	if err != nil {
		h.logFailure("get", err)
		return nil, toHumaError(err)
	}

	out := &EnvelopeOutput{Body: domain.Envelope{Success: true, Data: data}}
	if record == nil {
		out.Body.Message = "No document stored"
	}
	return out, nil
}

// MergeDocument handles POST /api/json
func (h *DocumentHandler) MergeDocument(ctx context.Context, input *DocumentWriteInput) (*EnvelopeOutput, error) {
	return h.write(ctx, "merge", input, h.service.Merge, "JSON data merged successfully")
}

// ReplaceDocument handles PUT /api/json
func (h *DocumentHandler) ReplaceDocument(ctx context.Context, input *DocumentWriteInput) (*EnvelopeOutput, error) {
	return h.write(ctx, "replace", input, h.service.Replace, "JSON data saved successfully")
}

// ClearDocument handles DELETE /api/json
func (h *DocumentHandler) ClearDocument(ctx context.Context, _ *struct{}) (*EnvelopeOutput, error) {
	if err := h.service.Clear(ctx); err != nil {
		h.logFailure("clear", err)
		return nil, toHumaError(err)
	}
	return &EnvelopeOutput{Body: domain.Envelope{Success: true, Message: "JSON data cleared successfully"}}, nil
}

func (h *DocumentHandler) write(
	ctx context.Context,
	op string,
	input *DocumentWriteInput,
	apply func(context.Context, canonical.Value) (*domain.DocumentRecord, error),
	success string,
) (*EnvelopeOutput, error) {
	payload, err := jsonDataField(input.RawBody)
	if err != nil {
		return nil, toHumaError(err)
	}

	record, err := apply(ctx, payload)
	if err != nil {
		h.logFailure(op, err)
		return nil, toHumaError(err)
	}
	return &EnvelopeOutput{Body: domain.Envelope{Success: true, Data: record.Data, Message: success}}, nil
}

// jsonDataField extracts the jsonData member of a request body.
func jsonDataField(body []byte) (canonical.Value, error) {
	if len(body) == 0 {
		return nil, &errors.ValidationError{Field: "jsonData", Message: "jsonData is required"}
	}
	v, err := canonical.ParseJSON(body)
	if err != nil {
		return nil, &errors.ValidationError{Field: "body", Message: "request body must be valid JSON"}
	}
	obj, ok := v.(*canonical.Object)
	if !ok {
		return nil, &errors.ValidationError{Field: "body", Message: "request body must be a JSON object"}
	}
	payload, ok := obj.Get("jsonData")
	if !ok || payload == nil {
		return nil, &errors.ValidationError{Field: "jsonData", Message: "jsonData is required"}
	}
	return payload, nil
}

func (h *DocumentHandler) logFailure(op string, err error) {
	if h.logger == nil {
		return
	}
	fields := map[string]interface{}{"operation": op, "error": err.Error()}
	if errors.IsValidation(err) {
		h.logger.Warn("Document request rejected", fields)
		return
	}
	h.logger.Error("Document request failed", fields)
}
