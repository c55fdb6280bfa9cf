package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/sagar-developer08/tree-json/core/domain"
)

// RegisterHealthRoute registers GET /health, the liveness check the editing
// session uses to report whether the document API is connected.
func RegisterHealthRoute(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, func(ctx context.Context, _ *struct{}) (*EnvelopeOutput, error) {
		return &EnvelopeOutput{Body: domain.Envelope{Success: true, Message: "API is healthy"}}, nil
	})
}
