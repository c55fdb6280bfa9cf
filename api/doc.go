// Package api provides the HTTP layer of the reference document API, the
// remote store an editing session loads from and saves to. It uses Huma for
// OpenAPI documentation and chi for routing.
//
// Routes:
//
//	GET    /api/json   {success, data}           the stored document, null when empty
//	POST   /api/json   {jsonData} -> {success}   JSON merge patch into the document
//	PUT    /api/json   {jsonData} -> {success}   replace the document
//	DELETE /api/json   {success, message}        clear the document
//	GET    /health     {success, message}
//
// Failures use the same envelope, {"success": false, "error": "..."}, with a
// matching HTTP status; handlers.NewEnvelopeError replaces Huma's default
// problem+json error model.
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  100,
//	    RateWindow: time.Minute,
//	})
//	api.RegisterRoutes(humaAPI, docstore.NewService(repo, logger), logger)
//	http.ListenAndServe(":8000", router)
package api
