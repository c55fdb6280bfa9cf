// Package core contains the business logic of the tree-json editing core.
// It is framework-agnostic and can be used independently of any web
// framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - canonical: ordered canonical JSON value, equality, merge patch
// - convert: format conversion pipeline (JSON, YAML, TOML, XML, CSV)
// - domain: Document, ContentState, Format, Envelope, Status
// - editor: the content state store of one editing session
// - propagate: debounced delivery of canonical values to the renderer
// - session: draft persistence across reloads
// - remote: client of the document API
// - docstore: server side of the document API
// - errors: custom error types for better error handling
// - interfaces: contracts for external dependencies (cache, HTTP, logger, renderer, notifier)
//
// # Design Principles
//
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,
//	    HTTPClient: myHTTPClient,
//	    Logger:     myLogger,
//	    Renderer:   myRenderer,
//	    Notifier:   myNotifier,
//	}
//
//	store := editor.NewStore(deps, editor.Components{
//	    API: remote.NewClient("http://localhost:8000", myHTTPClient, myLogger),
//	}, editor.Options{})
//	defer store.Close()
//
//	err := store.CheckEditorSession(ctx, "", false)
//	err = store.SetFormat(ctx, domain.FormatYAML)
package core
