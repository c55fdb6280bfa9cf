// ABOUTME: Editing kit assembling a complete editing session from defaults and options
// ABOUTME: Offers one constructor for embedding the editing core without wiring every collaborator

package editorkit

import (
	"context"
	"io"
	"time"

	"github.com/sagar-developer08/tree-json/core/convert"
	"github.com/sagar-developer08/tree-json/core/editor"
	"github.com/sagar-developer08/tree-json/core/errors"
	"github.com/sagar-developer08/tree-json/core/interfaces"
	"github.com/sagar-developer08/tree-json/core/propagate"
	"github.com/sagar-developer08/tree-json/core/remote"
	"github.com/sagar-developer08/tree-json/core/session"
	"github.com/sagar-developer08/tree-json/pkg/featureflags"
)

// Session is an editing session: the content state store plus the
// collaborators it was built with.
type Session struct {
	*editor.Store

	// Drafts persists the buffer between runs; nil when persistence is off
	Drafts *session.Adapter

	// Remote is the document API client; nil when no API is configured
	Remote *remote.Client

	config Config
}

// Config holds everything NewSession assembles a session from
type Config struct {
	Cache      interfaces.Cache
	HTTPClient interfaces.HTTPClient
	Logger     interfaces.Logger
	Renderer   interfaces.Renderer
	Notifier   interfaces.Notifier
	Flags      featureflags.Manager

	// APIBaseURL of the document API; empty disables remote sync
	APIBaseURL string

	DebounceWindow time.Duration
	RequestTimeout time.Duration

	// PersistDrafts enables the session adapter over Cache
	PersistDrafts    bool
	SessionID        string
	SessionTTL       time.Duration
	MaxContentLength int

	RemotePolicy   editor.RemotePolicy
	Embedded       bool
	DefaultContent string
	FetchLimit     int64
}

// NewSession creates a session with the given options
func NewSession(options ...Option) (*Session, error) {
	cfg := defaultConfig()
	for _, opt := range options {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if err := fillDefaults(&cfg); err != nil {
		return nil, err
	}

	deps := interfaces.Dependencies{
		Cache:      cfg.Cache,
		HTTPClient: cfg.HTTPClient,
		Logger:     cfg.Logger,
		Renderer:   cfg.Renderer,
		Notifier:   cfg.Notifier,
	}

	s := &Session{config: cfg}
	components := editor.Components{
		Converter:  convert.NewPipeline(),
		Propagator: propagate.NewDebouncer(cfg.Renderer, cfg.Logger, cfg.DebounceWindow),
		Flags:      cfg.Flags,
	}

	if cfg.PersistDrafts {
		s.Drafts = session.NewAdapter(cfg.Cache, cfg.Logger, session.Options{
			SessionID: cfg.SessionID,
			TTL:       cfg.SessionTTL,
			MaxLength: cfg.MaxContentLength,
			Flags:     cfg.Flags,
		})
		components.Session = s.Drafts
	}

	if cfg.APIBaseURL != "" {
		s.Remote = remote.NewClient(cfg.APIBaseURL, cfg.HTTPClient, cfg.Logger)
		components.API = s.Remote
	}

	s.Store = editor.NewStore(deps, components, editor.Options{
		RemotePolicy:   cfg.RemotePolicy,
		Embedded:       cfg.Embedded,
		DefaultContent: cfg.DefaultContent,
		FetchLimit:     cfg.FetchLimit,
	})

	cfg.Logger.Debug("Editing session created", map[string]interface{}{
		"remote":        cfg.APIBaseURL,
		"persist":       cfg.PersistDrafts,
		"session_id":    s.SessionID(),
		"remote_policy": cfg.RemotePolicy.String(),
	})
	return s, nil
}

// SessionID returns the ID drafts are stored under, empty when persistence is off
func (s *Session) SessionID() string {
	if s.Drafts == nil {
		return ""
	}
	return s.Drafts.SessionID()
}

// Logger returns the session's logger
func (s *Session) Logger() interfaces.Logger {
	return s.config.Logger
}

// Start runs the session check: URL query, remote document, persisted draft,
// built-in default, in the order the remote policy prescribes.
func (s *Session) Start(ctx context.Context, query string, widget bool) error {
	return s.CheckEditorSession(ctx, query, widget)
}

// Close flushes the pending render and closes the cache when it holds
// resources (sqlite, redis).
func (s *Session) Close() error {
	s.Store.Close()
	if closer, ok := s.config.Cache.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func fillDefaults(cfg *Config) error {
	if cfg.Logger == nil {
		cfg.Logger = DefaultLogger()
	}
	if cfg.Cache == nil {
		cfg.Cache = DefaultMemoryCache()
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = DefaultHTTPClient(cfg.RequestTimeout, cfg.Logger)
	}
	if cfg.Renderer == nil {
		cfg.Renderer = DefaultRenderer()
	}
	if cfg.Notifier == nil {
		cfg.Notifier = DefaultNotifier(cfg.Logger)
	}
	if cfg.Flags == nil {
		cfg.Flags = featureflags.NewEnvManager("")
	}
	if cfg.DebounceWindow <= 0 {
		return &errors.ValidationError{Field: "debounce_window", Message: "must be positive"}
	}
	return nil
}
