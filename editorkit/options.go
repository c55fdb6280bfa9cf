// ABOUTME: Configuration options for the editing kit
// ABOUTME: Provides functional options pattern for flexible session configuration

package editorkit

import (
	"net/url"
	"time"

	"github.com/sagar-developer08/tree-json/core/editor"
	"github.com/sagar-developer08/tree-json/core/errors"
	"github.com/sagar-developer08/tree-json/core/interfaces"
	"github.com/sagar-developer08/tree-json/core/propagate"
	"github.com/sagar-developer08/tree-json/core/session"
	"github.com/sagar-developer08/tree-json/pkg/config"
	"github.com/sagar-developer08/tree-json/pkg/featureflags"
)

// Option is a functional option for configuring the session
type Option func(*Config) error

// WithCache sets the cache drafts are persisted in
func WithCache(cache interfaces.Cache) Option {
	return func(c *Config) error {
		c.Cache = cache
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(c *Config) error {
		c.HTTPClient = client
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithRenderer sets the renderer canonical content is delivered to
func WithRenderer(renderer interfaces.Renderer) Option {
	return func(c *Config) error {
		c.Renderer = renderer
		return nil
	}
}

// WithNotifier sets the notification surface
func WithNotifier(notifier interfaces.Notifier) Option {
	return func(c *Config) error {
		c.Notifier = notifier
		return nil
	}
}

// WithFlags sets the feature flag manager
func WithFlags(flags featureflags.Manager) Option {
	return func(c *Config) error {
		c.Flags = flags
		return nil
	}
}

// WithAPI sets the document API base URL
func WithAPI(baseURL string) Option {
	return func(c *Config) error {
		u, err := url.Parse(baseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return &errors.ValidationError{Field: "api_base_url", Message: "must be an absolute http(s) URL"}
		}
		c.APIBaseURL = baseURL
		return nil
	}
}

// WithoutAPI disables remote sync
func WithoutAPI() Option {
	return func(c *Config) error {
		c.APIBaseURL = ""
		return nil
	}
}

// WithDebounceWindow sets the quiet period before the renderer is updated
func WithDebounceWindow(window time.Duration) Option {
	return func(c *Config) error {
		if window <= 0 {
			return &errors.ValidationError{Field: "debounce_window", Message: "must be positive"}
		}
		c.DebounceWindow = window
		return nil
	}
}

// WithRequestTimeout bounds requests made by the default HTTP client
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		c.RequestTimeout = timeout
		return nil
	}
}

// WithDraftPersistence enables or disables persisting drafts in the cache
func WithDraftPersistence(enabled bool) Option {
	return func(c *Config) error {
		c.PersistDrafts = enabled
		return nil
	}
}

// WithSessionID scopes persisted drafts; reuse an ID to restore a draft in a later run
func WithSessionID(id string) Option {
	return func(c *Config) error {
		c.SessionID = id
		return nil
	}
}

// WithSessionTTL sets how long drafts are kept
func WithSessionTTL(ttl time.Duration) Option {
	return func(c *Config) error {
		c.SessionTTL = ttl
		return nil
	}
}

// WithMaxContentLength sets the draft size at which persistence is skipped
func WithMaxContentLength(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return &errors.ValidationError{Field: "max_content_length", Message: "must be positive"}
		}
		c.MaxContentLength = n
		return nil
	}
}

// WithRemotePolicy sets whether a remote document may replace local work
func WithRemotePolicy(policy editor.RemotePolicy) Option {
	return func(c *Config) error {
		c.RemotePolicy = policy
		return nil
	}
}

// WithEmbedded marks the session as running inside a host page
func WithEmbedded(embedded bool) Option {
	return func(c *Config) error {
		c.Embedded = embedded
		return nil
	}
}

// WithDefaultContent replaces the built-in sample document
func WithDefaultContent(json string) Option {
	return func(c *Config) error {
		c.DefaultContent = json
		return nil
	}
}

// WithFetchLimit caps documents fetched from a URL, in bytes
func WithFetchLimit(limit int64) Option {
	return func(c *Config) error {
		c.FetchLimit = limit
		return nil
	}
}

// FromConfig translates application configuration into options. The cache and
// logger are not opened here; see OpenCache and NewLogger.
func FromConfig(cfg *config.Config) ([]Option, error) {
	policy, err := editor.ParseRemotePolicy(cfg.Editor.RemotePolicy)
	if err != nil {
		return nil, &errors.ValidationError{Field: "remote_policy", Message: err.Error()}
	}

	return []Option{
		WithAPI(cfg.Editor.APIBaseURL),
		WithDebounceWindow(cfg.Editor.DebounceWindow),
		WithRequestTimeout(cfg.Editor.RequestTimeout),
		WithMaxContentLength(cfg.Editor.MaxContentLength),
		WithRemotePolicy(policy),
		WithEmbedded(cfg.Editor.Embedded),
		WithFetchLimit(cfg.Editor.FetchLimit),
		WithDraftPersistence(true),
		WithSessionID(cfg.Session.ID),
		WithSessionTTL(cfg.Session.TTL),
	}, nil
}

// defaultConfig returns the default session configuration
func defaultConfig() Config {
	return Config{
		DebounceWindow:   propagate.DefaultWindow,
		RequestTimeout:   30 * time.Second,
		PersistDrafts:    true,
		SessionTTL:       session.DefaultTTL,
		MaxContentLength: session.MaxContentLength,
		RemotePolicy:     editor.RemoteWins,
	}
}
