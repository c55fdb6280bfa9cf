// ABOUTME: Session persistence adapter keeping the working draft across reloads
// ABOUTME: Writes are opportunistic and never fail the caller

package session

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/sagar-developer08/tree-json/core/domain"
	"github.com/sagar-developer08/tree-json/core/interfaces"
	"github.com/sagar-developer08/tree-json/pkg/featureflags"
)

// MaxContentLength is the size ceiling, in characters, above which drafts are
// not persisted.
const MaxContentLength = 80000

// DefaultTTL bounds how long an abandoned session's draft is kept.
const DefaultTTL = 24 * time.Hour

const (
	contentKey = "content"
	formatKey  = "format"
)

// Outcome reports what Save did.
type Outcome int

const (
	// Saved means content and format were written
	Saved Outcome = iota
	// SkippedSize means the content reached MaxContentLength
	SkippedSize
	// SkippedContext means the session is embedded or was loaded from a URL
	SkippedContext
	// SkippedDisabled means session persistence is switched off
	SkippedDisabled
	// Failed means the storage backend rejected the write
	Failed
)

// String implements fmt.Stringer
func (o Outcome) String() string {
	switch o {
	case Saved:
		return "saved"
	case SkippedSize:
		return "skipped_size"
	case SkippedContext:
		return "skipped_context"
	case SkippedDisabled:
		return "skipped_disabled"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is a persisted draft.
type Snapshot struct {
	Content string
	Format  domain.Format
}

// Options configures an Adapter.
type Options struct {
	// SessionID scopes the keys; a random ID is used when empty
	SessionID string

	// TTL of persisted entries; DefaultTTL when zero
	TTL time.Duration

	// MaxLength overrides MaxContentLength when positive
	MaxLength int

	// Flags gates writes on SessionPersistence; all writes allowed when nil
	Flags featureflags.Manager
}

// Adapter persists the draft of one editing session in a cache.
type Adapter struct {
	cache     interfaces.Cache
	logger    interfaces.Logger
	flags     featureflags.Manager
	sessionID string
	ttl       time.Duration
	maxLength int

	embedded  atomic.Bool
	urlDriven atomic.Bool
}

// NewAdapter creates a session adapter over cache.
func NewAdapter(cache interfaces.Cache, logger interfaces.Logger, opts Options) *Adapter {
	if opts.SessionID == "" {
		opts.SessionID = uuid.NewString()
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.MaxLength <= 0 {
		opts.MaxLength = MaxContentLength
	}

	return &Adapter{
		cache:     cache,
		logger:    logger,
		flags:     opts.Flags,
		sessionID: opts.SessionID,
		ttl:       opts.TTL,
		maxLength: opts.MaxLength,
	}
}

// SessionID returns the ID the adapter's keys are scoped by.
func (a *Adapter) SessionID() string {
	return a.sessionID
}

// SetEmbedded marks the session as running inside a host page.
func (a *Adapter) SetEmbedded(embedded bool) {
	a.embedded.Store(embedded)
}

// SetURLDriven marks the session as populated from a URL parameter.
func (a *Adapter) SetURLDriven(urlDriven bool) {
	a.urlDriven.Store(urlDriven)
}

// Save writes content and format unless a skip rule applies.
func (a *Adapter) Save(ctx context.Context, content string, format domain.Format) Outcome {
	outcome := a.save(ctx, content, format)
	if outcome != Saved {
		a.logger.Debug("Session draft not persisted", map[string]interface{}{
			"session_id": a.sessionID,
			"outcome":    outcome.String(),
			"length":     len(content),
		})
	}
	return outcome
}

func (a *Adapter) save(ctx context.Context, content string, format domain.Format) Outcome {
	if a.flags != nil && !a.flags.IsEnabled(ctx, featureflags.SessionPersistence) {
		return SkippedDisabled
	}
	if a.embedded.Load() || a.urlDriven.Load() {
		return SkippedContext
	}
	if utf8.RuneCountInString(content) >= a.maxLength {
		return SkippedSize
	}

	if err := a.cache.Set(ctx, a.key(contentKey), []byte(content), a.ttl); err != nil {
		a.warn("Failed to persist session content", err)
		return Failed
	}
	if err := a.cache.Set(ctx, a.key(formatKey), []byte(format), a.ttl); err != nil {
		a.warn("Failed to persist session format", err)
		return Failed
	}
	return Saved
}

// Load returns the persisted draft, if any. A missing or unknown format
// defaults to JSON.
func (a *Adapter) Load(ctx context.Context) (Snapshot, bool) {
	content, err := a.cache.Get(ctx, a.key(contentKey))
	if err != nil {
		if !errors.Is(err, interfaces.ErrCacheMiss) {
			a.warn("Failed to read session content", err)
		}
		return Snapshot{}, false
	}
	if len(content) == 0 {
		return Snapshot{}, false
	}

	snapshot := Snapshot{Content: string(content), Format: domain.FormatJSON}
	raw, err := a.cache.Get(ctx, a.key(formatKey))
	switch {
	case err == nil:
		if f, parseErr := domain.ParseFormat(string(raw)); parseErr == nil {
			snapshot.Format = f
		}
	case !errors.Is(err, interfaces.ErrCacheMiss):
		a.warn("Failed to read session format", err)
	}
	return snapshot, true
}

// Clear removes the persisted draft.
func (a *Adapter) Clear(ctx context.Context) {
	for _, name := range []string{contentKey, formatKey} {
		if err := a.cache.Delete(ctx, a.key(name)); err != nil && !errors.Is(err, interfaces.ErrCacheMiss) {
			a.warn("Failed to clear session entry", err)
		}
	}
}

func (a *Adapter) key(name string) string {
	return a.sessionID + ":" + name
}

func (a *Adapter) warn(msg string, err error) {
	a.logger.Warn(msg, map[string]interface{}{
		"session_id": a.sessionID,
		"error":      err.Error(),
	})
}
