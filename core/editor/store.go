// ABOUTME: Content State Store owning one editing session's buffer, format and derived state
// ABOUTME: All mutations go through the store; asynchronous tails are version-checked before applying

package editor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sagar-developer08/tree-json/core/canonical"
	"github.com/sagar-developer08/tree-json/core/convert"
	"github.com/sagar-developer08/tree-json/core/domain"
	"github.com/sagar-developer08/tree-json/core/interfaces"
	"github.com/sagar-developer08/tree-json/core/propagate"
	"github.com/sagar-developer08/tree-json/core/session"
	"github.com/sagar-developer08/tree-json/pkg/featureflags"
)

// Converter parses and renders text in any supported format.
type Converter interface {
	ToCanonical(text string, format domain.Format) (canonical.Value, error)
	FromCanonical(v canonical.Value, format domain.Format) (string, error)
}

// Propagator forwards canonical values to the renderer.
type Propagator interface {
	Schedule(v canonical.Value)
	Cancel() bool
	Flush() bool
}

// SessionStore persists the draft across reloads.
type SessionStore interface {
	Save(ctx context.Context, content string, format domain.Format) session.Outcome
	Load(ctx context.Context) (session.Snapshot, bool)
	SetEmbedded(embedded bool)
	SetURLDriven(urlDriven bool)
}

// DocumentAPI is the remote document the session may load from and save to.
type DocumentAPI interface {
	Get(ctx context.Context) (domain.Envelope, error)
	Replace(ctx context.Context, v canonical.Value) (domain.Envelope, error)
	Merge(ctx context.Context, v canonical.Value) (domain.Envelope, error)
	Clear(ctx context.Context) (domain.Envelope, error)
	Health(ctx context.Context) (domain.Envelope, error)
}

// Components are the store's collaborators beyond the shared dependencies.
// Converter, Propagator and Flags fall back to defaults when nil; a nil
// Session disables persistence and a nil API disables remote sync.
type Components struct {
	Converter  Converter
	Propagator Propagator
	Session    SessionStore
	API        DocumentAPI
	Flags      featureflags.Manager
}

// RemotePolicy decides whether a remote document may replace local work
// during the session check.
type RemotePolicy int

const (
	// RemoteWins loads the remote document first whenever it is available
	RemoteWins RemotePolicy = iota
	// LocalEditsWin keeps unsaved edits and prefers a persisted draft over the remote document
	LocalEditsWin
)

// String implements fmt.Stringer
func (p RemotePolicy) String() string {
	switch p {
	case RemoteWins:
		return "remote_wins"
	case LocalEditsWin:
		return "local_edits_win"
	default:
		return "unknown"
	}
}

// ParseRemotePolicy reads a policy name as written in configuration.
func ParseRemotePolicy(s string) (RemotePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "remote_wins":
		return RemoteWins, nil
	case "local_edits_win":
		return LocalEditsWin, nil
	default:
		return RemoteWins, fmt.Errorf("unknown remote policy %q", s)
	}
}

// Options tunes store behaviour.
type Options struct {
	RemotePolicy RemotePolicy

	// Embedded marks the session as running inside a host page; drafts are
	// never persisted and never restored.
	Embedded bool

	// DefaultContent replaces the built-in sample document (JSON).
	DefaultContent string

	// FetchLimit caps the size of documents fetched from a URL.
	FetchLimit int64
}

const defaultFetchLimit = 16 << 20

// Store is the authoritative state of one editing session.
//
// Renderer, notifier and session calls may happen while the store's lock is
// held, so those collaborators must not call back into the store.
type Store struct {
	converter  Converter
	propagator Propagator
	session    SessionStore
	api        DocumentAPI
	flags      featureflags.Manager
	http       interfaces.HTTPClient
	renderer   interfaces.Renderer
	notifier   interfaces.Notifier
	logger     interfaces.Logger
	opts       Options

	mu    sync.Mutex
	state domain.ContentState
}

// NewStore creates an empty store.
func NewStore(deps interfaces.Dependencies, components Components, opts Options) *Store {
	if components.Converter == nil {
		components.Converter = convert.NewPipeline()
	}
	if components.Propagator == nil {
		components.Propagator = propagate.NewDebouncer(deps.Renderer, deps.Logger, propagate.DefaultWindow)
	}
	if components.Flags == nil {
		components.Flags = featureflags.NewDefaultManager()
	}
	if opts.DefaultContent == "" {
		opts.DefaultContent = defaultDocument
	}
	if opts.FetchLimit <= 0 {
		opts.FetchLimit = defaultFetchLimit
	}
	if components.Session != nil {
		components.Session.SetEmbedded(opts.Embedded)
	}

	return &Store{
		converter:  components.Converter,
		propagator: components.Propagator,
		session:    components.Session,
		api:        components.API,
		flags:      components.Flags,
		http:       deps.HTTPClient,
		renderer:   deps.Renderer,
		notifier:   deps.Notifier,
		logger:     deps.Logger,
		opts:       opts,
		state: domain.ContentState{
			Format: domain.FormatJSON,
			Status: domain.StatusEmpty,
		},
	}
}

// Contents returns the raw buffer.
func (s *Store) Contents() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Contents
}

// Format returns the buffer's declared format.
func (s *Store) Format() domain.Format {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Format
}

// HasChanges reports whether local edits diverge from the last loaded baseline.
func (s *Store) HasChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.HasChanges
}

// File returns a copy of the document last installed with SetFile.
func (s *Store) File() *domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.File == nil {
		return nil
	}
	doc := *s.state.File
	return &doc
}

// Snapshot returns a copy of the whole state.
func (s *Store) Snapshot() domain.ContentState {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.state
	if s.state.File != nil {
		doc := *s.state.File
		snapshot.File = &doc
	}
	return snapshot
}


// SetError overrides the error detail.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Error = msg
	s.settleStatusLocked()
}

// SetHasChanges overrides the change flag.
func (s *Store) SetHasChanges(hasChanges bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.HasChanges = hasChanges
}

// SetSchema attaches a validation schema; nil detaches it.
func (s *Store) SetSchema(schema interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Schema = schema
}

// Clear empties the buffer and the renderer. The format is kept.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Store) clearLocked() {
	s.state.Contents = ""
	s.state.Error = ""
	s.state.Status = domain.StatusEmpty
	s.state.Version++

	s.propagator.Cancel()
	s.renderer.SetCanonicalContent("")
	s.renderer.SetLoading(false)
}

// Close delivers any pending propagation.
func (s *Store) Close() {
	s.propagator.Flush()
}

// settleStatusLocked derives the resting status from the buffer and error.
func (s *Store) settleStatusLocked() {
	switch {
	case strings.TrimSpace(s.state.Contents) == "":
		s.state.Status = domain.StatusEmpty
	case s.state.Error != "":
		s.state.Status = domain.StatusError
	default:
		s.state.Status = domain.StatusReady
	}
}

// beginLoad marks a network load as in flight and returns the version the
// result must still match.
func (s *Store) beginLoad() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Status = domain.StatusLoading
	return s.state.Version
}

// abortLoad restores the resting status after a failed load, unless the
// state moved on in the meantime.
func (s *Store) abortLoad(version uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Version == version {
		s.settleStatusLocked()
	}
}
