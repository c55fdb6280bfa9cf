package editor

import (
	"context"
	"fmt"
	"io"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/sagar-developer08/tree-json/core/canonical"
	"github.com/sagar-developer08/tree-json/core/domain"
	coreerrors "github.com/sagar-developer08/tree-json/core/errors"
	"github.com/sagar-developer08/tree-json/core/remote"
	"github.com/sagar-developer08/tree-json/pkg/featureflags"
)

const msgFetchURLFailed = "Failed to fetch document from URL!"

// FetchURL loads raw JSON from an arbitrary URL and installs it, pretty
// printed, as a JSON document. Any failure clears the document.
func (s *Store) FetchURL(ctx context.Context, rawURL string) error {
	version := s.beginLoad()

	value, err := s.fetchJSON(ctx, rawURL)
	var text []byte
	if err == nil {
		text, err = canonical.MarshalIndent(value)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Version != version {
		s.logger.Debug("Discarding URL fetch result", map[string]interface{}{"url": rawURL})
		return &coreerrors.StaleResultError{Op: "fetch_url"}
	}

	if err != nil {
		s.clearLocked()
		s.notifier.Error(msgFetchURLFailed)
		s.logger.Warn("Failed to fetch document from URL", map[string]interface{}{
			"url":   rawURL,
			"error": err.Error(),
		})
		return &coreerrors.FetchURLError{URL: rawURL, Err: err}
	}

	return s.setContentsLocked(ctx, string(text), setConfig{hasChanges: true, format: domain.FormatJSON})
}

func (s *Store) fetchJSON(ctx context.Context, rawURL string) (canonical.Value, error) {
	if s.http == nil {
		return nil, fmt.Errorf("no HTTP client configured")
	}

	resp, err := s.http.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, fmt.Errorf("server returned %d", resp.StatusCode())
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body(), s.opts.FetchLimit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > s.opts.FetchLimit {
		return nil, fmt.Errorf("document exceeds %d bytes", s.opts.FetchLimit)
	}
	return canonical.ParseJSON(body)
}

// CheckEditorSession populates the initial document. In order: a query value
// that is an absolute URL is fetched; otherwise the remote document is loaded;
// otherwise a persisted draft is restored (never in widgets); otherwise the
// built-in default is installed. Failures fall through to the next step and
// only the URL branch reports an error.
func (s *Store) CheckEditorSession(ctx context.Context, query string, widget bool) error {
	if query != "" && s.session != nil {
		s.session.SetURLDriven(true)
	}
	if s.session != nil {
		s.session.SetEmbedded(s.opts.Embedded || widget)
	}

	if isURL(query) {
		return s.FetchURL(ctx, query)
	}

	if s.opts.RemotePolicy == LocalEditsWin {
		if s.HasChanges() {
			s.logger.Debug("Keeping unsaved local edits", nil)
			return nil
		}
		if s.restoreDraft(ctx, widget) {
			return nil
		}
	}

	if s.loadRemote(ctx) {
		return nil
	}

	if s.opts.RemotePolicy == RemoteWins && s.restoreDraft(ctx, widget) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.setContentsLocked(ctx, s.opts.DefaultContent, setConfig{hasChanges: false, format: domain.FormatJSON}); err != nil {
		s.logger.Error("Built-in document failed to load", map[string]interface{}{"error": err.Error()})
	}
	return nil
}

// loadRemote installs the remote document if one is available.
func (s *Store) loadRemote(ctx context.Context) bool {
	if s.api == nil || !s.flags.IsEnabled(ctx, featureflags.RemoteSync) {
		return false
	}

	version := s.beginLoad()
	env, err := s.api.Get(ctx)
	if err != nil || !env.HasData() {
		s.abortLoad(version)
		s.logger.Debug("Remote document unavailable, using fallback data", map[string]interface{}{
			"error": env.Failure(),
		})
		return false
	}

	value, err := remote.Data(env)
	var text []byte
	if err == nil {
		text, err = canonical.MarshalIndent(value)
	}
	if err != nil {
		s.abortLoad(version)
		s.logger.Debug("Remote document unreadable, using fallback data", map[string]interface{}{
			"error": err.Error(),
		})
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Version != version {
		// the user started editing while the request was in flight
		s.logger.Debug("Discarding remote document", nil)
		return true
	}
	_ = s.setContentsLocked(ctx, string(text), setConfig{hasChanges: false, format: domain.FormatJSON})
	return true
}

// restoreDraft installs the persisted draft, if there is one.
func (s *Store) restoreDraft(ctx context.Context, widget bool) bool {
	if s.session == nil || widget || s.opts.Embedded {
		return false
	}
	snapshot, ok := s.session.Load(ctx)
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.setContentsLocked(ctx, snapshot.Content, setConfig{hasChanges: false, format: snapshot.Format})
	return true
}

// isURL accepts absolute http(s) URLs only.
func isURL(value string) bool {
	if value == "" {
		return false
	}
	if err := validation.Validate(value, is.RequestURL); err != nil {
		return false
	}
	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
