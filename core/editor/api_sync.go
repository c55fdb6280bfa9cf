// ABOUTME: Explicit user-triggered synchronisation with the remote document API
// ABOUTME: Every outcome is surfaced as a notification and returned as a typed error

package editor

import (
	"context"
	"strings"

	"github.com/sagar-developer08/tree-json/core/canonical"
	"github.com/sagar-developer08/tree-json/core/domain"
	coreerrors "github.com/sagar-developer08/tree-json/core/errors"
	"github.com/sagar-developer08/tree-json/core/remote"
	"github.com/sagar-developer08/tree-json/pkg/featureflags"
)

const (
	msgLoadSuccess    = "JSON data loaded from API successfully!"
	msgLoadFailed     = "Failed to load data from API"
	msgConnectFailed  = "Failed to connect to API"
	msgSaveSuccess    = "JSON data saved to API successfully!"
	msgSaveFailed     = "Failed to save data to API"
	msgNothingToSave  = "No data to save"
	msgMergeSuccess   = "JSON data merged into API successfully!"
	msgClearSuccess   = "JSON data cleared from API"
	msgNoAPIAvailable = "No API configured"
)

// LoadFromAPI replaces the buffer with the remote document as an unmodified
// JSON load.
func (s *Store) LoadFromAPI(ctx context.Context) error {
	if s.api == nil {
		s.notifier.Error(msgNoAPIAvailable)
		return &coreerrors.ValidationError{Field: "api", Message: "no document API configured"}
	}

	version := s.beginLoad()
	env, err := s.api.Get(ctx)
	if err != nil {
		s.abortLoad(version)
		s.notifyRemoteFailure(env, err, msgLoadFailed)
		return err
	}
	if !env.HasData() {
		s.abortLoad(version)
		s.notifier.Error(failureText(env, msgLoadFailed))
		return &coreerrors.RemoteAPIError{StatusCode: env.StatusCode, Message: failureText(env, msgLoadFailed)}
	}

	value, err := remote.Data(env)
	var text []byte
	if err == nil {
		text, err = canonical.MarshalIndent(value)
	}
	if err != nil {
		s.abortLoad(version)
		s.notifier.Error(msgLoadFailed)
		return &coreerrors.RemoteAPIError{StatusCode: env.StatusCode, Message: err.Error()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Version != version {
		s.logger.Debug("Discarding remote document loaded during an edit", nil)
		return &coreerrors.StaleResultError{Op: "load_from_api"}
	}
	if err := s.setContentsLocked(ctx, string(text), setConfig{hasChanges: false, format: domain.FormatJSON}); err != nil {
		s.notifier.Error(msgLoadFailed)
		return err
	}
	s.notifier.Success(msgLoadSuccess)
	return nil
}

// SaveToAPI replaces the remote document with the buffer using PUT, so keys
// missing from the buffer are dropped remotely. Clients that expect the older
// POST save, which merges, should call MergeToAPI instead. Contents that are
// empty or do not parse under the declared format are rejected before any
// request is made. The change flag is cleared only if nothing was edited
// while the request was in flight.
func (s *Store) SaveToAPI(ctx context.Context) error {
	return s.push(ctx, "save_to_api", DocumentAPI.Replace, msgSaveSuccess)
}

// MergeToAPI merge-patches the buffer into the remote document.
func (s *Store) MergeToAPI(ctx context.Context) error {
	return s.push(ctx, "merge_to_api", DocumentAPI.Merge, msgMergeSuccess)
}

type pushFunc func(api DocumentAPI, ctx context.Context, v canonical.Value) (domain.Envelope, error)

func (s *Store) push(ctx context.Context, op string, send pushFunc, success string) error {
	if s.api == nil {
		s.notifier.Error(msgNoAPIAvailable)
		return &coreerrors.ValidationError{Field: "api", Message: "no document API configured"}
	}

	s.mu.Lock()
	contents, format, version := s.state.Contents, s.state.Format, s.state.Version
	s.mu.Unlock()

	if strings.TrimSpace(contents) == "" {
		s.notifier.Error(msgNothingToSave)
		return &coreerrors.ValidationError{Field: "contents", Message: "no data to save"}
	}

	value, err := s.converter.ToCanonical(contents, format)
	if err != nil {
		s.notifier.Error(msgSaveFailed)
		s.logger.Error("API save error", map[string]interface{}{
			"op":    op,
			"error": err.Error(),
		})
		return err
	}

	env, err := send(s.api, ctx, value)
	if err != nil {
		s.notifyRemoteFailure(env, err, msgSaveFailed)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Version != version {
		// the save succeeded but covers an older buffer
		s.notifier.Success(success)
		return &coreerrors.StaleResultError{Op: op}
	}
	s.state.HasChanges = false
	s.notifier.Success(success)
	return nil
}

// ClearRemote deletes the remote document. The local buffer is untouched.
func (s *Store) ClearRemote(ctx context.Context) error {
	if s.api == nil {
		s.notifier.Error(msgNoAPIAvailable)
		return &coreerrors.ValidationError{Field: "api", Message: "no document API configured"}
	}

	env, err := s.api.Clear(ctx)
	if err != nil {
		s.notifyRemoteFailure(env, err, "Failed to clear JSON data")
		return err
	}
	s.notifier.Success(msgClearSuccess)
	return nil
}

// IsAPIConnected probes the remote health endpoint. It never fails; any
// problem reads as not connected.
func (s *Store) IsAPIConnected(ctx context.Context) bool {
	if s.api == nil || !s.flags.IsEnabled(ctx, featureflags.RemoteSync) {
		return false
	}
	env, err := s.api.Health(ctx)
	if err != nil {
		s.logger.Debug("Document API health check failed", map[string]interface{}{"error": err.Error()})
		return false
	}
	return env.Success
}

// notifyRemoteFailure distinguishes an unreachable API from one that answered
// with an error.
func (s *Store) notifyRemoteFailure(env domain.Envelope, err error, fallback string) {
	if coreerrors.IsNetwork(err) {
		s.notifier.Error(msgConnectFailed)
		s.logger.Error("API request failed", map[string]interface{}{"error": err.Error()})
		return
	}
	s.notifier.Error(failureText(env, fallback))
}

func failureText(env domain.Envelope, fallback string) string {
	if msg := env.Failure(); msg != "" {
		return msg
	}
	return fallback
}
