package editor

import (
	"context"
	"strings"

	"github.com/sagar-developer08/tree-json/core/domain"
	coreerrors "github.com/sagar-developer08/tree-json/core/errors"
	"github.com/sagar-developer08/tree-json/pkg/featureflags"
)

type setConfig struct {
	hasChanges bool
	skipUpdate bool
	format     domain.Format
}

// SetOption adjusts a SetContents call.
type SetOption func(*setConfig)

// WithHasChanges sets the change flag recorded with the new contents. The
// default is true.
func WithHasChanges(hasChanges bool) SetOption {
	return func(c *setConfig) {
		c.hasChanges = hasChanges
	}
}

// SkipUpdate drops propagation for this call when live transform is disabled.
func SkipUpdate() SetOption {
	return func(c *setConfig) {
		c.skipUpdate = true
	}
}

// WithFormat changes the declared format together with the contents.
func WithFormat(format domain.Format) SetOption {
	return func(c *setConfig) {
		c.format = format
	}
}

// SetContents installs contents and re-derives the canonical value. Empty
// contents leave the buffer unchanged and only apply the options.
//
// A conversion failure is stored as the state's error and also returned; the
// buffer keeps the unparsable text so the user can fix it.
func (s *Store) SetContents(ctx context.Context, contents string, opts ...SetOption) error {
	cfg := setConfig{hasChanges: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.format != "" && !cfg.format.IsValid() {
		return &coreerrors.ValidationError{Field: "format", Message: "unsupported format " + string(cfg.format)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setContentsLocked(ctx, contents, cfg)
}

func (s *Store) setContentsLocked(ctx context.Context, contents string, cfg setConfig) error {
	if contents != "" {
		s.state.Contents = contents
	}
	if cfg.format != "" {
		s.state.Format = cfg.format
	}
	s.state.Error = ""
	s.state.HasChanges = cfg.hasChanges
	s.state.Version++

	if strings.TrimSpace(s.state.Contents) == "" {
		s.state.Status = domain.StatusEmpty
		s.propagator.Cancel()
		s.renderer.SetCanonicalContent("")
		s.renderer.SetLoading(false)
		return nil
	}

	value, err := s.converter.ToCanonical(s.state.Contents, s.state.Format)
	if err != nil {
		s.state.Error = errorDetail(err)
		s.state.Status = domain.StatusError
		s.propagator.Cancel()
		s.renderer.SetLoading(false)
		s.logger.Debug("Contents do not parse under declared format", map[string]interface{}{
			"format": string(s.state.Format),
			"error":  err.Error(),
		})
		return err
	}
	s.state.Status = domain.StatusReady

	if cfg.skipUpdate && !s.flags.IsEnabled(ctx, featureflags.LiveTransform) {
		return nil
	}

	if s.state.HasChanges && contents != "" && s.session != nil {
		s.session.Save(ctx, contents, s.state.Format)
	}

	s.propagator.Schedule(value)
	return nil
}

// SetFormat re-expresses the buffer in format. The switch is all or nothing:
// if the buffer cannot be converted the document is cleared.
func (s *Store) SetFormat(ctx context.Context, format domain.Format) error {
	if !format.IsValid() {
		return &coreerrors.ValidationError{Field: "format", Message: "unsupported format " + string(format)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.state.Format
	s.state.Format = format

	if strings.TrimSpace(s.state.Contents) == "" {
		s.state.Version++
		return nil
	}

	text, err := s.reformatLocked(previous, format)
	if err != nil {
		s.clearLocked()
		s.logger.Warn("The content was unable to be converted, so it was cleared instead", map[string]interface{}{
			"from":  string(previous),
			"to":    string(format),
			"error": err.Error(),
		})
		return err
	}
	// some targets render an empty document, e.g. [] as CSV
	s.state.Contents = text
	return s.setContentsLocked(ctx, text, setConfig{hasChanges: true})
}

func (s *Store) reformatLocked(from, to domain.Format) (string, error) {
	value, err := s.converter.ToCanonical(s.state.Contents, from)
	if err != nil {
		return "", err
	}
	return s.converter.FromCanonical(value, to)
}

// SetFile installs a document as a fresh, unmodified load.
func (s *Store) SetFile(ctx context.Context, doc domain.Document) error {
	format := doc.Format
	if format == "" {
		format = domain.FormatJSON
	}
	if !format.IsValid() {
		return &coreerrors.ValidationError{Field: "format", Message: "unsupported format " + string(format)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	installed := doc
	installed.Format = format
	s.state.File = &installed
	return s.setContentsLocked(ctx, doc.Content, setConfig{hasChanges: false, format: format})
}

// errorDetail prefers a located snippet over the plain message.
func errorDetail(err error) string {
	if convErr, ok := coreerrors.AsConversion(err); ok {
		return convErr.Detail()
	}
	return err.Error()
}
