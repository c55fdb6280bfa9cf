// ABOUTME: Document service holds the single JSON document served by the document API
// ABOUTME: Provides get, replace, merge-patch and clear with a revision counter

package docstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sagar-developer08/tree-json/core/canonical"
	"github.com/sagar-developer08/tree-json/core/domain"
	"github.com/sagar-developer08/tree-json/core/errors"
	"github.com/sagar-developer08/tree-json/core/interfaces"
)

// Service handles document operations
type Service struct {
	repo   interfaces.DocumentRepository
	logger interfaces.Logger
	now    func() time.Time

	// serialises read-modify-write cycles
	mu sync.Mutex
}

// NewService creates a new document service instance
func NewService(repo interfaces.DocumentRepository, logger interfaces.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Get returns the stored document, or a nil value and record when there is none.
func (s *Service) Get(ctx context.Context) (canonical.Value, *domain.DocumentRecord, error) {
	record, err := s.repo.Load(ctx)
	if err != nil {
		return nil, nil, errors.WrapError(err, "failed to load document")
	}
	if record == nil {
		return nil, nil, nil
	}

	v, err := canonical.ParseJSON(record.Data)
	if err != nil {
		s.logger.Error("Stored document is not valid JSON", map[string]interface{}{
			"id":    record.ID,
			"error": err.Error(),
		})
		return nil, nil, errors.WrapError(err, "stored document is corrupt")
	}
	return v, record, nil
}

// Replace stores v as the whole document.
func (s *Service) Replace(ctx context.Context, v canonical.Value) (*domain.DocumentRecord, error) {
	if v == nil {
		return nil, &errors.ValidationError{Field: "jsonData", Message: "jsonData is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.Load(ctx)
	if err != nil {
		return nil, errors.WrapError(err, "failed to load document")
	}
	return s.store(ctx, current, v)
}

// Merge applies v to the stored document as a JSON merge patch. With nothing
// stored the patch is applied to an empty object.
func (s *Service) Merge(ctx context.Context, patch canonical.Value) (*domain.DocumentRecord, error) {
	if patch == nil {
		return nil, &errors.ValidationError{Field: "jsonData", Message: "jsonData is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.Load(ctx)
	if err != nil {
		return nil, errors.WrapError(err, "failed to load document")
	}

	var target canonical.Value = canonical.NewObject()
	if current != nil {
		target, err = canonical.ParseJSON(current.Data)
		if err != nil {
			return nil, errors.WrapError(err, "stored document is corrupt")
		}
	}
	return s.store(ctx, current, canonical.MergePatch(target, patch))
}

// Clear removes the stored document.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx); err != nil {
		return errors.WrapError(err, "failed to clear document")
	}
	s.logger.Info("Document cleared", nil)
	return nil
}

func (s *Service) store(ctx context.Context, current *domain.DocumentRecord, v canonical.Value) (*domain.DocumentRecord, error) {
	data, err := canonical.Marshal(v)
	if err != nil {
		return nil, &errors.ValidationError{Field: "jsonData", Message: err.Error()}
	}

	record := &domain.DocumentRecord{
		ID:        uuid.NewString(),
		Revision:  1,
		Data:      data,
		UpdatedAt: s.now(),
	}
	if current != nil {
		record.ID = current.ID
		record.Revision = current.Revision + 1
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, errors.WrapError(err, "failed to save document")
	}

	s.logger.Info("Document stored", map[string]interface{}{
		"id":       record.ID,
		"revision": record.Revision,
		"bytes":    len(data),
	})
	return record, nil
}
