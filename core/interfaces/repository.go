package interfaces

import (
	"context"

	"github.com/sagar-developer08/tree-json/core/domain"
)

// DocumentRepository stores the single document served by the document API.
type DocumentRepository interface {
	// Load returns the stored record, or nil when nothing is stored.
	Load(ctx context.Context) (*domain.DocumentRecord, error)

	// Save replaces the stored record.
	Save(ctx context.Context, record *domain.DocumentRecord) error

	// Delete removes the stored record. Deleting nothing is not an error.
	Delete(ctx context.Context) error
}
