// ABOUTME: Document domain model is the remotely owned record an editing session may load
// ABOUTME: The editing core only ever holds a partial projection of one Document

package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Document is the persisted entity owned by the remote store.
type Document struct {
	ID         string    `json:"id"`
	Views      int       `json:"views"`
	OwnerEmail string    `json:"owner_email"`
	Name       string    `json:"name"`
	Content    string    `json:"content"`
	Private    bool      `json:"private"`
	Format     Format    `json:"format"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewDocument creates a document with a fresh ID. An empty format defaults to JSON.
func NewDocument(name, content string, format Format) (*Document, error) {
	if name == "" {
		return nil, errors.New("name cannot be empty")
	}
	if format == "" {
		format = FormatJSON
	}
	if !format.IsValid() {
		return nil, errors.New("format must be one of json, yaml, csv, xml, toml")
	}

	now := time.Now().UTC()
	return &Document{
		ID:        uuid.New().String(),
		Name:      name,
		Content:   content,
		Format:    format,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Touch records a modification.
func (d *Document) Touch() {
	d.UpdatedAt = time.Now().UTC()
}
