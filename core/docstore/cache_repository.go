package docstore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sagar-developer08/tree-json/core/domain"
	"github.com/sagar-developer08/tree-json/core/interfaces"
)

// DefaultKey is the cache key the document is stored under.
const DefaultKey = "document:current"

// CacheRepository keeps the document record in any interfaces.Cache.
type CacheRepository struct {
	cache interfaces.Cache
	key   string
}

// NewCacheRepository creates a repository; an empty key uses DefaultKey.
func NewCacheRepository(cache interfaces.Cache, key string) *CacheRepository {
	if key == "" {
		key = DefaultKey
	}
	return &CacheRepository{cache: cache, key: key}
}

// Load implements interfaces.DocumentRepository
func (r *CacheRepository) Load(ctx context.Context) (*domain.DocumentRecord, error) {
	data, err := r.cache.Get(ctx, r.key)
	if errors.Is(err, interfaces.ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var record domain.DocumentRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Save implements interfaces.DocumentRepository. Records never expire.
func (r *CacheRepository) Save(ctx context.Context, record *domain.DocumentRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return r.cache.Set(ctx, r.key, data, 0)
}

// Delete implements interfaces.DocumentRepository
func (r *CacheRepository) Delete(ctx context.Context) error {
	return r.cache.Delete(ctx, r.key)
}
