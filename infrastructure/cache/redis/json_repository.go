package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nitishm/go-rejson/v4"
	"github.com/redis/go-redis/v9"

	"github.com/sagar-developer08/tree-json/core/domain"
)

// JSONRepository stores the document record as a RedisJSON value so it can be
// inspected with JSON.GET from outside the service. Requires the RedisJSON module.
type JSONRepository struct {
	handler *rejson.Handler
	key     string
}

// NewJSONRepository creates a repository on an existing connection
func NewJSONRepository(client *redis.Client, key string) *JSONRepository {
	handler := rejson.NewReJSONHandler()
	handler.SetGoRedisClient(client)
	return &JSONRepository{handler: handler, key: key}
}

// Load implements interfaces.DocumentRepository
func (r *JSONRepository) Load(ctx context.Context) (*domain.DocumentRecord, error) {
	val, err := r.handler.JSONGet(r.key, ".")
	if errors.Is(err, redis.Nil) || (err == nil && val == nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	raw, ok := val.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected JSON.GET reply %T", val)
	}

	var record domain.DocumentRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Save implements interfaces.DocumentRepository
func (r *JSONRepository) Save(ctx context.Context, record *domain.DocumentRecord) error {
	_, err := r.handler.JSONSet(r.key, ".", record)
	return err
}

// Delete implements interfaces.DocumentRepository
func (r *JSONRepository) Delete(ctx context.Context) error {
	_, err := r.handler.JSONDel(r.key, ".")
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}
