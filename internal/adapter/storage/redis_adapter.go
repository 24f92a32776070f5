package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/galaxyshop/shop/internal/core/domain"
)

const (
	productKeyPrefix     = "product:id:"
	productSlugKeyPrefix = "product:slug:"
	productCacheTTL      = 10 * time.Minute
)

// RedisProductCache keeps JSON copies of products keyed by both id and
// slug. Entries expire on their own; catalog writes invalidate eagerly.
type RedisProductCache struct {
	client *redis.Client
}

func NewRedisProductCache(client *redis.Client) *RedisProductCache {
	return &RedisProductCache{client: client}
}

func (r *RedisProductCache) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.get(ctx, productKeyPrefix+id)
}

func (r *RedisProductCache) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return r.get(ctx, productSlugKeyPrefix+slug)
}

func (r *RedisProductCache) get(ctx context.Context, key string) (*domain.Product, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var p domain.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &p, nil
}

func (r *RedisProductCache) Set(ctx context.Context, p domain.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, productKeyPrefix+p.ID, data, productCacheTTL)
	pipe.Set(ctx, productSlugKeyPrefix+p.Slug, data, productCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (r *RedisProductCache) Invalidate(ctx context.Context, id, slug string) error {
	if err := r.client.Del(ctx, productKeyPrefix+id, productSlugKeyPrefix+slug).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
