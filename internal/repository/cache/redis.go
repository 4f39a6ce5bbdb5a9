package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
)

const listKeysSet = "products:list:cache_keys"

// RedisCache caches public product payloads
type RedisCache struct {
	client    *redis.Client
	detailTTL time.Duration
	listTTL   time.Duration
}

// NewRedisCache creates a new Redis cache instance
func NewRedisCache(client *redis.Client, detailTTL, listTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    client,
		detailTTL: detailTTL,
		listTTL:   listTTL,
	}
}

func (c *RedisCache) productCacheKeysSet(productID uuid.UUID) string {
	return fmt.Sprintf("product:%s:cache_keys", productID.String())
}

// ProductKey is the cache key of a public product looked up by id
func ProductKey(productID uuid.UUID) string {
	return fmt.Sprintf("product:%s:public", productID.String())
}

// ProductSlugKey is the cache key of a public product looked up by slug
func ProductSlugKey(slug string) string {
	return fmt.Sprintf("product:slug:%s:public", slug)
}

// ListKey is the cache key of a public listing identified by name and a query hash
func ListKey(name, hash string) string {
	if hash == "" {
		return fmt.Sprintf("products:list:%s", name)
	}
	return fmt.Sprintf("products:list:%s:%s", name, hash)
}

func (c *RedisCache) get(ctx context.Context, key string, dst interface{}) error {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ErrNotFound
		}
		return err
	}
	return json.Unmarshal(val, dst)
}

// set stores value under key and tracks key in the given SET
func (c *RedisCache) set(ctx context.Context, trackingKey, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, key, data, ttl)
	pipe.SAdd(ctx, trackingKey, key)
	pipe.Expire(ctx, trackingKey, ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// GetProduct retrieves a cached public product
func (c *RedisCache) GetProduct(ctx context.Context, key string, dst interface{}) error {
	return c.get(ctx, key, dst)
}

// SetProduct stores a public product and tracks the key under the product
func (c *RedisCache) SetProduct(ctx context.Context, productID uuid.UUID, key string, value interface{}) error {
	return c.set(ctx, c.productCacheKeysSet(productID), key, value, c.detailTTL)
}

// GetList retrieves a cached public listing
func (c *RedisCache) GetList(ctx context.Context, key string, dst interface{}) error {
	return c.get(ctx, key, dst)
}

// SetList stores a public listing and tracks the key with every other listing
func (c *RedisCache) SetList(ctx context.Context, key string, value interface{}) error {
	return c.set(ctx, listKeysSet, key, value, c.listTTL)
}

// unlinkTracked removes every key tracked in trackingKey and the SET itself
func (c *RedisCache) unlinkTracked(ctx context.Context, trackingKey string) error {
	keys, err := c.client.SMembers(ctx, trackingKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	if len(keys) > 0 {
		keys = append(keys, trackingKey)
		return c.client.Unlink(ctx, keys...).Err()
	}

	return nil
}

// InvalidateProduct removes all cached entries of a product and all listings
func (c *RedisCache) InvalidateProduct(ctx context.Context, productID uuid.UUID) error {
	if err := c.unlinkTracked(ctx, c.productCacheKeysSet(productID)); err != nil {
		return err
	}
	return c.InvalidateLists(ctx)
}

// InvalidateLists removes every cached listing
func (c *RedisCache) InvalidateLists(ctx context.Context) error {
	return c.unlinkTracked(ctx, listKeysSet)
}
