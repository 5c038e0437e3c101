package memory

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const DefaultIdempotencyTTL = 10 * time.Minute

// IdempotencyStore remembers the reply produced for a request key.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, reply string) error
}

type CacheIdempotencyStore struct {
	cache *cache.Cache
}

func NewCacheIdempotencyStore(ttl time.Duration) *CacheIdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &CacheIdempotencyStore{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (s *CacheIdempotencyStore) Get(_ context.Context, key string) (string, bool, error) {
	if x, found := s.cache.Get(key); found {
		return x.(string), true, nil
	}
	return "", false, nil
}

func (s *CacheIdempotencyStore) Set(_ context.Context, key, reply string) error {
	s.cache.Set(key, reply, cache.DefaultExpiration)
	return nil
}

// RedisIdempotencyStore shares remembered replies across instances.
type RedisIdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisIdempotencyStore(client *redis.Client, ttl time.Duration) *RedisIdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &RedisIdempotencyStore{
		client: client,
		ttl:    ttl,
		prefix: "cassie:idempotency:",
	}
}

func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisIdempotencyStore) Set(ctx context.Context, key, reply string) error {
	return s.client.Set(ctx, s.prefix+key, reply, s.ttl).Err()
}
