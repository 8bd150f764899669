// Package cache keeps a short-lived copy of the public listing in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/suryaansh001/shayari-backend/internal/shayari"
)

const (
	publicListKey = "shayari:list:public"
	// publicGenKey is bumped on every invalidation. A listing read before
	// the bump is never written back.
	publicGenKey = "shayari:list:public:gen"
)

var (
	// ErrMiss is returned by GetPublic when nothing is cached.
	ErrMiss = errors.New("cache miss")
	// ErrStale is returned by SetPublic when the listing was invalidated
	// after the caller took its generation.
	ErrStale = errors.New("cached listing is stale")
)

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New wraps an existing client. A non-positive ttl disables caching writes.
func New(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) GetPublic(ctx context.Context) ([]*shayari.Shayari, error) {
	raw, err := c.client.Get(ctx, publicListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var out []*shayari.Shayari
	if err := json.Unmarshal(raw, &out); err != nil {
		// drop the corrupt entry so the next read repopulates it
		_ = c.client.Del(ctx, publicListKey).Err()
		return nil, fmt.Errorf("decode cached listing: %w", err)
	}
	for _, s := range out {
		s.Normalize()
	}
	return out, nil
}

// PublicGeneration returns the current invalidation generation. Take it
// before reading the store and hand it to SetPublic.
func (c *RedisCache) PublicGeneration(ctx context.Context) (int64, error) {
	return generation(ctx, c.client)
}

// SetPublic stores list only if no invalidation happened since gen was read.
func (c *RedisCache) SetPublic(ctx context.Context, gen int64, list []*shayari.Shayari) error {
	if c.ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode listing: %w", err)
	}
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := generation(ctx, tx)
		if err != nil {
			return err
		}
		if cur != gen {
			return ErrStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, publicListKey, raw, c.ttl)
			return nil
		})
		return err
	}, publicGenKey)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrStale
	}
	return err
}

// InvalidatePublic bumps the generation and drops the cached listing in one
// transaction.
func (c *RedisCache) InvalidatePublic(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, publicGenKey)
		pipe.Del(ctx, publicListKey)
		return nil
	})
	return err
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func generation(ctx context.Context, cmd getter) (int64, error) {
	gen, err := cmd.Get(ctx, publicGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation: %w", err)
	}
	return gen, nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
