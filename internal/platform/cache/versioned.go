package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Versioned caches JSON payloads under a shared version counter. Bumping the
// version orphans every cached key at once, which is how mutation paths
// invalidate aggregates without tracking individual keys.
type Versioned struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	group  singleflight.Group
}

// NewVersioned instantiates the cache helper. A nil client degrades to
// loader-only behavior, which tests rely on.
func NewVersioned(client *redis.Client, prefix string, ttl time.Duration) *Versioned {
	return &Versioned{client: client, prefix: prefix, ttl: ttl}
}

func (c *Versioned) versionKey() string { return c.prefix + ":version" }

func (c *Versioned) version(ctx context.Context) (int64, error) {
	ver, err := c.client.Get(ctx, c.versionKey()).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.Set(ctx, c.versionKey(), 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// FetchJSON loads a cached value or populates it using the loader. Concurrent
// cold-cache calls for the same key collapse into one loader invocation.
func (c *Versioned) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}
	if c == nil || c.client == nil {
		value, err := loader(ctx)
		if err != nil {
			return err
		}
		return roundTrip(value, dest)
	}

	ver, err := c.version(ctx)
	if err != nil {
		return err
	}
	fullKey := fmt.Sprintf("%s:%s:%d", c.prefix, key, ver)

	payload, err, _ := c.group.Do(fullKey, func() (any, error) {
		raw, err := c.client.Get(ctx, fullKey).Bytes()
		if err == nil {
			return raw, nil
		}
		if !errors.Is(err, redis.Nil) {
			return nil, err
		}
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		raw, err = json.Marshal(value)
		if err != nil {
			return nil, err
		}
		if err := c.client.Set(ctx, fullKey, raw, c.ttl).Err(); err != nil {
			return nil, err
		}
		return raw, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(payload.([]byte), dest)
}

// Bump invalidates every cached key by incrementing the shared version.
func (c *Versioned) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, c.versionKey()).Err()
}

func roundTrip(value, dest any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}
