// Package cache wraps the redis client behind a small interface so
// handlers and tests do not depend on a live server.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the subset of redis commands the flash channel needs.
// ttl <= 0 means no expiry.
type Cache interface {
	GetDel(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd
	Close() error
}

// FakeCache implements Cache for tests. Calls without a configured Fn panic.
type FakeCache struct {
	GetDelFn func(ctx context.Context, key string) *redis.StringCmd
	SetFn    func(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd
	CloseFn  func() error
}

func (f *FakeCache) GetDel(ctx context.Context, key string) *redis.StringCmd {
	if f.GetDelFn != nil {
		return f.GetDelFn(ctx, key)
	}
	panic("unexpected GetDel")
}

func (f *FakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	if f.SetFn != nil {
		return f.SetFn(ctx, key, value, ttl)
	}
	panic("unexpected Set")
}

func (f *FakeCache) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}
