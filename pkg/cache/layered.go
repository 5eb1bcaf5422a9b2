package cache

import (
	"context"
	"errors"
	"time"
)

// LayeredCache reads through a fast local layer before the shared one and
// back-fills the local layer on remote hits.
type LayeredCache struct {
	local  Service
	remote Service
}

func NewLayeredCache(local, remote Service) *LayeredCache {
	return &LayeredCache{local: local, remote: remote}
}

func (c *LayeredCache) Get(ctx context.Context, key string) ([]byte, error) {
	if b, err := c.local.Get(ctx, key); err == nil {
		return b, nil
	}
	b, err := c.remote.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	_ = c.local.Set(ctx, key, b, time.Minute)
	return b, nil
}

func (c *LayeredCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	lerr := c.local.Set(ctx, key, value, ttl)
	rerr := c.remote.Set(ctx, key, value, ttl)
	return errors.Join(lerr, rerr)
}

func (c *LayeredCache) Delete(ctx context.Context, key string) error {
	lerr := c.local.Delete(ctx, key)
	rerr := c.remote.Delete(ctx, key)
	return errors.Join(lerr, rerr)
}

func (c *LayeredCache) Close() error {
	return errors.Join(c.local.Close(), c.remote.Close())
}
