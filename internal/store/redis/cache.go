// Package redis caches rendered public pages so repeat visitors skip the
// database and template work. The cache is optional: a nil *PageCache is a
// valid no-op.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(ctx context.Context, addr, password string, db int, ttl time.Duration) (*PageCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis.New: ping: %w", err)
	}

	return &PageCache{client: client, ttl: ttl}, nil
}

func (c *PageCache) Close() error {
	if c == nil {
		return nil
	}
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("redis.PageCache.Close: %w", err)
	}
	return nil
}

// Key builds a cache key for a rendered page. The company slug is the first
// segment so invalidation can sweep one company's pages.
func Key(companySlug string, parts ...string) string {
	k := "page:" + companySlug
	for _, p := range parts {
		k += ":" + p
	}
	return k
}

// Get returns the cached payload, or found=false on a miss. Errors other
// than a miss are returned so callers can log and fall through to a fresh
// render.
func (c *PageCache) Get(ctx context.Context, key string) (payload []byte, found bool, err error) {
	if c == nil {
		return nil, false, nil
	}

	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis.PageCache.Get: %w", err)
	}

	return val, true, nil
}

// Set stores a rendered page under the configured TTL.
func (c *PageCache) Set(ctx context.Context, key string, payload []byte) error {
	if c == nil {
		return nil
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis.PageCache.Set: %w", err)
	}
	return nil
}

// CompanyPattern matches every cached page belonging to one company and no
// other. The separator before the wildcard keeps "acme" from sweeping
// "acmecorp".
func CompanyPattern(companySlug string) string {
	return Key(companySlug) + ":*"
}

// InvalidateCompany drops every cached page for one company plus the
// sitemap, which enumerates all companies.
func (c *PageCache) InvalidateCompany(ctx context.Context, companySlug string) error {
	if c == nil {
		return nil
	}

	var keys []string
	iter := c.client.Scan(ctx, 0, CompanyPattern(companySlug), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis.PageCache.InvalidateCompany: scan: %w", err)
	}

	keys = append(keys, SitemapKey)

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis.PageCache.InvalidateCompany: del: %w", err)
	}
	return nil
}

// SitemapKey caches the rendered sitemap, which spans all companies.
const SitemapKey = "page:sitemap"
