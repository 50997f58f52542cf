package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlink/internal/shortener"
)

// CacheObserver is told about cache hits and misses.
type CacheObserver interface {
	Hit()
	Miss()
}

type nopCacheObserver struct{}

func (nopCacheObserver) Hit()  {}
func (nopCacheObserver) Miss() {}

// RedisCacheRepository wraps a Repository with Redis caching for lookups.
// Links never change after insertion, so cached entries cannot go stale.
type RedisCacheRepository struct {
	store    shortener.Repository
	client   *redis.Client
	prefix   string
	ttl      time.Duration
	observer CacheObserver
}

// NewRedisCacheRepository creates a new Redis-cached repository decorator.
func NewRedisCacheRepository(
	store shortener.Repository, client *redis.Client, ttl time.Duration, observer CacheObserver,
) *RedisCacheRepository {
	if observer == nil {
		observer = nopCacheObserver{}
	}

	return &RedisCacheRepository{
		store:    store,
		client:   client,
		prefix:   "cache:link:",
		ttl:      ttl,
		observer: observer,
	}
}

// TryInsert stores the link in the underlying store and caches it on success.
func (r *RedisCacheRepository) TryInsert(ctx context.Context, link *shortener.Link) (bool, error) {
	inserted, err := r.store.TryInsert(ctx, link)
	if err != nil || !inserted {
		return inserted, err
	}

	// Write-through: update cache after successful insert
	r.cacheLink(ctx, link)

	return true, nil
}

// Lookup retrieves a link by its code, checking cache first.
func (r *RedisCacheRepository) Lookup(ctx context.Context, code shortener.Code) (*shortener.Link, error) {
	if link, err := r.getFromCache(ctx, code); err == nil {
		r.observer.Hit()

		return link, nil
	}

	r.observer.Miss()

	link, err := r.store.Lookup(ctx, code)
	if err != nil {
		return nil, err
	}

	r.cacheLink(ctx, link)

	return link, nil
}

// Recent always reads from the underlying store.
func (r *RedisCacheRepository) Recent(ctx context.Context, limit int) ([]*shortener.Link, error) {
	return r.store.Recent(ctx, limit)
}

// Ping checks the underlying store; cache outages only degrade to misses.
func (r *RedisCacheRepository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}

func (r *RedisCacheRepository) getFromCache(ctx context.Context, code shortener.Code) (*shortener.Link, error) {
	result, err := r.client.HGetAll(ctx, r.prefix+string(code)).Result()
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, shortener.ErrNotFound
	}

	return linkFromHash(result), nil
}

func (r *RedisCacheRepository) cacheLink(ctx context.Context, link *shortener.Link) {
	pipe := r.client.Pipeline()
	key := r.prefix + string(link.Code)

	pipe.HSet(ctx, key, map[string]interface{}{
		"code":       string(link.Code),
		"target":     link.Target,
		"created_at": link.CreatedAt.UnixNano(),
	})

	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}

	_, _ = pipe.Exec(ctx)
}

// Compile-time check.
var _ shortener.Repository = (*RedisCacheRepository)(nil)
