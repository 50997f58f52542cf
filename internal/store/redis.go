package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlink/internal/shortener"
)

// insertLinkScript writes the link hash and its recency entry only if the
// code key does not exist yet. Scripts run atomically on the server.
var insertLinkScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('HSET', KEYS[1], 'code', ARGV[1], 'target', ARGV[2], 'created_at', ARGV[3])
local seq = redis.call('INCR', KEYS[3])
redis.call('ZADD', KEYS[2], seq, ARGV[1])
return 1
`)

// RedisStore is a Redis implementation of shortener.Repository.
type RedisStore struct {
	client   *redis.Client
	prefix   string // "link:" for code->link hashes
	indexKey string // sorted set of codes scored by insertion sequence
	seqKey   string
}

// NewRedisStore creates a new Redis-backed link store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:   client,
		prefix:   "link:",
		indexKey: "links:recent",
		seqKey:   "links:seq",
	}
}

func (r *RedisStore) TryInsert(ctx context.Context, link *shortener.Link) (bool, error) {
	keys := []string{r.prefix + string(link.Code), r.indexKey, r.seqKey}

	inserted, err := insertLinkScript.Run(ctx, r.client, keys,
		string(link.Code),
		link.Target,
		link.CreatedAt.UnixNano(),
	).Int()
	if err != nil {
		return false, unavailable("insert link", err)
	}

	return inserted == 1, nil
}

func (r *RedisStore) Lookup(ctx context.Context, code shortener.Code) (*shortener.Link, error) {
	result, err := r.client.HGetAll(ctx, r.prefix+string(code)).Result()
	if err != nil {
		return nil, unavailable("lookup link", err)
	}

	if len(result) == 0 {
		return nil, shortener.ErrNotFound
	}

	return linkFromHash(result), nil
}

func (r *RedisStore) Recent(ctx context.Context, limit int) ([]*shortener.Link, error) {
	limit = shortener.ClampLimit(limit)
	if limit == 0 {
		return []*shortener.Link{}, nil
	}

	codes, err := r.client.ZRevRange(ctx, r.indexKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, unavailable("list recent links", err)
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(codes))

	for i, code := range codes {
		cmds[i] = pipe.HGetAll(ctx, r.prefix+code)
	}

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, unavailable("list recent links", err)
	}

	links := make([]*shortener.Link, 0, len(cmds))

	for _, cmd := range cmds {
		if fields := cmd.Val(); len(fields) > 0 {
			links = append(links, linkFromHash(fields))
		}
	}

	return links, nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func linkFromHash(fields map[string]string) *shortener.Link {
	var createdAt time.Time

	if ts, ok := fields["created_at"]; ok {
		if nanos, err := strconv.ParseInt(ts, 10, 64); err == nil {
			createdAt = time.Unix(0, nanos).UTC()
		}
	}

	return &shortener.Link{
		Code:      shortener.Code(fields["code"]),
		Target:    fields["target"],
		CreatedAt: createdAt,
	}
}

var _ shortener.Repository = (*RedisStore)(nil)
