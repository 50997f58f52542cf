package container

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/metrics"
	"github.com/serroba/shortlink/internal/posts"
	"github.com/serroba/shortlink/internal/shortener"
	"github.com/serroba/shortlink/internal/store"
	"go.uber.org/zap"
)

// RepositoryPackage provides the link and post repositories for the
// configured storage backend. SQL backends get the Redis lookup cache unless
// its TTL is zero. Posts live in memory for the memory and redis backends.
func RepositoryPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (shortener.Repository, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		var repo shortener.Repository

		switch opts.Storage {
		case StorageMemory:
			repo = store.NewMemoryStore()
		case StorageSQLite:
			repo = store.NewSQLiteStore(do.MustInvoke[*SQLiteDB](i).DB)
		case StoragePostgres:
			repo = store.NewPostgresStore(do.MustInvoke[*PostgresPool](i).Pool)
		case StorageRedis:
			repo = store.NewRedisStore(do.MustInvoke[*RedisClient](i).Client)
		default:
			return nil, fmt.Errorf("%w: unknown storage %q", errInvalidOptions, opts.Storage)
		}

		ttl, err := opts.CacheDuration()
		if err != nil {
			return nil, err
		}

		if ttl > 0 && (opts.Storage == StorageSQLite || opts.Storage == StoragePostgres) {
			repo = store.NewRedisCacheRepository(
				repo,
				do.MustInvoke[*RedisClient](i).Client,
				ttl,
				do.MustInvoke[*metrics.Cache](i),
			)
			logger.Info("redis lookup cache enabled", zap.Duration("ttl", ttl))
		}

		logger.Info("link storage ready", zap.String("storage", opts.Storage))

		return repo, nil
	})

	do.Provide(i, func(i *do.Injector) (posts.Repository, error) {
		opts := do.MustInvoke[*Options](i)

		switch opts.Storage {
		case StorageRedis:
			do.MustInvoke[*zap.Logger](i).Warn("redis storage has no post repository, posts are kept in memory")

			return store.NewPostMemoryStore(), nil
		case StorageSQLite:
			return store.NewPostSQLiteStore(do.MustInvoke[*SQLiteDB](i).DB), nil
		case StoragePostgres:
			return store.NewPostPostgresStore(do.MustInvoke[*PostgresPool](i).Pool), nil
		default:
			return store.NewPostMemoryStore(), nil
		}
	})
}

// MetricsPackage provides the prometheus registry and the collectors
// registered on it.
func MetricsPackage(i *do.Injector) {
	do.Provide(i, func(_ *do.Injector) (*prometheus.Registry, error) {
		return metrics.NewRegistry(), nil
	})

	do.Provide(i, func(i *do.Injector) (*metrics.Allocation, error) {
		return metrics.NewAllocation(do.MustInvoke[*prometheus.Registry](i)), nil
	})

	do.Provide(i, func(i *do.Injector) (*metrics.Cache, error) {
		return metrics.NewCache(do.MustInvoke[*prometheus.Registry](i)), nil
	})
}

// ShortenerPackage provides the allocator and resolver.
func ShortenerPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*shortener.Allocator, error) {
		opts := do.MustInvoke[*Options](i)

		generator, err := shortener.NewCodeGenerator(opts.CodeLength)
		if err != nil {
			return nil, err
		}

		return shortener.NewAllocator(
			do.MustInvoke[shortener.Repository](i),
			generator,
			opts.MaxAttempts,
			do.MustInvoke[*metrics.Allocation](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	do.Provide(i, func(i *do.Injector) (*shortener.Resolver, error) {
		return shortener.NewResolver(do.MustInvoke[shortener.Repository](i)), nil
	})
}
