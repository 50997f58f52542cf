package container

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/migrations"
	"github.com/serroba/shortlink/internal/store"
	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// RedisClient owns the shared Redis connection.
type RedisClient struct {
	*redis.Client
}

func (c *RedisClient) Shutdown() error {
	return c.Close()
}

// PostgresPool owns the shared connection pool.
type PostgresPool struct {
	*pgxpool.Pool
}

func (p *PostgresPool) Shutdown() error {
	p.Close()

	return nil
}

// SQLiteDB owns the SQLite handle.
type SQLiteDB struct {
	*sql.DB
}

func (d *SQLiteDB) Shutdown() error {
	return d.Close()
}

// RedisPackage provides *RedisClient. Nothing connects until first use.
func RedisPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*RedisClient, error) {
		opts := do.MustInvoke[*Options](i)

		return &RedisClient{Client: redis.NewClient(&redis.Options{Addr: opts.RedisAddr})}, nil
	})
}

// PostgresPackage provides a migrated *PostgresPool.
func PostgresPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*PostgresPool, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		if err := migrations.UpPostgres(opts.DatabaseURL); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		pool, err := pgxpool.New(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()

			return nil, fmt.Errorf("ping postgres: %w", err)
		}

		logger.Info("postgres ready")

		return &PostgresPool{Pool: pool}, nil
	})
}

// SQLitePackage provides a migrated *SQLiteDB.
func SQLitePackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*SQLiteDB, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		db, err := store.OpenSQLite(ctx, opts.SQLitePath)
		if err != nil {
			return nil, err
		}

		if err := migrations.UpSQLite(db); err != nil {
			_ = db.Close()

			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}

		logger.Info("sqlite ready", zap.String("path", opts.SQLitePath))

		return &SQLiteDB{DB: db}, nil
	})
}
