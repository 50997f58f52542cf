package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlink/internal/shortener"
)

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
// Uniqueness of codes is enforced by the links_code_key constraint. Recency
// follows the serial id, not created_at, which comes from the caller's clock.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed link store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) TryInsert(ctx context.Context, link *shortener.Link) (bool, error) {
	query := `
		INSERT INTO links (code, target, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO NOTHING
	`

	tag, err := p.pool.Exec(ctx, query, string(link.Code), link.Target, link.CreatedAt)
	if err != nil {
		return false, unavailable("insert link", err)
	}

	return tag.RowsAffected() == 1, nil
}

func (p *PostgresStore) Lookup(ctx context.Context, code shortener.Code) (*shortener.Link, error) {
	query := `
		SELECT code, target, created_at
		FROM links
		WHERE code = $1
	`

	var link shortener.Link

	err := p.pool.QueryRow(ctx, query, string(code)).Scan(
		&link.Code,
		&link.Target,
		&link.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, unavailable("lookup link", err)
	}

	return &link, nil
}

func (p *PostgresStore) Recent(ctx context.Context, limit int) ([]*shortener.Link, error) {
	limit = shortener.ClampLimit(limit)
	if limit == 0 {
		return []*shortener.Link{}, nil
	}

	query := `
		SELECT code, target, created_at
		FROM links
		ORDER BY id DESC
		LIMIT $1
	`

	rows, err := p.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, unavailable("list recent links", err)
	}

	links, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*shortener.Link, error) {
		var link shortener.Link
		err := row.Scan(&link.Code, &link.Target, &link.CreatedAt)

		return &link, err
	})
	if err != nil {
		return nil, unavailable("scan recent links", err)
	}

	return links, nil
}

func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

var _ shortener.Repository = (*PostgresStore)(nil)
