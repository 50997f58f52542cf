package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlink/internal/posts"
)

// PostPostgresStore is a PostgreSQL implementation of posts.Repository.
type PostPostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostPostgresStore creates a new PostgreSQL-backed post store.
func NewPostPostgresStore(pool *pgxpool.Pool) *PostPostgresStore {
	return &PostPostgresStore{pool: pool}
}

func (p *PostPostgresStore) Create(ctx context.Context, post *posts.Post) error {
	query := `
		INSERT INTO posts (title, body, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := p.pool.QueryRow(ctx, query, post.Title, post.Body, post.CreatedAt).Scan(&post.ID); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}

	return nil
}

func (p *PostPostgresStore) List(ctx context.Context) ([]*posts.Post, error) {
	query := `
		SELECT id, title, body, created_at
		FROM posts
		ORDER BY id DESC
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*posts.Post, error) {
		var post posts.Post
		err := row.Scan(&post.ID, &post.Title, &post.Body, &post.CreatedAt)

		return &post, err
	})
}

func (p *PostPostgresStore) Get(ctx context.Context, id int64) (*posts.Post, error) {
	query := `
		SELECT id, title, body, created_at
		FROM posts
		WHERE id = $1
	`

	var post posts.Post

	err := p.pool.QueryRow(ctx, query, id).Scan(&post.ID, &post.Title, &post.Body, &post.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, posts.ErrNotFound
		}

		return nil, fmt.Errorf("get post: %w", err)
	}

	return &post, nil
}

var _ posts.Repository = (*PostPostgresStore)(nil)
