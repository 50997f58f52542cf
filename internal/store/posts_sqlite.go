package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/serroba/shortlink/internal/posts"
)

// PostSQLiteStore is a SQLite implementation of posts.Repository.
type PostSQLiteStore struct {
	qb *goqu.Database
}

type postRow struct {
	ID        int64  `db:"id"         goqu:"skipinsert"`
	Title     string `db:"title"`
	Body      string `db:"body"`
	CreatedAt int64  `db:"created_at"`
}

func (r postRow) toDomain() *posts.Post {
	return &posts.Post{
		ID:        r.ID,
		Title:     r.Title,
		Body:      r.Body,
		CreatedAt: time.Unix(0, r.CreatedAt).UTC(),
	}
}

// NewPostSQLiteStore creates a new SQLite-backed post store.
func NewPostSQLiteStore(db *sql.DB) *PostSQLiteStore {
	return &PostSQLiteStore{qb: goqu.New("sqlite3", db)}
}

func (s *PostSQLiteStore) Create(ctx context.Context, post *posts.Post) error {
	res, err := s.qb.Insert("posts").
		Rows(postRow{Title: post.Title, Body: post.Body, CreatedAt: post.CreatedAt.UnixNano()}).
		Executor().
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}

	post.ID = id

	return nil
}

func (s *PostSQLiteStore) List(ctx context.Context) ([]*posts.Post, error) {
	var rows []postRow

	err := s.qb.From("posts").
		Select("id", "title", "body", "created_at").
		Order(goqu.C("id").Desc()).
		ScanStructsContext(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	result := make([]*posts.Post, len(rows))
	for i, row := range rows {
		result[i] = row.toDomain()
	}

	return result, nil
}

func (s *PostSQLiteStore) Get(ctx context.Context, id int64) (*posts.Post, error) {
	var row postRow

	found, err := s.qb.From("posts").
		Select("id", "title", "body", "created_at").
		Where(goqu.Ex{"id": id}).
		ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	if !found {
		return nil, posts.ErrNotFound
	}

	return row.toDomain(), nil
}

var _ posts.Repository = (*PostSQLiteStore)(nil)
