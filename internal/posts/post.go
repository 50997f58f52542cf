// Package posts holds the title and body posting feature.
package posts

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("post not found")

// Post is a titled piece of text.
type Post struct {
	ID        int64
	Title     string
	Body      string
	CreatedAt time.Time
}

// Repository defines the interface for post storage operations.
type Repository interface {
	// Create assigns the next id to post and stores it.
	Create(ctx context.Context, post *Post) error
	// List returns every post, newest first.
	List(ctx context.Context) ([]*Post, error)
	// Get returns a single post or ErrNotFound.
	Get(ctx context.Context, id int64) (*Post, error)
}
