package store

import (
	"context"
	"sync"

	"github.com/serroba/shortlink/internal/posts"
)

// PostMemoryStore is an in-memory implementation of posts.Repository.
type PostMemoryStore struct {
	mu     sync.RWMutex
	posts  []posts.Post
	nextID int64
}

// NewPostMemoryStore creates a new in-memory post store.
func NewPostMemoryStore() *PostMemoryStore {
	return &PostMemoryStore{nextID: 1}
}

func (m *PostMemoryStore) Create(_ context.Context, post *posts.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	post.ID = m.nextID
	m.nextID++
	m.posts = append(m.posts, *post)

	return nil
}

func (m *PostMemoryStore) List(_ context.Context) ([]*posts.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*posts.Post, 0, len(m.posts))

	for i := len(m.posts) - 1; i >= 0; i-- {
		post := m.posts[i]
		result = append(result, &post)
	}

	return result, nil
}

func (m *PostMemoryStore) Get(_ context.Context, id int64) (*posts.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// ids are assigned sequentially from 1
	if id < 1 || id > int64(len(m.posts)) {
		return nil, posts.ErrNotFound
	}

	post := m.posts[id-1]

	return &post, nil
}

var _ posts.Repository = (*PostMemoryStore)(nil)
