package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/serroba/shortlink/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Repository.
// Recency follows insertion order. A link stamped earlier than the one before
// it is moved forward to that link's CreatedAt so timestamps never go back.
type MemoryStore struct {
	mu     sync.RWMutex
	links  map[shortener.Code]*memoryLink
	seq    int64
	latest time.Time
}

type memoryLink struct {
	link shortener.Link
	seq  int64
}

// NewMemoryStore creates a new in-memory link store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		links: make(map[shortener.Code]*memoryLink),
	}
}

func (m *MemoryStore) TryInsert(_ context.Context, link *shortener.Link) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.links[link.Code]; exists {
		return false, nil
	}

	if link.CreatedAt.Before(m.latest) {
		link.CreatedAt = m.latest
	}

	m.latest = link.CreatedAt
	m.seq++
	m.links[link.Code] = &memoryLink{link: *link, seq: m.seq}

	return true, nil
}

func (m *MemoryStore) Lookup(_ context.Context, code shortener.Code) (*shortener.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.links[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	link := entry.link

	return &link, nil
}

func (m *MemoryStore) Recent(_ context.Context, limit int) ([]*shortener.Link, error) {
	limit = shortener.ClampLimit(limit)

	m.mu.RLock()
	entries := make([]*memoryLink, 0, len(m.links))

	for _, entry := range m.links {
		entries = append(entries, entry)
	}
	m.mu.RUnlock()

	slices.SortFunc(entries, func(a, b *memoryLink) int {
		return cmp.Compare(b.seq, a.seq)
	})

	result := make([]*shortener.Link, 0, min(limit, len(entries)))

	for _, entry := range entries[:min(limit, len(entries))] {
		link := entry.link
		result = append(result, &link)
	}

	return result, nil
}

func (m *MemoryStore) Ping(_ context.Context) error {
	return nil
}

var _ shortener.Repository = (*MemoryStore)(nil)
