package store_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/serroba/shortlink/internal/shortener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRepository runs the behavior every shortener.Repository must share.
// newRepo must return an empty store.
func testRepository(t *testing.T, newRepo func(t *testing.T) shortener.Repository) {
	t.Helper()

	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("insert then lookup", func(t *testing.T) {
		repo := newRepo(t)
		link := &shortener.Link{Code: "abc123", Target: "https://example.com", CreatedAt: base}

		inserted, err := repo.TryInsert(ctx, link)
		require.NoError(t, err)
		require.True(t, inserted)

		got, err := repo.Lookup(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, link.Code, got.Code)
		assert.Equal(t, link.Target, got.Target)
		assert.True(t, link.CreatedAt.Equal(got.CreatedAt), "created at %v, want %v", got.CreatedAt, link.CreatedAt)
	})

	t.Run("existing code is not overwritten", func(t *testing.T) {
		repo := newRepo(t)

		inserted, err := repo.TryInsert(ctx, &shortener.Link{Code: "dup", Target: "https://first.example", CreatedAt: base})
		require.NoError(t, err)
		require.True(t, inserted)

		inserted, err = repo.TryInsert(ctx, &shortener.Link{Code: "dup", Target: "https://second.example", CreatedAt: base})
		require.NoError(t, err)
		assert.False(t, inserted)

		got, err := repo.Lookup(ctx, "dup")
		require.NoError(t, err)
		assert.Equal(t, "https://first.example", got.Target)
	})

	t.Run("unknown code is not found", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Lookup(ctx, "missing")

		require.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("recent is newest first and bounded", func(t *testing.T) {
		repo := newRepo(t)

		for i, code := range []string{"one", "two", "three"} {
			_, err := repo.TryInsert(ctx, &shortener.Link{
				Code:      shortener.Code(code),
				Target:    "https://example.com/" + code,
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			})
			require.NoError(t, err)
		}

		links, err := repo.Recent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, links, 2)
		assert.Equal(t, shortener.Code("three"), links[0].Code)
		assert.Equal(t, shortener.Code("two"), links[1].Code)

		links, err = repo.Recent(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, links, 3)
	})

	t.Run("recent breaks timestamp ties by insertion order", func(t *testing.T) {
		repo := newRepo(t)

		for _, code := range []string{"zzz", "aaa", "mmm"} {
			_, err := repo.TryInsert(ctx, &shortener.Link{Code: shortener.Code(code), Target: "https://example.com", CreatedAt: base})
			require.NoError(t, err)
		}

		links, err := repo.Recent(ctx, 3)
		require.NoError(t, err)
		require.Len(t, links, 3)
		assert.Equal(t, []shortener.Code{"mmm", "aaa", "zzz"}, codesOf(links))
	})

	t.Run("recent follows insertion order over timestamps", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.TryInsert(ctx, &shortener.Link{Code: "first", Target: "https://example.com", CreatedAt: base.Add(time.Hour)})
		require.NoError(t, err)
		_, err = repo.TryInsert(ctx, &shortener.Link{Code: "second", Target: "https://example.com", CreatedAt: base})
		require.NoError(t, err)

		links, err := repo.Recent(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []shortener.Code{"second", "first"}, codesOf(links))
	})

	t.Run("recent with non-positive limit is empty", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.TryInsert(ctx, &shortener.Link{Code: "abc123", Target: "https://example.com", CreatedAt: base})
		require.NoError(t, err)

		for _, limit := range []int{0, -5} {
			links, err := repo.Recent(ctx, limit)
			require.NoError(t, err)
			assert.Empty(t, links)
		}
	})

	t.Run("concurrent inserts of one code have a single winner", func(t *testing.T) {
		const writers = 16

		repo := newRepo(t)

		var (
			wg   sync.WaitGroup
			wins atomic.Int32
		)

		for i := range writers {
			wg.Add(1)

			go func() {
				defer wg.Done()

				inserted, err := repo.TryInsert(ctx, &shortener.Link{
					Code:      "race",
					Target:    fmt.Sprintf("https://example.com/%d", i),
					CreatedAt: base,
				})
				if assert.NoError(t, err) && inserted {
					wins.Add(1)
				}
			}()
		}

		wg.Wait()

		assert.Equal(t, int32(1), wins.Load())

		links, err := repo.Recent(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, links, 1)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, newRepo(t).Ping(ctx))
	})
}

func codesOf(links []*shortener.Link) []shortener.Code {
	codes := make([]shortener.Code, 0, len(links))
	for _, link := range links {
		codes = append(codes, link.Code)
	}

	return codes
}
