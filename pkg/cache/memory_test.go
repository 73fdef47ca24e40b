package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/cookscope/pkg/domain"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	_, err := store.Get(ctx, "u1")
	require.ErrorIs(t, err, domain.ErrNotFound)

	rec := domain.Recommendation{ID: "r1", UserID: "u1", Recipes: []domain.RecipeSummary{{ID: 1}, {ID: 2}}}
	require.NoError(t, store.Save(ctx, rec))
	rec.Recipes[0].ID = 100 // caller mutation doesn't leak into the store

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "r1", got.ID)
	assert.Equal(t, int64(1), got.Recipes[0].ID)

	require.NoError(t, store.Save(ctx, domain.Recommendation{ID: "r2", UserID: "u1"}))
	got, err = store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "r2", got.ID)

	require.NoError(t, store.Delete(ctx, "u1"))
	require.NoError(t, store.Delete(ctx, "u1"))
	_, err = store.Get(ctx, "u1")
	require.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, store.Save(ctx, domain.Recommendation{}), domain.ErrInvalidUser)
}

func TestMemoryStore_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Hour)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, domain.Recommendation{ID: "r1", UserID: "u1"}))
	now = now.Add(30 * time.Minute)
	require.NoError(t, store.Save(ctx, domain.Recommendation{ID: "r2", UserID: "u2"}))
	now = now.Add(45 * time.Minute)

	_, err := store.Get(ctx, "u1")
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.Get(ctx, "u2")
	require.NoError(t, err)

	n, err := store.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := []string{"u1", "u2"}[i%2]
			_ = store.Save(ctx, domain.Recommendation{UserID: user})
			_, _ = store.Get(ctx, user)
		}(i)
	}
	wg.Wait()
	_, err := store.Get(ctx, "u1")
	assert.NoError(t, err)
}
