package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/umputun/cookscope/pkg/domain"
)

// MemoryStore keeps recommendations in process memory, used for tests and single-node setups
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	ttl   time.Duration
	now   func() time.Time
}

type memoryItem struct {
	rec     domain.Recommendation
	savedAt time.Time
}

// NewMemoryStore makes an empty store, zero ttl keeps records forever
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{items: map[string]memoryItem{}, ttl: ttl, now: time.Now}
}

// Get returns the stored recommendation of the user or domain.ErrNotFound
func (s *MemoryStore) Get(_ context.Context, userID string) (domain.Recommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[userID]
	if !ok || s.expired(item) {
		return domain.Recommendation{}, fmt.Errorf("recommendation for %s: %w", userID, domain.ErrNotFound)
	}
	return item.rec, nil
}

// Save replaces the stored recommendation of rec.UserID
func (s *MemoryStore) Save(_ context.Context, rec domain.Recommendation) error {
	if rec.UserID == "" {
		return domain.ErrInvalidUser
	}
	rec.Recipes = append([]domain.RecipeSummary(nil), rec.Recipes...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[rec.UserID] = memoryItem{rec: rec, savedAt: s.now()}
	return nil
}

// Delete removes the stored recommendation
func (s *MemoryStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, userID)
	return nil
}

// Prune drops expired records and returns number of dropped ones
func (s *MemoryStore) Prune(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for k, item := range s.items {
		if s.expired(item) {
			delete(s.items, k)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) expired(item memoryItem) bool {
	return s.ttl > 0 && s.now().Sub(item.savedAt) > s.ttl
}
