package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// entry represents a stored basket binding with expiration
type entry struct {
	basketID  uuid.UUID
	expiresAt time.Time
}

// MemoryStore implements Store using an in-memory map
// This is suitable for single-instance deployments and testing
type MemoryStore struct {
	mu        sync.RWMutex
	entries   map[string]entry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewMemoryStore creates a new in-memory session store
// It starts a background goroutine to clean up expired entries
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		entries:  make(map[string]entry),
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

// Get returns the basket ID bound to the token
func (s *MemoryStore) Get(ctx context.Context, token string) (uuid.UUID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[token]
	if !exists {
		return uuid.Nil, false, nil
	}

	if time.Now().After(e.expiresAt) {
		return uuid.Nil, false, nil // Expired, treat as missing
	}

	return e.basketID, true, nil
}

// Set binds the token to a basket ID with a TTL
func (s *MemoryStore) Set(ctx context.Context, token string, basketID uuid.UUID, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[token] = entry{
		basketID:  basketID,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes the binding for the token
func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, token)
	return nil
}

// Close stops the cleanup goroutine and releases resources
// Safe to call multiple times
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (s *MemoryStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

// cleanup removes expired entries from the store
func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for token, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, token)
		}
	}
}

// Size returns the number of entries in the store (for testing/monitoring)
func (s *MemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
