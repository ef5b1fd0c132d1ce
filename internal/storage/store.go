// Package storage provides the key-value stores that persist tour completion
// flags. All backends share one contract; callers treat read failures as "not
// present" and may ignore write failures, so a broken backend never breaks
// the tour.
package storage

import (
	"context"
	"sync"
)

// Store is a string key-value store.
type Store interface {
	// Get returns the stored value. ok is false when the key is absent,
	// expired, or the backend is unavailable.
	Get(ctx context.Context, key string) (value string, ok bool)

	// Set writes a value. Callers may ignore the error.
	Set(ctx context.Context, key, value string) error

	// Remove deletes a key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// MemoryStore is an in-process Store, used by tests and single-run previews.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok
}

// Set implements Store.
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

// Remove implements Store.
func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}
