package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore persists values in a single JSON file, the closest analogue to
// browser local storage: no expiry, survives restarts. Read problems are
// reported as "not present".
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by the given file path. The file is
// created lazily on the first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get implements Store.
func (s *FileStore) Get(_ context.Context, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", false
	}
	value, ok := values[key]
	return value, ok
}

// Set implements Store.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		values = map[string]string{}
	}
	values[key] = value
	return s.write(values)
}

// Remove implements Store.
func (s *FileStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return nil
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.write(values)
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (s *FileStore) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write store %s: %w", s.path, err)
	}
	return nil
}

// ttlEntry is one value in a TTLStore file.
type ttlEntry struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TTLStore persists values with a lifetime, mirroring an expiring cookie.
// Expired entries read as absent and are pruned on the next write.
type TTLStore struct {
	mu   sync.Mutex
	path string
	ttl  time.Duration
	now  func() time.Time
}

// DefaultTTL is the cookie-style lifetime applied when none is given.
const DefaultTTL = 365 * 24 * time.Hour

// NewTTLStore creates an expiring store backed by the given file path.
// ttl <= 0 applies DefaultTTL.
func NewTTLStore(path string, ttl time.Duration) *TTLStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TTLStore{path: path, ttl: ttl, now: time.Now}
}

// SetClock replaces the time source. Tests use this to force expiry.
func (s *TTLStore) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Get implements Store.
func (s *TTLStore) Get(_ context.Context, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return "", false
	}
	entry, ok := entries[key]
	if !ok || s.now().After(entry.ExpiresAt) {
		return "", false
	}
	return entry.Value, true
}

// Set implements Store.
func (s *TTLStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		entries = map[string]ttlEntry{}
	}
	now := s.now()
	for k, entry := range entries {
		if now.After(entry.ExpiresAt) {
			delete(entries, k)
		}
	}
	entries[key] = ttlEntry{Value: value, ExpiresAt: now.Add(s.ttl)}
	return s.write(entries)
}

// Remove implements Store.
func (s *TTLStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return nil
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return s.write(entries)
}

func (s *TTLStore) read() (map[string]ttlEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	entries := map[string]ttlEntry{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *TTLStore) write(entries map[string]ttlEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write store %s: %w", s.path, err)
	}
	return nil
}
