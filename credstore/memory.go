package credstore

import (
	"context"
	"sync"
)

// MemoryStore is a process-local [Store] used by tests and by callers that
// explicitly opt out of durable persistence.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

// Get implements [Store].
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.entries[key]
	return val, ok, nil
}

// GetAll implements [Store].
func (s *MemoryStore) GetAll(_ context.Context, keys ...string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := s.entries[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

// ReplaceAll implements [Store].
func (s *MemoryStore) ReplaceAll(_ context.Context, owned []string, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range owned {
		delete(s.entries, k)
	}
	for k, v := range entries {
		s.entries[k] = v
	}
	return nil
}

// DeleteAll implements [Store].
func (s *MemoryStore) DeleteAll(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range keys {
		delete(s.entries, k)
	}
	return nil
}

// Close implements [Store].
func (s *MemoryStore) Close() error {
	return nil
}

// Len reports the number of stored entries. Test helper.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
