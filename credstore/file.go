package credstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists entries as a single JSON document. Writes go through a
// temp file plus rename so a crash mid-write leaves the previous document
// intact. Credentials live here, hence 0600.
type FileStore struct {
	mu      sync.RWMutex
	path    string
	entries map[string]string
}

// NewFileStore opens or creates the store at path. An unreadable or corrupt
// document starts the store empty rather than failing: the client recovers
// by re-authenticating, which is strictly better than refusing to start.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("credstore: create state dir: %w", err)
	}

	s := &FileStore{path: path, entries: make(map[string]string)}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("credstore: read state file: %w", err)
	}

	var loaded map[string]string
	if err := json.Unmarshal(raw, &loaded); err == nil && loaded != nil {
		s.entries = loaded
	}
	return s, nil
}

// Get implements [Store].
func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.entries[key]
	return val, ok, nil
}

// GetAll implements [Store].
func (s *FileStore) GetAll(_ context.Context, keys ...string) (map[string]string, error) {
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
func (s *FileStore) ReplaceAll(_ context.Context, owned []string, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range owned {
		delete(s.entries, k)
	}
	for k, v := range entries {
		s.entries[k] = v
	}
	return s.persistLocked()
}

// DeleteAll implements [Store].
func (s *FileStore) DeleteAll(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for _, k := range keys {
		if _, ok := s.entries[k]; ok {
			delete(s.entries, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.persistLocked()
}

// Close implements [Store].
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) persistLocked() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("credstore: encode state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("credstore: write state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("credstore: commit state: %w", err)
	}
	return nil
}
