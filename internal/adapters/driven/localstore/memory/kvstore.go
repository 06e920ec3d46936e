// Package memory provides an in-memory KVStore used in tests and as a
// throwaway partition when persistence is disabled.
package memory

import (
	"sync"

	"github.com/postchat-labs/postchat-cli/internal/core/ports/driven"
)

// Ensure KVStore implements the interface.
var _ driven.KVStore = (*KVStore)(nil)

// KVStore is a thread-safe in-memory key/value partition.
type KVStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewKVStore creates an empty in-memory store.
func NewKVStore() *KVStore {
	return &KVStore{values: map[string]string{}}
}

// Get returns the values for the requested keys. Missing keys are
// absent from the result.
func (s *KVStore) Get(keys ...string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := s.values[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

// Set writes all given key/value pairs.
func (s *KVStore) Set(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		s.values[k] = v
	}
	return nil
}

// Remove deletes a key. Removing a missing key is a no-op.
func (s *KVStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *KVStore) Close() error {
	return nil
}

// Len returns the number of stored keys. Test helper.
func (s *KVStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
