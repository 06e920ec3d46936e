// Package file provides a TOML file-backed KVStore. Each store is one
// file under the postchat config directory, so separate contexts keep
// separate partitions on disk.
package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/postchat-labs/postchat-cli/internal/core/ports/driven"
)

// Ensure KVStore implements the interface.
var _ driven.KVStore = (*KVStore)(nil)

// KVStore is a file-based implementation of driven.KVStore using TOML.
type KVStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]string
}

// NewKVStore creates a TOML-backed store named <name>.toml inside
// configDir. If configDir is empty, defaults to ~/.postchat.
func NewKVStore(configDir, name string) (*KVStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".postchat")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &KVStore{
		filePath: filepath.Join(configDir, name+".toml"),
		data:     make(map[string]string),
	}

	// Load existing data if file exists
	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// Get returns the values for the requested keys. Missing keys are
// absent from the result.
func (s *KVStore) Get(keys ...string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := s.data[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

// Set stores all key/value pairs and persists immediately.
func (s *KVStore) Set(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range values {
		s.data[k] = v
	}
	return s.save()
}

// Remove deletes a key and persists. Removing a missing key is a no-op.
func (s *KVStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.save()
}

// Close is a no-op: every write already hits disk.
func (s *KVStore) Close() error {
	return nil
}

// save writes the data to the TOML file (caller must hold lock).
func (s *KVStore) save() error {
	data, err := toml.Marshal(s.data)
	if err != nil {
		return err
	}

	// Write with restricted permissions, the file may hold tokens
	return os.WriteFile(s.filePath, data, 0600)
}

// load reads the TOML file into memory.
func (s *KVStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No file yet - that's fine, start empty
			s.data = make(map[string]string)
			return nil
		}
		return err
	}

	var loaded map[string]string
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return err
	}
	if loaded == nil {
		loaded = make(map[string]string)
	}
	s.data = loaded
	return nil
}

// Path returns the store's file path.
func (s *KVStore) Path() string {
	return s.filePath
}
