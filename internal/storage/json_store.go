package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// fileFormat is the on-disk shape of a JSON store.
type fileFormat struct {
	Version   int                        `json:"version"`
	Documents map[string]json.RawMessage `json:"documents"`
}

// JSONStore keeps every document in a single JSON file, rewritten on each Put.
type JSONStore struct {
	path string

	mu    sync.RWMutex
	store *fileFormat
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = &fileFormat{
		Version:   1,
		Documents: make(map[string]json.RawMessage),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: run 'tally init' first", ErrNotLoaded)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	store := &fileFormat{}
	if err := json.Unmarshal(data, store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if store.Documents == nil {
		store.Documents = make(map[string]json.RawMessage)
	}

	s.mu.Lock()
	s.store = store
	s.mu.Unlock()
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes to a temp file and renames it over the store. Callers hold mu.
// Documents are stored compact so Get returns them unchanged after a reload.
func (s *JSONStore) save() error {
	data, err := json.Marshal(s.store)
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.store == nil {
		return nil, ErrNotLoaded
	}
	doc, ok := s.store.Documents[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(doc))
	copy(out, doc)
	return out, nil
}

func (s *JSONStore) Put(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return ErrNotLoaded
	}
	var doc bytes.Buffer
	if err := json.Compact(&doc, data); err != nil {
		return fmt.Errorf("document %q is not valid JSON: %w", key, err)
	}
	s.store.Documents[key] = json.RawMessage(doc.Bytes())
	return s.save()
}

func (s *JSONStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return ErrNotLoaded
	}
	if _, ok := s.store.Documents[key]; !ok {
		return nil
	}
	delete(s.store.Documents, key)
	return s.save()
}

func (s *JSONStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.store == nil {
		return nil, ErrNotLoaded
	}
	keys := make([]string, 0, len(s.store.Documents))
	for k := range s.store.Documents {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
