package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/tally/internal/storage"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "tally.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreDocuments(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.Get("water_logs"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.Put("water_logs", []byte(`[]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put("water_logs", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("Put (overwrite) failed: %v", err)
	}

	data, err := store.Get("water_logs")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != `[{"id":"1"}]` {
		t.Errorf("Get returned %s", data)
	}

	if err := store.Put("books", []byte(`[]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 2 || keys[0] != "books" || keys[1] != "water_logs" {
		t.Errorf("Keys returned %v", keys)
	}

	if err := store.Delete("books"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get("books"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStoreRejectsInvalidJSON(t *testing.T) {
	store := setupTestStore(t)
	if err := store.Put("books", []byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestStoreReload(t *testing.T) {
	store := setupTestStore(t)
	if err := store.Put("goals", []byte(`[1,2]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	store.Close()

	reopened := NewStore(store.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	data, err := reopened.Get("goals")
	if err != nil || string(data) != `[1,2]` {
		t.Errorf("Get after reload = %s, %v", data, err)
	}
}

func TestStoreNotLoaded(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); !errors.Is(err, storage.ErrNotLoaded) {
		t.Errorf("expected ErrNotLoaded from Load, got %v", err)
	}
	if _, err := store.Get("x"); !errors.Is(err, storage.ErrNotLoaded) {
		t.Errorf("expected ErrNotLoaded from Get, got %v", err)
	}
}

func TestStoreSatisfiesProvider(t *testing.T) {
	var _ storage.Provider = NewStore("")
}
