package postgres

import (
	"errors"
	"os"
	"testing"

	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/storage"
)

// TestStore_Integration tests PostgreSQL store with a real database
// Set POSTGRES_TEST_URL environment variable to run this test
// Example: POSTGRES_TEST_URL="postgres://tally_user@localhost:5432/tally_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	t.Run("Documents", func(t *testing.T) {
		key := constants.KeyWaterLogs
		defer store.Delete(key)

		if err := store.Put(key, []byte(`[{"id":"w1","total_ounces":16}]`)); err != nil {
			t.Fatalf("Failed to put document: %v", err)
		}
		data, err := store.Get(key)
		if err != nil {
			t.Fatalf("Failed to get document: %v", err)
		}
		if len(data) == 0 {
			t.Error("Expected document content")
		}

		keys, err := store.Keys()
		if err != nil {
			t.Fatalf("Failed to list keys: %v", err)
		}
		found := false
		for _, k := range keys {
			if k == key {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected %s in %v", key, keys)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		if _, err := store.Get("no_such_key"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestStoreSatisfiesProvider(t *testing.T) {
	var _ storage.Provider = New("host=localhost dbname=tally")
}

func TestNewSetsSearchPath(t *testing.T) {
	tests := []struct {
		name    string
		connStr string
		want    string
	}{
		{
			name:    "URL without search_path",
			connStr: "postgres://user@localhost:5432/db",
			want:    "postgres://user@localhost:5432/db?search_path=" + constants.AppName,
		},
		{
			name:    "URL keeps existing search_path",
			connStr: "postgres://user@localhost:5432/db?search_path=public",
			want:    "postgres://user@localhost:5432/db?search_path=public",
		},
		{
			name:    "DSN without search_path",
			connStr: "host=localhost dbname=db",
			want:    "host=localhost dbname=db search_path=" + constants.AppName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.connStr).connStr; got != tt.want {
				t.Errorf("connStr = %q, want %q", got, tt.want)
			}
		})
	}
}
