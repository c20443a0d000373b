package system

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/config"
	"github.com/julianstephens/tally/internal/storage/sqlite"
	"github.com/julianstephens/tally/internal/tracker"
)

var testNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.Local)

// newTestContext returns a context over an uninitialized SQLite store in a
// temp directory.
func newTestContext(t *testing.T) (*cli.Context, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	cfg := config.Default()
	return &cli.Context{
		Store:   store,
		Tracker: tracker.New(store, tracker.Options{WaterTargetOz: cfg.WaterTargetOz}),
		Config:  cfg,
		Clock:   func() time.Time { return testNow },
	}, dbPath
}

// newInitializedContext runs init before returning.
func newInitializedContext(t *testing.T) *cli.Context {
	t.Helper()
	ctx, _ := newTestContext(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	return ctx
}
