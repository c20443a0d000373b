package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to migrate data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete existing database
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Database exists, close it first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized tally storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		source, err := cli.OpenStore(c.Source)
		if err != nil {
			return err
		}
		count, err := copyDocuments(source, ctx.Store)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Printf("Migrated %d documents.\n", count)
	}

	seeded, err := ctx.Tracker.EnsureCoreHabits(ctx.Now())
	if err != nil {
		return err
	}
	fmt.Printf("%d habits ready.\n", len(seeded))
	return nil
}

// copyDocuments copies every key from src into dst and returns the number
// of documents written.
func copyDocuments(src, dst storage.Provider) (int, error) {
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	keys, err := src.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list source documents: %w", err)
	}
	for _, key := range keys {
		data, err := src.Get(key)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if err := dst.Put(key, data); err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", key, err)
		}
		fmt.Printf("  %s\n", key)
	}
	return len(keys), nil
}
