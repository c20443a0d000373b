package system

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/julianstephens/tally/internal/backup"
	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/habits"
	"github.com/julianstephens/tally/internal/migration"
	"github.com/julianstephens/tally/internal/storage"
	"github.com/julianstephens/tally/internal/storage/sqlite"
	"github.com/julianstephens/tally/internal/utils"
	"github.com/julianstephens/tally/migrations"
)

var errDoctorFailed = errors.New("one or more health checks failed")

type DoctorCmd struct {
	Fix     bool          `help:"Repair duplicate summaries and orphaned logs."`
	Timeout time.Duration `help:"Timeout for the document scan." default:"10s"`
}

// check is one doctor probe. needsDB probes are skipped when the store
// cannot be loaded; warnOnly failures do not fail the run.
type check struct {
	name     string
	needsDB  bool
	warnOnly bool
	run      func(*cli.Context) error
}

func (cmd *DoctorCmd) checks() []check {
	return []check{
		{name: "Schema version", needsDB: true, run: checkSchemaVersion},
		{name: "Documents readable", needsDB: true, run: cmd.checkDocuments},
		{name: "Core habits", needsDB: true, run: checkCoreHabits},
		{name: "Data validation", needsDB: true, run: cmd.checkValidation},
		{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
		{name: "Clock/timezone", run: checkClockTimezone},
	}
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := true
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range cmd.checks() {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", indent(err.Error()))
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		if !cmd.Fix {
			fmt.Println("Run 'tally doctor --fix' to repair data conflicts.")
		}
		return errDoctorFailed
	}
	fmt.Println("All checks passed.")
	return nil
}

func indent(s string) string {
	return strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", "\n   ")
}

func checkSchemaVersion(ctx *cli.Context) error {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		// Other stores validate their schema on Load
		return nil
	}
	db := store.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	runner := migration.NewRunner(db, subFS, migration.DriverSQLite)

	current, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}
	switch {
	case current > latest:
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	case current < latest:
		return fmt.Errorf("database schema version (%d) is behind (%d), run 'tally migrate'", current, latest)
	}
	return nil
}

func (cmd *DoctorCmd) checkDocuments(ctx *cli.Context) error {
	timeout := cmd.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	problems, err := storage.Verify(c, ctx.Store, constants.CollectionKeys)
	if err != nil {
		return fmt.Errorf("document scan aborted: %w", err)
	}
	if len(problems) == 0 {
		return nil
	}
	lines := make([]string, 0, len(problems))
	for _, p := range problems {
		lines = append(lines, p.String())
	}
	return fmt.Errorf("%d unreadable documents:\n%s", len(problems), strings.Join(lines, "\n"))
}

func checkCoreHabits(ctx *cli.Context) error {
	var missing []string
	for _, core := range habits.CoreHabits() {
		if _, ok := habits.FindByTitle(ctx.Tracker.Habits(), core.Title); !ok {
			missing = append(missing, core.Title)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing core habits: %s (run 'tally init')", strings.Join(missing, ", "))
	}
	return nil
}

func (cmd *DoctorCmd) checkValidation(ctx *cli.Context) error {
	result := ctx.Tracker.Check()
	if !result.HasConflicts() {
		return nil
	}
	if !cmd.Fix {
		return errors.New(result.FormatReport())
	}

	fixes, err := ctx.Tracker.Repair()
	if err != nil {
		return fmt.Errorf("repair failed: %w", err)
	}
	for _, f := range fixes {
		fmt.Printf("   fixed: %s\n", f.Action)
	}
	if remaining := ctx.Tracker.Check(); remaining.HasConflicts() {
		return errors.New(remaining.FormatReport())
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'tally backup create'")
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if !utils.ValidateTimezone(ctx.Config.Timezone) {
		return fmt.Errorf("timezone %q could not be loaded, falling back to local time", ctx.Config.Timezone)
	}
	return nil
}
