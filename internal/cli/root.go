package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/tally/internal/backup"
	"github.com/julianstephens/tally/internal/config"
	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/keyring"
	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/storage"
	"github.com/julianstephens/tally/internal/storage/postgres"
	"github.com/julianstephens/tally/internal/storage/sqlite"
	"github.com/julianstephens/tally/internal/tracker"
	"github.com/julianstephens/tally/internal/utils"
)

type Context struct {
	Store   storage.Provider
	Tracker *tracker.Tracker
	Config  config.Config
	// Clock overrides time.Now in tests.
	Clock func() time.Time
}

// Now returns the current time in the configured timezone.
func (c *Context) Now() time.Time {
	now := time.Now()
	if c.Clock != nil {
		now = c.Clock()
	}
	return now.In(c.Config.Location())
}

// ParseDate resolves "today", "yesterday", "" or YYYY-MM-DD relative to Now.
func (c *Context) ParseDate(s string) (time.Time, error) {
	return ParseDate(s, c.Now())
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

func ParseDate(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return utils.StartOfDay(now), nil
	case "yesterday":
		return utils.AddDays(utils.StartOfDay(now), -1), nil
	}
	date, err := utils.ParseDateInLocation(strings.TrimSpace(s), now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q (expected YYYY-MM-DD, today or yesterday)", models.ErrInvalid, s)
	}
	return date, nil
}

// ParseWeekdays parses a comma-separated list of weekday names or numbers
// into the 1=Sunday..7=Saturday form habits store. Numbers use that same
// 1..7 form.
func ParseWeekdays(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if n, err := strconv.Atoi(part); err == nil {
			if n < 1 || n > 7 {
				return nil, fmt.Errorf("invalid weekday: %s (use 1=Sunday through 7=Saturday)", part)
			}
			out = append(out, n)
			continue
		}
		d, err := utils.ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		out = append(out, int(d)+1)
	}
	return out, nil
}

// ParseFrequency builds a habit frequency from --frequency and its modifiers.
func ParseFrequency(kind string, count int, weekdays, description string) (models.FrequencyRule, error) {
	rule := models.FrequencyRule{Kind: models.FrequencyKind(strings.ToLower(strings.TrimSpace(kind)))}
	switch rule.Kind {
	case "", "daily":
		rule.Kind = models.FrequencyDaily
	case "weekly", models.FrequencyWeeklyCount:
		rule.Kind = models.FrequencyWeeklyCount
		rule.Count = count
	case "weekdays", models.FrequencySpecificWeekdays:
		rule.Kind = models.FrequencySpecificWeekdays
		days, err := ParseWeekdays(weekdays)
		if err != nil {
			return models.FrequencyRule{}, fmt.Errorf("%w: %v", models.ErrInvalid, err)
		}
		rule.Weekdays = days
	case models.FrequencyCustom:
		rule.Description = description
	}
	if err := rule.Validate(); err != nil {
		return models.FrequencyRule{}, err
	}
	return rule, nil
}

// FormatDue describes when a task is next due relative to now.
func FormatDue(days int, ok bool) string {
	switch {
	case !ok:
		return "due now"
	case days < 0:
		return fmt.Sprintf("overdue %dd", -days)
	case days == 0:
		return "due today"
	case days == 1:
		return "due tomorrow"
	default:
		return "due in " + strconv.Itoa(days) + "d"
	}
}

// OpenStore picks a provider for target: a postgres URL or DSN, the word
// "postgres" (connection string from TALLY_DB_CONNECTION or the keyring), a
// .json file, or a SQLite path.
func OpenStore(target string) (storage.Provider, error) {
	target = strings.TrimSpace(target)
	switch {
	case strings.EqualFold(target, "postgres"):
		connStr, err := keyring.ResolveConnectionString(os.Getenv(constants.EnvDBConnection))
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, fmt.Errorf("no PostgreSQL connection string: set %s or run 'tally keyring set'", constants.EnvDBConnection)
			}
			return nil, err
		}
		return postgres.New(connStr), nil
	case strings.HasPrefix(target, "postgres://"), strings.HasPrefix(target, "postgresql://"), strings.Contains(target, "host="):
		if valid, err := postgres.ValidateConnString(target); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w: use %s, .pgpass or 'tally keyring set'", postgres.ErrEmbeddedCredentials, constants.EnvDBConnection)
			}
			return nil, err
		}
		return postgres.New(target), nil
	case strings.HasSuffix(strings.ToLower(target), ".json"):
		return storage.NewJSONStore(config.ExpandPath(target)), nil
	default:
		return sqlite.NewStore(config.ExpandPath(target)), nil
	}
}
