package constants

import "time"

const (
	AppName            = "tally"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/tally"
	DefaultStorePath   = "~/.config/tally/tally.db"
	DefaultConfigFile  = "~/.config/tally/config.yaml"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tally-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "tally-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.tally"
)

// Storage keys. One JSON array (or object) is stored per key.
const (
	KeyCleaningTasks   = "cleaning_tasks"
	KeyCleaningLogs    = "cleaning_logs"
	KeyHabitTemplates  = "habit_templates"
	KeyHabitLogs       = "habit_logs"
	KeyWaterLogs       = "water_logs"
	KeyBooks           = "books"
	KeyReadingSessions = "reading_sessions"
	KeyDaySummaries    = "day_summaries"
	KeyWorkouts        = "workouts"
	KeyMobilityLogs    = "mobility_logs"
	KeyGoals           = "goals"
	KeyWidgetSnapshot  = "widget_snapshot"
)

// CollectionKeys lists every key that holds a JSON array.
var CollectionKeys = []string{
	KeyCleaningTasks,
	KeyCleaningLogs,
	KeyHabitTemplates,
	KeyHabitLogs,
	KeyWaterLogs,
	KeyBooks,
	KeyReadingSessions,
	KeyDaySummaries,
	KeyWorkouts,
	KeyMobilityLogs,
	KeyGoals,
}
