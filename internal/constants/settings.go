package constants

const (
	// Environment overrides
	EnvStorage       = "TALLY_STORAGE"
	EnvTimezone      = "TALLY_TIMEZONE"
	EnvWeekStart     = "TALLY_WEEK_START"
	EnvWaterTarget   = "TALLY_WATER_TARGET_OZ"
	EnvWidgetPath    = "TALLY_WIDGET_PATH"
	EnvDBConnection  = "TALLY_DB_CONNECTION"
	EnvDebug         = "TALLY_DEBUG"
	EnvNotifications = "TALLY_NOTIFICATIONS"

	// Default Settings Values
	DefaultTimezone      = "Local" // Use system local timezone by default
	DefaultWeekStart     = "sunday"
	DefaultWaterTargetOz = 64.0
	DefaultNotifications = true
	DefaultRecentDays    = 7
)
