package constants

const (
	AppName            = "tally"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/tally/tally.db"
	Version            = "v0.1.0"

	// DateFormat is the calendar date format used for due dates and habit completion days (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the time-of-day format used for habit reminders (HH:MM)
	TimeFormat = "15:04"

	// Storage keys. These are the persisted wire format and must not change.
	KeyTasks    = "tasks"
	KeyHabits   = "habits"
	KeyDarkMode = "darkMode"

	// Environment variables
	EnvConfig       = "TALLY_CONFIG"
	EnvDebug        = "TALLY_DEBUG"
	EnvDBConnection = "TALLY_DB_CONNECTION"

	// Lockfile guarding against concurrent writers
	LockfileName = "tally.lock"

	// Field limits enforced by the creation forms
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)
