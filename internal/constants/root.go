package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "smokelog"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/smokelog/smokelog.db"
	DefaultSettingsDir = "~/.config/smokelog"
	SettingsFileName   = "config.yaml"
	ConnectionEnvVar   = "SMOKELOG_DB_CONNECTION"
	Version            = "v0.3.0"

	// DayKeyFormat is the calendar-day key used for display and grouping (DD/MM/YYYY)
	DayKeyFormat = "02/01/2006"

	// ClockFormat is the 12-hour time-of-day display format
	ClockFormat = "3:04 PM"

	// DateFormat is the ISO date accepted on the command line (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DefaultTimezone is the reference zone used for calendar-day boundaries
	DefaultTimezone = "Asia/Kolkata"

	// Estimation constants
	AvgDaysPerMonth = 30.44
	DefaultBaseline = 10.0
	DefaultWindow   = 7
	RecentLimit     = 5

	// Save cooldown
	DefaultCooldown = 10 * time.Second

	// Health fact rotation
	DefaultFactInterval = 8 * time.Second

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "smokelog-"
	BackupFileSuffix = ".db"

	// Session lock
	LockfileName = "smokelog.lock"
)

// Session states. The four tabs come first, in display order.
const (
	StateToday SessionState = iota
	StateLog
	StateHistory
	StateProfile
	StateLogForm
	StateProfileForm
	StateConfirmDelete
)
